package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/job-screening/internal/report"
	"github.com/spf13/cobra"
)

var (
	exportJobID string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export-matches",
	Short: "Export a job's ranked candidates to an Excel workbook",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportJobID, "job-id", "", "Job ID (required)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Path to output .xlsx file (required)")
	for _, name := range []string{"job-id", "out"} {
		if err := exportCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	jobID, err := uuid.Parse(exportJobID)
	if err != nil {
		return fmt.Errorf("invalid --job-id: %w", err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := cmd.Context()

	store, closeStore, err := a.openStore(ctx, false)
	if err != nil {
		return err
	}
	defer closeStore()

	rep, err := a.readOnlyService(store).JobReport(ctx, jobID)
	if err != nil {
		return err
	}
	path, err := report.WriteFile(exportOut, rep)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d candidates to %s\n", len(rep.Rows), path)
	return nil
}
