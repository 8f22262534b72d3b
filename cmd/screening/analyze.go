package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/job-screening/internal/ingestion"
	"github.com/jonathan/job-screening/internal/observability"
	"github.com/jonathan/job-screening/internal/types"
	"github.com/spf13/cobra"
)

var (
	analyzeJobIn      string
	analyzeJobURL     string
	analyzeJobSave    bool
	analyzeJobOut     string
	analyzeJobBrowser bool

	analyzeCVIn   string
	analyzeCVSave bool
	analyzeCVOut  string
)

var analyzeJobCmd = &cobra.Command{
	Use:   "analyze-job",
	Short: "Extract a structured job record from a description",
	Long:  "Extract title, skills, experience, responsibilities and an embedding from a job description file or posting URL.",
	RunE:  runAnalyzeJob,
}

var analyzeCVCmd = &cobra.Command{
	Use:   "analyze-cv",
	Short: "Extract a structured candidate record from a résumé",
	Long:  "Extract contact details, skills, experience and education from a PDF, DOCX or text résumé.",
	RunE:  runAnalyzeCV,
}

func init() {
	analyzeJobCmd.Flags().StringVarP(&analyzeJobIn, "in", "i", "", "Path to job description text file")
	analyzeJobCmd.Flags().StringVar(&analyzeJobURL, "url", "", "URL of a job posting to fetch")
	analyzeJobCmd.Flags().BoolVar(&analyzeJobSave, "save", false, "Save the job to the database")
	analyzeJobCmd.Flags().StringVarP(&analyzeJobOut, "out", "o", "", "Path to output JSON file (default stdout)")
	analyzeJobCmd.Flags().BoolVar(&analyzeJobBrowser, "browser", false, "Render thin posting pages in headless Chrome")
	analyzeJobCmd.MarkFlagsMutuallyExclusive("in", "url")
	analyzeJobCmd.MarkFlagsOneRequired("in", "url")

	analyzeCVCmd.Flags().StringVarP(&analyzeCVIn, "in", "i", "", "Path to résumé file (required)")
	analyzeCVCmd.Flags().BoolVar(&analyzeCVSave, "save", false, "Save the candidate to the database")
	analyzeCVCmd.Flags().StringVarP(&analyzeCVOut, "out", "o", "", "Path to output JSON file (default stdout)")
	if err := analyzeCVCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeJobCmd, analyzeCVCmd)
}

// readJobText reads a description file and normalizes its text.
func readJobText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	text := ingestion.CleanText(string(content))
	if text == "" {
		return "", fmt.Errorf("input file %s is empty", path)
	}
	return text, nil
}

func runAnalyzeJob(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := cmd.Context()

	store, closeStore, err := a.openStore(ctx, !analyzeJobSave)
	if err != nil {
		return err
	}
	defer closeStore()

	svc, closeSvc, err := a.newService(ctx, serviceOptions{
		store:      store,
		useBrowser: analyzeJobBrowser,
		progress:   printProgress(cmd.ErrOrStderr()),
	})
	if err != nil {
		return err
	}
	defer closeSvc()

	var job *types.Job
	if analyzeJobURL != "" {
		job, err = svc.AnalyzeJobURL(ctx, analyzeJobURL)
	} else {
		var text string
		if text, err = readJobText(analyzeJobIn); err != nil {
			return err
		}
		job, err = svc.AnalyzeJob(ctx, text)
	}
	if err != nil {
		return err
	}
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintJob(job)
	}
	return writeJSON(cmd.OutOrStdout(), analyzeJobOut, job)
}

func runAnalyzeCV(cmd *cobra.Command, _ []string) error {
	if !ingestion.Supported(analyzeCVIn) {
		return fmt.Errorf("unsupported résumé format: %s", filepath.Ext(analyzeCVIn))
	}
	text, err := ingestion.ReadDocument(analyzeCVIn)
	if err != nil {
		return fmt.Errorf("failed to read résumé: %w", err)
	}
	if text == "" {
		return errors.New("no text could be extracted from " + analyzeCVIn)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	ctx := cmd.Context()

	store, closeStore, err := a.openStore(ctx, !analyzeCVSave)
	if err != nil {
		return err
	}
	defer closeStore()

	svc, closeSvc, err := a.newService(ctx, serviceOptions{store: store, progress: printProgress(cmd.ErrOrStderr())})
	if err != nil {
		return err
	}
	defer closeSvc()

	c, err := svc.AnalyzeCandidate(ctx, text, filepath.Base(analyzeCVIn))
	if err != nil {
		return err
	}
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintCandidate(c)
	}
	return writeJSON(cmd.OutOrStdout(), analyzeCVOut, c)
}
