package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/job-screening/internal/observability"
	"github.com/spf13/cobra"
)

var (
	matchJobID        string
	matchCandidateIDs []string
	matchOut          string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score saved candidates against a saved job",
	Long: "Score one or more candidates against a job and save the matches. Candidates at or above " +
		"the configured threshold get an interview drafted when auto-scheduling is on.",
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchJobID, "job-id", "", "Job ID (required)")
	matchCmd.Flags().StringSliceVar(&matchCandidateIDs, "candidate-id", nil, "Candidate ID, repeatable (required)")
	matchCmd.Flags().StringVarP(&matchOut, "out", "o", "", "Path to output JSON file (default stdout)")
	for _, name := range []string{"job-id", "candidate-id"} {
		if err := matchCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
	rootCmd.AddCommand(matchCmd)
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runMatch(cmd *cobra.Command, _ []string) error {
	jobID, err := uuid.Parse(matchJobID)
	if err != nil {
		return fmt.Errorf("invalid --job-id: %w", err)
	}
	candidateIDs, err := parseIDs(matchCandidateIDs)
	if err != nil {
		return err
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

	svc, closeSvc, err := a.newService(ctx, serviceOptions{store: store, progress: printProgress(cmd.ErrOrStderr())})
	if err != nil {
		return err
	}
	defer closeSvc()

	outcomes, err := svc.MatchCandidates(ctx, jobID, candidateIDs)
	if err != nil {
		return err
	}
	if verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		for _, out := range outcomes {
			printer.PrintMatch(out.Match, out.Interview)
		}
	}
	if len(outcomes) == 1 {
		return writeJSON(cmd.OutOrStdout(), matchOut, outcomes[0])
	}
	return writeJSON(cmd.OutOrStdout(), matchOut, outcomes)
}
