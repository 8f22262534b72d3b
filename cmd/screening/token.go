package main

import (
	"fmt"

	"github.com/jonathan/job-screening/internal/server"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenHours   int
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Issue an API bearer token for a recruiter",
	Long:  "Sign an HS256 token with JWT_SECRET. The subject identifies the recruiter in request logs.",
	RunE:  runIssueToken,
}

func init() {
	issueTokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Recruiter name or id (required)")
	issueTokenCmd.Flags().IntVar(&tokenHours, "hours", 0, "Token lifetime in hours (default from config)")
	if err := issueTokenCmd.MarkFlagRequired("subject"); err != nil {
		panic(fmt.Sprintf("failed to mark subject flag as required: %v", err))
	}
	rootCmd.AddCommand(issueTokenCmd)
}

func runIssueToken(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	jwtCfg, err := a.cfg.JWT()
	if err != nil {
		return err
	}
	if tokenHours > 0 {
		jwtCfg.ExpirationHours = tokenHours
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(tokenSubject)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
