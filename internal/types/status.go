// Package types provides type definitions for structured data used throughout the job-screening system.
package types

import "fmt"

// ResultStatus reports how a record produced by a model-backed component was obtained.
type ResultStatus string

const (
	// StatusSuccess means the model output parsed and validated.
	StatusSuccess ResultStatus = "success"
	// StatusDegraded means a heuristic fallback or default template was used.
	StatusDegraded ResultStatus = "degraded"
	// StatusFailed means the provider was unreachable or the pipeline failed; the record holds defaults.
	StatusFailed ResultStatus = "failed"
)

// MatchStatus is the workflow state of a match.
type MatchStatus string

// Match workflow states
const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchRejected MatchStatus = "rejected"
)

// InterviewStatus is the workflow state of an interview.
type InterviewStatus string

// Interview workflow states
const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCancelled InterviewStatus = "cancelled"
)

// ParseMatchStatus validates a raw match status value.
func ParseMatchStatus(s string) (MatchStatus, error) {
	switch MatchStatus(s) {
	case MatchPending, MatchAccepted, MatchRejected:
		return MatchStatus(s), nil
	}
	return "", fmt.Errorf("invalid match status %q (want pending, accepted or rejected)", s)
}

// ParseInterviewStatus validates a raw interview status value.
func ParseInterviewStatus(s string) (InterviewStatus, error) {
	switch InterviewStatus(s) {
	case InterviewScheduled, InterviewCompleted, InterviewCancelled:
		return InterviewStatus(s), nil
	}
	return "", fmt.Errorf("invalid interview status %q (want scheduled, completed or cancelled)", s)
}

// Worst returns the less favourable of two result statuses.
func Worst(a, b ResultStatus) ResultStatus {
	rank := map[ResultStatus]int{StatusSuccess: 0, StatusDegraded: 1, StatusFailed: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}
