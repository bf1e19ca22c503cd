// Candidate pipeline state machine.
//
// Pipeline order:
//
//	applied -> screened -> sent_to_director -> interview_scheduled ->
//	salary_proposed -> salary_approved -> offer_sent -> hired
//
// rejected is a side state reachable from anywhere. Moving forward may skip
// stages; moving backward is never allowed.
package models

import "fmt"

type CandidateStatus string

const (
	StatusApplied            CandidateStatus = "applied"
	StatusScreened           CandidateStatus = "screened"
	StatusSentToDirector     CandidateStatus = "sent_to_director"
	StatusInterviewScheduled CandidateStatus = "interview_scheduled"
	StatusSalaryProposed     CandidateStatus = "salary_proposed"
	StatusSalaryApproved     CandidateStatus = "salary_approved"
	StatusOfferSent          CandidateStatus = "offer_sent"
	StatusHired              CandidateStatus = "hired"
	StatusRejected           CandidateStatus = "rejected"
)

// statusPipeline holds the forward stages in order. rejected sits outside it.
var statusPipeline = []CandidateStatus{
	StatusApplied,
	StatusScreened,
	StatusSentToDirector,
	StatusInterviewScheduled,
	StatusSalaryProposed,
	StatusSalaryApproved,
	StatusOfferSent,
	StatusHired,
}

// ParseCandidateStatus converts a raw string to a CandidateStatus, returning
// an error for unknown values.
func ParseCandidateStatus(s string) (CandidateStatus, error) {
	st := CandidateStatus(s)
	if st == StatusRejected {
		return st, nil
	}
	for _, p := range statusPipeline {
		if st == p {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown candidate status %q", s)
}

func pipelineIndex(s CandidateStatus) int {
	for i, p := range statusPipeline {
		if p == s {
			return i
		}
	}
	return -1
}

// AllowedNextStatuses returns the permitted transition targets from the given
// status: every pipeline stage at or after it, plus rejected. From rejected
// only rejected remains reachable.
func AllowedNextStatuses(from CandidateStatus) []CandidateStatus {
	out := []CandidateStatus{}
	if idx := pipelineIndex(from); idx >= 0 {
		out = append(out, statusPipeline[idx:]...)
	}
	return append(out, StatusRejected)
}

// IsTransitionAllowed reports whether moving from -> to is permitted.
func IsTransitionAllowed(from, to CandidateStatus) bool {
	for _, s := range AllowedNextStatuses(from) {
		if s == to {
			return true
		}
	}
	return false
}
