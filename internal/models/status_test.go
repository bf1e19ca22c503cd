package models_test

import (
	"testing"

	"ats-backend/internal/models"
)

func TestParseCandidateStatus_ValidValues(t *testing.T) {
	valid := []string{
		"applied", "screened", "sent_to_director", "interview_scheduled",
		"salary_proposed", "salary_approved", "offer_sent", "hired", "rejected",
	}
	for _, s := range valid {
		got, err := models.ParseCandidateStatus(s)
		if err != nil {
			t.Errorf("ParseCandidateStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseCandidateStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseCandidateStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"UNKNOWN", "Applied", ""} {
		if _, err := models.ParseCandidateStatus(s); err == nil {
			t.Errorf("ParseCandidateStatus(%q) expected error, got nil", s)
		}
	}
}

func TestIsTransitionAllowed_Forward(t *testing.T) {
	cases := []struct {
		from models.CandidateStatus
		to   models.CandidateStatus
	}{
		{models.StatusApplied, models.StatusScreened},
		{models.StatusScreened, models.StatusSentToDirector},
		{models.StatusSentToDirector, models.StatusInterviewScheduled},
		{models.StatusInterviewScheduled, models.StatusSalaryProposed},
		{models.StatusSalaryProposed, models.StatusSalaryApproved},
		{models.StatusSalaryApproved, models.StatusOfferSent},
		{models.StatusOfferSent, models.StatusHired},
		// skipping stages forward is allowed
		{models.StatusApplied, models.StatusHired},
		{models.StatusScreened, models.StatusHired},
		{models.StatusScreened, models.StatusSalaryProposed},
	}
	for _, c := range cases {
		if !models.IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s -> %s) should be true", c.from, c.to)
		}
	}
}

func TestIsTransitionAllowed_Backwards(t *testing.T) {
	cases := []struct {
		from models.CandidateStatus
		to   models.CandidateStatus
	}{
		{models.StatusScreened, models.StatusApplied},
		{models.StatusInterviewScheduled, models.StatusScreened},
		{models.StatusHired, models.StatusOfferSent},
		{models.StatusHired, models.StatusApplied},
	}
	for _, c := range cases {
		if models.IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s -> %s) should be false (backwards)", c.from, c.to)
		}
	}
}

func TestIsTransitionAllowed_ToRejected(t *testing.T) {
	all := []models.CandidateStatus{
		models.StatusApplied, models.StatusScreened, models.StatusSentToDirector,
		models.StatusInterviewScheduled, models.StatusSalaryProposed,
		models.StatusSalaryApproved, models.StatusOfferSent, models.StatusHired,
		models.StatusRejected,
	}
	for _, from := range all {
		if !models.IsTransitionAllowed(from, models.StatusRejected) {
			t.Errorf("IsTransitionAllowed(%s -> rejected) should be true", from)
		}
	}
}

func TestIsTransitionAllowed_FromRejected(t *testing.T) {
	targets := []models.CandidateStatus{
		models.StatusApplied, models.StatusScreened, models.StatusSentToDirector,
		models.StatusInterviewScheduled, models.StatusSalaryProposed,
		models.StatusSalaryApproved, models.StatusOfferSent, models.StatusHired,
	}
	for _, to := range targets {
		if models.IsTransitionAllowed(models.StatusRejected, to) {
			t.Errorf("IsTransitionAllowed(rejected -> %s) should be false", to)
		}
	}
}

// A repeated status stays in the permitted set: the pipeline tail starts at
// the current index.
func TestIsTransitionAllowed_Self(t *testing.T) {
	for _, s := range []models.CandidateStatus{
		models.StatusApplied, models.StatusScreened, models.StatusHired,
	} {
		if !models.IsTransitionAllowed(s, s) {
			t.Errorf("IsTransitionAllowed(%s -> %s) should be true (re-log)", s, s)
		}
	}
}

func TestAllowedNextStatuses(t *testing.T) {
	got := models.AllowedNextStatuses(models.StatusOfferSent)
	want := []models.CandidateStatus{
		models.StatusOfferSent, models.StatusHired, models.StatusRejected,
	}
	if len(got) != len(want) {
		t.Fatalf("AllowedNextStatuses(offer_sent) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllowedNextStatuses(offer_sent)[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	got = models.AllowedNextStatuses(models.StatusRejected)
	if len(got) != 1 || got[0] != models.StatusRejected {
		t.Errorf("AllowedNextStatuses(rejected) = %v, want [rejected]", got)
	}
}
