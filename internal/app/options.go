package app

import "github.com/pace-rs/pace/internal/domain"

// BeginOptions configures a begin transition.
type BeginOptions struct {
	Description string
	// Category is optional; empty means uncategorized.
	Category string
	Tags     []string
	// BeginTime defaults to the service clock when zero.
	BeginTime domain.PaceDateTime
	// Force implicitly ends a current activity at BeginTime instead of
	// failing with ErrActivityAlreadyActive.
	Force bool
}

// HoldOptions configures a hold transition.
type HoldOptions struct {
	// Action defaults to domain.IntermissionExtend when empty.
	Action domain.IntermissionAction
	// BeginTime defaults to the service clock when zero.
	BeginTime domain.PaceDateTime
	// Reason is optional free text attached to the intermission.
	Reason string
}

// ResumeOptions configures a resume transition.
type ResumeOptions struct {
	// ResumeTime closes the open intermission; defaults to the service
	// clock when zero.
	ResumeTime domain.PaceDateTime
}

// EndOptions configures an end transition.
type EndOptions struct {
	// EndTime defaults to the service clock when zero.
	EndTime domain.PaceDateTime
}
