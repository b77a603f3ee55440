package domain

import (
	"context"
	"time"
)

// Status is the candidate's current stage in the recruitment pipeline.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusSelected  Status = "Selected"
	StatusRejected  Status = "Rejected"
)

// Statuses lists every valid pipeline stage.
var Statuses = []Status{StatusApplied, StatusInterview, StatusSelected, StatusRejected}

func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusInterview, StatusSelected, StatusRejected:
		return true
	}
	return false
}

type Candidate struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"` // stored lowercased
	Phone           string    `json:"phone"`
	PositionApplied string    `json:"position_applied"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CandidateListItem is the lightweight list representation without timestamps.
type CandidateListItem struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	PositionApplied string `json:"position_applied"`
	Status          Status `json:"status"`
}

// CandidateInput carries the writable candidate fields for create and full update.
type CandidateInput struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,digits,len=10"`
	PositionApplied string `json:"position_applied" validate:"required"`
	Status          string `json:"status" validate:"omitempty,oneof=Applied Interview Selected Rejected"`
}

// CandidatePatch carries optional fields for partial update; nil means "leave as is".
type CandidatePatch struct {
	Name            *string `json:"name" validate:"omitempty,min=2"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone" validate:"omitempty,digits,len=10"`
	PositionApplied *string `json:"position_applied"`
	Status          *string `json:"status" validate:"omitempty,oneof=Applied Interview Selected Rejected"`
}

// CandidateFilter describes list query parameters. Zero values mean
// "no filter" / defaults (newest first, first page).
type CandidateFilter struct {
	Status     string
	Search     string
	OrderBy    string // created_at | name
	Descending bool
	Page       int
	PageSize   int
}

// CandidatePage is a single page of list results with navigation hints.
type CandidatePage struct {
	Count    int64               `json:"count"`
	Next     *int                `json:"next"`
	Previous *int                `json:"previous"`
	Results  []CandidateListItem `json:"results"`
}

type CandidateRepository interface {
	Create(ctx context.Context, c *Candidate) error
	GetByID(ctx context.Context, id int64) (*Candidate, error)
	Update(ctx context.Context, c *Candidate) error
	UpdateStatus(ctx context.Context, id int64, status Status) (*Candidate, error)
	Delete(ctx context.Context, id int64) (string, error)
	Fetch(ctx context.Context, f CandidateFilter) ([]Candidate, int64, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
}

type CandidateUsecase interface {
	Create(ctx context.Context, in CandidateInput) (*Candidate, error)
	Get(ctx context.Context, id int64) (*Candidate, error)
	Update(ctx context.Context, id int64, in CandidateInput) (*Candidate, error)
	Patch(ctx context.Context, id int64, in CandidatePatch) (*Candidate, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*Candidate, error)
	Delete(ctx context.Context, id int64) (string, error)
	List(ctx context.Context, f CandidateFilter) (*CandidatePage, error)
}
