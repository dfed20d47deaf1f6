package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobAdStatus represents whether a job ad is open for matching.
type JobAdStatus string

// Possible job ad status values
const (
	JobAdStatusActive   JobAdStatus = "active"
	JobAdStatusArchived JobAdStatus = "archived"
)

// Common validation errors for job ads and job applications
var (
	ErrEmptyOwner          = errors.New("owner ID cannot be empty")
	ErrEmptyCategory       = errors.New("category ID cannot be empty")
	ErrEmptyTitle          = errors.New("title cannot be empty")
	ErrInvalidSalaryRange  = errors.New("invalid salary range")
	ErrInvalidJobAdStatus  = errors.New("invalid job ad status")
	ErrInvalidJobAppStatus = errors.New("invalid job application status")
)

// SalaryRange is an inclusive, non-negative range.
type SalaryRange struct {
	Min int `json:"min_salary"`
	Max int `json:"max_salary"`
}

// Validate checks that the range is non-negative and ordered.
func (s SalaryRange) Validate() error {
	if s.Min < 0 || s.Max < 0 || s.Max < s.Min {
		return NewValidationError("salary", "range is invalid", ErrInvalidSalaryRange)
	}
	return nil
}

// JobAd is a position published by a company.
type JobAd struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"company_id"`
	CategoryID  uuid.UUID `json:"category_id"`
	CityID      uuid.UUID `json:"city_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SalaryRange
	Status    JobAdStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewJobAd creates an active JobAd owned by companyID.
func NewJobAd(
	companyID, categoryID, cityID uuid.UUID,
	title, description string,
	salary SalaryRange,
) (*JobAd, error) {
	now := time.Now().UTC()
	ad := &JobAd{
		ID:          uuid.New(),
		CompanyID:   companyID,
		CategoryID:  categoryID,
		CityID:      cityID,
		Title:       strings.TrimSpace(title),
		Description: description,
		SalaryRange: salary,
		Status:      JobAdStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := ad.Validate(); err != nil {
		return nil, err
	}
	return ad, nil
}

// Validate checks if the JobAd has valid data.
func (a *JobAd) Validate() error {
	if a.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if a.CompanyID == uuid.Nil {
		return NewValidationError("company_id", "cannot be empty", ErrEmptyOwner)
	}
	if a.CategoryID == uuid.Nil {
		return NewValidationError("category_id", "cannot be empty", ErrEmptyCategory)
	}
	if a.CityID == uuid.Nil {
		return NewValidationError("city_id", "cannot be empty", ErrEmptyCity)
	}
	if a.Title == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	if err := a.SalaryRange.Validate(); err != nil {
		return err
	}
	if !a.Status.IsValid() {
		return NewValidationError("status", "is invalid", ErrInvalidJobAdStatus)
	}
	return nil
}

// IsValid reports whether s is a known job ad status.
func (s JobAdStatus) IsValid() bool {
	return s == JobAdStatusActive || s == JobAdStatusArchived
}
