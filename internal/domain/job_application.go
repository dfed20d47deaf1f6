package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobApplicationStatus is the visibility of a job application. It is
// independent of the status of any match the application takes part in.
type JobApplicationStatus string

// Possible job application status values
const (
	JobApplicationStatusActive  JobApplicationStatus = "active"
	JobApplicationStatusHidden  JobApplicationStatus = "hidden"
	JobApplicationStatusPrivate JobApplicationStatus = "private"
	JobApplicationStatusMatched JobApplicationStatus = "matched"
)

// IsValid reports whether s is a known job application status.
func (s JobApplicationStatus) IsValid() bool {
	switch s {
	case JobApplicationStatusActive, JobApplicationStatusHidden,
		JobApplicationStatusPrivate, JobApplicationStatusMatched:
		return true
	default:
		return false
	}
}

// JobApplication is a professional's published profile for one kind of position.
type JobApplication struct {
	ID             uuid.UUID `json:"id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	CategoryID     uuid.UUID `json:"category_id"`
	CityID         uuid.UUID `json:"city_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	SalaryRange
	IsMain    bool                 `json:"is_main"`
	Status    JobApplicationStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// NewJobApplication creates an active JobApplication owned by professionalID.
func NewJobApplication(
	professionalID, categoryID, cityID uuid.UUID,
	name, description string,
	salary SalaryRange,
	isMain bool,
) (*JobApplication, error) {
	now := time.Now().UTC()
	app := &JobApplication{
		ID:             uuid.New(),
		ProfessionalID: professionalID,
		CategoryID:     categoryID,
		CityID:         cityID,
		Name:           strings.TrimSpace(name),
		Description:    description,
		SalaryRange:    salary,
		IsMain:         isMain,
		Status:         JobApplicationStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := app.Validate(); err != nil {
		return nil, err
	}
	return app, nil
}

// Validate checks if the JobApplication has valid data.
func (a *JobApplication) Validate() error {
	if a.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if a.ProfessionalID == uuid.Nil {
		return NewValidationError("professional_id", "cannot be empty", ErrEmptyOwner)
	}
	if a.CategoryID == uuid.Nil {
		return NewValidationError("category_id", "cannot be empty", ErrEmptyCategory)
	}
	if a.CityID == uuid.Nil {
		return NewValidationError("city_id", "cannot be empty", ErrEmptyCity)
	}
	if a.Name == "" {
		return NewValidationError("name", "cannot be empty", ErrEmptyTitle)
	}
	if err := a.SalaryRange.Validate(); err != nil {
		return err
	}
	if !a.Status.IsValid() {
		return NewValidationError("status", "is invalid", ErrInvalidJobAppStatus)
	}
	return nil
}
