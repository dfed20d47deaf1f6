package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SkillLevel is the proficiency a company expects for a requirement.
type SkillLevel string

// Possible skill level values
const (
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
)

// Common validation errors for requirements
var (
	ErrEmptyDescription  = errors.New("description cannot be empty")
	ErrInvalidSkillLevel = errors.New("invalid skill level")
)

// Requirement is a company-owned qualification that can be attached to the
// company's job ads. Descriptions are unique per company.
type Requirement struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	Description string     `json:"description"`
	SkillLevel  SkillLevel `json:"skill_level"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewRequirement creates a Requirement owned by companyID.
func NewRequirement(companyID uuid.UUID, description string, level SkillLevel) (*Requirement, error) {
	now := time.Now().UTC()
	r := &Requirement{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Description: strings.TrimSpace(description),
		SkillLevel:  level,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks if the Requirement has valid data.
func (r *Requirement) Validate() error {
	if r.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if r.CompanyID == uuid.Nil {
		return NewValidationError("company_id", "cannot be empty", ErrEmptyOwner)
	}
	if r.Description == "" {
		return NewValidationError("description", "cannot be empty", ErrEmptyDescription)
	}
	if !r.SkillLevel.IsValid() {
		return NewValidationError("skill_level", "is invalid", ErrInvalidSkillLevel)
	}
	return nil
}

// IsValid reports whether l is a known skill level.
func (l SkillLevel) IsValid() bool {
	switch l {
	case SkillLevelBeginner, SkillLevelIntermediate, SkillLevelAdvanced:
		return true
	}
	return false
}
