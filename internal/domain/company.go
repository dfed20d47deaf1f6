package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyPhone is returned when a company has no phone number.
var ErrEmptyPhone = errors.New("phone number cannot be empty")

// Company publishes job ads and answers match requests from professionals.
type Company struct {
	ID                     uuid.UUID `json:"id"`
	Username               string    `json:"username"`
	PasswordHash           string    `json:"-"`
	Name                   string    `json:"name"`
	Description            string    `json:"description"`
	Email                  string    `json:"email"`
	PhoneNumber            string    `json:"phone_number"`
	CityID                 uuid.UUID `json:"city_id"`
	SuccessfulMatchesCount int       `json:"successful_matches_count"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// NewCompany creates a Company with a fresh ID and timestamps.
func NewCompany(
	username, passwordHash, name, description, email, phone string,
	cityID uuid.UUID,
) (*Company, error) {
	now := time.Now().UTC()
	c := &Company{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(name),
		Description:  description,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PhoneNumber:  strings.TrimSpace(phone),
		CityID:       cityID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks if the Company has valid data.
func (c *Company) Validate() error {
	if c.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if err := validateUsername(c.Username); err != nil {
		return err
	}
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	if c.PasswordHash == "" {
		return NewValidationError("password", "cannot be empty", ErrEmptyPasswordHash)
	}
	if c.Name == "" {
		return NewValidationError("name", "cannot be empty", ErrEmptyName)
	}
	if c.PhoneNumber == "" {
		return NewValidationError("phone_number", "cannot be empty", ErrEmptyPhone)
	}
	if c.CityID == uuid.Nil {
		return NewValidationError("city_id", "cannot be empty", ErrEmptyCity)
	}
	if c.SuccessfulMatchesCount < 0 {
		return NewValidationError("successful_matches_count", "cannot be negative", ErrValidation)
	}
	return nil
}
