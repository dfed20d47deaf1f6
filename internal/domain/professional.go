package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProfessionalStatus describes whether a professional is open to offers.
type ProfessionalStatus string

// Possible professional status values
const (
	ProfessionalStatusActive ProfessionalStatus = "active"
	ProfessionalStatusBusy   ProfessionalStatus = "busy"
)

// Username limits shared by professionals and companies.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
)

// Common validation errors for accounts
var (
	ErrEmptyUsername             = errors.New("username cannot be empty")
	ErrInvalidUsername           = errors.New("username must be between 3 and 30 characters")
	ErrInvalidEmail              = errors.New("invalid email format")
	ErrEmptyPasswordHash         = errors.New("password hash cannot be empty")
	ErrEmptyName                 = errors.New("name cannot be empty")
	ErrEmptyCity                 = errors.New("city ID cannot be empty")
	ErrInvalidProfessionalStatus = errors.New("invalid professional status")
)

// Professional is a job seeker who publishes job applications.
type Professional struct {
	ID           uuid.UUID          `json:"id"`
	Username     string             `json:"username"`
	PasswordHash string             `json:"-"`
	Email        string             `json:"email"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	Description  string             `json:"description"`
	CityID       uuid.UUID          `json:"city_id"`
	Status       ProfessionalStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// NewProfessional creates an active Professional with a fresh ID and timestamps.
// Returns an error if validation fails.
func NewProfessional(
	username, passwordHash, email, firstName, lastName, description string,
	cityID uuid.UUID,
) (*Professional, error) {
	now := time.Now().UTC()
	p := &Professional{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Description:  description,
		CityID:       cityID,
		Status:       ProfessionalStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks if the Professional has valid data.
func (p *Professional) Validate() error {
	if p.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if err := validateUsername(p.Username); err != nil {
		return err
	}
	if err := validateEmail(p.Email); err != nil {
		return err
	}
	if p.PasswordHash == "" {
		return NewValidationError("password", "cannot be empty", ErrEmptyPasswordHash)
	}
	if p.FirstName == "" || p.LastName == "" {
		return NewValidationError("name", "first and last name are required", ErrEmptyName)
	}
	if p.CityID == uuid.Nil {
		return NewValidationError("city_id", "cannot be empty", ErrEmptyCity)
	}
	if p.Status != ProfessionalStatusActive && p.Status != ProfessionalStatusBusy {
		return NewValidationError("status", "is invalid", ErrInvalidProfessionalStatus)
	}
	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return NewValidationError("username", "cannot be empty", ErrEmptyUsername)
	}
	if n := len([]rune(username)); n < MinUsernameLength || n > MaxUsernameLength {
		return NewValidationError("username", "must be between 3 and 30 characters", ErrInvalidUsername)
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	return nil
}
