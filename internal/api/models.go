package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
)

// TokenTypeBearer is the token_type of every issued access token.
const TokenTypeBearer = "bearer"

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries a fresh token pair.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse carries a new access token. The refresh token is not rotated.
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterProfessionalRequest defines the payload for professional registration.
type RegisterProfessionalRequest struct {
	Username    string    `json:"username"     validate:"required,min=3,max=30"`
	Password    string    `json:"password"     validate:"required,min=8,max=72"`
	Email       string    `json:"email"        validate:"required,email"`
	FirstName   string    `json:"first_name"   validate:"required,max=100"`
	LastName    string    `json:"last_name"    validate:"required,max=100"`
	Description string    `json:"description"  validate:"max=2000"`
	CityID      uuid.UUID `json:"city_id"      validate:"required"`
}

// RegisterCompanyRequest defines the payload for company registration.
type RegisterCompanyRequest struct {
	Username    string    `json:"username"     validate:"required,min=3,max=30"`
	Password    string    `json:"password"     validate:"required,min=8,max=72"`
	Name        string    `json:"name"         validate:"required,max=200"`
	Description string    `json:"description"  validate:"max=2000"`
	Email       string    `json:"email"        validate:"required,email"`
	PhoneNumber string    `json:"phone_number" validate:"required,e164"`
	CityID      uuid.UUID `json:"city_id"      validate:"required"`
}

// JobAdRequest defines the payload for creating a job ad.
type JobAdRequest struct {
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	CityID      uuid.UUID `json:"city_id"     validate:"required"`
	Title       string    `json:"title"       validate:"required,max=200"`
	Description string    `json:"description" validate:"max=5000"`
	MinSalary   int       `json:"min_salary"  validate:"gte=0"`
	MaxSalary   int       `json:"max_salary"  validate:"gte=0,gtefield=MinSalary"`
}

// JobApplicationRequest defines the payload for creating a job application.
type JobApplicationRequest struct {
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	CityID      uuid.UUID `json:"city_id"     validate:"required"`
	Name        string    `json:"name"        validate:"required,max=200"`
	Description string    `json:"description" validate:"max=5000"`
	MinSalary   int       `json:"min_salary"  validate:"gte=0"`
	MaxSalary   int       `json:"max_salary"  validate:"gte=0,gtefield=MinSalary"`
	IsMain      bool      `json:"is_main"`
}

// ProfessionalUpdateRequest changes a professional profile. Omitted fields
// keep their value.
type ProfessionalUpdateRequest struct {
	FirstName   *string    `json:"first_name"  validate:"omitempty,min=1,max=100"`
	LastName    *string    `json:"last_name"   validate:"omitempty,min=1,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	CityID      *uuid.UUID `json:"city_id"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=active busy"`
}

// JobAdUpdateRequest changes a job ad. Omitted fields keep their value.
type JobAdUpdateRequest struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	CityID      *uuid.UUID `json:"city_id"`
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	MinSalary   *int       `json:"min_salary"  validate:"omitempty,gte=0"`
	MaxSalary   *int       `json:"max_salary"  validate:"omitempty,gte=0"`
	Status      *string    `json:"status"`
}

// RequirementRequest defines the payload for creating a company requirement.
type RequirementRequest struct {
	Description string `json:"description" validate:"required,max=500"`
	SkillLevel  string `json:"skill_level" validate:"required,oneof=beginner intermediate advanced"`
}

// StatusRequest changes the status of a job ad or job application.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CategoryRequest defines the payload for creating a category.
type CategoryRequest struct {
	Title       string `json:"title"       validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// SkillRequest defines the payload for creating a skill.
type SkillRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// MatchResponseRequest answers a match request.
type MatchResponseRequest struct {
	AcceptRequest *bool `json:"accept_request" validate:"required"`
}

// MatchRequestResponse is returned when a match request is created.
type MatchRequestResponse struct {
	Message string             `json:"message"`
	Status  domain.MatchStatus `json:"status"`
}

// MatchResponse is one entry of a match listing.
type MatchResponse struct {
	JobAdID          uuid.UUID          `json:"job_ad_id"`
	JobApplicationID uuid.UUID          `json:"job_application_id"`
	Status           domain.MatchStatus `json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func matchToResponse(m *domain.Match, _ int) MatchResponse {
	return MatchResponse{
		JobAdID:          m.JobAdID,
		JobApplicationID: m.JobApplicationID,
		Status:           m.Status,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
