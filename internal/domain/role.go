package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role tags an authenticated subject as a professional or a company.
type Role string

// Known roles.
const (
	RoleProfessional Role = "professional"
	RoleCompany      Role = "company"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleProfessional || r == RoleCompany
}

// Principal is the authenticated subject of a request.
type Principal struct {
	SubjectID uuid.UUID
	Role      Role
	ExpiresAt time.Time
}

// Credentials is the login view of a subject, shared by professionals and companies.
type Credentials struct {
	SubjectID    uuid.UUID
	Role         Role
	PasswordHash string
}
