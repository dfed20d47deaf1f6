package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MatchStatus is the state of a match between one job application and one job ad.
//
//	NONE -> REQUESTED_BY_JOB_APPLICATION | REQUESTED_BY_JOB_AD -> ACCEPTED | REJECTED
//
// NONE means no row exists for the pair. ACCEPTED and REJECTED are terminal.
type MatchStatus string

// Possible match status values
const (
	MatchStatusNone                      MatchStatus = "NONE"
	MatchStatusRequestedByJobApplication MatchStatus = "REQUESTED_BY_JOB_APPLICATION"
	MatchStatusRequestedByJobAd          MatchStatus = "REQUESTED_BY_JOB_AD"
	MatchStatusAccepted                  MatchStatus = "ACCEPTED"
	MatchStatusRejected                  MatchStatus = "REJECTED"
)

// Client-facing match messages.
const (
	MsgMatchRequestSent     = "Match Request successfully sent"
	MsgMatchAccepted        = "Match Request accepted"
	MsgMatchRejected        = "Match Request rejected"
	MsgMatchAlreadySent     = "Match Request already sent"
	MsgMatchAlreadyAccepted = "Match Request already accepted"
	MsgMatchAlreadyRejected = "Match Request already rejected"
	MsgMatchWasRejected     = "Match Request was rejected, cannot create a new match request"
	MsgMatchOwnRequest      = "Cannot respond to your own match request"
)

// ErrInvalidMatchStatus is returned when a persisted match carries an unknown status.
var ErrInvalidMatchStatus = errors.New("invalid match status")

// IsRequested reports whether s is one of the two requested states.
func (s MatchStatus) IsRequested() bool {
	return s == MatchStatusRequestedByJobApplication || s == MatchStatusRequestedByJobAd
}

// IsTerminal reports whether no further transition is permitted from s.
func (s MatchStatus) IsTerminal() bool {
	return s == MatchStatusAccepted || s == MatchStatusRejected
}

// IsValid reports whether s may be persisted.
func (s MatchStatus) IsValid() bool {
	return s.IsRequested() || s.IsTerminal()
}

// RequestedBy returns the side that created a request in status s.
func (s MatchStatus) RequestedBy() (MatchSide, bool) {
	switch s {
	case MatchStatusRequestedByJobApplication:
		return SideJobApplication, true
	case MatchStatusRequestedByJobAd:
		return SideJobAd, true
	default:
		return "", false
	}
}

// MatchSide identifies which party of a match acts.
type MatchSide string

// The two sides of a match.
const (
	SideJobApplication MatchSide = "job_application"
	SideJobAd          MatchSide = "job_ad"
)

// RequestedStatus is the status a new request from side s starts in.
func (s MatchSide) RequestedStatus() MatchStatus {
	if s == SideJobAd {
		return MatchStatusRequestedByJobAd
	}
	return MatchStatusRequestedByJobApplication
}

// OwnerRole is the role of the subject owning side s.
func (s MatchSide) OwnerRole() Role {
	if s == SideJobAd {
		return RoleCompany
	}
	return RoleProfessional
}

// Match records a proposed pairing between a job application and a job ad.
// The pair (JobAdID, JobApplicationID) identifies it.
type Match struct {
	JobAdID          uuid.UUID   `json:"job_ad_id"`
	JobApplicationID uuid.UUID   `json:"job_application_id"`
	Status           MatchStatus `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// NewMatch builds a match request created by requester.
func NewMatch(jobApplicationID, jobAdID uuid.UUID, requester MatchSide) *Match {
	now := time.Now().UTC()
	return &Match{
		JobAdID:          jobAdID,
		JobApplicationID: jobApplicationID,
		Status:           requester.RequestedStatus(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Validate checks if the Match has valid data.
func (m *Match) Validate() error {
	if m.JobAdID == uuid.Nil {
		return NewValidationError("job_ad_id", "cannot be empty", ErrInvalidID)
	}
	if m.JobApplicationID == uuid.Nil {
		return NewValidationError("job_application_id", "cannot be empty", ErrInvalidID)
	}
	if !m.Status.IsValid() {
		return NewValidationError("status", "is invalid", ErrInvalidMatchStatus)
	}
	return nil
}

// CreateConflict returns the error for requesting a match that already exists
// in status existing, or nil when existing is NONE.
func CreateConflict(existing MatchStatus) error {
	switch {
	case existing == MatchStatusNone || existing == "":
		return nil
	case existing.IsRequested():
		return Forbidden(MsgMatchAlreadySent)
	case existing == MatchStatusAccepted:
		return Forbidden(MsgMatchAlreadyAccepted)
	case existing == MatchStatusRejected:
		return Forbidden(MsgMatchWasRejected)
	default:
		return Internal("Unexpected match state", ErrInvalidMatchStatus)
	}
}

// Respond returns the status m moves to when responder accepts or rejects it.
// Only the side that did not create the request may respond, and terminal
// matches cannot be answered again.
func (m *Match) Respond(responder MatchSide, accept bool) (MatchStatus, error) {
	switch m.Status {
	case MatchStatusAccepted:
		return m.Status, Forbidden(MsgMatchAlreadyAccepted)
	case MatchStatusRejected:
		return m.Status, Forbidden(MsgMatchAlreadyRejected)
	}

	requester, ok := m.Status.RequestedBy()
	if !ok {
		return m.Status, Internal("Unexpected match state", ErrInvalidMatchStatus)
	}
	if requester == responder {
		return m.Status, Forbidden(MsgMatchOwnRequest)
	}

	if accept {
		return MatchStatusAccepted, nil
	}
	return MatchStatusRejected, nil
}

// ResponseMessage is the success message for a response.
func ResponseMessage(accept bool) string {
	if accept {
		return MsgMatchAccepted
	}
	return MsgMatchRejected
}
