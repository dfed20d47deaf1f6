package match

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/events"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/redact"
	"github.com/phrazzld/jobmatch-api/internal/service"
	"github.com/phrazzld/jobmatch-api/internal/store"
)

// Deps groups the collaborators of Service.
type Deps struct {
	Tx              store.TxRunner
	Matches         store.MatchStore
	JobAds          store.JobAdStore
	JobApplications store.JobApplicationStore
	Companies       store.CompanyStore
	Guards          *service.Guards

	// Emitter receives events after a transition commits. Optional.
	Emitter events.EventEmitter

	Logger *slog.Logger
}

// Result is the outcome of a request or a response.
type Result struct {
	Message string             `json:"message"`
	Status  domain.MatchStatus `json:"status"`
}

// Service runs the match workflow between job applications and job ads.
type Service struct {
	tx      store.TxRunner
	matches store.MatchStore
	jobAds  store.JobAdStore
	jobApps store.JobApplicationStore
	company store.CompanyStore
	guards  *service.Guards
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewService creates a match Service. It panics if a required dependency is nil.
func NewService(d Deps) *Service {
	if d.Tx == nil || d.Matches == nil || d.JobAds == nil || d.JobApplications == nil ||
		d.Companies == nil || d.Guards == nil {
		panic("match: missing required dependency")
	}
	if d.Emitter == nil {
		d.Emitter = events.NopEmitter{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &Service{
		tx:      d.Tx,
		matches: d.Matches,
		jobAds:  d.JobAds,
		jobApps: d.JobApplications,
		company: d.Companies,
		guards:  d.Guards,
		emitter: d.Emitter,
		logger:  d.Logger.With(slog.String("component", "match_service")),
	}
}

// RequestFromJobApplication sends a match request from a professional's job
// application to a job ad.
func (s *Service) RequestFromJobApplication(
	ctx context.Context,
	professionalID, jobApplicationID, jobAdID uuid.UUID,
) (*Result, error) {
	if _, err := s.guards.EnsureProfessional(ctx, professionalID); err != nil {
		return nil, err
	}
	app, err := s.guards.EnsureJobApplication(ctx, jobApplicationID, &professionalID)
	if err != nil {
		return nil, err
	}
	ad, err := s.guards.EnsureJobAd(ctx, jobAdID, nil)
	if err != nil {
		return nil, err
	}
	return s.createIfNotExists(ctx, app, ad, domain.SideJobApplication)
}

// RequestFromJobAd sends a match request from a company's job ad to a job
// application.
func (s *Service) RequestFromJobAd(
	ctx context.Context,
	companyID, jobAdID, jobApplicationID uuid.UUID,
) (*Result, error) {
	if _, err := s.guards.EnsureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	ad, err := s.guards.EnsureJobAd(ctx, jobAdID, &companyID)
	if err != nil {
		return nil, err
	}
	app, err := s.guards.EnsureJobApplication(ctx, jobApplicationID, nil)
	if err != nil {
		return nil, err
	}
	return s.createIfNotExists(ctx, app, ad, domain.SideJobAd)
}

// createIfNotExists inserts the requested state for side. When a row for the
// pair already exists, including one inserted by a concurrent request, the
// existing status decides the conflict. Only a pair without a row is checked
// for an archived ad or a matched application.
func (s *Service) createIfNotExists(
	ctx context.Context,
	app *domain.JobApplication,
	ad *domain.JobAd,
	side domain.MatchSide,
) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("job_ad_id", ad.ID.String()),
		slog.String("job_application_id", app.ID.String()),
		slog.String("side", string(side)))

	existing, err := s.matches.Get(ctx, ad.ID, app.ID)
	switch {
	case err == nil:
		log.Debug("match request already exists", slog.String("status", string(existing.Status)))
		return nil, domain.CreateConflict(existing.Status)
	case !errors.Is(err, store.ErrMatchNotFound):
		return nil, service.Translate(log, err, "")
	}

	if err := ensureOpen(app, ad); err != nil {
		return nil, err
	}

	m := domain.NewMatch(app.ID, ad.ID, side)
	created, err := s.matches.CreateIfNotExists(ctx, m)
	if err != nil {
		return nil, service.Translate(log, err, "")
	}
	if !created {
		existing, err := s.matches.Get(ctx, ad.ID, app.ID)
		if err != nil {
			return nil, service.Translate(log, err, "")
		}
		log.Debug("match request created concurrently", slog.String("status", string(existing.Status)))
		return nil, domain.CreateConflict(existing.Status)
	}

	log.Info("match request created", slog.String("status", string(m.Status)))
	s.emit(ctx, log, m, side)
	return &Result{Message: domain.MsgMatchRequestSent, Status: m.Status}, nil
}

// ProcessRequestFromCompany answers, on behalf of the company owning jobAdID,
// a request sent by a job application.
func (s *Service) ProcessRequestFromCompany(
	ctx context.Context,
	companyID, jobAdID, jobApplicationID uuid.UUID,
	accept bool,
) (*Result, error) {
	if _, err := s.guards.EnsureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	ad, err := s.guards.EnsureJobAd(ctx, jobAdID, &companyID)
	if err != nil {
		return nil, err
	}
	app, err := s.guards.EnsureJobApplication(ctx, jobApplicationID, nil)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, app, ad, domain.SideJobAd, accept)
}

// ProcessRequestFromJobApplication answers, on behalf of the professional
// owning jobApplicationID, a request sent by a job ad.
func (s *Service) ProcessRequestFromJobApplication(
	ctx context.Context,
	professionalID, jobApplicationID, jobAdID uuid.UUID,
	accept bool,
) (*Result, error) {
	if _, err := s.guards.EnsureProfessional(ctx, professionalID); err != nil {
		return nil, err
	}
	app, err := s.guards.EnsureJobApplication(ctx, jobApplicationID, &professionalID)
	if err != nil {
		return nil, err
	}
	ad, err := s.guards.EnsureJobAd(ctx, jobAdID, nil)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, app, ad, domain.SideJobApplication, accept)
}

func (s *Service) respond(
	ctx context.Context,
	app *domain.JobApplication,
	ad *domain.JobAd,
	responder domain.MatchSide,
	accept bool,
) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("job_ad_id", ad.ID.String()),
		slog.String("job_application_id", app.ID.String()),
		slog.String("side", string(responder)))

	m, err := s.matches.Get(ctx, ad.ID, app.ID)
	if err != nil {
		return nil, service.Translate(log, err, notFoundDetail(ad.ID, app.ID))
	}

	next, err := m.Respond(responder, accept)
	if err != nil {
		return nil, err
	}

	from := m.Status
	if accept {
		err = s.tx.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
			return s.acceptInTx(ctx, tx, m)
		})
	} else {
		err = s.matches.UpdateStatus(ctx, ad.ID, app.ID, from, next)
	}
	if err != nil {
		if errors.Is(err, store.ErrStatusChanged) {
			return nil, s.lostRace(ctx, log, ad.ID, app.ID, responder, accept)
		}
		return nil, service.Translate(log, err, notFoundDetail(ad.ID, app.ID))
	}

	m.Status = next
	log.Info("match request answered",
		slog.String("from", string(from)),
		slog.String("to", string(next)))
	s.emit(ctx, log, m, responder)
	return &Result{Message: domain.ResponseMessage(accept), Status: next}, nil
}

// acceptInTx moves the match to ACCEPTED and applies its side effects: the
// application becomes matched, the ad is archived and the company's
// successful match count grows. The ad and the application are read again
// inside tx and must still be open.
func (s *Service) acceptInTx(ctx context.Context, tx *sql.Tx, m *domain.Match) error {
	err := s.matches.WithTx(tx).UpdateStatus(ctx, m.JobAdID, m.JobApplicationID, m.Status, domain.MatchStatusAccepted)
	if err != nil {
		return err
	}

	guards := s.guards.WithTx(tx)
	ad, err := guards.EnsureJobAd(ctx, m.JobAdID, nil)
	if err != nil {
		return err
	}
	app, err := guards.EnsureJobApplication(ctx, m.JobApplicationID, nil)
	if err != nil {
		return err
	}
	if err := ensureOpen(app, ad); err != nil {
		return err
	}

	err = s.jobApps.WithTx(tx).UpdateStatus(ctx, app.ID, domain.JobApplicationStatusMatched)
	if err != nil {
		return err
	}
	if err := s.jobAds.WithTx(tx).UpdateStatus(ctx, ad.ID, domain.JobAdStatusArchived); err != nil {
		return err
	}
	return s.company.WithTx(tx).IncrementSuccessfulMatches(ctx, ad.CompanyID)
}

// lostRace reports the error for a response whose conditional update found
// the match already moved by someone else.
func (s *Service) lostRace(
	ctx context.Context,
	log *slog.Logger,
	jobAdID, jobApplicationID uuid.UUID,
	responder domain.MatchSide,
	accept bool,
) error {
	current, err := s.matches.Get(ctx, jobAdID, jobApplicationID)
	if err != nil {
		return service.Translate(log, err, notFoundDetail(jobAdID, jobApplicationID))
	}
	log.Info("match request changed concurrently", slog.String("status", string(current.Status)))
	if _, err := current.Respond(responder, accept); err != nil {
		return err
	}
	return domain.Conflict("Match Request was modified concurrently")
}

func (s *Service) emit(ctx context.Context, log *slog.Logger, m *domain.Match, side domain.MatchSide) {
	if err := s.emitter.EmitEvent(ctx, events.NewMatchEvent(m, side)); err != nil {
		log.Warn("failed to emit match event", redact.ErrorAttr(err))
	}
}

// ensureOpen rejects pairs whose ad is archived or whose application is
// already matched.
func ensureOpen(app *domain.JobApplication, ad *domain.JobAd) error {
	if ad.Status == domain.JobAdStatusArchived {
		return domain.Forbidden("Job Ad with id %s is archived", ad.ID)
	}
	if app.Status == domain.JobApplicationStatusMatched {
		return domain.Forbidden("Job Application with id %s is already matched", app.ID)
	}
	return nil
}

func notFoundDetail(jobAdID, jobApplicationID uuid.UUID) string {
	return "Match request with job ad id " + jobAdID.String() +
		" and job application id " + jobApplicationID.String() + " not found"
}
