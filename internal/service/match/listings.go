package match

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/platform/logger"
	"github.com/phrazzld/jobmatch-api/internal/service"
	"github.com/phrazzld/jobmatch-api/internal/store"
)

// ListForJobApplication returns the requests job ads sent to a job
// application owned by professionalID.
func (s *Service) ListForJobApplication(
	ctx context.Context,
	professionalID, jobApplicationID uuid.UUID,
	page store.Page,
) ([]*domain.Match, error) {
	if _, err := s.guards.EnsureJobApplication(ctx, jobApplicationID, &professionalID); err != nil {
		return nil, err
	}
	items, err := s.matches.ListByJobApplication(ctx, jobApplicationID, pending(domain.MatchStatusRequestedByJobAd, page))
	return s.listResult(ctx, items, err)
}

// ListReceivedByJobAd returns the requests job applications sent to a job ad
// owned by companyID.
func (s *Service) ListReceivedByJobAd(
	ctx context.Context,
	companyID, jobAdID uuid.UUID,
	page store.Page,
) ([]*domain.Match, error) {
	if _, err := s.guards.EnsureJobAd(ctx, jobAdID, &companyID); err != nil {
		return nil, err
	}
	items, err := s.matches.ListByJobAd(ctx, jobAdID, pending(domain.MatchStatusRequestedByJobApplication, page))
	return s.listResult(ctx, items, err)
}

// ListSentByJobAd returns the requests a job ad owned by companyID sent to
// job applications.
func (s *Service) ListSentByJobAd(
	ctx context.Context,
	companyID, jobAdID uuid.UUID,
	page store.Page,
) ([]*domain.Match, error) {
	if _, err := s.guards.EnsureJobAd(ctx, jobAdID, &companyID); err != nil {
		return nil, err
	}
	items, err := s.matches.ListByJobAd(ctx, jobAdID, pending(domain.MatchStatusRequestedByJobAd, page))
	return s.listResult(ctx, items, err)
}

// ListForCompany returns every request awaiting an answer from companyID.
func (s *Service) ListForCompany(ctx context.Context, companyID uuid.UUID, page store.Page) ([]*domain.Match, error) {
	if _, err := s.guards.EnsureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	items, err := s.matches.ListByCompany(ctx, companyID, pending(domain.MatchStatusRequestedByJobApplication, page))
	return s.listResult(ctx, items, err)
}

// ListForProfessional returns every request awaiting an answer from professionalID.
func (s *Service) ListForProfessional(
	ctx context.Context,
	professionalID uuid.UUID,
	page store.Page,
) ([]*domain.Match, error) {
	if _, err := s.guards.EnsureProfessional(ctx, professionalID); err != nil {
		return nil, err
	}
	items, err := s.matches.ListByProfessional(ctx, professionalID, pending(domain.MatchStatusRequestedByJobAd, page))
	return s.listResult(ctx, items, err)
}

func (s *Service) listResult(ctx context.Context, items []*domain.Match, err error) ([]*domain.Match, error) {
	if err != nil {
		return nil, service.Translate(logger.FromContextOrDefault(ctx, s.logger), err, "")
	}
	if items == nil {
		items = []*domain.Match{}
	}
	return items, nil
}

func pending(status domain.MatchStatus, page store.Page) store.MatchFilter {
	return store.MatchFilter{Statuses: []domain.MatchStatus{status}, Page: page.Normalize()}
}
