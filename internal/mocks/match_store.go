package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/store"
	"github.com/samber/lo"
)

// MatchStore implements store.MatchStore on a MemoryDB. Like the
// PostgreSQL store it keeps one row per pair and updates status with
// compare-and-set semantics.
type MatchStore struct {
	db   *MemoryDB
	inTx bool
}

var _ store.MatchStore = (*MatchStore)(nil)

// CreateIfNotExists implements store.MatchStore.
func (s *MatchStore) CreateIfNotExists(_ context.Context, m *domain.Match) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, err
	}
	defer s.db.exclusive(s.inTx)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("MatchStore.CreateIfNotExists"); err != nil {
		return false, err
	}
	_, ad := s.db.data.jobAds[m.JobAdID]
	_, app := s.db.data.jobApps[m.JobApplicationID]
	if !ad || !app {
		return false, store.ErrInvalidEntity
	}
	key := matchKey{jobAdID: m.JobAdID, jobApplicationID: m.JobApplicationID}
	if _, exists := s.db.data.matches[key]; exists {
		return false, nil
	}
	s.db.data.matches[key] = *m
	return true, nil
}

// Get implements store.MatchStore.
func (s *MatchStore) Get(_ context.Context, jobAdID, jobApplicationID uuid.UUID) (*domain.Match, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if err := s.db.failure("MatchStore.Get"); err != nil {
		return nil, err
	}
	m, ok := s.db.data.matches[matchKey{jobAdID: jobAdID, jobApplicationID: jobApplicationID}]
	if !ok {
		return nil, store.ErrMatchNotFound
	}
	return &m, nil
}

// UpdateStatus implements store.MatchStore.
func (s *MatchStore) UpdateStatus(
	_ context.Context,
	jobAdID, jobApplicationID uuid.UUID,
	from, to domain.MatchStatus,
) error {
	defer s.db.exclusive(s.inTx)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("MatchStore.UpdateStatus"); err != nil {
		return err
	}
	key := matchKey{jobAdID: jobAdID, jobApplicationID: jobApplicationID}
	m, ok := s.db.data.matches[key]
	if !ok {
		return store.ErrMatchNotFound
	}
	if m.Status != from {
		return store.ErrStatusChanged
	}
	m.Status = to
	m.UpdatedAt = time.Now().UTC()
	s.db.data.matches[key] = m
	return nil
}

// ListByJobApplication implements store.MatchStore.
func (s *MatchStore) ListByJobApplication(
	_ context.Context,
	jobApplicationID uuid.UUID,
	f store.MatchFilter,
) ([]*domain.Match, error) {
	return s.list(f, func(m domain.Match) bool { return m.JobApplicationID == jobApplicationID })
}

// ListByJobAd implements store.MatchStore.
func (s *MatchStore) ListByJobAd(_ context.Context, jobAdID uuid.UUID, f store.MatchFilter) ([]*domain.Match, error) {
	return s.list(f, func(m domain.Match) bool { return m.JobAdID == jobAdID })
}

// ListByCompany implements store.MatchStore.
func (s *MatchStore) ListByCompany(_ context.Context, companyID uuid.UUID, f store.MatchFilter) ([]*domain.Match, error) {
	return s.list(f, func(m domain.Match) bool {
		ad, ok := s.db.data.jobAds[m.JobAdID]
		return ok && ad.CompanyID == companyID
	})
}

// ListByProfessional implements store.MatchStore.
func (s *MatchStore) ListByProfessional(
	_ context.Context,
	professionalID uuid.UUID,
	f store.MatchFilter,
) ([]*domain.Match, error) {
	return s.list(f, func(m domain.Match) bool {
		app, ok := s.db.data.jobApps[m.JobApplicationID]
		return ok && app.ProfessionalID == professionalID
	})
}

func (s *MatchStore) list(f store.MatchFilter, owned func(domain.Match) bool) ([]*domain.Match, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if err := s.db.failure("MatchStore.List"); err != nil {
		return nil, err
	}
	items := lo.Filter(lo.Values(s.db.data.matches), func(m domain.Match, _ int) bool {
		return owned(m) && (len(f.Statuses) == 0 || lo.Contains(f.Statuses, m.Status))
	})
	newestFirst(items, func(m domain.Match) time.Time { return m.CreatedAt })
	return ptrs(paginate(items, f.Page)), nil
}

// WithTx implements store.MatchStore.
func (s *MatchStore) WithTx(*sql.Tx) store.MatchStore { return &MatchStore{db: s.db, inTx: true} }
