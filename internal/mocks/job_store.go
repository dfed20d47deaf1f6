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

// JobAdStore implements store.JobAdStore on a MemoryDB.
type JobAdStore struct {
	db   *MemoryDB
	inTx bool
}

var _ store.JobAdStore = (*JobAdStore)(nil)

// Create implements store.JobAdStore.
func (s *JobAdStore) Create(_ context.Context, ad *domain.JobAd) error {
	if err := ad.Validate(); err != nil {
		return err
	}
	defer s.db.exclusive(s.inTx)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("JobAdStore.Create"); err != nil {
		return err
	}
	_, company := s.db.data.companies[ad.CompanyID]
	_, category := s.db.data.categories[ad.CategoryID]
	_, city := s.db.data.cities[ad.CityID]
	if !company || !category || !city {
		return store.ErrInvalidEntity
	}
	s.db.data.jobAds[ad.ID] = *ad
	return nil
}

// GetByID implements store.JobAdStore.
func (s *JobAdStore) GetByID(_ context.Context, id uuid.UUID) (*domain.JobAd, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if err := s.db.failure("JobAdStore.GetByID"); err != nil {
		return nil, err
	}
	ad, ok := s.db.data.jobAds[id]
	if !ok {
		return nil, store.ErrJobAdNotFound
	}
	return &ad, nil
}

// List implements store.JobAdStore.
func (s *JobAdStore) List(_ context.Context, f store.JobAdFilter) ([]*domain.JobAd, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	items := lo.Filter(lo.Values(s.db.data.jobAds), func(ad domain.JobAd, _ int) bool {
		return (f.CompanyID == uuid.Nil || ad.CompanyID == f.CompanyID) &&
			(f.CategoryID == uuid.Nil || ad.CategoryID == f.CategoryID) &&
			(f.Status == "" || ad.Status == f.Status)
	})
	newestFirst(items, func(ad domain.JobAd) time.Time { return ad.CreatedAt })
	return ptrs(paginate(items, f.Page)), nil
}

// UpdateStatus implements store.JobAdStore.
func (s *JobAdStore) UpdateStatus(_ context.Context, id uuid.UUID, status domain.JobAdStatus) error {
	defer s.db.exclusive(s.inTx)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("JobAdStore.UpdateStatus"); err != nil {
		return err
	}
	ad, ok := s.db.data.jobAds[id]
	if !ok {
		return store.ErrJobAdNotFound
	}
	ad.Status = status
	ad.UpdatedAt = time.Now().UTC()
	s.db.data.jobAds[id] = ad
	return nil
}

// Update implements store.JobAdStore.
func (s *JobAdStore) Update(_ context.Context, ad *domain.JobAd) error {
	if err := ad.Validate(); err != nil {
		return err
	}
	defer s.db.exclusive(s.inTx)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("JobAdStore.Update"); err != nil {
		return err
	}
	if _, ok := s.db.data.jobAds[ad.ID]; !ok {
		return store.ErrJobAdNotFound
	}
	_, category := s.db.data.categories[ad.CategoryID]
	_, city := s.db.data.cities[ad.CityID]
	if !category || !city {
		return store.ErrInvalidEntity
	}
	s.db.data.jobAds[ad.ID] = *ad
	return nil
}

// WithTx implements store.JobAdStore.
func (s *JobAdStore) WithTx(*sql.Tx) store.JobAdStore { return &JobAdStore{db: s.db, inTx: true} }

// JobApplicationStore implements store.JobApplicationStore on a MemoryDB.
type JobApplicationStore struct {
	db   *MemoryDB
	inTx bool
}

var _ store.JobApplicationStore = (*JobApplicationStore)(nil)

// Create implements store.JobApplicationStore.
func (s *JobApplicationStore) Create(_ context.Context, app *domain.JobApplication) error {
	if err := app.Validate(); err != nil {
		return err
	}
	defer s.db.exclusive(s.inTx)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("JobApplicationStore.Create"); err != nil {
		return err
	}
	_, professional := s.db.data.professionals[app.ProfessionalID]
	_, category := s.db.data.categories[app.CategoryID]
	_, city := s.db.data.cities[app.CityID]
	if !professional || !category || !city {
		return store.ErrInvalidEntity
	}
	s.db.data.jobApps[app.ID] = *app
	return nil
}

// GetByID implements store.JobApplicationStore.
func (s *JobApplicationStore) GetByID(_ context.Context, id uuid.UUID) (*domain.JobApplication, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if err := s.db.failure("JobApplicationStore.GetByID"); err != nil {
		return nil, err
	}
	app, ok := s.db.data.jobApps[id]
	if !ok {
		return nil, store.ErrJobApplicationNotFound
	}
	return &app, nil
}

// List implements store.JobApplicationStore.
func (s *JobApplicationStore) List(
	_ context.Context,
	f store.JobApplicationFilter,
) ([]*domain.JobApplication, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	items := lo.Filter(lo.Values(s.db.data.jobApps), func(app domain.JobApplication, _ int) bool {
		return (f.ProfessionalID == uuid.Nil || app.ProfessionalID == f.ProfessionalID) &&
			(f.CategoryID == uuid.Nil || app.CategoryID == f.CategoryID) &&
			(f.Status == "" || app.Status == f.Status)
	})
	newestFirst(items, func(app domain.JobApplication) time.Time { return app.CreatedAt })
	return ptrs(paginate(items, f.Page)), nil
}

// UpdateStatus implements store.JobApplicationStore.
func (s *JobApplicationStore) UpdateStatus(
	_ context.Context,
	id uuid.UUID,
	status domain.JobApplicationStatus,
) error {
	defer s.db.exclusive(s.inTx)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("JobApplicationStore.UpdateStatus"); err != nil {
		return err
	}
	app, ok := s.db.data.jobApps[id]
	if !ok {
		return store.ErrJobApplicationNotFound
	}
	app.Status = status
	app.UpdatedAt = time.Now().UTC()
	s.db.data.jobApps[id] = app
	return nil
}

// WithTx implements store.JobApplicationStore.
func (s *JobApplicationStore) WithTx(*sql.Tx) store.JobApplicationStore {
	return &JobApplicationStore{db: s.db, inTx: true}
}
