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

// ProfessionalStore implements store.ProfessionalStore on a MemoryDB.
type ProfessionalStore struct {
	db   *MemoryDB
	inTx bool
}

var _ store.ProfessionalStore = (*ProfessionalStore)(nil)

// Create implements store.ProfessionalStore.
func (s *ProfessionalStore) Create(_ context.Context, p *domain.Professional) error {
	if err := p.Validate(); err != nil {
		return err
	}
	defer s.db.exclusive(s.inTx)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("ProfessionalStore.Create"); err != nil {
		return err
	}
	if _, ok := s.db.data.cities[p.CityID]; !ok {
		return store.ErrInvalidEntity
	}
	for _, existing := range s.db.data.professionals {
		if existing.Username == p.Username {
			return store.ErrUsernameExists
		}
		if existing.Email == p.Email {
			return store.ErrEmailExists
		}
	}
	s.db.data.professionals[p.ID] = *p
	return nil
}

// GetByID implements store.ProfessionalStore.
func (s *ProfessionalStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Professional, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if err := s.db.failure("ProfessionalStore.GetByID"); err != nil {
		return nil, err
	}
	p, ok := s.db.data.professionals[id]
	if !ok {
		return nil, store.ErrProfessionalNotFound
	}
	return &p, nil
}

// GetByUsername implements store.ProfessionalStore.
func (s *ProfessionalStore) GetByUsername(_ context.Context, username string) (*domain.Professional, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if err := s.db.failure("ProfessionalStore.GetByUsername"); err != nil {
		return nil, err
	}
	p, ok := lo.Find(lo.Values(s.db.data.professionals), func(p domain.Professional) bool {
		return p.Username == username
	})
	if !ok {
		return nil, store.ErrProfessionalNotFound
	}
	return &p, nil
}

// EmailExists implements store.ProfessionalStore.
func (s *ProfessionalStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return lo.SomeBy(lo.Values(s.db.data.professionals), func(p domain.Professional) bool {
		return p.Email == email
	}), nil
}

// List implements store.ProfessionalStore.
func (s *ProfessionalStore) List(_ context.Context, page store.Page) ([]*domain.Professional, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	items := lo.Values(s.db.data.professionals)
	newestFirst(items, func(p domain.Professional) time.Time { return p.CreatedAt })
	return ptrs(paginate(items, page)), nil
}

// Update implements store.ProfessionalStore.
func (s *ProfessionalStore) Update(_ context.Context, p *domain.Professional) error {
	if err := p.Validate(); err != nil {
		return err
	}
	defer s.db.exclusive(s.inTx)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("ProfessionalStore.Update"); err != nil {
		return err
	}
	existing, ok := s.db.data.professionals[p.ID]
	if !ok {
		return store.ErrProfessionalNotFound
	}
	if _, ok := s.db.data.cities[p.CityID]; !ok {
		return store.ErrInvalidEntity
	}
	existing.FirstName = p.FirstName
	existing.LastName = p.LastName
	existing.Description = p.Description
	existing.CityID = p.CityID
	existing.Status = p.Status
	existing.UpdatedAt = p.UpdatedAt
	s.db.data.professionals[p.ID] = existing
	return nil
}

// WithTx implements store.ProfessionalStore.
func (s *ProfessionalStore) WithTx(*sql.Tx) store.ProfessionalStore {
	return &ProfessionalStore{db: s.db, inTx: true}
}

// CompanyStore implements store.CompanyStore on a MemoryDB.
type CompanyStore struct {
	db   *MemoryDB
	inTx bool
}

var _ store.CompanyStore = (*CompanyStore)(nil)

// Create implements store.CompanyStore.
func (s *CompanyStore) Create(_ context.Context, c *domain.Company) error {
	if err := c.Validate(); err != nil {
		return err
	}
	defer s.db.exclusive(s.inTx)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("CompanyStore.Create"); err != nil {
		return err
	}
	if _, ok := s.db.data.cities[c.CityID]; !ok {
		return store.ErrInvalidEntity
	}
	for _, existing := range s.db.data.companies {
		switch {
		case existing.Username == c.Username:
			return store.ErrUsernameExists
		case existing.Email == c.Email:
			return store.ErrEmailExists
		case existing.PhoneNumber == c.PhoneNumber:
			return store.ErrPhoneExists
		}
	}
	s.db.data.companies[c.ID] = *c
	return nil
}

// GetByID implements store.CompanyStore.
func (s *CompanyStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Company, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	if err := s.db.failure("CompanyStore.GetByID"); err != nil {
		return nil, err
	}
	c, ok := s.db.data.companies[id]
	if !ok {
		return nil, store.ErrCompanyNotFound
	}
	return &c, nil
}

// GetByUsername implements store.CompanyStore.
func (s *CompanyStore) GetByUsername(_ context.Context, username string) (*domain.Company, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	c, ok := lo.Find(lo.Values(s.db.data.companies), func(c domain.Company) bool {
		return c.Username == username
	})
	if !ok {
		return nil, store.ErrCompanyNotFound
	}
	return &c, nil
}

// EmailExists implements store.CompanyStore.
func (s *CompanyStore) EmailExists(_ context.Context, email string) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	return lo.SomeBy(lo.Values(s.db.data.companies), func(c domain.Company) bool {
		return c.Email == email
	}), nil
}

// List implements store.CompanyStore.
func (s *CompanyStore) List(_ context.Context, page store.Page) ([]*domain.Company, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	items := lo.Values(s.db.data.companies)
	newestFirst(items, func(c domain.Company) time.Time { return c.CreatedAt })
	return ptrs(paginate(items, page)), nil
}

// IncrementSuccessfulMatches implements store.CompanyStore.
func (s *CompanyStore) IncrementSuccessfulMatches(_ context.Context, id uuid.UUID) error {
	defer s.db.exclusive(s.inTx)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("CompanyStore.IncrementSuccessfulMatches"); err != nil {
		return err
	}
	c, ok := s.db.data.companies[id]
	if !ok {
		return store.ErrCompanyNotFound
	}
	c.SuccessfulMatchesCount++
	c.UpdatedAt = time.Now().UTC()
	s.db.data.companies[id] = c
	return nil
}

// WithTx implements store.CompanyStore.
func (s *CompanyStore) WithTx(*sql.Tx) store.CompanyStore { return &CompanyStore{db: s.db, inTx: true} }
