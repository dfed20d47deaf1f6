package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/store"
	"github.com/samber/lo"
)

// JobSkillStore implements store.JobSkillStore on a MemoryDB.
type JobSkillStore struct {
	db *MemoryDB
}

var _ store.JobSkillStore = (*JobSkillStore)(nil)

// AddToJobAd implements store.JobSkillStore.
func (s *JobSkillStore) AddToJobAd(_ context.Context, jobAdID, skillID uuid.UUID) error {
	return s.add("JobSkillStore.AddToJobAd", func(t tables) (map[linkKey]struct{}, bool) {
		_, ok := t.jobAds[jobAdID]
		return t.jobAdSkills, ok
	}, jobAdID, skillID)
}

// RemoveFromJobAd implements store.JobSkillStore.
func (s *JobSkillStore) RemoveFromJobAd(_ context.Context, jobAdID, skillID uuid.UUID) error {
	return s.remove(func(t tables) map[linkKey]struct{} { return t.jobAdSkills }, jobAdID, skillID)
}

// ListForJobAd implements store.JobSkillStore.
func (s *JobSkillStore) ListForJobAd(_ context.Context, jobAdID uuid.UUID) ([]*domain.Skill, error) {
	return s.list(func(t tables) map[linkKey]struct{} { return t.jobAdSkills }, jobAdID), nil
}

// AddToJobApplication implements store.JobSkillStore.
func (s *JobSkillStore) AddToJobApplication(_ context.Context, jobApplicationID, skillID uuid.UUID) error {
	return s.add("JobSkillStore.AddToJobApplication", func(t tables) (map[linkKey]struct{}, bool) {
		_, ok := t.jobApps[jobApplicationID]
		return t.jobAppSkills, ok
	}, jobApplicationID, skillID)
}

// RemoveFromJobApplication implements store.JobSkillStore.
func (s *JobSkillStore) RemoveFromJobApplication(_ context.Context, jobApplicationID, skillID uuid.UUID) error {
	return s.remove(func(t tables) map[linkKey]struct{} { return t.jobAppSkills }, jobApplicationID, skillID)
}

// ListForJobApplication implements store.JobSkillStore.
func (s *JobSkillStore) ListForJobApplication(
	_ context.Context,
	jobApplicationID uuid.UUID,
) ([]*domain.Skill, error) {
	return s.list(func(t tables) map[linkKey]struct{} { return t.jobAppSkills }, jobApplicationID), nil
}

func (s *JobSkillStore) add(
	op string,
	links func(tables) (map[linkKey]struct{}, bool),
	ownerID, skillID uuid.UUID,
) error {
	defer s.db.exclusive(false)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure(op); err != nil {
		return err
	}
	table, ownerExists := links(s.db.data)
	if _, ok := s.db.data.skills[skillID]; !ok || !ownerExists {
		return store.ErrInvalidEntity
	}
	key := linkKey{ownerID: ownerID, targetID: skillID}
	if _, ok := table[key]; ok {
		return store.ErrLinkExists
	}
	table[key] = struct{}{}
	return nil
}

func (s *JobSkillStore) remove(links func(tables) map[linkKey]struct{}, ownerID, skillID uuid.UUID) error {
	defer s.db.exclusive(false)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	table := links(s.db.data)
	key := linkKey{ownerID: ownerID, targetID: skillID}
	if _, ok := table[key]; !ok {
		return store.ErrLinkNotFound
	}
	delete(table, key)
	return nil
}

func (s *JobSkillStore) list(links func(tables) map[linkKey]struct{}, ownerID uuid.UUID) []*domain.Skill {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	items := lo.FilterMap(lo.Keys(links(s.db.data)), func(key linkKey, _ int) (domain.Skill, bool) {
		if key.ownerID != ownerID {
			return domain.Skill{}, false
		}
		sk, ok := s.db.data.skills[key.targetID]
		return sk, ok
	})
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return ptrs(items)
}

// RequirementStore implements store.RequirementStore on a MemoryDB.
type RequirementStore struct {
	db *MemoryDB
}

var _ store.RequirementStore = (*RequirementStore)(nil)

// Create implements store.RequirementStore.
func (s *RequirementStore) Create(_ context.Context, r *domain.Requirement) error {
	if err := r.Validate(); err != nil {
		return err
	}
	defer s.db.exclusive(false)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if err := s.db.failure("RequirementStore.Create"); err != nil {
		return err
	}
	if _, ok := s.db.data.companies[r.CompanyID]; !ok {
		return store.ErrInvalidEntity
	}
	if lo.SomeBy(lo.Values(s.db.data.requirements), func(existing domain.Requirement) bool {
		return existing.CompanyID == r.CompanyID && existing.Description == r.Description
	}) {
		return store.ErrNameExists
	}
	s.db.data.requirements[r.ID] = *r
	return nil
}

// GetByID implements store.RequirementStore.
func (s *RequirementStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Requirement, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	r, ok := s.db.data.requirements[id]
	if !ok {
		return nil, store.ErrRequirementNotFound
	}
	return &r, nil
}

// ListByCompany implements store.RequirementStore.
func (s *RequirementStore) ListByCompany(_ context.Context, companyID uuid.UUID) ([]*domain.Requirement, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	items := lo.Filter(lo.Values(s.db.data.requirements), func(r domain.Requirement, _ int) bool {
		return r.CompanyID == companyID
	})
	return byDescription(items), nil
}

// AttachToJobAd implements store.RequirementStore.
func (s *RequirementStore) AttachToJobAd(_ context.Context, jobAdID, requirementID uuid.UUID) error {
	defer s.db.exclusive(false)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	_, ad := s.db.data.jobAds[jobAdID]
	_, req := s.db.data.requirements[requirementID]
	if !ad || !req {
		return store.ErrInvalidEntity
	}
	key := linkKey{ownerID: jobAdID, targetID: requirementID}
	if _, ok := s.db.data.jobAdReqs[key]; ok {
		return store.ErrLinkExists
	}
	s.db.data.jobAdReqs[key] = struct{}{}
	return nil
}

// DetachFromJobAd implements store.RequirementStore.
func (s *RequirementStore) DetachFromJobAd(_ context.Context, jobAdID, requirementID uuid.UUID) error {
	defer s.db.exclusive(false)()
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	key := linkKey{ownerID: jobAdID, targetID: requirementID}
	if _, ok := s.db.data.jobAdReqs[key]; !ok {
		return store.ErrLinkNotFound
	}
	delete(s.db.data.jobAdReqs, key)
	return nil
}

// ListByJobAd implements store.RequirementStore.
func (s *RequirementStore) ListByJobAd(_ context.Context, jobAdID uuid.UUID) ([]*domain.Requirement, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	items := lo.FilterMap(lo.Keys(s.db.data.jobAdReqs), func(key linkKey, _ int) (domain.Requirement, bool) {
		if key.ownerID != jobAdID {
			return domain.Requirement{}, false
		}
		r, ok := s.db.data.requirements[key.targetID]
		return r, ok
	})
	return byDescription(items), nil
}

func byDescription(items []domain.Requirement) []*domain.Requirement {
	sort.Slice(items, func(i, j int) bool { return items[i].Description < items[j].Description })
	return ptrs(items)
}
