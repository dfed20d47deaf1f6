package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/store"
	"github.com/samber/lo"
)

type matchKey struct {
	jobAdID          uuid.UUID
	jobApplicationID uuid.UUID
}

// linkKey identifies a row of a join table.
type linkKey struct {
	ownerID  uuid.UUID
	targetID uuid.UUID
}

type tables struct {
	professionals map[uuid.UUID]domain.Professional
	companies     map[uuid.UUID]domain.Company
	jobAds        map[uuid.UUID]domain.JobAd
	jobApps       map[uuid.UUID]domain.JobApplication
	matches       map[matchKey]domain.Match
	categories    map[uuid.UUID]domain.Category
	skills        map[uuid.UUID]domain.Skill
	cities        map[uuid.UUID]domain.City
	requirements  map[uuid.UUID]domain.Requirement
	jobAdSkills   map[linkKey]struct{}
	jobAppSkills  map[linkKey]struct{}
	jobAdReqs     map[linkKey]struct{}
}

func newTables() tables {
	return tables{
		professionals: map[uuid.UUID]domain.Professional{},
		companies:     map[uuid.UUID]domain.Company{},
		jobAds:        map[uuid.UUID]domain.JobAd{},
		jobApps:       map[uuid.UUID]domain.JobApplication{},
		matches:       map[matchKey]domain.Match{},
		categories:    map[uuid.UUID]domain.Category{},
		skills:        map[uuid.UUID]domain.Skill{},
		cities:        map[uuid.UUID]domain.City{},
		requirements:  map[uuid.UUID]domain.Requirement{},
		jobAdSkills:   map[linkKey]struct{}{},
		jobAppSkills:  map[linkKey]struct{}{},
		jobAdReqs:     map[linkKey]struct{}{},
	}
}

func (t tables) clone() tables {
	return tables{
		professionals: cloneMap(t.professionals),
		companies:     cloneMap(t.companies),
		jobAds:        cloneMap(t.jobAds),
		jobApps:       cloneMap(t.jobApps),
		matches:       cloneMap(t.matches),
		categories:    cloneMap(t.categories),
		skills:        cloneMap(t.skills),
		cities:        cloneMap(t.cities),
		requirements:  cloneMap(t.requirements),
		jobAdSkills:   cloneMap(t.jobAdSkills),
		jobAppSkills:  cloneMap(t.jobAppSkills),
		jobAdReqs:     cloneMap(t.jobAdReqs),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MemoryDB is an in-memory, goroutine-safe stand-in for the PostgreSQL
// stores. It enforces the same unique keys and foreign keys as the schema and
// implements store.TxRunner: a transaction that returns an error rolls every
// table back to its state when the transaction began.
type MemoryDB struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data tables

	failures map[string]error
}

var _ store.TxRunner = (*MemoryDB)(nil)

// NewMemoryDB returns an empty MemoryDB.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{data: newTables(), failures: map[string]error{}}
}

// FailOn makes the named operation (for example "MatchStore.UpdateStatus")
// return err until cleared with a nil err.
func (db *MemoryDB) FailOn(op string, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if err == nil {
		delete(db.failures, op)
		return
	}
	db.failures[op] = err
}

// failure must be called with db.mu held.
func (db *MemoryDB) failure(op string) error {
	return db.failures[op]
}

// RunInTx implements store.TxRunner. Transactions are serialized.
func (db *MemoryDB) RunInTx(ctx context.Context, fn store.TxFn) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.RLock()
	snapshot := db.data.clone()
	db.mu.RUnlock()

	if err := fn(ctx, nil); err != nil {
		db.mu.Lock()
		db.data = snapshot
		db.mu.Unlock()
		return err
	}
	return nil
}

// exclusive serializes a write made outside RunInTx with running
// transactions so that a rollback cannot discard it. Views returned by WithTx
// pass inTx and skip the lock.
func (db *MemoryDB) exclusive(inTx bool) func() {
	if inTx {
		return func() {}
	}
	db.txMu.Lock()
	return db.txMu.Unlock
}

// Professionals returns a store.ProfessionalStore view.
func (db *MemoryDB) Professionals() *ProfessionalStore { return &ProfessionalStore{db: db} }

// Companies returns a store.CompanyStore view.
func (db *MemoryDB) Companies() *CompanyStore { return &CompanyStore{db: db} }

// JobAds returns a store.JobAdStore view.
func (db *MemoryDB) JobAds() *JobAdStore { return &JobAdStore{db: db} }

// JobApplications returns a store.JobApplicationStore view.
func (db *MemoryDB) JobApplications() *JobApplicationStore { return &JobApplicationStore{db: db} }

// Matches returns a store.MatchStore view.
func (db *MemoryDB) Matches() *MatchStore { return &MatchStore{db: db} }

// Catalog returns a store.CatalogStore view.
func (db *MemoryDB) Catalog() *CatalogStore { return &CatalogStore{db: db} }

// JobSkills returns a store.JobSkillStore view.
func (db *MemoryDB) JobSkills() *JobSkillStore { return &JobSkillStore{db: db} }

// Requirements returns a store.RequirementStore view.
func (db *MemoryDB) Requirements() *RequirementStore { return &RequirementStore{db: db} }

// AddCity inserts a city and returns it.
func (db *MemoryDB) AddCity(name string) domain.City {
	db.mu.Lock()
	defer db.mu.Unlock()
	c := domain.City{ID: uuid.New(), Name: name}
	db.data.cities[c.ID] = c
	return c
}

// AddCategory inserts a category and returns it.
func (db *MemoryDB) AddCategory(title string) domain.Category {
	db.mu.Lock()
	defer db.mu.Unlock()
	c := domain.Category{ID: uuid.New(), Title: title}
	db.data.categories[c.ID] = c
	return c
}

func paginate[T any](items []T, page store.Page) []T {
	page = page.Normalize()
	if page.Offset >= len(items) {
		return []T{}
	}
	end := page.Offset + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[page.Offset:end]
}

func newestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}

func ptrs[T any](items []T) []*T {
	return lo.Map(items, func(item T, _ int) *T { return &item })
}
