package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/jobmatch-api/internal/domain"
	"github.com/phrazzld/jobmatch-api/internal/mocks"
	"github.com/phrazzld/jobmatch-api/internal/service"
	"github.com/phrazzld/jobmatch-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *mocks.MemoryDB
	guards   *service.Guards
	accounts *service.AccountService
	jobs     *service.JobService
	catalog  *service.CatalogService
	quals    *service.QualificationService
	city     domain.City
	category domain.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := mocks.NewMemoryDB()
	guards := service.NewGuards(service.GuardStores{
		Professionals:   db.Professionals(),
		Companies:       db.Companies(),
		JobAds:          db.JobAds(),
		JobApplications: db.JobApplications(),
		Catalog:         db.Catalog(),
	}, nil)
	return &fixture{
		db:       db,
		guards:   guards,
		accounts: service.NewAccountService(db.Professionals(), db.Companies(), guards, &mocks.PlainPasswords{}, nil),
		jobs:     service.NewJobService(db.JobAds(), db.JobApplications(), guards, nil),
		catalog:  service.NewCatalogService(db.Catalog(), guards, nil),
		quals:    service.NewQualificationService(db.JobSkills(), db.Requirements(), guards, nil),
		city:     db.AddCity("Sofia"),
		category: db.AddCategory("Engineering"),
	}
}

func (f *fixture) professional(t *testing.T, username string) *domain.Professional {
	t.Helper()
	p, err := f.accounts.RegisterProfessional(context.Background(), service.RegisterProfessionalInput{
		Username:  username,
		Password:  "password1",
		Email:     username + "@example.com",
		FirstName: "Ivan",
		LastName:  "Petrov",
		CityID:    f.city.ID,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) company(t *testing.T, username, phone string) *domain.Company {
	t.Helper()
	c, err := f.accounts.RegisterCompany(context.Background(), service.RegisterCompanyInput{
		Username:    username,
		Password:    "password1",
		Name:        "Acme",
		Email:       username + "@acme.test",
		PhoneNumber: phone,
		CityID:      f.city.ID,
	})
	require.NoError(t, err)
	return c
}

func requireKind(t *testing.T, err error, kind domain.ErrorKind, detail string) {
	t.Helper()
	var de *domain.Error
	require.True(t, errors.As(err, &de), "expected *domain.Error, got %T: %v", err, err)
	assert.Equal(t, kind, de.Kind, de.Detail)
	if detail != "" {
		assert.Equal(t, detail, de.Detail)
	}
}

func TestGuards(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	c := f.company(t, "acme", "+359888000001")
	other := f.company(t, "globex", "+359888000002")
	p := f.professional(t, "ivan")

	ad, err := f.jobs.CreateJobAd(ctx, c.ID, service.JobAdInput{
		CategoryID: f.category.ID, CityID: f.city.ID, Title: "Go developer",
	})
	require.NoError(t, err)
	app, err := f.jobs.CreateJobApplication(ctx, p.ID, service.JobApplicationInput{
		CategoryID: f.category.ID, CityID: f.city.ID, Name: "Backend",
	})
	require.NoError(t, err)
	missing := uuid.New()

	t.Run("job ad owned", func(t *testing.T) {
		t.Parallel()
		got, err := f.guards.EnsureJobAd(ctx, ad.ID, &c.ID)
		require.NoError(t, err)
		assert.Equal(t, ad.ID, got.ID)
	})

	t.Run("job ad not owned", func(t *testing.T) {
		t.Parallel()
		_, err := f.guards.EnsureJobAd(ctx, ad.ID, &other.ID)
		requireKind(t, err, domain.KindBadRequest,
			"Job Ad with id "+ad.ID.String()+" does not belong to company with id "+other.ID.String())
	})

	t.Run("job ad missing", func(t *testing.T) {
		t.Parallel()
		_, err := f.guards.EnsureJobAd(ctx, missing, nil)
		requireKind(t, err, domain.KindNotFound, "Job Ad with id "+missing.String()+" not found")
	})

	t.Run("job application not owned", func(t *testing.T) {
		t.Parallel()
		stranger := uuid.New()
		_, err := f.guards.EnsureJobApplication(ctx, app.ID, &stranger)
		requireKind(t, err, domain.KindBadRequest,
			"Job Application with id "+app.ID.String()+" does not belong to professional with id "+stranger.String())
	})

	t.Run("job application missing", func(t *testing.T) {
		t.Parallel()
		_, err := f.guards.EnsureJobApplication(ctx, missing, nil)
		requireKind(t, err, domain.KindNotFound, "Job Application with id "+missing.String()+" not found")
	})

	t.Run("principals", func(t *testing.T) {
		t.Parallel()
		_, err := f.guards.EnsureProfessional(ctx, missing)
		requireKind(t, err, domain.KindNotFound, "Professional with id "+missing.String()+" not found")
		_, err = f.guards.EnsureCompany(ctx, missing)
		requireKind(t, err, domain.KindNotFound, "Company with id "+missing.String()+" not found")
		_, err = f.guards.EnsureCity(ctx, missing)
		requireKind(t, err, domain.KindNotFound, "City with id "+missing.String()+" not found")
	})
}

func TestGuards_StoreFailureIsInternal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.db.FailOn("JobAdStore.GetByID", errors.New("connection reset"))

	_, err := f.guards.EnsureJobAd(context.Background(), uuid.New(), nil)
	requireKind(t, err, domain.KindInternal, service.MsgUnexpected)
}

func TestAccountService_Register(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	f.professional(t, "ivan")
	f.company(t, "acme", "+359888000001")

	tests := []struct {
		name   string
		run    func() error
		kind   domain.ErrorKind
		detail string
	}{
		{
			name: "username taken by a company",
			run: func() error {
				_, err := f.accounts.RegisterProfessional(ctx, service.RegisterProfessionalInput{
					Username: "acme", Password: "password1", Email: "new@example.com",
					FirstName: "A", LastName: "B", CityID: f.city.ID,
				})
				return err
			},
			kind:   domain.KindConflict,
			detail: "User with username acme already exists",
		},
		{
			name: "username taken by a professional",
			run: func() error {
				_, err := f.accounts.RegisterCompany(ctx, service.RegisterCompanyInput{
					Username: "ivan", Password: "password1", Name: "Ivan Ltd", Email: "ltd@example.com",
					PhoneNumber: "+359888000009", CityID: f.city.ID,
				})
				return err
			},
			kind:   domain.KindConflict,
			detail: "User with username ivan already exists",
		},
		{
			name: "email taken",
			run: func() error {
				_, err := f.accounts.RegisterProfessional(ctx, service.RegisterProfessionalInput{
					Username: "petar", Password: "password1", Email: "ivan@example.com",
					FirstName: "A", LastName: "B", CityID: f.city.ID,
				})
				return err
			},
			kind:   domain.KindConflict,
			detail: "Professional with email ivan@example.com already exists",
		},
		{
			name: "phone taken",
			run: func() error {
				_, err := f.accounts.RegisterCompany(ctx, service.RegisterCompanyInput{
					Username: "globex", Password: "password1", Name: "Globex", Email: "hr@globex.test",
					PhoneNumber: "+359888000001", CityID: f.city.ID,
				})
				return err
			},
			kind:   domain.KindConflict,
			detail: "Company with phone number +359888000001 already exists",
		},
		{
			name: "unknown city",
			run: func() error {
				_, err := f.accounts.RegisterProfessional(ctx, service.RegisterProfessionalInput{
					Username: "nikola", Password: "password1", Email: "n@example.com",
					FirstName: "A", LastName: "B", CityID: uuid.New(),
				})
				return err
			},
			kind: domain.KindNotFound,
		},
		{
			name: "short password",
			run: func() error {
				_, err := f.accounts.RegisterProfessional(ctx, service.RegisterProfessionalInput{
					Username: "nikola", Password: "short", Email: "n@example.com",
					FirstName: "A", LastName: "B", CityID: f.city.ID,
				})
				return err
			},
			kind: domain.KindBadRequest,
		},
		{
			name: "invalid email",
			run: func() error {
				_, err := f.accounts.RegisterProfessional(ctx, service.RegisterProfessionalInput{
					Username: "nikola", Password: "password1", Email: "not-an-email",
					FirstName: "A", LastName: "B", CityID: f.city.ID,
				})
				return err
			},
			kind: domain.KindBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			requireKind(t, tc.run(), tc.kind, tc.detail)
		})
	}
}

func TestAccountService_StoresHashedPassword(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	p := f.professional(t, "ivan")

	stored, err := f.db.Professionals().GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:password1", stored.PasswordHash)
}

func TestAccountService_List(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.professional(t, "ivan")
	f.professional(t, "petar")

	got, err := f.accounts.ListProfessionals(context.Background(), store.Page{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	companies, err := f.accounts.ListCompanies(context.Background(), store.Page{})
	require.NoError(t, err)
	assert.NotNil(t, companies)
	assert.Empty(t, companies)
}

func TestJobService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	c := f.company(t, "acme", "+359888000001")
	p := f.professional(t, "ivan")

	ad, err := f.jobs.CreateJobAd(ctx, c.ID, service.JobAdInput{
		CategoryID: f.category.ID, CityID: f.city.ID, Title: "Go developer",
		Salary: domain.SalaryRange{Min: 2000, Max: 4000},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.JobAdStatusActive, ad.Status)

	_, err = f.jobs.CreateJobAd(ctx, c.ID, service.JobAdInput{
		CategoryID: f.category.ID, CityID: f.city.ID, Title: "Bad salary",
		Salary: domain.SalaryRange{Min: 5000, Max: 100},
	})
	requireKind(t, err, domain.KindBadRequest, "")

	_, err = f.jobs.CreateJobAd(ctx, c.ID, service.JobAdInput{CategoryID: uuid.New(), CityID: f.city.ID, Title: "x"})
	requireKind(t, err, domain.KindNotFound, "")

	app, err := f.jobs.CreateJobApplication(ctx, p.ID, service.JobApplicationInput{
		CategoryID: f.category.ID, CityID: f.city.ID, Name: "Backend", IsMain: true,
	})
	require.NoError(t, err)

	t.Run("archived ads drop out of the public listing", func(t *testing.T) {
		_, err := f.jobs.UpdateJobAdStatus(ctx, c.ID, ad.ID, domain.JobAdStatusArchived)
		require.NoError(t, err)

		active, err := f.jobs.ListJobAds(ctx, uuid.Nil, store.Page{})
		require.NoError(t, err)
		assert.Empty(t, active)

		own, err := f.jobs.ListCompanyJobAds(ctx, c.ID, store.Page{})
		require.NoError(t, err)
		assert.Len(t, own, 1)
	})

	t.Run("matched cannot be set manually", func(t *testing.T) {
		_, err := f.jobs.UpdateJobApplicationStatus(ctx, p.ID, app.ID, domain.JobApplicationStatusMatched)
		requireKind(t, err, domain.KindForbidden, "")
	})

	t.Run("owner changes application visibility", func(t *testing.T) {
		got, err := f.jobs.UpdateJobApplicationStatus(ctx, p.ID, app.ID, domain.JobApplicationStatusHidden)
		require.NoError(t, err)
		assert.Equal(t, domain.JobApplicationStatusHidden, got.Status)

		visible, err := f.jobs.ListJobApplications(ctx, f.category.ID, store.Page{})
		require.NoError(t, err)
		assert.Empty(t, visible)
	})

	t.Run("non-owner cannot change status", func(t *testing.T) {
		_, err := f.jobs.UpdateJobAdStatus(ctx, uuid.New(), ad.ID, domain.JobAdStatusActive)
		requireKind(t, err, domain.KindBadRequest, "")
		_, err = f.jobs.UpdateJobAdStatus(ctx, c.ID, ad.ID, "paused")
		requireKind(t, err, domain.KindBadRequest, "")
	})
}

func TestJobService_UpdateJobAd(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	c := f.company(t, "acme", "+359888000001")
	other := f.company(t, "globex", "+359888000002")

	ad, err := f.jobs.CreateJobAd(ctx, c.ID, service.JobAdInput{
		CategoryID: f.category.ID, CityID: f.city.ID, Title: "Go developer", Description: "Payments",
		Salary: domain.SalaryRange{Min: 2000, Max: 4000},
	})
	require.NoError(t, err)
	design := f.db.AddCategory("Design")
	title := "  Staff Go developer "
	maxSalary := 6000

	got, err := f.jobs.UpdateJobAd(ctx, c.ID, ad.ID, service.JobAdUpdate{
		CategoryID: &design.ID, Title: &title, MaxSalary: &maxSalary,
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff Go developer", got.Title)
	assert.Equal(t, design.ID, got.CategoryID)
	assert.Equal(t, domain.SalaryRange{Min: 2000, Max: 6000}, got.SalaryRange)
	assert.Equal(t, "Payments", got.Description, "fields left nil keep their value")

	stored, err := f.jobs.GetJobAd(ctx, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Title, stored.Title)
	assert.Equal(t, 6000, stored.Max)

	lowMax := 100
	missingCity := uuid.New()
	paused := domain.JobAdStatus("paused")
	tests := []struct {
		name      string
		companyID uuid.UUID
		in        service.JobAdUpdate
		kind      domain.ErrorKind
	}{
		{"not the owner", other.ID, service.JobAdUpdate{Title: &title}, domain.KindBadRequest},
		{"salary below minimum", c.ID, service.JobAdUpdate{MaxSalary: &lowMax}, domain.KindBadRequest},
		{"unknown city", c.ID, service.JobAdUpdate{CityID: &missingCity}, domain.KindNotFound},
		{"unknown status", c.ID, service.JobAdUpdate{Status: &paused}, domain.KindBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.jobs.UpdateJobAd(ctx, tt.companyID, ad.ID, tt.in)
			requireKind(t, err, tt.kind, "")

			unchanged, err := f.jobs.GetJobAd(ctx, ad.ID)
			require.NoError(t, err)
			assert.Equal(t, stored, unchanged)
		})
	}
}

func TestAccountService_UpdateProfessional(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	p := f.professional(t, "ivan")
	plovdiv := f.db.AddCity("Plovdiv")
	busy := domain.ProfessionalStatusBusy
	about := "Go and Postgres"

	got, err := f.accounts.UpdateProfessional(ctx, p.ID, service.ProfessionalUpdate{
		Description: &about, CityID: &plovdiv.ID, Status: &busy,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProfessionalStatusBusy, got.Status)
	assert.Equal(t, plovdiv.ID, got.CityID)
	assert.Equal(t, "Ivan", got.FirstName)

	stored, err := f.accounts.GetProfessional(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, about, stored.Description)
	assert.Equal(t, p.PasswordHash, stored.PasswordHash)

	blank := "  "
	_, err = f.accounts.UpdateProfessional(ctx, p.ID, service.ProfessionalUpdate{FirstName: &blank})
	requireKind(t, err, domain.KindBadRequest, "")

	away := domain.ProfessionalStatus("away")
	_, err = f.accounts.UpdateProfessional(ctx, p.ID, service.ProfessionalUpdate{Status: &away})
	requireKind(t, err, domain.KindBadRequest, "")

	missing := uuid.New()
	_, err = f.accounts.UpdateProfessional(ctx, missing, service.ProfessionalUpdate{Status: &busy})
	requireKind(t, err, domain.KindNotFound, "Professional with id "+missing.String()+" not found")
}

func TestQualificationService_Skills(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	c := f.company(t, "acme", "+359888000001")
	p := f.professional(t, "ivan")
	ad, err := f.jobs.CreateJobAd(ctx, c.ID, service.JobAdInput{
		CategoryID: f.category.ID, CityID: f.city.ID, Title: "Go developer",
	})
	require.NoError(t, err)
	app, err := f.jobs.CreateJobApplication(ctx, p.ID, service.JobApplicationInput{
		CategoryID: f.category.ID, CityID: f.city.ID, Name: "Backend",
	})
	require.NoError(t, err)
	goSkill, err := f.catalog.CreateSkill(ctx, f.category.ID, "Go")
	require.NoError(t, err)
	sqlSkill, err := f.catalog.CreateSkill(ctx, f.category.ID, "SQL")
	require.NoError(t, err)

	skills, err := f.quals.AddJobAdSkill(ctx, c.ID, ad.ID, sqlSkill.ID)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	skills, err = f.quals.AddJobAdSkill(ctx, c.ID, ad.ID, goSkill.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, []string{skills[0].Name, skills[1].Name})

	_, err = f.quals.AddJobAdSkill(ctx, c.ID, ad.ID, goSkill.ID)
	requireKind(t, err, domain.KindConflict,
		"Skill with id "+goSkill.ID.String()+" is already linked to Job Ad with id "+ad.ID.String())

	missing := uuid.New()
	_, err = f.quals.AddJobAdSkill(ctx, c.ID, ad.ID, missing)
	requireKind(t, err, domain.KindNotFound, "Skill with id "+missing.String()+" not found")

	_, err = f.quals.AddJobApplicationSkill(ctx, uuid.New(), app.ID, goSkill.ID)
	requireKind(t, err, domain.KindBadRequest, "")

	_, err = f.quals.AddJobApplicationSkill(ctx, p.ID, app.ID, goSkill.ID)
	require.NoError(t, err)
	require.NoError(t, f.quals.RemoveJobApplicationSkill(ctx, p.ID, app.ID, goSkill.ID))
	err = f.quals.RemoveJobApplicationSkill(ctx, p.ID, app.ID, goSkill.ID)
	requireKind(t, err, domain.KindNotFound,
		"Skill with id "+goSkill.ID.String()+" is not linked to Job Application with id "+app.ID.String())

	appSkills, err := f.quals.ListJobApplicationSkills(ctx, app.ID)
	require.NoError(t, err)
	assert.Empty(t, appSkills)

	adSkills, err := f.quals.ListJobAdSkills(ctx, ad.ID)
	require.NoError(t, err)
	assert.Len(t, adSkills, 2)
}

func TestQualificationService_Requirements(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	c := f.company(t, "acme", "+359888000001")
	other := f.company(t, "globex", "+359888000002")
	ad, err := f.jobs.CreateJobAd(ctx, c.ID, service.JobAdInput{
		CategoryID: f.category.ID, CityID: f.city.ID, Title: "Go developer",
	})
	require.NoError(t, err)

	r, err := f.quals.CreateRequirement(ctx, c.ID, "Distributed systems", domain.SkillLevelAdvanced)
	require.NoError(t, err)
	_, err = f.quals.CreateRequirement(ctx, c.ID, "Distributed systems", domain.SkillLevelBeginner)
	requireKind(t, err, domain.KindConflict, "Requirement Distributed systems already exists")

	foreign, err := f.quals.CreateRequirement(ctx, other.ID, "Distributed systems", domain.SkillLevelIntermediate)
	require.NoError(t, err, "descriptions are unique per company")

	_, err = f.quals.CreateRequirement(ctx, c.ID, "Rust", domain.SkillLevel("expert"))
	requireKind(t, err, domain.KindBadRequest, "")

	own, err := f.quals.ListCompanyRequirements(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, r.ID, own[0].ID)

	attached, err := f.quals.AttachRequirement(ctx, c.ID, ad.ID, r.ID)
	require.NoError(t, err)
	require.Len(t, attached, 1)
	assert.Equal(t, domain.SkillLevelAdvanced, attached[0].SkillLevel)

	_, err = f.quals.AttachRequirement(ctx, c.ID, ad.ID, r.ID)
	requireKind(t, err, domain.KindConflict, "")

	_, err = f.quals.AttachRequirement(ctx, c.ID, ad.ID, foreign.ID)
	requireKind(t, err, domain.KindBadRequest,
		"Requirement with id "+foreign.ID.String()+" does not belong to company with id "+c.ID.String())

	missing := uuid.New()
	_, err = f.quals.AttachRequirement(ctx, c.ID, ad.ID, missing)
	requireKind(t, err, domain.KindNotFound, "Requirement with id "+missing.String()+" not found")

	require.NoError(t, f.quals.DetachRequirement(ctx, c.ID, ad.ID, r.ID))
	listed, err := f.quals.ListJobAdRequirements(ctx, ad.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCatalogService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.catalog.CreateCategory(ctx, "Engineering", "")
	requireKind(t, err, domain.KindConflict, "Category with title Engineering already exists")

	sk, err := f.catalog.CreateSkill(ctx, f.category.ID, "Go")
	require.NoError(t, err)
	_, err = f.catalog.CreateSkill(ctx, f.category.ID, "Go")
	requireKind(t, err, domain.KindConflict, "")

	skills, err := f.catalog.ListSkills(ctx, &f.category.ID)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, sk.ID, skills[0].ID)

	missing := uuid.New()
	_, err = f.catalog.ListSkills(ctx, &missing)
	requireKind(t, err, domain.KindNotFound, "Category with id "+missing.String()+" not found")

	cities, err := f.catalog.ListCities(ctx)
	require.NoError(t, err)
	assert.Len(t, cities, 1)
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		kind domain.ErrorKind
	}{
		{name: "not found", err: store.ErrJobAdNotFound, kind: domain.KindNotFound},
		{name: "duplicate", err: store.ErrEmailExists, kind: domain.KindConflict},
		{name: "invalid reference", err: store.ErrInvalidEntity, kind: domain.KindBadRequest},
		{name: "domain error passes through", err: domain.Forbidden("nope"), kind: domain.KindForbidden},
		{name: "unknown", err: errors.New("boom"), kind: domain.KindInternal},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.kind, domain.KindOf(service.Translate(nil, tc.err, "missing")))
		})
	}
	assert.NoError(t, service.Translate(nil, nil, ""))
}
