package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"github.com/LexovateAyacucho/qhoar-web/internal/domain/entities"
	domainerrors "github.com/LexovateAyacucho/qhoar-web/internal/domain/errors"
)

func seedBusiness(t *testing.T, repo *BusinessRepository, ownerID uuid.UUID, name string, status entities.BusinessStatus, premium bool, createdAt time.Time) *entities.Business {
	t.Helper()
	b := &entities.Business{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Name:         name,
		RUC:          "20123456789",
		WhatsApp:     "+51 966 123 456",
		Status:       status,
		IsPremium:    premium,
		DesignConfig: entities.DefaultDesignConfig(),
		CreatedAt:    createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func TestBusinessRepository_CreateGetWithOwner(t *testing.T) {
	db := newTestDB(t)
	createBusinessTables(t, db)
	profiles := NewProfileRepository(db)
	repo := NewBusinessRepository(db)
	ctx := context.Background()

	owner := &entities.Profile{ID: uuid.New(), Role: entities.RoleBusinessOwner, FullName: "Rosa Huaman"}
	require.NoError(t, profiles.Create(ctx, owner))

	b := &entities.Business{
		ID:            uuid.New(),
		OwnerID:       owner.ID,
		Name:          "Panaderia Wari",
		WhatsApp:      "966123456",
		Latitude:      null.Float64From(-13.16),
		Longitude:     null.Float64From(-74.22),
		Status:        entities.BusinessStatusPending,
		SubcategoryID: null.Int64From(4),
		SocialLinks:   entities.SocialLinks{Instagram: "@wari"},
	}
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, "Panaderia Wari", got.Name)
	require.Equal(t, "966123456", got.WhatsApp)
	require.True(t, got.HasCoordinates())
	require.Equal(t, int64(4), got.SubcategoryID.Int64)
	require.Equal(t, "@wari", got.SocialLinks.Instagram)
	require.Equal(t, entities.LayoutStandard, got.DesignConfig.LayoutVariant, "empty stored config gets defaults")
	require.NotNil(t, got.Owner)
	require.Equal(t, "Rosa Huaman", got.Owner.FullName)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestBusinessRepository_ListFiltersAndCounts(t *testing.T) {
	db := newTestDB(t)
	createBusinessTables(t, db)
	repo := NewBusinessRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()
	base := time.Now().Add(-time.Hour)
	seedBusiness(t, repo, owner, "Cafe Huamanga", entities.BusinessStatusPending, false, base)
	seedBusiness(t, repo, owner, "Hotel Plaza", entities.BusinessStatusActive, true, base.Add(time.Minute))
	seedBusiness(t, repo, other, "Ferreteria Sol", entities.BusinessStatusPending, false, base.Add(2*time.Minute))

	all, err := repo.List(ctx, entities.BusinessFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Ferreteria Sol", all[0].Name, "newest first")

	pending, err := repo.List(ctx, entities.BusinessFilter{Status: entities.BusinessStatusPending, Limit: 1})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "Ferreteria Sol", pending[0].Name)

	search, err := repo.List(ctx, entities.BusinessFilter{Search: "huamanga"})
	require.NoError(t, err)
	require.Len(t, search, 1)

	mine, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	ok, err := repo.HasPremiumByOwner(ctx, owner)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.HasPremiumByOwner(ctx, other)
	require.NoError(t, err)
	require.False(t, ok)

	n, err := repo.CountByStatus(ctx, entities.BusinessStatusPending)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	n, err = repo.CountPremium(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestBusinessRepository_Mutations(t *testing.T) {
	db := newTestDB(t)
	createBusinessTables(t, db)
	repo := NewBusinessRepository(db)
	ctx := context.Background()

	b := seedBusiness(t, repo, uuid.New(), "Cafe", entities.BusinessStatusPending, false, time.Now())

	require.NoError(t, repo.UpdateStatus(ctx, b.ID, entities.BusinessStatusActive))
	require.NoError(t, repo.SetPremium(ctx, b.ID, true))

	name := "Cafe Central"
	premium := false
	require.NoError(t, repo.Update(ctx, b.ID, entities.UpdateBusinessInput{Name: &name, IsPremium: &premium}))
	require.NoError(t, repo.Update(ctx, b.ID, entities.UpdateBusinessInput{}))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, entities.BusinessStatusActive, got.Status)
	require.Equal(t, "Cafe Central", got.Name)
	require.False(t, got.IsPremium)

	missing := uuid.New()
	require.ErrorIs(t, repo.UpdateStatus(ctx, missing, entities.BusinessStatusActive), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.SetPremium(ctx, missing, true), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, missing, entities.UpdateBusinessInput{}), domainerrors.ErrNotFound)
}

func TestBusinessRepository_PremiumOffKeepsDesign(t *testing.T) {
	db := newTestDB(t)
	createBusinessTables(t, db)
	repo := NewBusinessRepository(db)
	ctx := context.Background()

	b := seedBusiness(t, repo, uuid.New(), "Disco Luna", entities.BusinessStatusActive, true, time.Now())
	cfg := entities.DesignConfig{LayoutVariant: entities.LayoutVisual, BackgroundURL: "https://cdn/bg.jpg"}.WithDefaults()
	require.NoError(t, repo.UpdateDesign(ctx, b.ID, cfg, "https://cdn/logo.png", "https://cdn/hero.jpg"))

	require.NoError(t, repo.SetPremium(ctx, b.ID, false))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.False(t, got.IsPremium)
	require.Equal(t, entities.LayoutVisual, got.DesignConfig.LayoutVariant)
	require.Equal(t, "https://cdn/bg.jpg", got.DesignConfig.BackgroundURL)
	require.Equal(t, "https://cdn/logo.png", got.LogoURL)
	require.Equal(t, "https://cdn/hero.jpg", got.HeroImageURL)

	require.ErrorIs(t, repo.UpdateDesign(ctx, uuid.New(), cfg, "", ""), domainerrors.ErrNotFound)
}

func TestBusinessRepository_StoredConfigMergedOverDefaults(t *testing.T) {
	db := newTestDB(t)
	createBusinessTables(t, db)
	repo := NewBusinessRepository(db)
	id := uuid.New()

	mustExec(t, db, `INSERT INTO businesses(id, owner_id, name, status, is_premium, design_config) VALUES (?,?,?,?,?,?)`,
		id.String(), uuid.New().String(), "Legacy", "active", true, `{"layout_variant":"modern","background_opacity":"0.6"}`)

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, entities.LayoutModern, got.DesignConfig.LayoutVariant)
	require.Equal(t, entities.DefaultPrimaryColor, got.DesignConfig.PrimaryColor)
	require.InDelta(t, 0.6, got.DesignConfig.Opacity(0), 1e-9)
	require.True(t, got.SocialLinks.IsEmpty())
}

func TestBusinessRepository_MarshalError(t *testing.T) {
	db := newTestDB(t)
	repo := NewBusinessRepository(db)

	orig := marshalJSON
	t.Cleanup(func() { marshalJSON = orig })
	marshalJSON = func(any) ([]byte, error) { return nil, gorm.ErrInvalidData }

	require.ErrorIs(t, repo.Create(context.Background(), &entities.Business{ID: uuid.New()}), gorm.ErrInvalidData)
	require.ErrorIs(t, repo.UpdateDesign(context.Background(), uuid.New(), entities.DesignConfig{}, "", ""), gorm.ErrInvalidData)
}
