package themes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/migrate"
	"github.com/angelmondragon/storefront-backend/pkg/types"
)

func TestRepositoryFindsActiveSetting(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:themes_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrate.ApplySQLiteSchema(db))
	repo := NewRepository(db)
	ctx := context.Background()

	classic, err := repo.FindThemeByKey(ctx, "classic")
	require.NoError(t, err)
	require.NotNil(t, classic, "seeded theme expected")

	tenantID := uuid.New()
	none, err := repo.FindActiveSetting(ctx, tenantID)
	require.NoError(t, err)
	require.Nil(t, none)

	require.NoError(t, db.Create(&models.TenantThemeSetting{
		ID:       uuid.New(),
		TenantID: tenantID,
		ThemeID:  classic.ID,
		Settings: types.JSONMap{"slogan": "Hello"},
		IsActive: true,
	}).Error)

	setting, err := repo.FindActiveSetting(ctx, tenantID)
	require.NoError(t, err)
	require.NotNil(t, setting)
	require.Equal(t, "Hello", setting.Settings["slogan"])

	byID, err := repo.FindThemeByID(ctx, setting.ThemeID)
	require.NoError(t, err)
	require.Equal(t, "classic", byID.Key)

	missing, err := repo.FindThemeByKey(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)
}
