package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrationsDirIsValid(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestMigrationsEnforceStorefrontInvariants(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	var all strings.Builder
	for _, f := range files {
		b, err := os.ReadFile(f)
		require.NoError(t, err)
		all.Write(b)
	}
	content := all.String()

	checks := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_tenant_domains_domain",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_tenant_domains_one_primary ON tenant_domains (tenant_id) WHERE is_primary",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_storefront_pages_tenant_slug",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_storefront_pages_one_home ON storefront_pages (tenant_id) WHERE is_home",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_submission",
		"quantity integer NOT NULL CHECK (quantity >= 1)",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestApplySQLiteSchemaEnforcesOnePrimaryDomain(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:migrate_schema?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, ApplySQLiteSchema(conn))
	require.NoError(t, ApplySQLiteSchema(conn), "schema must be re-runnable")

	require.NoError(t, conn.Exec(`INSERT INTO tenant_domains (id, tenant_id, domain, is_primary) VALUES ('d1', 't1', 'a.example.com', 1)`).Error)
	require.NoError(t, conn.Exec(`INSERT INTO tenant_domains (id, tenant_id, domain, is_primary) VALUES ('d2', 't1', 'b.example.com', 0)`).Error)
	require.Error(t, conn.Exec(`INSERT INTO tenant_domains (id, tenant_id, domain, is_primary) VALUES ('d3', 't1', 'c.example.com', 1)`).Error)
	require.Error(t, conn.Exec(`INSERT INTO tenant_domains (id, tenant_id, domain, is_primary) VALUES ('d4', 't2', 'a.example.com', 1)`).Error)

	var themes int64
	require.NoError(t, conn.Table("themes").Count(&themes).Error)
	require.Equal(t, int64(2), themes)
}

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Branch Hours!")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(path, "_add_branch_hours.sql"))
	require.NoError(t, ValidateDir(dir))
}

func TestCreateSQLMigrationRefusesExistingVersion(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	path, err := createSQLMigration(dir, "branch hours", at)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "20260301090000_branch_hours.sql"), path)

	_, err = createSQLMigration(dir, "Branch-Hours", at)
	require.Error(t, err)

	_, err = createSQLMigration(dir, "!!!", at)
	require.Error(t, err)
}

func TestValidateDirReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("20260301090000_ok.sql", "-- +goose Up\nSELECT 1;\n-- +goose Down\nSELECT 1;\n")
	write("20260301090000_dup.sql", "-- +goose Up\n-- +goose Down\n")
	write("bad-name.sql", "-- +goose Up\n")
	write("20260301090100_reversed.sql", "-- +goose Down\n-- +goose Up\n")
	write("notes.txt", "ignored")

	err := ValidateDir(dir)
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 3)
	require.Contains(t, err.Error(), "bad-name.sql")
	require.Contains(t, err.Error(), "already used")
	require.Contains(t, err.Error(), "must precede")
}
