package migrate

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// sqliteSchema mirrors the goose migrations for local SQLite runs and repository tests.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS tenants (
  id TEXT PRIMARY KEY,
  handle TEXT NOT NULL UNIQUE COLLATE NOCASE,
  display_name TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME,
  updated_at DATETIME
)`,
	`CREATE TABLE IF NOT EXISTS tenant_domains (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  domain TEXT NOT NULL UNIQUE,
  is_primary INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tenant_domains_one_primary ON tenant_domains (tenant_id) WHERE is_primary = 1`,
	`CREATE TABLE IF NOT EXISTS stores (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT,
  currency TEXT NOT NULL DEFAULT 'BHD',
  phone TEXT,
  email TEXT,
  address TEXT,
  logo_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
)`,
	`CREATE TABLE IF NOT EXISTS themes (
  id TEXT PRIMARY KEY,
  key TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  version TEXT NOT NULL,
  is_enabled INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
)`,
	`CREATE TABLE IF NOT EXISTS tenant_theme_settings (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  theme_id TEXT NOT NULL,
  settings TEXT NOT NULL DEFAULT '{}',
  is_active INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (tenant_id, theme_id)
)`,
	`CREATE TABLE IF NOT EXISTS storefront_pages (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  slug TEXT NOT NULL,
  title TEXT NOT NULL,
  template TEXT NOT NULL DEFAULT 'default',
  seo TEXT,
  is_home INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (tenant_id, slug)
)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_storefront_pages_one_home ON storefront_pages (tenant_id) WHERE is_home = 1`,
	`CREATE TABLE IF NOT EXISTS storefront_sections (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  page_id TEXT NOT NULL,
  type TEXT NOT NULL,
  sort INTEGER NOT NULL DEFAULT 0,
  props TEXT,
  created_at DATETIME
)`,
	`CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  slug TEXT NOT NULL,
  name TEXT NOT NULL,
  sort INTEGER NOT NULL DEFAULT 0,
  image_url TEXT,
  created_at DATETIME,
  UNIQUE (tenant_id, slug)
)`,
	`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  category_id TEXT,
  name TEXT NOT NULL,
  description TEXT,
  price_minor INTEGER NOT NULL,
  images TEXT,
  available INTEGER NOT NULL DEFAULT 1,
  featured INTEGER NOT NULL DEFAULT 0,
  options TEXT,
  created_at DATETIME,
  updated_at DATETIME
)`,
	`CREATE TABLE IF NOT EXISTS branches (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  delivery_fee_minor INTEGER NOT NULL DEFAULT 0,
  minimum_order_minor INTEGER NOT NULL DEFAULT 0,
  estimated_delivery_time TEXT NOT NULL DEFAULT '',
  estimated_pickup_time TEXT NOT NULL DEFAULT '',
  featured INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  sort INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
)`,
	`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  submission_id TEXT NOT NULL UNIQUE,
  customer_id TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  fulfillment_type TEXT NOT NULL,
  branch_id TEXT,
  branch_name TEXT NOT NULL DEFAULT '',
  estimated_time TEXT NOT NULL DEFAULT '',
  subtotal_minor INTEGER NOT NULL,
  delivery_fee_minor INTEGER NOT NULL,
  total_minor INTEGER NOT NULL,
  currency TEXT NOT NULL,
  notes TEXT,
  placed_at DATETIME NOT NULL,
  status_changed_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
)`,
	`CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  unit_price_minor INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  customizations TEXT,
  notes TEXT,
  line_total_minor INTEGER NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
  id TEXT PRIMARY KEY,
  event_type TEXT NOT NULL,
  aggregate_type TEXT NOT NULL,
  aggregate_id TEXT NOT NULL,
  payload TEXT NOT NULL,
  created_at DATETIME,
  attempt_count INTEGER NOT NULL DEFAULT 0,
  last_error TEXT,
  published_at DATETIME,
  terminal_at DATETIME
)`,
	`INSERT OR IGNORE INTO themes (id, key, name, version, is_enabled) VALUES
  ('00000000-0000-0000-0000-00000000c1a5', 'classic', 'Classic', '1.0.0', 1),
  ('00000000-0000-0000-0000-0000000d0de1', 'modern', 'Modern', '1.0.0', 1)`,
}

// ApplySQLiteSchema creates every storefront table on a SQLite connection.
func ApplySQLiteSchema(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db is required")
	}
	if name := conn.Dialector.Name(); name != "sqlite" {
		return fmt.Errorf("sqlite schema cannot be applied to %s", name)
	}
	for _, stmt := range sqliteSchema {
		if err := conn.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	if idx := strings.IndexByte(stmt, '\n'); idx >= 0 {
		return stmt[:idx]
	}
	return stmt
}
