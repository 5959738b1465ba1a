package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayoubseh/boutique-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}

func TestProductsMigrationContainsSchema(t *testing.T) {
	content := readMigration(t, "*_create_products_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"price NUMERIC(12,2) NOT NULL CHECK (price >= 0)",
		"CHECK (stock >= 0)",
		"CREATE INDEX IF NOT EXISTS idx_products_category",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at",
		"DROP TABLE IF EXISTS products",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_orders_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS order_items",
		"REFERENCES orders (id) ON DELETE CASCADE",
		"CHECK (quantity >= 1)",
		"DROP TABLE IF EXISTS order_items",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSeedMigrationCoversSampleCatalog(t *testing.T) {
	content := readMigration(t, "*_seed_catalog.sql")

	products := []string{
		"iPhone 15 Pro",
		"MacBook Air M2",
		"T-shirt Premium Cotton",
		"Casque Audio Sans Fil",
		"Chaise de Bureau Ergonomique",
		"Le Petit Prince",
	}
	for _, name := range products {
		if !strings.Contains(content, name) {
			t.Errorf("seed missing product %q", name)
		}
	}
	if !strings.Contains(content, "ON CONFLICT (id) DO NOTHING") {
		t.Error("seed should be idempotent")
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
