package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/procurehub/procurehub-backend/pkg/migrate"
)

func TestRequestsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_requests.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no requests migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS requests",
		"CREATE TABLE IF NOT EXISTS request_items",
		"FOREIGN KEY (request_id) REFERENCES requests(id) ON DELETE CASCADE",
		"CHECK (quantity > 0)",
		"'pending', 'manager_approved', 'manager_rejected'",
		"DROP TABLE IF EXISTS request_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations: %v", err)
	}
}
