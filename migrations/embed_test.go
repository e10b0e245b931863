package migrations

import (
	"strings"
	"testing"
)

func TestEmbeddedFS_ContainsInitialSchema(t *testing.T) {
	entries, err := FS.ReadDir(".")
	if err != nil {
		t.Fatalf("failed to read embedded FS: %v", err)
	}

	found := false

	for _, entry := range entries {
		if entry.Name() == "001_initial_schema.sql" {
			found = true
			break
		}
	}

	if !found {
		t.Error("001_initial_schema.sql not found in embedded FS")
	}
}

func TestEmbeddedFS_InitialSchemaReadable(t *testing.T) {
	content, err := FS.ReadFile("001_initial_schema.sql")
	if err != nil {
		t.Fatalf("failed to read migration file: %v", err)
	}

	schema := string(content)

	if !strings.Contains(schema, "-- +goose Up") {
		t.Error("migration missing '-- +goose Up' directive")
	}

	if !strings.Contains(schema, "-- +goose Down") {
		t.Error("migration missing '-- +goose Down' directive")
	}

	for _, table := range []string{"worksites", "cost_entries", "amendments", "events"} {
		if !strings.Contains(schema, "CREATE TABLE "+table) {
			t.Errorf("migration missing %s table creation", table)
		}
	}
}
