package database

import (
	"strings"
	"testing"
)

func TestSchemaStatementsPerDriver(t *testing.T) {
	t.Run("postgres avoids sqlite-only syntax", func(t *testing.T) {
		joined := strings.Join(schemaStatements("postgres"), "\n")
		for _, fragment := range []string{"AUTOINCREMENT", "COLLATE NOCASE"} {
			if strings.Contains(joined, fragment) {
				t.Errorf("postgres DDL contains %q", fragment)
			}
		}
		if !strings.Contains(joined, "SERIAL PRIMARY KEY") {
			t.Error("postgres DDL should use SERIAL ids")
		}
		if !strings.Contains(joined, "LOWER(text)") {
			t.Error("postgres DDL should keep word uniqueness case-insensitive via LOWER(text)")
		}
	})

	t.Run("sqlite keeps NOCASE uniqueness", func(t *testing.T) {
		joined := strings.Join(schemaStatements("sqlite3"), "\n")
		if !strings.Contains(joined, "COLLATE NOCASE") {
			t.Error("sqlite DDL should collate text NOCASE")
		}
		if strings.Contains(joined, "SERIAL") {
			t.Error("sqlite DDL should not use SERIAL")
		}
	})
}
