package common

import (
	"testing"
)

func TestParseSQLStatements(t *testing.T) {
	sql := `
CREATE TABLE users (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);
CREATE INDEX idx_users_name ON users (name);
`
	statements := ParseSQLStatements(sql)
	if len(statements) != 2 {
		t.Fatalf("Expected 2 statements, got %d: %v", len(statements), statements)
	}
}

func TestParseSQLStatementsIgnoresComments(t *testing.T) {
	sql := `
-- create the users table
CREATE TABLE users (id INTEGER PRIMARY KEY);
-- trailing comment only
`
	statements := ParseSQLStatements(sql)
	if len(statements) != 1 {
		t.Fatalf("Expected 1 statement, got %d: %v", len(statements), statements)
	}
}

func TestParseSQLStatementsSemicolonInString(t *testing.T) {
	sql := `INSERT INTO notes (body) VALUES ('first; second');
DELETE FROM notes WHERE body = 'x';`

	statements := ParseSQLStatements(sql)
	if len(statements) != 2 {
		t.Fatalf("Expected 2 statements, got %d: %v", len(statements), statements)
	}
	if statements[0] != "INSERT INTO notes (body) VALUES ('first; second')" {
		t.Errorf("String literal was split: %q", statements[0])
	}
}

func TestParseSQLStatementsNoTrailingSemicolon(t *testing.T) {
	statements := ParseSQLStatements("SELECT 1")
	if len(statements) != 1 || statements[0] != "SELECT 1" {
		t.Fatalf("Expected single statement 'SELECT 1', got %v", statements)
	}
}

func TestParseSQLStatementsEmpty(t *testing.T) {
	if statements := ParseSQLStatements("  \n-- nothing here\n"); len(statements) != 0 {
		t.Fatalf("Expected no statements, got %v", statements)
	}
}
