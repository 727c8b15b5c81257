package database

import (
	"testing"
)

func TestNewAdapterSelection(t *testing.T) {
	cases := []struct {
		provider string
		dialect  string
	}{
		{"postgres", "postgres"},
		{"postgresql", "postgres"},
		{"sqlite", "sqlite"},
		{"sqlite3", "sqlite"},
		{"", "sqlite"},
		{"oracle", "sqlite"}, // unrecognized values fall back to sqlite
	}

	for _, tc := range cases {
		adapter := NewAdapter(tc.provider)
		if adapter.DialectName() != tc.dialect {
			t.Errorf("NewAdapter(%q): expected dialect %q, got %q",
				tc.provider, tc.dialect, adapter.DialectName())
		}
	}
}
