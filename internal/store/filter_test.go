package store

import (
	"strings"
	"testing"

	"github.com/spler/influencer-hub/internal/domain"
)

func TestFilterClauseEmpty(t *testing.T) {
	clause, args := Filter{}.Clause()
	if clause != "" {
		t.Errorf("empty filter clause = %q, want empty", clause)
	}
	if len(args) != 0 {
		t.Errorf("empty filter args = %v, want none", args)
	}
	if !(Filter{}).Empty() {
		t.Error("zero filter should report Empty")
	}
}

func TestFilterClauseFreeText(t *testing.T) {
	f := NewFilter("  kim  ", "", "", "")
	clause, args := f.Clause()

	if f.Query != "kim" {
		t.Errorf("query not trimmed: %q", f.Query)
	}
	if !strings.HasPrefix(clause, "WHERE (") {
		t.Errorf("clause = %q, want WHERE (...) group", clause)
	}
	if got := strings.Count(clause, "LIKE ?"); got != len(searchFields) {
		t.Errorf("clause has %d LIKE terms, want %d", got, len(searchFields))
	}
	if len(args) != len(searchFields) {
		t.Fatalf("args = %d, want %d", len(args), len(searchFields))
	}
	for i, arg := range args {
		if arg != "%kim%" {
			t.Errorf("arg[%d] = %v, want %%kim%%", i, arg)
		}
	}
}

func TestFilterClauseCombined(t *testing.T) {
	f := NewFilter("kim", "YouTube", "Beauty", "Makeup")
	clause, args := f.Clause()

	for _, cond := range []string{"platform = ?", "category_main = ?", "category_sub = ?"} {
		if !strings.Contains(clause, cond) {
			t.Errorf("clause missing %q: %s", cond, clause)
		}
	}
	if !strings.Contains(clause, " AND ") {
		t.Errorf("conditions should be ANDed: %s", clause)
	}
	wantArgs := len(searchFields) + 3
	if len(args) != wantArgs {
		t.Errorf("args = %d, want %d", len(args), wantArgs)
	}
	if last := args[len(args)-1]; last != "Makeup" {
		t.Errorf("last arg = %v, want Makeup", last)
	}
	if f.Empty() {
		t.Error("populated filter should not report Empty")
	}
}

func TestFilterExactOnly(t *testing.T) {
	clause, args := NewFilter("", "Instagram", "", "").Clause()
	if clause != "WHERE platform = ?" {
		t.Errorf("clause = %q", clause)
	}
	if len(args) != 1 || args[0] != "Instagram" {
		t.Errorf("args = %v", args)
	}
}

func TestResolveColumns(t *testing.T) {
	tests := []struct {
		name  string
		param string
		want  []string
	}{
		{"empty falls back to all", "", domain.AllColumns},
		{"invalid falls back to all", "bogus,nope", domain.AllColumns},
		{"valid subset", "platform,account_name", []string{"platform", "account_name"}},
		{"mixed keeps valid only", "platform,bogus", []string{"platform"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveColumns(tt.param)
			if len(got) != len(tt.want) {
				t.Fatalf("ResolveColumns(%q) = %v, want %v", tt.param, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ResolveColumns(%q)[%d] = %q, want %q", tt.param, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRebindPostgres(t *testing.T) {
	s := &Store{dialect: DialectPostgres}
	got := s.rebind("SELECT * FROM t WHERE a = ? AND b = ?")
	want := "SELECT * FROM t WHERE a = $1 AND b = $2"
	if got != want {
		t.Errorf("rebind = %q, want %q", got, want)
	}

	s = &Store{dialect: DialectSQLite}
	if got := s.rebind("a = ?"); got != "a = ?" {
		t.Errorf("sqlite rebind should be identity, got %q", got)
	}
}
