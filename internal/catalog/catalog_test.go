package catalog_test

import (
	"context"
	"errors"
	"testing"

	"datenight/internal/catalog"
	"datenight/internal/domain"
)

type stubRepo struct {
	ts  []domain.ActivityTemplate
	err error
}

func (s *stubRepo) ListTemplates(ctx context.Context) ([]domain.ActivityTemplate, error) {
	return s.ts, s.err
}

func (s *stubRepo) GetTemplate(ctx context.Context, id string) (domain.ActivityTemplate, error) {
	for _, t := range s.ts {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.ActivityTemplate{}, domain.ErrNotFound
}

func TestDefault_CopyIsIndependent(t *testing.T) {
	a := catalog.Default()
	if len(a) == 0 {
		t.Fatalf("built-in catalog is empty")
	}
	a[0].Title = "mutated"
	b := catalog.Default()
	if b[0].Title == "mutated" {
		t.Fatalf("Default must hand out independent copies")
	}
}

func TestLoad_RepoWins(t *testing.T) {
	want := []domain.ActivityTemplate{{ID: "db-1", Title: "From the DB"}}
	got := catalog.Load(context.Background(), &stubRepo{ts: want})
	if len(got) != 1 || got[0].ID != "db-1" {
		t.Fatalf("expected repo catalog, got %+v", got)
	}
}

func TestLoad_FallsBackOnErrorOrEmpty(t *testing.T) {
	if got := catalog.Load(context.Background(), &stubRepo{err: errors.New("db down")}); len(got) == 0 {
		t.Fatalf("error should fall back to built-ins")
	}
	if got := catalog.Load(context.Background(), &stubRepo{}); len(got) == 0 {
		t.Fatalf("empty repo should fall back to built-ins")
	}
	if got := catalog.Load(context.Background(), nil); len(got) == 0 {
		t.Fatalf("nil repo should fall back to built-ins")
	}
}

func TestBuiltin_TemplatesAreWellFormed(t *testing.T) {
	seen := map[string]struct{}{}
	for _, tm := range catalog.Default() {
		if tm.ID == "" || tm.Title == "" {
			t.Fatalf("template missing id/title: %+v", tm)
		}
		if _, dup := seen[tm.ID]; dup {
			t.Fatalf("duplicate template id %s", tm.ID)
		}
		seen[tm.ID] = struct{}{}
		if tm.BudgetTier.Level() == 0 {
			t.Fatalf("template %s has unknown budget tier", tm.ID)
		}
	}
}
