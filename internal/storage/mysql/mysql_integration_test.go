//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"datenight/internal/domain"
	mysqlrepo "datenight/internal/storage/mysql"
)

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=datenight",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/datenight?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func TestRepo_UpsertAndList(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	in := domain.ActivityTemplate{
		ID:                      "dinner-classic",
		Title:                   "Candlelit dinner with {partner_name}",
		Description:             "A classic dinner date.",
		RequiredVenueCategories: []domain.VenueCategory{domain.CatRestaurant},
		BudgetTier:              domain.BudgetMedium,
		Duration:                "2-3 hours",
		Styles:                  []string{"romantic", "classic"},
		LoveTags:                []string{"quality_time"},
		Environment:             domain.EnvIndoor,
	}
	if err := repo.UpsertTemplate(ctx, in); err != nil {
		t.Fatalf("UpsertTemplate: %v", err)
	}
	if err := repo.UpsertTemplate(ctx, domain.ActivityTemplate{
		ID: "game-night", Title: "Board game night", BudgetTier: domain.BudgetLow, Environment: domain.EnvIndoor,
	}); err != nil {
		t.Fatalf("UpsertTemplate venue-less: %v", err)
	}

	got, err := repo.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 templates, got %d", len(got))
	}
	// ORDER BY id
	if got[0].ID != "dinner-classic" || got[1].ID != "game-night" {
		t.Fatalf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Title != in.Title || got[0].BudgetTier != domain.BudgetMedium {
		t.Fatalf("round trip mangled template: %+v", got[0])
	}
	if len(got[0].RequiredVenueCategories) != 1 || got[0].RequiredVenueCategories[0] != domain.CatRestaurant {
		t.Fatalf("categories lost: %+v", got[0].RequiredVenueCategories)
	}
	if got[1].NeedsVenue() {
		t.Fatalf("venue-less template grew categories: %+v", got[1].RequiredVenueCategories)
	}
}

func TestRepo_UpsertOverwrites(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	base := domain.ActivityTemplate{ID: "park-picnic", Title: "Picnic", BudgetTier: domain.BudgetLow, Environment: domain.EnvOutdoor}
	if err := repo.UpsertTemplate(ctx, base); err != nil {
		t.Fatalf("UpsertTemplate: %v", err)
	}
	base.Title = "Picnic in the park"
	base.Styles = []string{"relaxed"}
	if err := repo.UpsertTemplate(ctx, base); err != nil {
		t.Fatalf("UpsertTemplate update: %v", err)
	}

	got, err := repo.GetTemplate(ctx, "park-picnic")
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}
	if got.Title != "Picnic in the park" || len(got.Styles) != 1 {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestRepo_GetTemplateNotFound(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)

	_, err := repo.GetTemplate(context.Background(), "no-such-id")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
