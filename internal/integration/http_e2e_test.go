//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	httpserver "datenight/internal/adapters/http_server"
	"datenight/internal/adapters/places"
	"datenight/internal/app"
	"datenight/internal/catalog"
	"datenight/internal/domain"
	"datenight/internal/matching"
	mysqlrepo "datenight/internal/storage/mysql"
)

// ---------- helpers ----------

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

// fake places provider: one restaurant and one park regardless of origin.
func placesStub(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cat := r.URL.Query().Get("category")
		var payload []map[string]any
		switch cat {
		case "restaurant":
			payload = []map[string]any{{"id": "r1", "name": "Trattoria Nonna", "distance": 0.8, "lat": 41.0, "lon": 29.0, "rating": 4.6}}
		case "park":
			payload = []map[string]any{{"id": "p1", "name": "Riverside Park", "distance": 2.1, "lat": 41.0, "lon": 29.0}}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}))
}

// ---------- the test ----------

func TestHTTP_EndToEnd_Recommendations(t *testing.T) {
	// Start isolated MySQL container
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

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Seed a two-template catalog
	seed := []domain.ActivityTemplate{
		{
			ID: "dinner-classic", Title: "Candlelit dinner with {partner_name}",
			RequiredVenueCategories: []domain.VenueCategory{domain.CatRestaurant},
			BudgetTier:              domain.BudgetMedium, Duration: "2-3 hours",
			Styles: []string{"romantic"}, Environment: domain.EnvIndoor,
		},
		{
			ID: "park-picnic", Title: "Picnic in the park",
			RequiredVenueCategories: []domain.VenueCategory{domain.CatPark},
			BudgetTier:              domain.BudgetLow, Duration: "2 hours",
			Styles: []string{"relaxed"}, Environment: domain.EnvOutdoor,
		},
	}
	for _, tm := range seed {
		if err := repo.UpsertTemplate(ctx, tm); err != nil {
			t.Fatalf("seed %s: %v", tm.ID, err)
		}
	}

	templates := catalog.Load(ctx, repo)
	if len(templates) != 2 {
		t.Fatalf("catalog load: want the 2 seeded templates, got %d", len(templates))
	}

	provider := placesStub(t)
	defer provider.Close()

	client, err := places.New(provider.URL, "test-key", 50)
	if err != nil {
		t.Fatalf("places client: %v", err)
	}
	svc := app.NewRecommendationService(
		client, nil, matching.NewEngine(), templates, 4, 25, time.Minute)

	srv := httpserver.New(15 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{Svc: svc})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// Catalog listing comes from MySQL, not the built-ins
	res, err := http.Get(ts.URL + "/v1/templates")
	if err != nil {
		t.Fatalf("GET templates: %v", err)
	}
	var listed []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&listed); err != nil {
		t.Fatalf("decode templates: %v", err)
	}
	res.Body.Close()
	if len(listed) != 2 || listed[0].ID != "dinner-classic" {
		t.Fatalf("unexpected catalog: %+v", listed)
	}

	// Full recommendation round trip
	body, _ := json.Marshal(map[string]any{
		"budget_tier": "$$",
		"duration":    "quick",
		"venue_count": "single",
		"environment": "both",
		"origin":      map[string]float64{"lat": 41.0, "lon": 29.0},
		"k":           3,
	})
	res, err = http.Post(ts.URL+"/v1/recommendations", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST recommendations: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var out struct {
		Candidates []struct {
			Template struct {
				ID string `json:"id"`
			} `json:"template"`
			Score  float64 `json:"score"`
			Venues []struct {
				ID string `json:"id"`
			} `json:"venues"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Candidates) != 2 {
		t.Fatalf("want both templates recommended, got %d", len(out.Candidates))
	}
	if out.Candidates[0].Template.ID != "dinner-classic" {
		t.Fatalf("dinner should outrank the picnic for a $$ quick single-venue ask: %+v", out.Candidates)
	}
	for _, c := range out.Candidates {
		if len(c.Venues) != 1 {
			t.Fatalf("each plan should carry exactly one venue: %+v", c)
		}
	}
}
