package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"datenight/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// jsonOrNull marshals a string slice for a JSON column; empty slices
// store as NULL rather than "[]" so fallback logic can tell them apart.
func jsonOrNull(ss []string) any {
	if len(ss) == 0 {
		return nil
	}
	b, _ := json.Marshal(ss)
	return string(b)
}

func unmarshalList(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}

// Repo is the MySQL-backed activity template catalog. It implements
// domain.TemplateRepository; the catalog loader falls back to the
// built-in templates when the repo is absent or empty.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertTemplate(ctx context.Context, t domain.ActivityTemplate) error {
	cats := make([]string, len(t.RequiredVenueCategories))
	for i, c := range t.RequiredVenueCategories {
		cats[i] = string(c)
	}
	_, err := r.db.ExecContext(ctx, upsertTemplateSQL,
		t.ID,
		t.Title,
		valStr(t.Description),
		jsonOrNull(cats),
		string(t.BudgetTier),
		valStr(t.Duration),
		jsonOrNull(t.Styles),
		jsonOrNull(t.LoveTags),
		string(t.Environment),
	)
	return err
}

func (r *Repo) ListTemplates(ctx context.Context) ([]domain.ActivityTemplate, error) {
	rows, err := r.db.QueryContext(ctx, listTemplatesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ActivityTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) GetTemplate(ctx context.Context, id string) (domain.ActivityTemplate, error) {
	row := r.db.QueryRowContext(ctx, getTemplateSQL, id)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return domain.ActivityTemplate{}, domain.ErrNotFound
	}
	return t, err
}

type rowScanner interface{ Scan(dest ...any) error }

func scanTemplate(row rowScanner) (domain.ActivityTemplate, error) {
	var (
		t           domain.ActivityTemplate
		desc        sql.NullString
		duration    sql.NullString
		budget      string
		env         string
		catsJSON    []byte
		stylesJSON  []byte
		loveTagJSON []byte
	)
	if err := row.Scan(&t.ID, &t.Title, &desc, &catsJSON, &budget, &duration, &stylesJSON, &loveTagJSON, &env); err != nil {
		return domain.ActivityTemplate{}, err
	}
	t.Description = desc.String
	t.Duration = duration.String
	t.BudgetTier = domain.BudgetTier(budget)
	t.Environment = domain.Environment(env)
	t.Styles = unmarshalList(stylesJSON)
	t.LoveTags = unmarshalList(loveTagJSON)
	for _, c := range unmarshalList(catsJSON) {
		t.RequiredVenueCategories = append(t.RequiredVenueCategories, domain.VenueCategory(c))
	}
	return t, nil
}
