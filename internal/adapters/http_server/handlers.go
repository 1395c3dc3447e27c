package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"datenight/internal/app"
	"datenight/internal/domain"
)

type Handlers struct{ Svc *app.RecommendationService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/recommendations", h.recommend)
	s.mux.Get("/v1/templates", h.listTemplates)
	s.mux.Get("/v1/templates/{id}", h.getTemplate)
}

// ---- wire DTOs ----

type coordsDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type recommendReq struct {
	BudgetTier    string     `json:"budget_tier"`
	Duration      string     `json:"duration"`
	VenueCount    string     `json:"venue_count"`
	LoveTags      []string   `json:"love_tags"`
	Interests     []string   `json:"interests"`
	Environment   string     `json:"environment"`
	UserCoords    *coordsDTO `json:"user_coords"`
	PartnerCoords *coordsDTO `json:"partner_coords"`
	Origin        *coordsDTO `json:"origin"`
	ExcludeIDs    []string   `json:"exclude_ids"`
	K             int        `json:"k"`
}

type templateDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Categories  []string `json:"required_venue_categories"`
	BudgetTier  string   `json:"budget_tier"`
	Duration    string   `json:"duration"`
	Styles      []string `json:"styles,omitempty"`
	LoveTags    []string `json:"love_tags,omitempty"`
	Environment string   `json:"environment"`
}

type venueDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Distance float64  `json:"distance_km"`
	Rating   *float64 `json:"rating,omitempty"`
}

type candidateDTO struct {
	Template  templateDTO        `json:"template"`
	Score     float64            `json:"score"`
	Breakdown map[string]float64 `json:"breakdown"`
	Venues    []venueDTO         `json:"venues"`
}

type recommendResp struct {
	Candidates []candidateDTO `json:"candidates"`
}

func toTemplateDTO(t domain.ActivityTemplate) templateDTO {
	cats := make([]string, len(t.RequiredVenueCategories))
	for i, c := range t.RequiredVenueCategories {
		cats[i] = string(c)
	}
	return templateDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Categories:  cats,
		BudgetTier:  string(t.BudgetTier),
		Duration:    t.Duration,
		Styles:      t.Styles,
		LoveTags:    t.LoveTags,
		Environment: string(t.Environment),
	}
}

func toCandidateDTO(c domain.ScoredCandidate) candidateDTO {
	vs := make([]venueDTO, len(c.Venues))
	for i, v := range c.Venues {
		vs[i] = venueDTO{ID: v.ID, Name: v.Name, Category: string(v.Category), Distance: v.Distance, Rating: v.Rating}
	}
	return candidateDTO{
		Template: toTemplateDTO(c.Template),
		Score:    c.Score,
		Breakdown: map[string]float64{
			"budget":       c.Breakdown.Budget,
			"duration":     c.Breakdown.Duration,
			"venue_count":  c.Breakdown.VenueCount,
			"availability": c.Breakdown.Availability,
			"love_tags":    c.Breakdown.LoveTags,
			"interests":    c.Breakdown.Interests,
			"distance":     c.Breakdown.Distance,
			"variety":      c.Breakdown.Variety,
		},
		Venues: vs,
	}
}

func (rq recommendReq) toAppRequest() app.Request {
	prefs := domain.UserPreferences{
		BudgetTier: domain.BudgetTier(rq.BudgetTier),
		Duration:   domain.DurationClass(rq.Duration),
		VenueCount: domain.VenueCountPref(rq.VenueCount),
		LoveTags:   rq.LoveTags,
		Interests:  rq.Interests,
		ExcludeIDs: rq.ExcludeIDs,
	}
	if rq.UserCoords != nil {
		prefs.UserCoords = &domain.Coords{Lat: rq.UserCoords.Lat, Lon: rq.UserCoords.Lon}
	}
	if rq.PartnerCoords != nil {
		prefs.PartnerCoords = &domain.Coords{Lat: rq.PartnerCoords.Lat, Lon: rq.PartnerCoords.Lon}
	}
	out := app.Request{
		Prefs:       prefs,
		Environment: domain.Environment(rq.Environment),
		K:           rq.K,
	}
	if rq.Origin != nil {
		out.Origin = &domain.Coords{Lat: rq.Origin.Lat, Lon: rq.Origin.Lon}
	}
	return out
}

// ---- handlers ----

func (h *Handlers) recommend(w http.ResponseWriter, r *http.Request) {
	var rq recommendReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rq); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	if rq.K < 0 || rq.K > 20 {
		writeProblem(w, http.StatusBadRequest, "Invalid k", "k must be between 0 and 20")
		return
	}
	switch rq.Environment {
	case "", "indoor", "outdoor", "both":
	default:
		writeProblem(w, http.StatusBadRequest, "Invalid environment", "environment must be indoor, outdoor or both")
		return
	}

	out, err := h.Svc.Recommend(r.Context(), rq.toAppRequest())
	if err != nil {
		if errors.Is(err, app.ErrNoOrigin) {
			writeProblem(w, http.StatusBadRequest, "No origin", err.Error())
			return
		}
		log.Error().Err(err).Msg("recommendation run failed")
		writeProblem(w, http.StatusBadGateway, "Upstream failure", "venue discovery failed")
		return
	}

	resp := recommendResp{Candidates: make([]candidateDTO, 0, len(out))}
	for _, c := range out {
		resp.Candidates = append(resp.Candidates, toCandidateDTO(c))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("failed to write recommendations body")
	}
}

func (h *Handlers) listTemplates(w http.ResponseWriter, r *http.Request) {
	ts := h.Svc.Catalog()
	dtos := make([]templateDTO, 0, len(ts))
	for _, t := range ts {
		dtos = append(dtos, toTemplateDTO(t))
	}

	// Catalog is immutable per process, so the ETag short-circuit pays off.
	etag, body := calcETagAndBody(dtos)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write templates body")
	}
}

func (h *Handlers) getTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, t := range h.Svc.Catalog() {
		if t.ID == id {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if err := json.NewEncoder(w).Encode(toTemplateDTO(t)); err != nil {
				log.Error().Err(err).Msg("failed to write template body")
			}
			return
		}
	}
	writeProblem(w, http.StatusNotFound, "Not Found", "template not found")
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}
