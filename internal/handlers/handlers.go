package handlers

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/hlog"
	"podcasts/internal/db"
)

type Handlers struct {
	templates *template.Template
	siteTitle string
	baseURL   string
}

func New(templates *template.Template, siteTitle, baseURL string) *Handlers {
	return &Handlers{
		templates: templates,
		siteTitle: siteTitle,
		baseURL:   baseURL,
	}
}

// Home renders the episode list: the first ten episodes by ascending pub_date.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	episodes, err := db.GetHomepageEpisodes(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error getting homepage episodes")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"episodes":   episodes,
		"site_title": h.siteTitle,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "homepage.html", data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error executing template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := db.Ping(r.Context()); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("Health check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status": "unavailable"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
