package handlers

import (
	"net/http"

	"github.com/rs/zerolog/hlog"
	"podcasts/internal/db"
	"podcasts/internal/feed"
)

// GetRSSFeed serves the home page episodes as an RSS document.
func (h *Handlers) GetRSSFeed(w http.ResponseWriter, r *http.Request) {
	episodes, err := db.GetHomepageEpisodes(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error getting feed episodes")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	rss, err := feed.GenerateRSS(h.siteTitle, feed.BaseURL(h.baseURL, r), episodes)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error generating RSS")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml")
	w.Write([]byte(rss))
}
