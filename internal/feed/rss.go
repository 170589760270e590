package feed

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eduncan911/podcast"
	"github.com/samber/lo"
	"podcasts/internal/models"
)

// BaseURL prefers the configured base URL and falls back to the request host.
func BaseURL(configured string, r *http.Request) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}

	scheme := r.URL.Scheme
	if scheme == "" {
		scheme = "https"
		if proto := strings.ToLower(r.Header.Get("X-Forwarded-Proto")); proto == "http" {
			scheme = proto
		}
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

func GenerateRSS(title, baseURL string, episodes []models.Episode) (string, error) {
	var lastBuild time.Time
	for _, e := range episodes {
		if e.PubDate.After(lastBuild) {
			lastBuild = e.PubDate
		}
	}

	p := podcast.New(
		title,
		baseURL+"/",
		fmt.Sprintf("Episodes from %s.", title),
		&lastBuild, &lastBuild,
	)

	items := lo.Map(episodes, func(e models.Episode, _ int) podcast.Item {
		pubDate := e.PubDate
		item := podcast.Item{
			Title:       e.String(),
			Description: e.Description,
			Link:        e.Link,
			GUID:        e.GUID,
			PubDate:     &pubDate,
		}
		item.AddImage(e.Image)
		return item
	})

	for _, item := range items {
		if _, err := p.AddItem(item); err != nil {
			return "", err
		}
	}

	return p.String(), nil
}
