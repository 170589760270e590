package admin

import (
	"errors"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"podcasts/internal/models"
)

// pubDateLayout matches the value of an <input type="datetime-local">.
const pubDateLayout = "2006-01-02T15:04"

// parseEpisodeForm reads the posted fields into an episode. Field problems are
// returned keyed by form field name; an empty map means the episode is valid.
func parseEpisodeForm(r *http.Request, loc *time.Location) (models.Episode, map[string]string, error) {
	if err := r.ParseForm(); err != nil {
		return models.Episode{}, nil, err
	}

	e := models.Episode{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Link:        strings.TrimSpace(r.PostFormValue("link")),
		Image:       strings.TrimSpace(r.PostFormValue("image")),
		PodcastName: strings.TrimSpace(r.PostFormValue("podcast_name")),
		GUID:        strings.TrimSpace(r.PostFormValue("guid")),
	}

	fieldErrs := map[string]string{}
	if raw := strings.TrimSpace(r.PostFormValue("pub_date")); raw != "" {
		pubDate, err := parsePubDate(raw, loc)
		if err != nil {
			fieldErrs["pub_date"] = "Enter a valid date/time."
		} else {
			e.PubDate = pubDate
		}
	}

	for field, msg := range validationMessages(e.Validate()) {
		if _, seen := fieldErrs[field]; !seen {
			fieldErrs[field] = msg
		}
	}

	return e, fieldErrs, nil
}

func parsePubDate(raw string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(pubDateLayout, raw, loc)
	if err == nil {
		return t, nil
	}
	// Browsers may submit seconds when the step attribute allows them.
	return time.ParseInLocation(pubDateLayout+":05", raw, loc)
}

func formatPubDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(pubDateLayout)
}

func validationMessages(err error) map[string]string {
	msgs := map[string]string{}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return msgs
	}
	for field, ferr := range verrs {
		msgs[field] = capitalize(ferr.Error()) + "."
	}
	return msgs
}
