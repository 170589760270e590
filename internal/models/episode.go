package models

import (
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Episode is one published podcast episode.
type Episode struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	PubDate     time.Time `db:"pub_date" json:"pub_date"`
	Link        string    `db:"link" json:"link"`
	Image       string    `db:"image" json:"image"`
	PodcastName string    `db:"podcast_name" json:"podcast_name"`
	GUID        string    `db:"guid" json:"guid"`
}

func (e Episode) String() string {
	return fmt.Sprintf("%s: %s", e.PodcastName, e.Title)
}

// absoluteURL rejects scheme-less values such as "myawesomeshow.com", which is.URL lets through.
var absoluteURL = validation.Match(regexp.MustCompile(`^(?i)https?://`)).Error("must be an absolute http(s) URL")

// Validate checks that every field is present and within the column limits.
// Errors are keyed by the json field name.
func (e Episode) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&e.Description, validation.Required),
		validation.Field(&e.PubDate, validation.Required),
		validation.Field(&e.Link, validation.Required, absoluteURL, is.URL, validation.RuneLength(1, 200)),
		validation.Field(&e.Image, validation.Required, absoluteURL, is.URL, validation.RuneLength(1, 200)),
		validation.Field(&e.PodcastName, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&e.GUID, validation.Required, validation.RuneLength(1, 50)),
	)
}
