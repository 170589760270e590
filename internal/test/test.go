package test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"podcasts/internal/db"
	"podcasts/internal/models"
)

// EpisodeColumns mirrors the column order the store selects.
var EpisodeColumns = []string{"id", "title", "description", "pub_date", "link", "image", "podcast_name", "guid"}

// NewMockDB swaps db.DB for a sqlmock connection until the test ends.
func NewMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	sqlxDB := sqlx.NewDb(mockDb, "sqlmock")

	originalDB := db.DB
	db.DB = sqlxDB
	t.Cleanup(func() {
		db.DB = originalDB
		mockDb.Close()
	})

	return sqlxDB, mock
}

// SampleEpisode is the canonical fixture episode.
func SampleEpisode() models.Episode {
	return models.Episode{
		ID:          1,
		Title:       "My Awesome Podcast Episode",
		Description: "Look mom, I made it!",
		PubDate:     time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Link:        "https://myawesomeshow.com",
		Image:       "https://image.myawesomeshow.com",
		PodcastName: "My Python Podcast",
		GUID:        "eb60601a-c247-4eb6-9899-8cc62076b529",
	}
}

// EpisodeRows builds result rows for the given episodes.
func EpisodeRows(episodes ...models.Episode) *sqlmock.Rows {
	rows := sqlmock.NewRows(EpisodeColumns)
	for _, e := range episodes {
		rows.AddRow(e.ID, e.Title, e.Description, e.PubDate, e.Link, e.Image, e.PodcastName, e.GUID)
	}
	return rows
}
