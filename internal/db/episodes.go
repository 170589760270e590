package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"podcasts/internal/models"
)

// HomepageEpisodeLimit caps the number of episodes shown on the home page.
const HomepageEpisodeLimit = 10

const (
	episodeColumns = "id, title, description, pub_date, link, image, podcast_name, guid"

	uniqueViolation = "23505"
	guidConstraint  = "episodes_guid_key"
)

var (
	ErrEpisodeNotFound = errors.New("episode not found")
	ErrDuplicateGUID   = errors.New("episode with this guid already exists")
)

func CreateEpisode(ctx context.Context, e models.Episode) (models.Episode, error) {
	if err := e.Validate(); err != nil {
		return models.Episode{}, fmt.Errorf("invalid episode: %w", err)
	}

	query := `
		INSERT INTO episodes (title, description, pub_date, link, image, podcast_name, guid)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + episodeColumns
	episode := models.Episode{}
	err := DB.GetContext(ctx, &episode, query, e.Title, e.Description, e.PubDate, e.Link, e.Image, e.PodcastName, e.GUID)
	if err != nil {
		return models.Episode{}, translateError(err)
	}
	return episode, nil
}

func GetEpisodeByID(ctx context.Context, id int64) (models.Episode, error) {
	episode := models.Episode{}
	err := DB.GetContext(ctx, &episode, "SELECT "+episodeColumns+" FROM episodes WHERE id = $1", id)
	if err != nil {
		return models.Episode{}, translateError(err)
	}
	return episode, nil
}

// UpdateEpisode overwrites every editable field of the episode with e.ID.
func UpdateEpisode(ctx context.Context, e models.Episode) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("invalid episode: %w", err)
	}

	res, err := DB.ExecContext(ctx, `
		UPDATE episodes
		SET title = $1, description = $2, pub_date = $3, link = $4, image = $5, podcast_name = $6, guid = $7
		WHERE id = $8`,
		e.Title, e.Description, e.PubDate, e.Link, e.Image, e.PodcastName, e.GUID, e.ID)
	if err != nil {
		return translateError(err)
	}
	return expectAffected(res)
}

func DeleteEpisode(ctx context.Context, id int64) error {
	res, err := DB.ExecContext(ctx, "DELETE FROM episodes WHERE id = $1", id)
	if err != nil {
		return translateError(err)
	}
	return expectAffected(res)
}

// ListEpisodes returns every episode, most recently created first.
func ListEpisodes(ctx context.Context) ([]models.Episode, error) {
	episodes := []models.Episode{}
	err := DB.SelectContext(ctx, &episodes, "SELECT "+episodeColumns+" FROM episodes ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}
	return episodes, nil
}

// GetHomepageEpisodes returns the first HomepageEpisodeLimit episodes ordered
// by pub_date ascending, i.e. the oldest ones.
func GetHomepageEpisodes(ctx context.Context) ([]models.Episode, error) {
	query := "SELECT " + episodeColumns + " FROM episodes ORDER BY pub_date ASC LIMIT $1"
	episodes := []models.Episode{}
	if err := DB.SelectContext(ctx, &episodes, query, HomepageEpisodeLimit); err != nil {
		return nil, fmt.Errorf("failed to get homepage episodes: %w", err)
	}
	return episodes, nil
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEpisodeNotFound
	}
	return nil
}

func translateError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrEpisodeNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == guidConstraint {
		return ErrDuplicateGUID
	}
	return err
}
