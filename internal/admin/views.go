package admin

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/hlog"
	"github.com/samber/lo"
	"podcasts/internal/db"
	"podcasts/internal/models"
)

type changeListRow struct {
	URL   string
	Cells []string
}

type changeListPage struct {
	Admin   ModelAdmin
	Title   string
	Columns []string
	Rows    []changeListRow
}

type changeFormPage struct {
	Admin     ModelAdmin
	Title     string
	Action    string
	Episode   models.Episode
	PubDate   string
	Errors    map[string]string
	CSRFField template.HTML
}

type deletePage struct {
	Admin     ModelAdmin
	Episode   models.Episode
	CSRFField template.HTML
}

func (s *Site) index(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "admin_index.html", struct{ Admin ModelAdmin }{s.model})
}

func (s *Site) changeList(w http.ResponseWriter, r *http.Request) {
	episodes, err := db.ListEpisodes(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Error listing episodes")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	page := changeListPage{
		Admin:   s.model,
		Title:   "Select " + s.model.VerboseName + " to change",
		Columns: lo.Map(s.model.ListDisplay, func(name string, _ int) string { return fieldLabels[name] }),
		Rows: lo.Map(episodes, func(e models.Episode, _ int) changeListRow {
			return changeListRow{
				URL: s.model.ChangeURL(e.ID),
				Cells: lo.Map(s.model.ListDisplay, func(name string, _ int) string {
					return fieldValue(e, name, s.loc)
				}),
			}
		}),
	}
	s.render(w, r, "admin_change_list.html", page)
}

func (s *Site) add(w http.ResponseWriter, r *http.Request) {
	page := changeFormPage{
		Admin:     s.model,
		Title:     "Add " + s.model.VerboseName,
		Action:    s.model.AddURL(),
		CSRFField: csrf.TemplateField(r),
	}

	if r.Method == http.MethodGet {
		page.Episode.GUID = uuid.NewString()
		s.render(w, r, "admin_change_form.html", page)
		return
	}

	episode, fieldErrs, err := parseEpisodeForm(r, s.loc)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if len(fieldErrs) == 0 {
		created, err := db.CreateEpisode(r.Context(), episode)
		switch {
		case err == nil:
			hlog.FromRequest(r).Info().Int64("episode_id", created.ID).Str("guid", created.GUID).Msg("Episode added")
			http.Redirect(w, r, s.model.ChangeListURL(), http.StatusSeeOther)
			return
		case errors.Is(err, db.ErrDuplicateGUID):
			fieldErrs["guid"] = "Episode with this Guid already exists."
		default:
			hlog.FromRequest(r).Error().Err(err).Msg("Error creating episode")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	page.Episode = episode
	page.PubDate = formatPubDate(episode.PubDate, s.loc)
	page.Errors = fieldErrs
	s.render(w, r, "admin_change_form.html", page)
}

func (s *Site) change(w http.ResponseWriter, r *http.Request) {
	current, ok := s.lookup(w, r)
	if !ok {
		return
	}

	page := changeFormPage{
		Admin:     s.model,
		Title:     "Change " + s.model.VerboseName,
		Action:    s.model.ChangeURL(current.ID),
		Episode:   current,
		PubDate:   formatPubDate(current.PubDate, s.loc),
		CSRFField: csrf.TemplateField(r),
	}

	if r.Method == http.MethodGet {
		s.render(w, r, "admin_change_form.html", page)
		return
	}

	episode, fieldErrs, err := parseEpisodeForm(r, s.loc)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	episode.ID = current.ID

	if len(fieldErrs) == 0 {
		err := db.UpdateEpisode(r.Context(), episode)
		switch {
		case err == nil:
			hlog.FromRequest(r).Info().Int64("episode_id", episode.ID).Msg("Episode changed")
			http.Redirect(w, r, s.model.ChangeListURL(), http.StatusSeeOther)
			return
		case errors.Is(err, db.ErrDuplicateGUID):
			fieldErrs["guid"] = "Episode with this Guid already exists."
		case errors.Is(err, db.ErrEpisodeNotFound):
			http.NotFound(w, r)
			return
		default:
			hlog.FromRequest(r).Error().Err(err).Int64("episode_id", episode.ID).Msg("Error updating episode")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	page.Episode = episode
	page.PubDate = formatPubDate(episode.PubDate, s.loc)
	page.Errors = fieldErrs
	s.render(w, r, "admin_change_form.html", page)
}

func (s *Site) delete(w http.ResponseWriter, r *http.Request) {
	episode, ok := s.lookup(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		s.render(w, r, "admin_delete_confirmation.html", deletePage{
			Admin:     s.model,
			Episode:   episode,
			CSRFField: csrf.TemplateField(r),
		})
		return
	}

	err := db.DeleteEpisode(r.Context(), episode.ID)
	if err != nil && !errors.Is(err, db.ErrEpisodeNotFound) {
		hlog.FromRequest(r).Error().Err(err).Int64("episode_id", episode.ID).Msg("Error deleting episode")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	hlog.FromRequest(r).Info().Int64("episode_id", episode.ID).Msg("Episode deleted")
	http.Redirect(w, r, s.model.ChangeListURL(), http.StatusSeeOther)
}

// lookup loads the episode named by the {id} route variable, writing a 404 when absent.
func (s *Site) lookup(w http.ResponseWriter, r *http.Request) (models.Episode, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return models.Episode{}, false
	}

	episode, err := db.GetEpisodeByID(r.Context(), id)
	if errors.Is(err, db.ErrEpisodeNotFound) {
		http.NotFound(w, r)
		return models.Episode{}, false
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Int64("episode_id", id).Msg("Error getting episode")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return models.Episode{}, false
	}
	return episode, true
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("template", name).Msg("Error executing template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
