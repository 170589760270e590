// Package admin serves a small CRUD interface for episodes. What the change
// list shows is configured through a ModelAdmin registered on a Site at startup.
package admin

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"podcasts/internal/models"
)

// ModelAdmin configures how a model is exposed in the admin site.
type ModelAdmin struct {
	AppLabel          string
	AppVerboseName    string
	ModelName         string
	VerboseName       string
	VerboseNamePlural string
	// ListDisplay names the episode fields shown as change list columns.
	ListDisplay []string
}

// EpisodeAdmin is the registration used by the server.
var EpisodeAdmin = ModelAdmin{
	AppLabel:          "podcasts",
	AppVerboseName:    "Podcasts",
	ModelName:         "episode",
	VerboseName:       "episode",
	VerboseNamePlural: "episodes",
	ListDisplay:       []string{"podcast_name", "title", "pub_date"},
}

func (m ModelAdmin) VerboseNamePluralTitle() string {
	return capitalize(m.VerboseNamePlural)
}

func (m ModelAdmin) ChangeListURL() string {
	return fmt.Sprintf("/admin/%s/%s/", m.AppLabel, m.ModelName)
}

func (m ModelAdmin) AddURL() string {
	return m.ChangeListURL() + "add/"
}

func (m ModelAdmin) ChangeURL(id int64) string {
	return fmt.Sprintf("%s%d/change/", m.ChangeListURL(), id)
}

func (m ModelAdmin) DeleteURL(id int64) string {
	return fmt.Sprintf("%s%d/delete/", m.ChangeListURL(), id)
}

var fieldLabels = map[string]string{
	"id":           "ID",
	"title":        "Title",
	"description":  "Description",
	"pub_date":     "Pub date",
	"link":         "Link",
	"image":        "Image",
	"podcast_name": "Podcast name",
	"guid":         "Guid",
	"__str__":      "Episode",
}

func fieldValue(e models.Episode, name string, loc *time.Location) string {
	switch name {
	case "id":
		return strconv.FormatInt(e.ID, 10)
	case "title":
		return e.Title
	case "description":
		return e.Description
	case "pub_date":
		return e.PubDate.In(loc).Format("Jan. 2, 2006, 3:04 PM")
	case "link":
		return e.Link
	case "image":
		return e.Image
	case "podcast_name":
		return e.PodcastName
	case "guid":
		return e.GUID
	default:
		return e.String()
	}
}

// Site is the admin front end for one registered model.
type Site struct {
	templates *template.Template
	loc       *time.Location
	model     ModelAdmin
}

// NewSite fails when ListDisplay names a field the episode does not have.
func NewSite(templates *template.Template, loc *time.Location, model ModelAdmin) (*Site, error) {
	if len(model.ListDisplay) == 0 {
		model.ListDisplay = []string{"__str__"}
	}

	for _, name := range model.ListDisplay {
		if _, ok := fieldLabels[name]; !ok {
			return nil, fmt.Errorf("admin: unknown list_display field %q for %s", name, model.ModelName)
		}
	}

	return &Site{templates: templates, loc: loc, model: model}, nil
}

// Register mounts the admin pages on r. mw wraps every admin route.
func (s *Site) Register(r *mux.Router, mw ...mux.MiddlewareFunc) {
	sub := r.PathPrefix("/admin").Subrouter()
	sub.Use(mw...)

	base := fmt.Sprintf("/%s/%s", s.model.AppLabel, s.model.ModelName)
	sub.HandleFunc("/", s.index).Methods(http.MethodGet)
	sub.HandleFunc(base+"/", s.changeList).Methods(http.MethodGet)
	sub.HandleFunc(base+"/add/", s.add).Methods(http.MethodGet, http.MethodPost)
	sub.HandleFunc(base+"/{id:[0-9]+}/change/", s.change).Methods(http.MethodGet, http.MethodPost)
	sub.HandleFunc(base+"/{id:[0-9]+}/delete/", s.delete).Methods(http.MethodGet, http.MethodPost)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
