package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/discover/internal/formatter"
	"github.com/desertthunder/discover/internal/models"
)

//go:embed templates/page.html
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/page.html"))

// RefreshSeconds is the reload interval of a page rendered while a section is Loading.
const RefreshSeconds = 2

// SnapshotSource is satisfied by [catalog.Orchestrator].
type SnapshotSource interface {
	Snapshot() models.Snapshot
}

// TermStore is satisfied by [search.State].
type TermStore interface {
	SetTerm(term string)
	Term() string
}

// Handler serves the catalog page, the JSON snapshot, and term updates.
type Handler struct {
	catalog SnapshotSource
	search  TermStore
	logger  *log.Logger
}

// NewHandler creates a [Handler] reading from catalog and writing terms to search.
func NewHandler(catalog SnapshotSource, search TermStore, logger *log.Logger) *Handler {
	return &Handler{catalog: catalog, search: search, logger: logger}
}

// Routes implements [server.Handler].
func (h *Handler) Routes() []string {
	return []string{"GET /{$}", "GET /snapshot", "POST /search"}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/":
		h.page(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/snapshot":
		h.snapshot(w)
	case r.Method == http.MethodPost && r.URL.Path == "/search":
		h.setTerm(w, r)
	default:
		http.NotFound(w, r)
	}
}

// page renders the catalog. A q parameter, even an empty one, replaces the search term first.
func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	if query := r.URL.Query(); query.Has("q") {
		h.search.SetTerm(query.Get("q"))
	}

	data := newPageData(h.catalog.Snapshot(), h.search.Term())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		h.logger.Error("failed to render page", "error", err)
	}
}

func (h *Handler) snapshot(w http.ResponseWriter) {
	data, err := formatter.ExportToJSON(h.catalog.Snapshot())
	if err != nil {
		h.logger.Error("failed to encode snapshot", "error", err)
		http.Error(w, "failed to encode snapshot", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// setTerm stores the form value q and redirects to the page.
func (h *Handler) setTerm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, fmt.Sprintf("invalid form: %v", err), http.StatusBadRequest)
		return
	}

	term := r.PostForm.Get("q")
	h.logger.Debug("term submitted", "term", term)
	h.search.SetTerm(term)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type pageData struct {
	Term     string
	Pending  bool
	Refresh  int
	Sections []sectionData
}

type sectionData struct {
	ID          string
	Heading     string
	Placeholder string
	Items       []itemData
}

type itemData struct {
	Key   string
	Name  string
	Image string
}

func newPageData(snap models.Snapshot, term string) pageData {
	data := pageData{Term: term, Refresh: RefreshSeconds}

	for _, s := range snap.Sections() {
		if s.Status == models.Loading || s.Status == models.NotRequested {
			data.Pending = true
		}

		sd := sectionData{
			ID:          s.Kind.ElementID(),
			Heading:     s.Kind.Title(),
			Placeholder: formatter.Placeholder(s),
		}
		if s.Kind == models.SearchResults {
			sd.Heading = fmt.Sprintf("%s: %q", s.Kind.Title(), s.QueryKey)
		}
		if s.Status == models.Loaded {
			for i, item := range models.Renderable(s.Items) {
				sd.Items = append(sd.Items, itemData{
					Key:   models.ItemKey(item, i),
					Name:  item.Name,
					Image: item.CoverURL(),
				})
			}
		}
		data.Sections = append(data.Sections, sd)
	}

	return data
}
