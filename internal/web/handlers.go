package web

import (
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"bookstore/internal/catalog"
)

// Handler renders the catalog, management and informational pages. Every
// catalog page issues its own fetch; nothing is shared between views.
type Handler struct {
	catalog *catalog.Service
	log     *zap.Logger
	tmpl    map[string]*template.Template
}

func NewHandler(c *catalog.Service, log *zap.Logger) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{catalog: c, log: log, tmpl: tmpl}, nil
}

// Register mounts all UI routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.Home)
	mux.HandleFunc("/books", h.Books)
	mux.HandleFunc("/books/", h.BookByID)
	mux.HandleFunc("/book/", h.BookBySlug)
	mux.HandleFunc("/about", h.static("about.html", "About"))
	mux.HandleFunc("/contact", h.static("contact.html", "Contact"))
	mux.HandleFunc("/login", h.static("login.html", "Login"))
	mux.HandleFunc("/signup", h.static("signup.html", "Sign Up"))

	staticDir, _ := fs.Sub(staticFS, "static")
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticDir))))
}

type homeData struct {
	Volumes []catalog.Volume
}

// Home shows the featured selection. The root pattern also catches every
// unknown path, which lands on the not-found page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.renderNotFound(w)
		return
	}

	volumes, err := h.catalog.Featured(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "home.html", pageData{
		Title:  "Home",
		Active: "/",
		Data:   homeData{Volumes: volumes},
	})
}

type booksData struct {
	Volumes    []catalog.Volume
	Page       int
	TotalPages int
}

// Books shows one page of the browsable collection.
func (h *Handler) Books(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	res, err := h.catalog.Page(r.Context(), page)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "books.html", pageData{
		Title:  "Book Collection",
		Active: "/books",
		Data: booksData{
			Volumes:    res.Items,
			Page:       page,
			TotalPages: (res.Total + catalog.PageSize - 1) / catalog.PageSize,
		},
	})
}

type detailData struct {
	Volume catalog.Volume
}

// BookBySlug resolves /book/{slug} with a fresh exact-phrase search.
func (h *Handler) BookBySlug(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimPrefix(r.URL.Path, "/book/")
	if slug == "" || strings.Contains(slug, "/") {
		h.renderNotFound(w)
		return
	}

	vol, err := h.catalog.BySlug(r.Context(), slug)
	if errors.Is(err, catalog.ErrNotFound) {
		h.renderNotFound(w)
		return
	}
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderDetail(w, vol)
}

// BookByID resolves /books/{id} via the volume lookup endpoint. The manage
// screen hangs off the same prefix.
func (h *Handler) BookByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/books/")
	if rest == "manage" {
		h.Manage(w, r)
		return
	}
	if rest == "" || strings.Contains(rest, "/") {
		h.renderNotFound(w)
		return
	}

	vol, err := h.catalog.ByID(r.Context(), rest)
	if errors.Is(err, catalog.ErrNotFound) {
		h.renderNotFound(w)
		return
	}
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderDetail(w, vol)
}

// Manage serves the record-management screen; the page script drives
// /api/books.
func (h *Handler) Manage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "manage.html", pageData{
		Title:  "Manage Books",
		Active: "/books/manage",
	})
}

func (h *Handler) static(page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, http.StatusOK, page, pageData{Title: title, Active: r.URL.Path})
	}
}

func (h *Handler) renderDetail(w http.ResponseWriter, vol catalog.Volume) {
	h.render(w, http.StatusOK, "book_detail.html", pageData{
		Title:  vol.Info.DisplayTitle(),
		Active: "/books",
		Data:   detailData{Volume: vol},
	})
}

func (h *Handler) renderNotFound(w http.ResponseWriter) {
	h.render(w, http.StatusNotFound, "not_found.html", pageData{Title: "Not Found"})
}

// renderError shows the error panel with a manual-retry link back to the
// requested page. There is no automatic retry.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("catalog fetch failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	h.render(w, http.StatusBadGateway, "error.html", pageData{
		Title: "Something went wrong",
		Data:  struct{ RetryURL string }{RetryURL: r.URL.RequestURI()},
	})
}
