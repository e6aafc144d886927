package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bookstore/internal/catalog"
)

type fakeSearcher struct {
	result catalog.SearchResult
	volume catalog.Volume
	err    error
}

func (f *fakeSearcher) Search(ctx context.Context, query string, offset, limit int) (catalog.SearchResult, error) {
	return f.result, f.err
}

func (f *fakeSearcher) GetVolume(ctx context.Context, id string) (catalog.Volume, error) {
	return f.volume, f.err
}

func newTestServer(t *testing.T, fake *fakeSearcher) *http.ServeMux {
	t.Helper()
	h, err := NewHandler(catalog.NewService(fake), zap.NewNop())
	require.NoError(t, err)
	mux := http.NewServeMux()
	h.Register(mux)
	return mux
}

func get(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

var testVolume = catalog.Volume{
	ID: "abc",
	Info: catalog.VolumeInfo{
		Title:   "The Go Programming Language",
		Authors: []string{"Alan Donovan", "Brian Kernighan"},
	},
}

func TestHomePage(t *testing.T) {
	mux := newTestServer(t, &fakeSearcher{result: catalog.SearchResult{
		Items: []catalog.Volume{testVolume},
		Total: 1,
	}})

	w := get(mux, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "The Go Programming Language")
	assert.Contains(t, body, "Alan Donovan, Brian Kernighan")
	assert.Contains(t, body, "/book/the-go-programming-language")
}

func TestBooksPagePagination(t *testing.T) {
	mux := newTestServer(t, &fakeSearcher{result: catalog.SearchResult{
		Items: []catalog.Volume{testVolume},
		Total: 100,
	}})

	w := get(mux, "/books?page=3")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Page 3 of 9")
	assert.Contains(t, body, "/books?page=2")
	assert.Contains(t, body, "/books?page=4")
}

func TestBookBySlug(t *testing.T) {
	mux := newTestServer(t, &fakeSearcher{result: catalog.SearchResult{
		Items: []catalog.Volume{testVolume},
		Total: 1,
	}})

	w := get(mux, "/book/the-go-programming-language")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Go Programming Language")
}

func TestBookBySlugNotFound(t *testing.T) {
	mux := newTestServer(t, &fakeSearcher{})

	w := get(mux, "/book/no-such-book")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page Not Found")
}

func TestBookByID(t *testing.T) {
	mux := newTestServer(t, &fakeSearcher{volume: testVolume})

	w := get(mux, "/books/abc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Go Programming Language")
}

func TestBookByIDNotFound(t *testing.T) {
	mux := newTestServer(t, &fakeSearcher{err: catalog.ErrNotFound})

	w := get(mux, "/books/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogFailureRendersErrorPanel(t *testing.T) {
	mux := newTestServer(t, &fakeSearcher{err: errors.New("upstream down")})

	w := get(mux, "/books")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Oops! Something went wrong")
	assert.Contains(t, body, "Try Again")
	assert.Contains(t, body, `href="/books"`)
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	mux := newTestServer(t, &fakeSearcher{})

	w := get(mux, "/definitely/not/a/page")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page Not Found")
}

func TestManagePage(t *testing.T) {
	mux := newTestServer(t, &fakeSearcher{})

	w := get(mux, "/books/manage")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Book Management")
	assert.Contains(t, body, "/static/manage.js")
}

func TestStaticPagesAndActiveNav(t *testing.T) {
	mux := newTestServer(t, &fakeSearcher{})

	tests := []struct {
		path     string
		contains string
	}{
		{"/about", "About BookStore"},
		{"/contact", "Contact"},
		{"/login", "Login"},
		{"/signup", "Sign Up"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(mux, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, tt.contains)
			assert.Contains(t, body, `href="`+tt.path+`" class="active"`)
		})
	}
}

func TestStaticAssetsServed(t *testing.T) {
	mux := newTestServer(t, &fakeSearcher{})

	w := get(mux, "/static/manage.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "book-form")
}
