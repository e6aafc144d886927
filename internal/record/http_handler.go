package record

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// Handler serves the /api/books CRUD surface over a Repository.
type Handler struct {
	repo Repository
	log  *zap.Logger
}

func NewHandler(repo Repository, log *zap.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

type createRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
}

type updateRequest struct {
	ID string `json:"id" validate:"required"`
}

// List returns the full record sequence. No pagination, filtering or
// sorting.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.repo.List(r.Context())
	if err != nil {
		h.log.Error("list books", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch books")
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	body, payload, ok := h.decode(w, r)
	if !ok {
		return
	}

	var req createRequest
	_ = json.Unmarshal(body, &req)
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Title and author are required")
		return
	}

	book, err := FromPayload(payload)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid book payload")
		return
	}

	created, err := h.repo.Create(r.Context(), book)
	if err != nil {
		h.log.Error("create book", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to add book")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	body, payload, ok := h.decode(w, r)
	if !ok {
		return
	}

	var req updateRequest
	_ = json.Unmarshal(body, &req)
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Book ID is required")
		return
	}

	updated, err := h.repo.Update(r.Context(), req.ID, payload)
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Book not found")
	case err != nil:
		h.log.Error("update book", zap.Error(err), zap.String("id", req.ID))
		writeError(w, http.StatusInternalServerError, "Failed to update book")
	default:
		writeJSON(w, http.StatusOK, updated)
	}
}

// Delete removes the record named by the id query parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Book ID is required")
		return
	}

	err := h.repo.Delete(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "Book not found")
	case err != nil:
		h.log.Error("delete book", zap.Error(err), zap.String("id", id))
		writeError(w, http.StatusInternalServerError, "Failed to delete book")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Book deleted successfully"})
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) ([]byte, Payload, bool) {
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return nil, nil, false
	}
	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return nil, nil, false
	}
	return body, payload, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
