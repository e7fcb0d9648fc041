package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/desertthunder/crate/internal/collection"
	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/services"
	"github.com/desertthunder/crate/internal/shared"
	"github.com/go-chi/chi/v5"
)

// PersistedHeader reports whether a mutation reached the backing store.
const PersistedHeader = "X-Crate-Persisted"

const maxBodyBytes = 1 << 20

// collectionHandler serves list, add and reset for one collection kind.
type collectionHandler[T any, In any] struct {
	name   string
	server *Server
	list   func(context.Context) []T
	add    func(context.Context, In) (collection.Result[T], error)
	reset  func(context.Context) collection.Result[T]
}

// mutationResponse is the body of a successful add or reset.
type mutationResponse[T any] struct {
	Item      *T   `json:"item,omitempty"`
	Items     []T  `json:"items"`
	Persisted bool `json:"persisted"`
}

func albumRoutes(s *Server) Handler {
	return &collectionHandler[models.Album, services.AlbumInput]{
		name:   "albums",
		server: s,
		list:   s.catalog.Albums,
		add:    s.catalog.AddAlbum,
		reset:  s.catalog.ResetAlbums,
	}
}

func favoriteRoutes(s *Server) Handler {
	return &collectionHandler[models.Favorite, services.FavoriteInput]{
		name:   "favorites",
		server: s,
		list:   s.catalog.Favorites,
		add:    s.catalog.AddFavorite,
		reset:  s.catalog.ResetFavorites,
	}
}

func (h *collectionHandler[T, In]) Routes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Group(func(r chi.Router) {
		r.Use(h.server.limiter.middleware)
		r.Post("/", h.handleAdd)
		r.Post("/reset", h.handleReset)
	})
}

func (h *collectionHandler[T, In]) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.list(r.Context()))
}

func (h *collectionHandler[T, In]) handleAdd(w http.ResponseWriter, r *http.Request) {
	var in In
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("invalid JSON body: %v", err))
		return
	}

	result, err := h.add(r.Context(), in)
	if err != nil {
		h.respondMutationError(w, r, err)
		return
	}

	h.server.metrics.Mutation(h.name, OutcomeAdded)
	h.server.metrics.Persisted(h.name, len(result.Items), result.Persisted)

	item := result.Items[len(result.Items)-1]
	setPersisted(w, result.Persisted)
	writeJSON(w, http.StatusCreated, mutationResponse[T]{Item: &item, Items: result.Items, Persisted: result.Persisted})
}

func (h *collectionHandler[T, In]) handleReset(w http.ResponseWriter, r *http.Request) {
	result := h.reset(r.Context())

	h.server.metrics.Mutation(h.name, OutcomeReset)
	h.server.metrics.Persisted(h.name, len(result.Items), result.Persisted)

	setPersisted(w, result.Persisted)
	writeJSON(w, http.StatusOK, mutationResponse[T]{Items: result.Items, Persisted: result.Persisted})
}

func (h *collectionHandler[T, In]) respondMutationError(w http.ResponseWriter, r *http.Request, err error) {
	var dup *models.DuplicateError
	switch {
	case errors.As(err, &dup):
		h.server.metrics.Mutation(h.name, OutcomeDuplicate)
		h.server.logger.Debug("duplicate rejected", "collection", h.name, "title", dup.Title, "request_id", GetRequestID(r.Context()))
		writeError(w, http.StatusConflict, "duplicate", err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		h.server.metrics.Mutation(h.name, OutcomeInvalid)
		writeError(w, http.StatusUnprocessableEntity, "invalid_input", err.Error())
	default:
		h.server.logger.Error("mutation failed", "collection", h.name, "error", err, "request_id", GetRequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func setPersisted(w http.ResponseWriter, persisted bool) {
	w.Header().Set(PersistedHeader, strconv.FormatBool(persisted))
}
