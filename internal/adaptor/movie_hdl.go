package adaptor

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies; a movie is six short fields.
const maxBodyBytes = 1 << 20

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetMovies(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "get movies", "")
		return
	}

	utils.WriteJSON(w, http.StatusOK, movies)
}

// SearchMovies handles GET /movies/{partialTitle}
func (h *MovieHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	partialTitle := chi.URLParam(r, "partialTitle")

	// chi matches on RawPath when the client escaped reserved characters
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(partialTitle)
		if err != nil {
			h.log.Debug("Malformed search fragment", zap.String("partial_title", partialTitle), zap.Error(err))
			utils.ResponseNotFound(w, "Not Found")
			return
		}
		partialTitle = unescaped
	}

	movies, err := h.service.SearchMovies(r.Context(), partialTitle)
	if err != nil {
		h.handleServiceError(w, r, err, "search movies", "Not Found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, movies)
}

// GetMovieByID handles GET /movies/id/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetMovieByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err, "get movie by ID", "Movie not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, movie)
}

// CreateMovie handles POST /movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "create movie", "")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/movies/id/%d", movie.ID))
	utils.WriteText(w, http.StatusCreated, "Movie created")
}

// UpdateMovie handles PUT /movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieUpdateRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "update movie", "Movie to update not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, movie)
}

// DeleteMovie handles DELETE /movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMovie(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, r, err, "delete movie", "Movie to delete not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeBody parses and validates the JSON body, writing a 400 on failure.
func (h *MovieHandler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		h.log.Debug("Invalid request body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	// the body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		h.log.Debug("Trailing data after request body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// handleServiceError maps service errors to HTTP responses
func (h *MovieHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation, notFoundMessage string) {
	requestID, _ := utils.GetRequestIDFromContext(r.Context())

	switch {
	case errors.Is(err, usecase.ErrMovieNotFound):
		h.log.Info(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("request_id", requestID),
		)
		if notFoundMessage == "" {
			notFoundMessage = "Not Found"
		}
		utils.ResponseNotFound(w, notFoundMessage)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("request_id", requestID),
		)
		utils.ResponseInternalError(w, "Internal server error")
	}
}
