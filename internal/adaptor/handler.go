package adaptor

import (
	"movie-catalog/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Movie  *MovieHandler
	Health *HealthHandler
}

func NewHandler(service *usecase.Service, pinger Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Movie:  NewMovieHandler(service.Movie, log),
		Health: NewHealthHandler(pinger, log),
	}
}
