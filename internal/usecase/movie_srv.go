package usecase

import (
	"context"
	"fmt"
	"strconv"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"

	"go.uber.org/zap"
)

// ErrMovieNotFound is matched with errors.Is by callers of MovieService.
var ErrMovieNotFound = repository.ErrMovieNotFound

type MovieService interface {
	GetMovies(ctx context.Context) ([]response.MovieResponse, error)
	SearchMovies(ctx context.Context, partialTitle string) ([]response.MovieResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

// parseMovieID treats a malformed id like an unknown one.
func parseMovieID(movieID string) (int64, error) {
	id, err := strconv.ParseInt(movieID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid movie id %q: %w", movieID, repository.ErrMovieNotFound)
	}
	return id, nil
}

func (s *movieService) GetMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	s.log.Debug("Movies retrieved", zap.Int("count", len(movies)))
	return response.MoviesToResponse(movies), nil
}

func (s *movieService) SearchMovies(ctx context.Context, partialTitle string) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindByTitleContains(ctx, partialTitle)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	s.log.Debug("Movies matched",
		zap.String("partial_title", partialTitle),
		zap.Int("count", len(movies)),
	)
	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := parseMovieID(movieID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie by id: %w", err)
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	movie := &entity.Movie{
		Title:       req.Title,
		Genre:       req.Genre,
		ReleaseYear: req.ReleaseYear,
		Summary:     req.Summary,
		Director:    req.Director,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	id, err := parseMovieID(movieID)
	if err != nil {
		return nil, err
	}

	var (
		movie   *entity.Movie
		updated bool
	)
	err = s.repo.Movie.InTx(ctx, func(repo repository.MovieRepository) error {
		existing, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		// Save only if changes were made
		if updated = req.ApplyTo(existing); updated {
			if err := repo.Update(ctx, existing); err != nil {
				return err
			}
		}

		movie = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated",
		zap.Int64("movie_id", id),
		zap.String("title", movie.Title),
		zap.Bool("was_updated", updated),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := parseMovieID(movieID)
	if err != nil {
		return err
	}

	var title string
	err = s.repo.Movie.InTx(ctx, func(repo repository.MovieRepository) error {
		movie, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		title = movie.Title

		return repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted",
		zap.Int64("movie_id", id),
		zap.String("title", title),
	)

	return nil
}
