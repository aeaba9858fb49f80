package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrMovieNotFound is returned when no movie matches a lookup.
var ErrMovieNotFound = errors.New("movie not found")

type MovieRepository interface {
	// Reads
	FindAll(ctx context.Context) ([]*entity.Movie, error)
	FindByTitleContains(ctx context.Context, fragment string) ([]*entity.Movie, error)
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)

	// Writes
	Create(ctx context.Context, movie *entity.Movie) error
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) error

	// InTx runs fn with a repository bound to a single transaction.
	InTx(ctx context.Context, fn func(repo MovieRepository) error) error
}

const movieColumns = `id, COALESCE(title, ''), COALESCE(genre, ''), release_year,
		       COALESCE(summary, ''), COALESCE(director, '')`

type movieRepository struct {
	pool database.PgxIface
	db   database.Querier
	inTx bool
	log  *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		pool: db,
		db:   db,
		log:  log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) InTx(ctx context.Context, fn func(repo MovieRepository) error) error {
	if r.inTx {
		return fn(r)
	}

	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&movieRepository{
			pool: r.pool,
			db:   tx,
			inTx: true,
			log:  r.log,
		})
	})
}

func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all movies", zap.Error(err))
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}

	movies, err := r.scanMovies(rows)
	if err != nil {
		return nil, err
	}

	r.log.Debug("Movies found", zap.Int("count", len(movies)))
	return movies, nil
}

func (r *movieRepository) FindByTitleContains(ctx context.Context, fragment string) ([]*entity.Movie, error) {
	// strpos keeps the fragment literal, unlike LIKE which would expand % and _
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE strpos(lower(COALESCE(title, '')), lower($1)) > 0
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, fragment)
	if err != nil {
		r.log.Error("Failed to search movies by title",
			zap.Error(err),
			zap.String("fragment", fragment),
		)
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}

	movies, err := r.scanMovies(rows)
	if err != nil {
		return nil, err
	}

	if len(movies) == 0 {
		return nil, fmt.Errorf("title contains %q: %w", fragment, ErrMovieNotFound)
	}

	return movies, nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`
	if r.inTx {
		query += ` FOR UPDATE`
	}

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genre,
		&movie.ReleaseYear,
		&movie.Summary,
		&movie.Director,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("movie %d: %w", id, ErrMovieNotFound)
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (title, genre, release_year, summary, director)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		movie.Title,
		movie.Genre,
		movie.ReleaseYear,
		movie.Summary,
		movie.Director,
	).Scan(&movie.ID)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, genre = $3, release_year = $4, summary = $5, director = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Genre,
		movie.ReleaseYear,
		movie.Summary,
		movie.Director,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %d: %w", movie.ID, ErrMovieNotFound)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		r.log.Debug("Delete of missing movie ignored", zap.Int64("movie_id", id))
		return nil
	}

	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}

func (r *movieRepository) scanMovies(rows pgx.Rows) ([]*entity.Movie, error) {
	defer rows.Close()

	movies := make([]*entity.Movie, 0)
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Genre,
			&movie.ReleaseYear,
			&movie.Summary,
			&movie.Director,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return movies, nil
}
