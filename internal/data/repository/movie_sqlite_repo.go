package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"go.uber.org/zap"
)

type sqliteMovieRepository struct {
	conn *sql.DB
	db   database.SQLQuerier
	inTx bool
	log  *zap.Logger
}

// NewSQLiteMovieRepository returns a MovieRepository backed by an embedded SQLite database.
func NewSQLiteMovieRepository(db *sql.DB, log *zap.Logger) MovieRepository {
	return &sqliteMovieRepository{
		conn: db,
		db:   db,
		log:  log.With(zap.String("repository", "movie"), zap.String("driver", "sqlite")),
	}
}

func (r *sqliteMovieRepository) InTx(ctx context.Context, fn func(repo MovieRepository) error) error {
	if r.inTx {
		return fn(r)
	}

	return database.WithSQLTx(ctx, r.conn, func(tx *sql.Tx) error {
		return fn(&sqliteMovieRepository{
			conn: r.conn,
			db:   tx,
			inTx: true,
			log:  r.log,
		})
	})
}

func (r *sqliteMovieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all movies", zap.Error(err))
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}

	return r.scanMovies(rows)
}

func (r *sqliteMovieRepository) FindByTitleContains(ctx context.Context, fragment string) ([]*entity.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE instr(unicode_lower(COALESCE(title, '')), unicode_lower(?)) > 0
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, fragment)
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

func (r *sqliteMovieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`

	var movie entity.Movie
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genre,
		&movie.ReleaseYear,
		&movie.Summary,
		&movie.Director,
	)

	if errors.Is(err, sql.ErrNoRows) {
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

func (r *sqliteMovieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (title, genre, release_year, summary, director)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		movie.Title,
		movie.Genre,
		movie.ReleaseYear,
		movie.Summary,
		movie.Director,
	)
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read movie id: %w", err)
	}
	movie.ID = id

	return nil
}

func (r *sqliteMovieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = ?, genre = ?, release_year = ?, summary = ?, director = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		movie.Title,
		movie.Genre,
		movie.ReleaseYear,
		movie.Summary,
		movie.Director,
		movie.ID,
	)
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("movie %d: %w", movie.ID, ErrMovieNotFound)
	}

	return nil
}

func (r *sqliteMovieRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		r.log.Debug("Delete of missing movie ignored", zap.Int64("movie_id", id))
		return nil
	}

	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}

func (r *sqliteMovieRepository) scanMovies(rows *sql.Rows) ([]*entity.Movie, error) {
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
