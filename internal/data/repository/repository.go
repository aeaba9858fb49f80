package repository

import (
	"database/sql"

	"movie-catalog/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Movie MovieRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie: NewMovieRepository(db, log),
	}
}

// NewSQLiteRepository wires every repository against an embedded SQLite database.
func NewSQLiteRepository(db *sql.DB, log *zap.Logger) *Repository {
	return &Repository{
		Movie: NewSQLiteMovieRepository(db, log),
	}
}
