package repository

import (
	"context"
	"errors"
	"testing"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"go.uber.org/zap/zaptest"
)

func newSQLiteRepo(t *testing.T) MovieRepository {
	t.Helper()

	db, err := database.InitSQLite(":memory:")
	if err != nil {
		t.Fatalf("InitSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewSQLiteMovieRepository(db, zaptest.NewLogger(t))
}

func seedMovie(t *testing.T, repo MovieRepository, movie entity.Movie) *entity.Movie {
	t.Helper()

	m := movie
	if err := repo.Create(context.Background(), &m); err != nil {
		t.Fatalf("Create(%q): %v", movie.Title, err)
	}
	return &m
}

func TestSQLiteMovieRepository_CreateAssignsIDAndRoundTrips(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	in := entity.Movie{
		Title:       "Inception",
		Genre:       "Sci-Fi",
		ReleaseYear: 2010,
		Summary:     "Dreams within dreams",
		Director:    "Nolan",
	}
	created := seedMovie(t, repo, in)
	if created.ID == 0 {
		t.Fatal("expected storage-assigned id")
	}

	got, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}

	in.ID = created.ID
	if *got != in {
		t.Errorf("round trip mismatch: got %+v, want %+v", *got, in)
	}
}

func TestSQLiteMovieRepository_CreateAllowsEmptyFields(t *testing.T) {
	repo := newSQLiteRepo(t)

	created := seedMovie(t, repo, entity.Movie{})

	got, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Title != "" || got.ReleaseYear != 0 {
		t.Errorf("expected empty movie, got %+v", *got)
	}
}

func TestSQLiteMovieRepository_FindAll(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	movies, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll on empty table: %v", err)
	}
	if movies == nil || len(movies) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", movies)
	}

	seedMovie(t, repo, entity.Movie{Title: "Alien"})
	seedMovie(t, repo, entity.Movie{Title: "Brazil"})

	movies, err = repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].Title != "Alien" || movies[1].Title != "Brazil" {
		t.Errorf("expected insertion order, got %q, %q", movies[0].Title, movies[1].Title)
	}
}

func TestSQLiteMovieRepository_FindByTitleContains(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	seedMovie(t, repo, entity.Movie{Title: "The Matrix"})
	seedMovie(t, repo, entity.Movie{Title: "The Matrix Reloaded"})
	seedMovie(t, repo, entity.Movie{Title: "100% Wolf"})
	seedMovie(t, repo, entity.Movie{Title: "Heat"})
	seedMovie(t, repo, entity.Movie{Title: "Amélie"})

	tests := []struct {
		name     string
		fragment string
		want     int
	}{
		{"lower case", "matrix", 2},
		{"upper case", "MATRIX", 2},
		{"exact title", "Heat", 1},
		{"non-ascii lower case", "amélie", 1},
		{"non-ascii upper case", "AMÉLIE", 1},
		{"percent is literal", "%", 1},
		{"underscore is literal", "_", 0},
		{"no match", "xyz-nomatch", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies, err := repo.FindByTitleContains(ctx, tt.fragment)
			if tt.want == 0 {
				if !errors.Is(err, ErrMovieNotFound) {
					t.Fatalf("expected ErrMovieNotFound, got movies=%v err=%v", movies, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindByTitleContains(%q): %v", tt.fragment, err)
			}
			if len(movies) != tt.want {
				t.Errorf("FindByTitleContains(%q) returned %d movies, want %d", tt.fragment, len(movies), tt.want)
			}
		})
	}
}

func TestSQLiteMovieRepository_FindByIDMissing(t *testing.T) {
	repo := newSQLiteRepo(t)

	_, err := repo.FindByID(context.Background(), 42)
	if !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}
}

func TestSQLiteMovieRepository_Update(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	movie := seedMovie(t, repo, entity.Movie{Title: "Inception", Director: "Nolan", ReleaseYear: 2010})
	movie.Title = "Inception 2"

	if err := repo.Update(ctx, movie); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.FindByID(ctx, movie.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if *got != *movie {
		t.Errorf("got %+v, want %+v", *got, *movie)
	}
}

func TestSQLiteMovieRepository_UpdateMissingDoesNotInsert(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	err := repo.Update(ctx, &entity.Movie{Base: entity.Base{ID: 99}, Title: "Ghost"})
	if !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}

	movies, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(movies) != 0 {
		t.Errorf("update of a missing id must not insert, found %d movies", len(movies))
	}
}

func TestSQLiteMovieRepository_Delete(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	movie := seedMovie(t, repo, entity.Movie{Title: "Heat"})

	if err := repo.Delete(ctx, movie.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, movie.ID); !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound after delete, got %v", err)
	}

	// Deleting again is a no-op.
	if err := repo.Delete(ctx, movie.ID); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
}

func TestSQLiteMovieRepository_ReturnsIndependentCopies(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	movie := seedMovie(t, repo, entity.Movie{Title: "Heat"})

	first, err := repo.FindByID(ctx, movie.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	first.Title = "mutated"

	second, err := repo.FindByID(ctx, movie.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if second.Title != "Heat" {
		t.Errorf("mutating a returned movie leaked into storage: %q", second.Title)
	}
}

func TestSQLiteMovieRepository_InTx(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	movie := seedMovie(t, repo, entity.Movie{Title: "Heat"})

	t.Run("commits on success", func(t *testing.T) {
		err := repo.InTx(ctx, func(tx MovieRepository) error {
			m, err := tx.FindByID(ctx, movie.ID)
			if err != nil {
				return err
			}
			m.Genre = "Crime"
			return tx.Update(ctx, m)
		})
		if err != nil {
			t.Fatalf("InTx: %v", err)
		}

		got, _ := repo.FindByID(ctx, movie.ID)
		if got.Genre != "Crime" {
			t.Errorf("expected committed genre, got %q", got.Genre)
		}
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := repo.InTx(ctx, func(tx MovieRepository) error {
			if err := tx.Delete(ctx, movie.ID); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		if _, err := repo.FindByID(ctx, movie.ID); err != nil {
			t.Errorf("delete should have been rolled back, got %v", err)
		}
	})
}
