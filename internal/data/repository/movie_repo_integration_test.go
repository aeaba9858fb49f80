//go:build integration

package repository

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"
	"movie-catalog/pkg/utils"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
)

func skipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := exec.CommandContext(ctx, "docker", "info").Run(); err != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

func startPostgres(t *testing.T) database.PgxIface {
	t.Helper()
	skipIfNoDocker(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "movies",
				"POSTGRES_PASSWORD": "movies",
				"POSTGRES_DB":       "movies",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}

	db, err := database.InitDB(utils.DatabaseConfig{
		Driver:   utils.DriverPostgres,
		Host:     host,
		Port:     port.Port(),
		Name:     "movies",
		User:     "movies",
		Password: "movies",
		MaxConns: 4,
	})
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(db.Close)

	return db
}

func TestMovieRepository_Postgres(t *testing.T) {
	db := startPostgres(t)
	repo := NewMovieRepository(db, zaptest.NewLogger(t))
	ctx := context.Background()

	matrix := &entity.Movie{Title: "The Matrix", Genre: "Sci-Fi", ReleaseYear: 1999, Director: "Wachowski"}
	if err := repo.Create(ctx, matrix); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.FindByID(ctx, matrix.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if *got != *matrix {
		t.Errorf("round trip mismatch: got %+v, want %+v", *got, *matrix)
	}

	for _, fragment := range []string{"matrix", "MATRIX"} {
		movies, err := repo.FindByTitleContains(ctx, fragment)
		if err != nil || len(movies) != 1 {
			t.Errorf("FindByTitleContains(%q) = %v, %v", fragment, movies, err)
		}
	}
	if _, err := repo.FindByTitleContains(ctx, "xyz-nomatch"); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("expected ErrMovieNotFound, got %v", err)
	}

	err = repo.InTx(ctx, func(tx MovieRepository) error {
		m, err := tx.FindByID(ctx, matrix.ID)
		if err != nil {
			return err
		}
		m.Title = "The Matrix Reloaded"
		return tx.Update(ctx, m)
	})
	if err != nil {
		t.Fatalf("InTx update: %v", err)
	}

	if err := repo.Update(ctx, &entity.Movie{Base: entity.Base{ID: matrix.ID + 100}}); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("expected ErrMovieNotFound for missing id, got %v", err)
	}

	if err := repo.Delete(ctx, matrix.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, matrix.ID); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
	if _, err := repo.FindByID(ctx, matrix.ID); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("expected ErrMovieNotFound after delete, got %v", err)
	}
}
