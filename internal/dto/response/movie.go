package response

import (
	"movie-catalog/internal/data/entity"
)

type MovieResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	ReleaseYear int    `json:"releaseYear"`
	Summary     string `json:"summary"`
	Director    string `json:"director"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Genre:       movie.Genre,
		ReleaseYear: movie.ReleaseYear,
		Summary:     movie.Summary,
		Director:    movie.Director,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	result := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		result[i] = MovieToResponse(movie)
	}
	return result
}
