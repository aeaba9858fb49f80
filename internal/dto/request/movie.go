package request

import "movie-catalog/internal/data/entity"

// MovieRequest is the POST body. Any id sent by the client is ignored.
type MovieRequest struct {
	Title       string `json:"title" validate:"max=255"`
	Genre       string `json:"genre" validate:"max=255"`
	ReleaseYear int    `json:"releaseYear"`
	Summary     string `json:"summary" validate:"max=255"`
	Director    string `json:"director" validate:"max=255"`
}

// MovieUpdateRequest is the PUT body. A nil field is left untouched.
type MovieUpdateRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Genre       *string `json:"genre,omitempty" validate:"omitempty,max=255"`
	ReleaseYear *int    `json:"releaseYear,omitempty"`
	Summary     *string `json:"summary,omitempty" validate:"omitempty,max=255"`
	Director    *string `json:"director,omitempty" validate:"omitempty,max=255"`
}

// ApplyTo merges the supplied fields into movie and reports whether anything changed.
// Empty strings and the legacy -1 year count as not supplied.
func (req *MovieUpdateRequest) ApplyTo(movie *entity.Movie) bool {
	updated := false

	apply := func(src *string, dst *string) {
		if src != nil && *src != "" && *src != *dst {
			*dst = *src
			updated = true
		}
	}

	apply(req.Title, &movie.Title)
	apply(req.Genre, &movie.Genre)
	apply(req.Summary, &movie.Summary)
	apply(req.Director, &movie.Director)

	if req.ReleaseYear != nil && *req.ReleaseYear != entity.ReleaseYearUnset && *req.ReleaseYear != movie.ReleaseYear {
		movie.ReleaseYear = *req.ReleaseYear
		updated = true
	}

	return updated
}
