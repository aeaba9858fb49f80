package entity

// ReleaseYearUnset is the year clients send to leave release_year untouched on update.
const ReleaseYearUnset = -1

type Movie struct {
	Base
	Title       string `db:"title"`
	Genre       string `db:"genre"`
	ReleaseYear int    `db:"release_year"`
	Summary     string `db:"summary"`
	Director    string `db:"director"`
}
