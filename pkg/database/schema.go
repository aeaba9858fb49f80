package database

// PostgresSchema creates the movies table when it does not exist yet.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS movies (
	id           BIGSERIAL PRIMARY KEY,
	title        VARCHAR(255),
	genre        VARCHAR(255),
	release_year INTEGER NOT NULL DEFAULT 0,
	summary      VARCHAR(255),
	director     VARCHAR(255)
)`

// SQLiteSchema is the SQLite rendition of PostgresSchema.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS movies (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	title        TEXT,
	genre        TEXT,
	release_year INTEGER NOT NULL DEFAULT 0,
	summary      TEXT,
	director     TEXT
)`
