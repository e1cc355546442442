package db

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS article (
	id              TEXT PRIMARY KEY,
	slug            TEXT NOT NULL UNIQUE,
	title           TEXT NOT NULL,
	word            TEXT NOT NULL,
	puzzle_number   INTEGER NOT NULL DEFAULT 0,
	puzzle_date     DATE NOT NULL,
	content         TEXT NOT NULL,
	excerpt         TEXT NOT NULL DEFAULT '',
	category        TEXT NOT NULL,
	tags            TEXT[] NOT NULL DEFAULT '{}',
	difficulty      TEXT NOT NULL DEFAULT '',
	quality_score   INTEGER NOT NULL DEFAULT 0,
	word_count      INTEGER NOT NULL DEFAULT 0,
	reading_minutes INTEGER NOT NULL DEFAULT 0,
	writer          TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL,
	published_at    TIMESTAMPTZ,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	version         INTEGER NOT NULL DEFAULT 1,
	views           BIGINT NOT NULL DEFAULT 0,
	likes           BIGINT NOT NULL DEFAULT 0,
	UNIQUE (word, puzzle_date, category)
);
CREATE INDEX IF NOT EXISTS idx_article_published ON article(published_at DESC);
CREATE INDEX IF NOT EXISTS idx_article_category ON article(category);
`

func Connect(connStr string) error {
	if connStr == "" {
		return errors.New("database url is empty")
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err := DB.Ping(); err != nil {
		return err
	}

	_, err = DB.Exec(schema)
	return err
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}
