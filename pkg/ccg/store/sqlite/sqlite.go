// Package sqlite implements the treebank store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/poetaster-org/depccg/pkg/ccg/store"
)

// sqliteStore implements store.Store using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite treebank with WAL mode enabled, creating the
// schema when missing.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS sentences (
	id TEXT PRIMARY KEY,
	lang TEXT NOT NULL,
	tokens TEXT NOT NULL,
	diag TEXT,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS parses (
	sentence_id TEXT NOT NULL,
	rank INTEGER NOT NULL,
	score REAL NOT NULL,
	auto TEXT NOT NULL,
	PRIMARY KEY(sentence_id, rank),
	FOREIGN KEY(sentence_id) REFERENCES sentences(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sentences_created ON sentences(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveSentence inserts or replaces a sentence record.
func (s *sqliteStore) SaveSentence(ctx context.Context, sent store.Sentence) error {
	tokens, err := json.Marshal(sent.Tokens)
	if err != nil {
		return err
	}
	created := sent.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx, `
INSERT OR REPLACE INTO sentences (id, lang, tokens, diag, created_at)
VALUES (?, ?, ?, ?, ?)`,
		sent.ID, sent.Lang, string(tokens), sent.Diag, created.Format(time.RFC3339Nano))
	return err
}

// GetSentence returns a sentence by id.
func (s *sqliteStore) GetSentence(ctx context.Context, id string) (store.Sentence, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, lang, tokens, diag, created_at FROM sentences WHERE id = ?`, id)
	sent, err := scanSentence(row)
	if err == sql.ErrNoRows {
		return store.Sentence{}, false, nil
	}
	if err != nil {
		return store.Sentence{}, false, err
	}
	return sent, true, nil
}

// ListSentences returns sentences newest first.
func (s *sqliteStore) ListSentences(ctx context.Context, limit int) ([]store.Sentence, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, lang, tokens, diag, created_at FROM sentences
ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Sentence
	for rows.Next() {
		sent, err := scanSentence(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sent)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSentence(r rowScanner) (store.Sentence, error) {
	var sent store.Sentence
	var tokens, created string
	if err := r.Scan(&sent.ID, &sent.Lang, &tokens, &sent.Diag, &created); err != nil {
		return store.Sentence{}, err
	}
	if err := json.Unmarshal([]byte(tokens), &sent.Tokens); err != nil {
		return store.Sentence{}, err
	}
	if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
		sent.CreatedAt = ts
	}
	return sent, nil
}

// SaveParses replaces the stored parses for a sentence.
func (s *sqliteStore) SaveParses(ctx context.Context, sentenceID string, parses []store.Parse) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM parses WHERE sentence_id = ?`, sentenceID); err != nil {
		return err
	}
	for _, p := range parses {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO parses (sentence_id, rank, score, auto) VALUES (?, ?, ?, ?)`,
			sentenceID, p.Rank, p.Score, p.Auto); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ParsesFor returns the stored parses in rank order.
func (s *sqliteStore) ParsesFor(ctx context.Context, sentenceID string) ([]store.Parse, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT sentence_id, rank, score, auto FROM parses
WHERE sentence_id = ? ORDER BY rank`, sentenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Parse
	for rows.Next() {
		var p store.Parse
		if err := rows.Scan(&p.SentenceID, &p.Rank, &p.Score, &p.Auto); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
