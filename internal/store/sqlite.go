// Package store persists ad-hoc words synthesised during realisation so
// that later runs resolve them to the same identifiers.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cours-de-latin/nlg"
)

// SQLiteStore keeps ad-hoc words in a SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and initialises the schema.
func Open(path string) (*SQLiteStore, error) {
	// modernc.org/sqlite applies each _pragma on every new connection.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Writes are serialised by SQLite anyway.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		db.Close()
		return nil, fmt.Errorf("check journal mode: %w", err)
	}
	if journalMode != "wal" {
		db.Close()
		return nil, fmt.Errorf("unexpected journal mode: got %s", journalMode)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS adhoc_words (
		id TEXT PRIMARY KEY,
		language TEXT NOT NULL,
		base TEXT NOT NULL,
		category TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_adhoc_words_language ON adhoc_words(language);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveWord records w under lang. Words without an id cannot be replayed
// and are rejected; a word already stored is left as is.
func (s *SQLiteStore) SaveWord(ctx context.Context, lang nlg.Language, w *nlg.Word) error {
	if w == nil || w.ID == "" {
		return errors.New("save word: missing id")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO adhoc_words (id, language, base, category, created_at) VALUES (?, ?, ?, ?, ?)`,
		w.ID, string(lang), w.Base, string(w.Category()), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save word %q: %w", w.ID, err)
	}
	return nil
}

// Words returns the stored words of lang in insertion order.
func (s *SQLiteStore) Words(ctx context.Context, lang nlg.Language) ([]*nlg.Word, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, base, category FROM adhoc_words WHERE language = ? ORDER BY created_at, rowid`,
		string(lang))
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var words []*nlg.Word
	for rows.Next() {
		var id, base, category string
		if err := rows.Scan(&id, &base, &category); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		w := nlg.NewWord(base, nlg.ParseCategory(category))
		w.ID = id
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}
	return words, nil
}

// Replay registers the stored words of lex's language into lex and returns
// how many were added. Words whose id is already known are skipped.
func (s *SQLiteStore) Replay(ctx context.Context, lex *nlg.Lexicon) (int, error) {
	words, err := s.Words(ctx, lex.Language())
	if err != nil {
		return 0, err
	}
	added := 0
	for _, w := range words {
		if err := lex.Register(w); err != nil {
			if errors.Is(err, nlg.ErrDuplicateID) {
				continue
			}
			return added, fmt.Errorf("replay %q: %w", w.ID, err)
		}
		added++
	}
	return added, nil
}
