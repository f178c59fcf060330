// Package store provides a SQLite-backed store for document markup.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	path     TEXT PRIMARY KEY,
	markup   TEXT NOT NULL,
	updated  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_updated ON documents(updated);
`

// DocumentInfo describes a stored document without its markup.
type DocumentInfo struct {
	Path    string
	Updated time.Time
}

type saveReq struct {
	path   string
	markup string
	flush  chan struct{}
}

// Store is a SQLite-backed document store.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	saveCh chan saveReq
	done   chan struct{}
}

// Open creates or opens a document database at the given path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open document db: %w", err)
	}

	// SQLite pragmas for performance.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{
		db:     db,
		saveCh: make(chan saveReq, 64),
		done:   make(chan struct{}),
	}
	go s.saveLoop()
	return s, nil
}

// Close flushes queued saves and closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.Flush()
	close(s.saveCh)
	<-s.done
	return s.db.Close()
}

// SaveDocument writes markup for a path immediately.
func (s *Store) SaveDocument(path, markup string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeDocument(path, markup)
}

// QueueSave queues markup for async persistence. Non-blocking.
func (s *Store) QueueSave(path, markup string) {
	if s == nil {
		return
	}
	select {
	case s.saveCh <- saveReq{path: path, markup: markup}:
	default:
		log.Warn().Str("path", path).Msg("save channel full, dropping autosave")
	}
}

// Flush blocks until all queued saves have been written.
func (s *Store) Flush() {
	if s == nil {
		return
	}
	flushed := make(chan struct{})
	s.saveCh <- saveReq{flush: flushed}
	<-flushed
}

// LoadDocument returns the markup stored for a path.
// Safe to call on a nil receiver (returns miss).
func (s *Store) LoadDocument(path string) (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var markup string
	err := s.db.QueryRow(
		"SELECT markup FROM documents WHERE path = ?", path,
	).Scan(&markup)
	if err != nil {
		return "", false
	}
	return markup, true
}

// ListDocuments returns stored documents, most recently updated first.
// Safe to call on a nil receiver (returns nothing).
func (s *Store) ListDocuments() []DocumentInfo {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		"SELECT path, updated FROM documents ORDER BY updated DESC",
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list documents")
		return nil
	}
	defer rows.Close()

	var out []DocumentInfo
	for rows.Next() {
		var info DocumentInfo
		var updated int64
		if err := rows.Scan(&info.Path, &updated); err != nil {
			continue
		}
		info.Updated = time.Unix(updated, 0)
		out = append(out, info)
	}
	return out
}

// DeleteDocument removes a stored document. No-op on nil receiver.
func (s *Store) DeleteDocument(path string) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM documents WHERE path = ?", path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to delete document")
	}
	return err
}

// saveLoop drains saveCh and writes documents to the DB.
func (s *Store) saveLoop() {
	defer close(s.done)
	for req := range s.saveCh {
		if req.flush != nil {
			close(req.flush)
			continue
		}
		s.mu.Lock()
		if err := s.writeDocument(req.path, req.markup); err != nil {
			log.Warn().Err(err).Str("path", req.path).Msg("failed to autosave document")
		}
		s.mu.Unlock()
	}
}

// writeDocument performs the actual DB upsert. Caller holds mu.
func (s *Store) writeDocument(path, markup string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO documents (path, markup, updated) VALUES (?, ?, ?)",
		path, markup, time.Now().Unix(),
	)
	return err
}
