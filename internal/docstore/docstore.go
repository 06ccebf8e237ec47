package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/calmacil/dartscore/internal/db"
	"github.com/calmacil/dartscore/internal/errors"
	"github.com/calmacil/dartscore/internal/logger"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Document is one stored JSON record addressed by (path, id).
type Document struct {
	Path        string
	ID          string
	DataVersion int
	Data        json.RawMessage
	UpdatedAt   time.Time
}

// Op is the kind of change an event describes.
type Op string

const (
	OpSet    Op = "set"
	OpDelete Op = "delete"
)

// Event notifies subscribers of a committed change under their path.
type Event struct {
	Op   Op
	Path string
	ID   string
}

// Store is a JSON document store over SQLite. Writes commit before
// subscribers are notified, so a subscriber reading back always sees the
// new state. Safe for concurrent use.
type Store struct {
	db *db.DB

	mu     sync.RWMutex
	subs   map[string]map[int]func(Event)
	nextID int
}

// New creates a Store over an open database.
func New(database *db.DB) *Store {
	return &Store{
		db:   database,
		subs: make(map[string]map[int]func(Event)),
	}
}

// Get fetches one document. Returns a NOT_FOUND error when absent.
func (s *Store) Get(ctx context.Context, path, id string) (Document, error) {
	log := logger.FromContext(ctx).WithPrefix("docstore")

	var doc Document
	var updatedAt string
	err := s.db.QueryRowContext(ctx, `
SELECT path, id, data_version, data, updated_at
FROM documents
WHERE path = ? AND id = ?
`, path, id).Scan(&doc.Path, &doc.ID, &doc.DataVersion, (*rawJSON)(&doc.Data), &updatedAt)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			log.Debug("document not found: %s/%s", path, id)
			return Document{}, errors.NewNotFoundError("document", path+"/"+id)
		}
		log.Error("failed to get document %s/%s: %v", path, id, err)
		return Document{}, errors.NewInternalError(err)
	}
	doc.UpdatedAt = parseTimestamp(updatedAt)
	return doc, nil
}

// Set upserts a document and notifies subscribers after commit.
func (s *Store) Set(ctx context.Context, path, id string, dataVersion int, data json.RawMessage) error {
	log := logger.FromContext(ctx).WithPrefix("docstore")
	log.Debug("setting document: %s/%s (v%d, %d bytes)", path, id, dataVersion, len(data))

	_, err := s.db.ExecContext(ctx, `
INSERT INTO documents (path, id, data_version, data, updated_at)
VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(path, id) DO UPDATE SET
    data_version = excluded.data_version,
    data = excluded.data,
    updated_at = CURRENT_TIMESTAMP
`, path, id, dataVersion, string(data))
	if err != nil {
		log.Error("failed to set document %s/%s: %v", path, id, err)
		return errors.NewInternalError(err)
	}

	s.notify(Event{Op: OpSet, Path: path, ID: id})
	return nil
}

// QueryOption narrows a Query.
type QueryOption func(squirrel.SelectBuilder) squirrel.SelectBuilder

// WithDataVersion restricts results to documents of one dataVersion.
func WithDataVersion(version int) QueryOption {
	return func(q squirrel.SelectBuilder) squirrel.SelectBuilder {
		return q.Where(squirrel.Eq{"data_version": version})
	}
}

// WithIDPrefix restricts results to ids beginning with the prefix.
func WithIDPrefix(prefix string) QueryOption {
	return func(q squirrel.SelectBuilder) squirrel.SelectBuilder {
		return q.Where(squirrel.Like{"id": prefix + "%"})
	}
}

// Query lists the documents under a collection path, ordered by id.
func (s *Store) Query(ctx context.Context, path string, opts ...QueryOption) ([]Document, error) {
	log := logger.FromContext(ctx).WithPrefix("docstore")

	q := sqlBuilder.Select("path", "id", "data_version", "data", "updated_at").
		From("documents").
		Where(squirrel.Eq{"path": path}).
		OrderBy("id ASC")
	for _, opt := range opts {
		q = opt(q)
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query documents under %s: %v", path, err)
		return nil, errors.NewInternalError(err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var updatedAt string
		if err := rows.Scan(&doc.Path, &doc.ID, &doc.DataVersion, (*rawJSON)(&doc.Data), &updatedAt); err != nil {
			log.Error("failed to scan document row: %v", err)
			return nil, errors.NewInternalError(err)
		}
		doc.UpdatedAt = parseTimestamp(updatedAt)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Debug("query %s returned %d documents", path, len(docs))
	return docs, nil
}

// Delete removes a document. Deleting an absent document is a no-op and
// fires no event.
func (s *Store) Delete(ctx context.Context, path, id string) error {
	log := logger.FromContext(ctx).WithPrefix("docstore")

	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE path = ? AND id = ?`, path, id)
	if err != nil {
		log.Error("failed to delete document %s/%s: %v", path, id, err)
		return errors.NewInternalError(err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		s.notify(Event{Op: OpDelete, Path: path, ID: id})
	}
	return nil
}

// Subscribe registers a callback for committed changes under path. The
// returned function unsubscribes; it is safe to call more than once.
// Callbacks run synchronously on the writing goroutine and must not block.
func (s *Store) Subscribe(path string, fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs[path] == nil {
		s.subs[path] = make(map[int]func(Event))
	}
	id := s.nextID
	s.nextID++
	s.subs[path][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[path], id)
	}
}

func (s *Store) notify(ev Event) {
	s.mu.RLock()
	fns := make([]func(Event), 0, len(s.subs[ev.Path]))
	for _, fn := range s.subs[ev.Path] {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// rawJSON scans a TEXT column into json.RawMessage.
type rawJSON json.RawMessage

func (r *rawJSON) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*r = rawJSON(v)
	case []byte:
		*r = rawJSON(append([]byte(nil), v...))
	case nil:
		*r = nil
	default:
		return errors.NewInternalError(stderrors.New("unsupported document data type"))
	}
	return nil
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
