package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore keeps each collection as a table of (id TEXT, data JSONB)
// rows. Timestamps are persisted as RFC 3339 strings, so jsonb ordering on
// them is chronological.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPool creates a pgx connection pool and verifies connectivity.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info("connected to PostgreSQL")
	return pool, nil
}

// NewPostgresStore creates a PostgresStore on an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func tableName(collection string) string {
	return pgx.Identifier{collection}.Sanitize()
}

func (s *PostgresStore) Create(ctx context.Context, collection string, doc Document, id string) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	q := fmt.Sprintf("INSERT INTO %s (id, data) VALUES ($1, $2)", tableName(collection))
	if _, err := s.pool.Exec(ctx, q, id, payload); err != nil {
		return "", fmt.Errorf("create document in %s: %w", collection, err)
	}
	return id, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (Document, error) {
	q := fmt.Sprintf("SELECT data FROM %s WHERE id = $1", tableName(collection))
	var payload []byte
	err := s.pool.QueryRow(ctx, q, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s from %s: %w", id, collection, err)
	}
	doc := Document{}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document %s: %w", id, err)
	}
	doc["id"] = id
	return doc, nil
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, partial Document) error {
	payload, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("marshal partial document: %w", err)
	}
	q := fmt.Sprintf("UPDATE %s SET data = data || $2 WHERE id = $1", tableName(collection))
	tag, err := s.pool.Exec(ctx, q, id, payload)
	if err != nil {
		return fmt.Errorf("update document %s in %s: %w", id, collection, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	q := fmt.Sprintf("DELETE FROM %s WHERE id = $1", tableName(collection))
	tag, err := s.pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete document %s from %s: %w", id, collection, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func sqlOp(op Op) (string, error) {
	switch op {
	case OpEqual:
		return "=", nil
	case OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		return string(op), nil
	default:
		return "", fmt.Errorf("unsupported filter operator %q", op)
	}
}

func (s *PostgresStore) Query(ctx context.Context, collection string, filters []Filter, opts QueryOptions) ([]Document, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT id, data FROM %s", tableName(collection))

	args := make([]any, 0, len(filters)*2+1)
	for i, f := range filters {
		op, err := sqlOp(f.Op)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal filter value for %s: %w", f.Field, err)
		}
		// jsonb comparison: numeric for numbers, lexicographic for strings.
		fmt.Fprintf(&sb, "data->$%d %s $%d::jsonb", len(args)+1, op, len(args)+2)
		args = append(args, f.Field, string(value))
	}
	if opts.OrderBy != "" {
		fmt.Fprintf(&sb, " ORDER BY data->$%d", len(args)+1)
		args = append(args, opts.OrderBy)
	}
	if opts.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", opts.Limit)
	}

	rows, err := s.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var id string
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", collection, err)
		}
		doc := Document{}
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal document %s: %w", id, err)
		}
		doc["id"] = id
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	return docs, nil
}
