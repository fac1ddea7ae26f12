package docstore

import (
	"context"
	"errors"
)

// Document is the raw persisted form of an entity. Typed coercion happens in
// the repository mappers, never here.
type Document map[string]any

// Op is a filter comparison operator.
type Op string

const (
	OpEqual        Op = "=="
	OpLess         Op = "<"
	OpLessEqual    Op = "<="
	OpGreater      Op = ">"
	OpGreaterEqual Op = ">="
)

// Filter restricts a query to documents whose field compares to Value.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// QueryOptions tunes a query. OrderBy is a single field name; hot paths keep
// it empty and sort in memory so no composite index is ever required.
type QueryOptions struct {
	OrderBy string
	Limit   int
}

// ErrDocumentNotFound is returned by Update and Delete when the target
// document does not exist. Get reports absence as (nil, nil).
var ErrDocumentNotFound = errors.New("document not found")

// Store is a minimal document store keyed by opaque string IDs.
type Store interface {
	// Create stores doc under id, generating an ID when id is empty, and
	// returns the document ID.
	Create(ctx context.Context, collection string, doc Document, id string) (string, error)
	// Get returns the document (with its "id" field populated) or nil when
	// absent.
	Get(ctx context.Context, collection, id string) (Document, error)
	// Update merges partial into the stored document.
	Update(ctx context.Context, collection, id string, partial Document) error
	Delete(ctx context.Context, collection, id string) error
	// Query returns documents matching every filter, each with its "id"
	// field populated. Results are unordered unless opts.OrderBy is set.
	Query(ctx context.Context, collection string, filters []Filter, opts QueryOptions) ([]Document, error)
}
