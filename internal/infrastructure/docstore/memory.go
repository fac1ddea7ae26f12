package docstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-process Store with the same observable semantics as
// PostgresStore. It backs the test suites and local development without a
// database.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]Document)}
}

func cloneDoc(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func (s *MemoryStore) Create(_ context.Context, collection string, doc Document, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	col, ok := s.collections[collection]
	if !ok {
		col = make(map[string]Document)
		s.collections[collection] = col
	}
	stored := cloneDoc(doc)
	delete(stored, "id")
	col[id] = stored
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, nil
	}
	out := cloneDoc(doc)
	out["id"] = id
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, partial Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.collections[collection][id]
	if !ok {
		return ErrDocumentNotFound
	}
	for k, v := range partial {
		if k == "id" {
			continue
		}
		doc[k] = v
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection][id]; !ok {
		return ErrDocumentNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) Query(_ context.Context, collection string, filters []Filter, opts QueryOptions) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []Document
	for id, doc := range s.collections[collection] {
		match := true
		for _, f := range filters {
			ok, err := matchFilter(doc[f.Field], f)
			if err != nil {
				return nil, err
			}
			if !ok {
				match = false
				break
			}
		}
		if match {
			out := cloneDoc(doc)
			out["id"] = id
			docs = append(docs, out)
		}
	}

	if opts.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			return compareValues(docs[i][opts.OrderBy], docs[j][opts.OrderBy]) < 0
		})
	}
	if opts.Limit > 0 && len(docs) > opts.Limit {
		docs = docs[:opts.Limit]
	}
	return docs, nil
}

func matchFilter(got any, f Filter) (bool, error) {
	cmp := compareValues(got, f.Value)
	switch f.Op {
	case OpEqual:
		return cmp == 0, nil
	case OpLess:
		return cmp < 0, nil
	case OpLessEqual:
		return cmp <= 0, nil
	case OpGreater:
		return cmp > 0, nil
	case OpGreaterEqual:
		return cmp >= 0, nil
	default:
		return false, fmt.Errorf("unsupported filter operator %q", f.Op)
	}
}

func compareValues(a, b any) int {
	if na, aok := toFloat(a); aok {
		if nb, bok := toFloat(b); bok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			default:
				return 0
			}
		}
	}
	sa := fmt.Sprintf("%v", a)
	sb := fmt.Sprintf("%v", b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
