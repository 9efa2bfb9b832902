// Package pagination implements keyset (cursor) pagination over any store
// that can list records ordered by a unique string identifier.
package pagination

import (
	"context"
	"errors"
	"fmt"
)

// Direction selects the traversal order of a page fetch.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// MaxPageSize is the largest page a caller may request.
const MaxPageSize = 100

var (
	ErrInvalidPageSize  = fmt.Errorf("page size must be between 1 and %d", MaxPageSize)
	ErrInvalidDirection = errors.New("direction must be forward or backward")
	ErrInvalidCursor    = errors.New("cursor does not match any record")
)

// ParseDirection maps user input to a Direction. An empty value means Forward.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "", Forward:
		return Forward, nil
	case Backward:
		return Backward, nil
	default:
		return "", ErrInvalidDirection
	}
}

// Request describes the page a caller asks for.
type Request struct {
	PageSize  int
	Cursor    string
	Direction Direction
}

// Validate checks the request without touching the store.
func (r Request) Validate() error {
	if r.PageSize < 1 || r.PageSize > MaxPageSize {
		return ErrInvalidPageSize
	}
	if _, err := ParseDirection(string(r.Direction)); err != nil {
		return err
	}
	return nil
}

// Page is one slice of the collection. Items are always in ascending
// identifier order. A nil cursor means there is nothing further that way.
type Page[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`
}

// Query is the ordered range read a Source must serve. After is an
// exclusive boundary: ids greater than After when ascending, smaller when
// Descending. An empty After means the start of the collection in the
// requested order.
type Query struct {
	After      string
	Descending bool
	Limit      int
}

// Source is the read side of a store the paginator walks.
type Source[T any] interface {
	FindMany(ctx context.Context, q Query) ([]T, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// KeyFunc returns the identifier of a record.
type KeyFunc[T any] func(T) string

// Paginator pages through a Source by identifier.
type Paginator[T any] struct {
	source Source[T]
	key    KeyFunc[T]
}

func New[T any](source Source[T], key KeyFunc[T]) *Paginator[T] {
	return &Paginator[T]{source: source, key: key}
}

// Paginate returns the page described by req.
//
// One extra record beyond PageSize is fetched to detect whether the
// collection continues in the fetch direction; its id becomes the far-end
// cursor. The near-end cursor is set only when a one-record probe in the
// opposite direction confirms that something lies before the page.
//
// Cursors are exclusive, so following a far-end cursor skips the record it
// names. Callers that need every record must not rely on repeated
// forward pages alone.
func (p *Paginator[T]) Paginate(ctx context.Context, req Request) (*Page[T], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	dir, _ := ParseDirection(string(req.Direction))
	descending := dir == Backward

	if req.Cursor != "" {
		ok, err := p.source.Exists(ctx, req.Cursor)
		if err != nil {
			return nil, fmt.Errorf("resolve cursor: %w", err)
		}
		if !ok {
			return nil, ErrInvalidCursor
		}
	}

	batch, err := p.source.FindMany(ctx, Query{
		After:      req.Cursor,
		Descending: descending,
		Limit:      req.PageSize + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}

	page := &Page[T]{}

	if len(batch) > req.PageSize {
		lookahead := p.key(batch[req.PageSize])
		batch = batch[:req.PageSize]
		if descending {
			page.PrevCursor = &lookahead
		} else {
			page.NextCursor = &lookahead
		}
	}

	// Without a cursor the page starts at the edge of the collection.
	if req.Cursor != "" && len(batch) > 0 {
		edge := p.key(batch[0])
		behind, err := p.source.FindMany(ctx, Query{
			After:      edge,
			Descending: !descending,
			Limit:      1,
		})
		if err != nil {
			return nil, fmt.Errorf("probe near edge: %w", err)
		}
		if len(behind) > 0 {
			if descending {
				page.NextCursor = &edge
			} else {
				page.PrevCursor = &edge
			}
		}
	}

	if descending {
		reverse(batch)
	}
	if batch == nil {
		batch = make([]T, 0)
	}
	page.Items = batch

	return page, nil
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Map converts the items of a page while keeping its cursors.
func Map[T, U any](page *Page[T], fn func(T) U) *Page[U] {
	out := &Page[U]{
		Items:      make([]U, 0, len(page.Items)),
		NextCursor: page.NextCursor,
		PrevCursor: page.PrevCursor,
	}
	for _, item := range page.Items {
		out.Items = append(out.Items, fn(item))
	}
	return out
}
