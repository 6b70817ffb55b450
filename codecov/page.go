package codecov

import (
	"context"
	"errors"
	"fmt"

	"github.com/s0up4200/codecovctl/schema"
)

// Page is a page of plain results that can fetch its neighbours.
// A Page is never modified after construction.
type Page[T any] struct {
	schema.Page[T]

	client  *Client
	decoder schema.Decoder[T]
}

// NewPage decodes a paginated response body with the given element decoder.
func NewPage[T any](c *Client, data []byte, dec schema.Decoder[T]) (*Page[T], error) {
	return newPage(c, data, dec)
}

func newPage[T any](c *Client, data []byte, dec schema.Decoder[T]) (*Page[T], error) {
	plain, err := schema.ParsePage(data, dec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &Page[T]{Page: plain, client: c, decoder: dec}, nil
}

// NextPage fetches the page after p. It returns nil and no error, without
// issuing a request, when p is the last page.
func (p *Page[T]) NextPage(ctx context.Context) (*Page[T], error) {
	return p.follow(ctx, p.Next, "next")
}

// PreviousPage fetches the page before p. It returns nil and no error,
// without issuing a request, when p is the first page.
func (p *Page[T]) PreviousPage(ctx context.Context) (*Page[T], error) {
	return p.follow(ctx, p.Previous, "previous")
}

func (p *Page[T]) follow(ctx context.Context, link *string, direction string) (*Page[T], error) {
	if link == nil {
		return nil, nil
	}

	p.client.logger.Debug().
		Str("direction", direction).
		Str("link", *link).
		Msg("Following page link")

	body, err := p.client.getURL(ctx, *link)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s page: %w", direction, err)
	}
	return newPage(p.client, body, p.decoder)
}

// BoundPage is a page whose results are API-bound values built from the
// plain results by an UpgradeFunc. The Scope given at construction is
// handed to every upgrade on every page reached from this one.
type BoundPage[T, A any] struct {
	Count      int
	Next       *string
	Previous   *string
	Results    []A
	TotalPages int

	plain   *Page[T]
	upgrade UpgradeFunc[T, A]
	scope   Scope
}

// Bind upgrades every result of p. Count, links and order are preserved.
func Bind[T, A any](p *Page[T], upgrade UpgradeFunc[T, A], scope Scope) *BoundPage[T, A] {
	results := make([]A, len(p.Results))
	for i, item := range p.Results {
		results[i] = upgrade(item, p.client, scope)
	}
	return &BoundPage[T, A]{
		Count:      p.Count,
		Next:       p.Next,
		Previous:   p.Previous,
		Results:    results,
		TotalPages: p.TotalPages,
		plain:      p,
		upgrade:    upgrade,
		scope:      scope,
	}
}

// Plain returns the underlying page of plain results.
func (b *BoundPage[T, A]) Plain() *Page[T] {
	return b.plain
}

// Scope returns the upgrade context shared by every page of this walk.
func (b *BoundPage[T, A]) Scope() Scope {
	return b.scope
}

// HasNext reports whether a following page exists.
func (b *BoundPage[T, A]) HasNext() bool {
	return b.Next != nil
}

// HasPrevious reports whether a preceding page exists.
func (b *BoundPage[T, A]) HasPrevious() bool {
	return b.Previous != nil
}

// NextPage fetches and binds the page after b, or returns nil on the last page.
func (b *BoundPage[T, A]) NextPage(ctx context.Context) (*BoundPage[T, A], error) {
	next, err := b.plain.NextPage(ctx)
	if err != nil || next == nil {
		return nil, err
	}
	return Bind(next, b.upgrade, b.scope), nil
}

// PreviousPage fetches and binds the page before b, or returns nil on the first page.
func (b *BoundPage[T, A]) PreviousPage(ctx context.Context) (*BoundPage[T, A], error) {
	prev, err := b.plain.PreviousPage(ctx)
	if err != nil || prev == nil {
		return nil, err
	}
	return Bind(prev, b.upgrade, b.scope), nil
}

// Walk calls fn for every result of first and of each following page.
// Returning ErrStopWalk from fn ends the walk without error.
func Walk[T any](ctx context.Context, first *Page[T], fn func(T) error) error {
	for page := first; page != nil; {
		for _, item := range page.Results {
			if err := fn(item); err != nil {
				if errors.Is(err, ErrStopWalk) {
					return nil
				}
				return err
			}
		}

		next, err := page.NextPage(ctx)
		if err != nil {
			return err
		}
		page = next
	}
	return nil
}

// WalkBound is Walk for bound pages.
func WalkBound[T, A any](ctx context.Context, first *BoundPage[T, A], fn func(A) error) error {
	for page := first; page != nil; {
		for _, item := range page.Results {
			if err := fn(item); err != nil {
				if errors.Is(err, ErrStopWalk) {
					return nil
				}
				return err
			}
		}

		next, err := page.NextPage(ctx)
		if err != nil {
			return err
		}
		page = next
	}
	return nil
}

// Collect walks every page starting at first and returns all results in order.
func Collect[T any](ctx context.Context, first *Page[T]) ([]T, error) {
	var all []T
	err := Walk(ctx, first, func(item T) error {
		all = append(all, item)
		return nil
	})
	return all, err
}

// CollectBound is Collect for bound pages.
func CollectBound[T, A any](ctx context.Context, first *BoundPage[T, A]) ([]A, error) {
	var all []A
	err := WalkBound(ctx, first, func(item A) error {
		all = append(all, item)
		return nil
	})
	return all, err
}
