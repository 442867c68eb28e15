package clickfunnels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// DefaultMaxItems is the item count after which cursor pagination stops.
const DefaultMaxItems = 10000

// Page is one page of a cursor-paginated list.
type Page struct {
	Items []json.RawMessage
	// Next is the cursor for the following page, empty on the last page.
	Next string
	// Link is the raw Link header, passed through untouched.
	Link string
}

// PageFetcher fetches the page starting at cursor. An empty cursor requests
// the first page.
type PageFetcher interface {
	FetchPage(ctx context.Context, cursor string) (*Page, error)
}

// PageFetcherFunc adapts a function to the PageFetcher interface.
type PageFetcherFunc func(ctx context.Context, cursor string) (*Page, error)

// FetchPage calls f.
func (f PageFetcherFunc) FetchPage(ctx context.Context, cursor string) (*Page, error) {
	return f(ctx, cursor)
}

// PaginationOptions configures pagination behavior.
type PaginationOptions struct {
	// MaxItems stops pagination once more than this many items were collected.
	// The page that crosses the limit is kept whole.
	MaxItems int
}

// DefaultPaginationOptions returns default pagination options.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		MaxItems: DefaultMaxItems,
	}
}

// PaginationIterator walks a cursor-paginated list one page at a time.
// Pages are fetched lazily and strictly in sequence.
type PaginationIterator struct {
	ctx       context.Context //nolint:containedctx // the iterator is bound to one traversal
	fetcher   PageFetcher
	options   *PaginationOptions
	cursor    string
	fetched   int
	pages     int
	done      bool
	truncated bool
	err       error
}

// NewPaginationIterator creates a new pagination iterator.
func NewPaginationIterator(ctx context.Context, fetcher PageFetcher, options *PaginationOptions) *PaginationIterator {
	if options == nil {
		options = DefaultPaginationOptions()
	}

	return &PaginationIterator{
		ctx:     ctx,
		fetcher: fetcher,
		options: options,
	}
}

// HasNext reports whether another page can be fetched.
func (p *PaginationIterator) HasNext() bool {
	return !p.done && p.err == nil
}

// NextPage fetches the next page and returns its items.
func (p *PaginationIterator) NextPage() ([]json.RawMessage, error) {
	if p.err != nil {
		return nil, p.err
	}

	if p.done {
		return nil, ErrNoMoreItems
	}

	page, err := p.fetcher.FetchPage(p.ctx, p.cursor)
	if err != nil {
		p.err = fmt.Errorf("fetching page %d: %w", p.pages+1, err)

		return nil, p.err
	}

	p.pages++
	p.fetched += len(page.Items)
	p.cursor = page.Next

	switch {
	case page.Next == "":
		p.done = true
	case p.options.MaxItems > 0 && p.fetched > p.options.MaxItems:
		p.done = true
		p.truncated = true
	}

	return page.Items, nil
}

// ForEach calls fn for every item across all pages.
func (p *PaginationIterator) ForEach(fn func(item json.RawMessage) error) error {
	for p.HasNext() {
		items, err := p.NextPage()
		if err != nil {
			return err
		}

		for _, item := range items {
			err = fn(item)
			if err != nil {
				return err
			}
		}
	}

	return p.err
}

// All collects every item. On error the partial result is discarded.
func (p *PaginationIterator) All() ([]json.RawMessage, error) {
	all := make([]json.RawMessage, 0)

	for p.HasNext() {
		items, err := p.NextPage()
		if err != nil {
			return nil, err
		}

		all = append(all, items...)
	}

	if p.err != nil {
		return nil, p.err
	}

	return all, nil
}

// Truncated reports whether iteration stopped at MaxItems while the server
// still advertised another page.
func (p *PaginationIterator) Truncated() bool {
	return p.truncated
}

// Fetched returns the number of items fetched so far.
func (p *PaginationIterator) Fetched() int {
	return p.fetched
}

// Pages returns the number of pages fetched so far.
func (p *PaginationIterator) Pages() int {
	return p.pages
}

// NormalizeItems turns a response body into list items: an array yields its
// elements, an object yields itself, anything else yields nothing.
func NormalizeItems(body json.RawMessage) []json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage

		err := json.Unmarshal(trimmed, &items)
		if err != nil {
			return nil
		}

		return items
	case '{':
		return []json.RawMessage{json.RawMessage(trimmed)}
	default:
		return nil
	}
}
