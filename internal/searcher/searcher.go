package searcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Zie619/n8n-workflows/internal/storage"
	"github.com/Zie619/n8n-workflows/pkg/types"
)

const (
	// DefaultLimit is applied when the caller does not request a page size.
	DefaultLimit = 50
	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 100

	cacheSize = 256
)

// FilterAll is the sentinel value meaning "do not filter on this field".
const FilterAll = "all"

var (
	ErrInvalidTriggerFilter    = fmt.Errorf("trigger filter must be one of all, Manual, Webhook, Scheduled, Triggered")
	ErrInvalidComplexityFilter = fmt.Errorf("complexity filter must be one of all, low, medium, high")
)

// Request describes one search call. Zero values mean no query text, no
// filters, first page at the default size.
type Request struct {
	Query      string
	Trigger    string
	Complexity string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// Response is one page of results plus the pagination envelope.
type Response struct {
	Workflows []*types.Workflow
	Total     int
	Limit     int
	Offset    int
	HasMore   bool
	Query     string
}

// Searcher validates requests, translates them into store queries, and
// caches recent result pages. The cache is purged whenever the index
// changes, so entries never outlive the data they describe.
type Searcher struct {
	store storage.Store
	cache *lru.Cache[string, *Response]
}

func New(store storage.Store) (*Searcher, error) {
	cache, err := lru.New[string, *Response](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create search cache: %w", err)
	}
	return &Searcher{store: store, cache: cache}, nil
}

// Search runs one search request. Filter values are validated before any
// store access so a bad filter never costs a query.
func (s *Searcher) Search(ctx context.Context, req Request) (*Response, error) {
	if err := validateFilters(req); err != nil {
		return nil, err
	}
	req = normalize(req)

	key := cacheKey(req)
	if cached, ok := s.cache.Get(key); ok {
		return copyResponse(cached), nil
	}

	params := storage.SearchParams{
		Match:      BuildMatchQuery(req.Query),
		ActiveOnly: req.ActiveOnly,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}
	if req.Trigger != FilterAll {
		params.TriggerType = req.Trigger
	}
	if req.Complexity != FilterAll {
		params.Complexity = req.Complexity
	}

	workflows, total, err := s.store.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	resp := &Response{
		Workflows: workflows,
		Total:     total,
		Limit:     req.Limit,
		Offset:    req.Offset,
		HasMore:   req.Offset+len(workflows) < total,
		Query:     req.Query,
	}
	s.cache.Add(key, resp)
	return copyResponse(resp), nil
}

// Invalidate drops every cached page. Called after any reindex.
func (s *Searcher) Invalidate() {
	s.cache.Purge()
}

func validateFilters(req Request) error {
	if req.Trigger != "" && req.Trigger != FilterAll && !types.ValidTriggerType(req.Trigger) {
		return ErrInvalidTriggerFilter
	}
	if req.Complexity != "" && req.Complexity != FilterAll && !types.ValidComplexity(req.Complexity) {
		return ErrInvalidComplexityFilter
	}
	return nil
}

func normalize(req Request) Request {
	if req.Trigger == "" {
		req.Trigger = FilterAll
	}
	if req.Complexity == "" {
		req.Complexity = FilterAll
	}
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}
	if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}
	return req
}

func cacheKey(req Request) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%t|%d|%d",
		req.Query, req.Trigger, req.Complexity, req.ActiveOnly, req.Limit, req.Offset)))
	return hex.EncodeToString(sum[:])
}

// copyResponse returns a page copy whose records are the caller's own, so
// mutating a returned record cannot corrupt cached state.
func copyResponse(resp *Response) *Response {
	out := *resp
	out.Workflows = make([]*types.Workflow, len(resp.Workflows))
	for i, wf := range resp.Workflows {
		dup := *wf
		dup.Integrations = append([]string(nil), wf.Integrations...)
		dup.Tags = append([]string(nil), wf.Tags...)
		out.Workflows[i] = &dup
	}
	return &out
}
