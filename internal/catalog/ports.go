package catalog

import "context"

// Searcher is the outbound volumes API surface the catalog depends on.
type Searcher interface {
	Search(ctx context.Context, query string, offset, limit int) (SearchResult, error)
	GetVolume(ctx context.Context, id string) (Volume, error)
}
