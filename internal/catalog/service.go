package catalog

import "context"

const (
	homeQuery = "bestsellers"
	listQuery = "programming"

	// PageSize is the fixed number of items per catalog page.
	PageSize = 12
)

// Service answers the catalog views. Every call goes straight to the
// volumes API; nothing is cached between calls or across page views.
type Service struct {
	searcher Searcher
}

func NewService(searcher Searcher) *Service {
	return &Service{searcher: searcher}
}

// Featured returns the home-page selection.
func (s *Service) Featured(ctx context.Context) ([]Volume, error) {
	res, err := s.searcher.Search(ctx, homeQuery, 0, PageSize)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// Page returns one page of the browsable collection. Pages are 1-based.
func (s *Service) Page(ctx context.Context, page int) (SearchResult, error) {
	if page < 1 {
		page = 1
	}
	return s.searcher.Search(ctx, listQuery, (page-1)*PageSize, PageSize)
}

// BySlug re-resolves a catalog item from its title slug: the slug text is
// searched as a quoted exact phrase and the first result is authoritative.
// Same-title items are not disambiguated; that is the documented policy,
// inherited with the slug scheme itself.
func (s *Service) BySlug(ctx context.Context, slug string) (Volume, error) {
	res, err := s.searcher.Search(ctx, `"`+slug+`"`, 0, 1)
	if err != nil {
		return Volume{}, err
	}
	if len(res.Items) == 0 {
		return Volume{}, ErrNotFound
	}
	return res.Items[0], nil
}

// ByID looks a catalog item up by its stable volume identifier.
func (s *Service) ByID(ctx context.Context, id string) (Volume, error) {
	return s.searcher.GetVolume(ctx, id)
}
