package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/goliatone/go-insights/components/layout"
)

// CatalogRequest filters the widget library listing.
type CatalogRequest struct {
	Filter layout.Filter `json:"filter"`
}

// CatalogResult is the filtered library plus its categories.
type CatalogResult struct {
	Templates  []layout.Template `json:"templates"`
	Categories []string          `json:"categories"`
}

type catalogService interface {
	FilterTemplates(filter layout.Filter) []layout.Template
	Categories() []string
}

// CatalogQuery lists addable widget templates.
type CatalogQuery struct {
	catalog catalogService
}

// NewCatalogQuery builds the query.
func NewCatalogQuery(catalog catalogService) *CatalogQuery {
	return &CatalogQuery{catalog: catalog}
}

var _ gocommand.Querier[CatalogRequest, CatalogResult] = (*CatalogQuery)(nil)

// Query filters the catalog.
func (q *CatalogQuery) Query(_ context.Context, req CatalogRequest) (CatalogResult, error) {
	return CatalogResult{
		Templates:  q.catalog.FilterTemplates(req.Filter),
		Categories: q.catalog.Categories(),
	}, nil
}
