package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/goliatone/go-insights/components/layout"
)

// LayoutRequest asks for one page's payload.
type LayoutRequest struct {
	PageID string        `json:"page_id"`
	Filter layout.Filter `json:"filter"`
}

type layoutService interface {
	Layout(ctx context.Context, pageID string, filter layout.Filter) (layout.LayoutPayload, error)
}

// LayoutQuery executes read-only layout resolution.
type LayoutQuery struct {
	service layoutService
}

// NewLayoutQuery builds the query.
func NewLayoutQuery(service layoutService) *LayoutQuery {
	return &LayoutQuery{service: service}
}

var _ gocommand.Querier[LayoutRequest, layout.LayoutPayload] = (*LayoutQuery)(nil)

// Query resolves the payload for the page.
func (q *LayoutQuery) Query(ctx context.Context, req LayoutRequest) (layout.LayoutPayload, error) {
	return q.service.Layout(ctx, req.PageID, req.Filter)
}
