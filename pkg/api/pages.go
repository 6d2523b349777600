package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mydatashare/mdscore/pkg/jsonmap"
	"github.com/mydatashare/mdscore/pkg/logger"
	"github.com/mydatashare/mdscore/pkg/pagination"
)

// Pagination keys of the MyDataShare API.
const (
	KeyNextOffset     = "next_offset"
	ParamOffset       = "offset"
	ResourceAuthItems = "auth_items"
)

// FetchAllPages requests rawURL with offset=0, then follows next_offset until a
// page arrives without it, and combines every page into one response.
func (c *Client) FetchAllPages(ctx context.Context, method, rawURL string, opts ...RequestOption) (jsonmap.Map, error) {
	var pages []jsonmap.Map
	offset := "0"

	for {
		page, err := c.FetchJSON(ctx, method, rawURL, with(opts, WithQuery(ParamOffset, offset))...)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)

		raw, ok := page[KeyNextOffset]
		if !ok {
			break
		}
		next, ok := jsonmap.Key(raw)
		if !ok || next == offset {
			return nil, fmt.Errorf("%w: %v", ErrPaginationStalled, raw)
		}
		c.logger.DebugContext(ctx, "fetching next page", logger.URL(rawURL), logger.Offset(next))
		offset = next
	}

	c.logger.DebugContext(ctx, "fetched all pages", logger.URL(rawURL), logger.Count(len(pages)))
	return pagination.Combine(pages)
}

// FetchAuthItems fetches the public auth_items endpoint, which also carries
// the id providers and metadata the AuthItems link to. With fetchAll every
// page is fetched and combined; otherwise only the first page is returned.
func (c *Client) FetchAuthItems(ctx context.Context, fetchAll bool, opts ...RequestOption) (jsonmap.Map, error) {
	endpoint := c.cfg.Endpoint(ResourceAuthItems)
	if fetchAll {
		return c.FetchAllPages(ctx, http.MethodPost, endpoint, opts...)
	}
	return c.FetchJSON(ctx, http.MethodPost, endpoint, opts...)
}
