package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// ListOptions control paging, filtering, and ordering of table fetches.
// Zero values are omitted and the server applies its defaults.
type ListOptions struct {
	Page     int
	PageSize int
	Search   string
	SortBy   string
	Desc     bool
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(o.PageSize))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.SortBy != "" {
		q.Set("sortBy", o.SortBy)
	}
	if o.Desc {
		q.Set("desc", "true")
	}
	return q
}

// Page is one page of a collection fetch.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
}

// List performs a paged fetch against a collection endpoint.
func List[T any](ctx context.Context, c *Client, path string, opts ListOptions) (*Page[T], error) {
	if encoded := opts.query().Encode(); encoded != "" {
		path = path + "?" + encoded
	}

	var page Page[T]
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, errors.Wrap(err, "[List] "+path)
	}
	return &page, nil
}
