package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// AssignedTasks lists the caller's assigned tasks.
func (c *Client) AssignedTasks(ctx context.Context, opts ListOptions) (*Page[Task], error) {
	return List[Task](ctx, c, "/Task/assigned", opts)
}

// CompleteTask marks an assigned task as done.
func (c *Client) CompleteTask(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/Task/%d/complete", id), nil, nil); err != nil {
		return errors.Wrap(err, "[Client.CompleteTask]")
	}
	return nil
}

// Records lists survey records.
func (c *Client) Records(ctx context.Context, opts ListOptions) (*Page[Record], error) {
	return List[Record](ctx, c, "/Record", opts)
}

// Record fetches a single survey record.
func (c *Client) Record(ctx context.Context, id int64) (*Record, error) {
	var record Record
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/Record/%d", id), nil, &record); err != nil {
		return nil, errors.Wrap(err, "[Client.Record]")
	}
	return &record, nil
}

// ApplicationTypes lists survey application types.
func (c *Client) ApplicationTypes(ctx context.Context, opts ListOptions) (*Page[ApplicationType], error) {
	return List[ApplicationType](ctx, c, "/ApplicationType", opts)
}

// Attachments lists attachment metadata.
func (c *Client) Attachments(ctx context.Context, opts ListOptions) (*Page[Attachment], error) {
	return List[Attachment](ctx, c, "/Attachment", opts)
}
