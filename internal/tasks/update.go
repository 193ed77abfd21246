package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// UpdateTask writes the title and status of t back to the list.
func (c *Client) UpdateTask(ctx context.Context, listID string, t Task) error {
	if t.ID == "" {
		return fmt.Errorf("task has no ID")
	}

	body, err := json.Marshal(taskUpdate{ID: t.ID, Title: t.Title, Status: t.Status})
	if err != nil {
		return fmt.Errorf("failed to marshal update: %w", err)
	}

	reqURL := fmt.Sprintf("%s/lists/%s/tasks/%s", c.baseURL, url.PathEscape(listID), url.PathEscape(t.ID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, reqURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if err := c.doRequest(req, nil); err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	return nil
}
