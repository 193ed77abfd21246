package tasks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultListOptions returns default list options
func DefaultListOptions() ListOptions {
	return ListOptions{
		ShowCompleted: false,
		MaxResults:    5,
	}
}

// ListTasks fetches up to opts.MaxResults tasks from a list. It reads a
// single page: the caller bounds the batch size per run.
func (c *Client) ListTasks(ctx context.Context, listID string, opts ListOptions) ([]Task, error) {
	if listID == "" {
		return nil, fmt.Errorf("task list ID is empty")
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultListOptions().MaxResults
	}

	params := url.Values{}
	params.Set("showCompleted", strconv.FormatBool(opts.ShowCompleted))
	params.Set("maxResults", strconv.Itoa(opts.MaxResults))

	reqURL := fmt.Sprintf("%s/lists/%s/tasks?%s", c.baseURL, url.PathEscape(listID), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	var page taskPage
	if err := c.doRequest(req, &page); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return page.Items, nil
}

// ListTaskLists returns every task list of the authenticated user.
func (c *Client) ListTaskLists(ctx context.Context) ([]TaskList, error) {
	var all []TaskList
	pageToken := ""

	for {
		params := url.Values{}
		params.Set("maxResults", "100")
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		reqURL := fmt.Sprintf("%s/users/@me/lists?%s", c.baseURL, params.Encode())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}

		var page taskListPage
		if err := c.doRequest(req, &page); err != nil {
			return nil, fmt.Errorf("list task lists: %w", err)
		}

		all = append(all, page.Items...)
		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return all, nil
}
