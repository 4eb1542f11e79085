// Package backend implements the repository contracts against the remote
// resource API. Every operation issues exactly one HTTP request; transport
// failures and non-success statuses are normalized into RemoteError.
package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteError describes a failed call to the resource API. Status is zero
// when the request never produced a response.
type RemoteError struct {
	Op       string // operation attempted, e.g. "update event"
	Resource string // "events" or "users"
	ID       string // resource id, empty for collection operations
	Status   int
	Err      error
}

func (e *RemoteError) Error() string {
	target := e.Resource
	if e.ID != "" {
		target = e.Resource + "/" + e.ID
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s returned status %d", e.Op, target, e.Status)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, target, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Client is the shared HTTP plumbing for the resource repositories. The
// timeout bounds every request so a hung backend cannot hang a user flow.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// do issues one request and decodes a JSON response into out when out is
// non-nil. Any failure comes back as a *RemoteError.
func (c *Client) do(method, path string, body, out any, op, resource, id string) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Op: op, Resource: resource, ID: id, Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return &RemoteError{Op: op, Resource: resource, ID: id, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteError{Op: op, Resource: resource, ID: id, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{Op: op, Resource: resource, ID: id, Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &RemoteError{Op: op, Resource: resource, ID: id, Err: err}
		}
	}
	return nil
}
