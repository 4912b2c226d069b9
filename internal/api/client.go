package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tempo-sh/tempo/internal/domain"
)

// Client is a thin HTTP client for the tempo API, used by the CLI.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for the daemon at base, e.g. "http://127.0.0.1:7313".
func NewClient(base string) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// ─── Current timer ──────────────────────────────────────────────────────────

func (c *Client) Current() (*domain.Timer, error) {
	return c.timerCall(http.MethodGet, "/api/v1/timer", nil)
}

func (c *Client) Toggle() (*domain.Timer, error) {
	return c.timerCall(http.MethodPost, "/api/v1/timer/toggle", nil)
}

func (c *Client) Pause() (*domain.Timer, error) {
	return c.timerCall(http.MethodPost, "/api/v1/timer/pause", nil)
}

func (c *Client) AddTime(seconds int) (*domain.Timer, error) {
	return c.timerCall(http.MethodPost, "/api/v1/timer/add-time", addTimeRequest{Seconds: seconds})
}

func (c *Client) EditTask(text string) (*domain.Timer, error) {
	return c.timerCall(http.MethodPut, "/api/v1/timer/task", taskRequest{Text: text})
}

func (c *Client) CommitTask() (*domain.Timer, error) {
	return c.timerCall(http.MethodPost, "/api/v1/timer/task/commit", nil)
}

func (c *Client) AddTag(name string) (*domain.Timer, error) {
	return c.timerCall(http.MethodPost, "/api/v1/timer/tags", tagRequest{Name: name})
}

func (c *Client) RemoveTag(name string) (*domain.Timer, error) {
	return c.timerCall(http.MethodDelete, "/api/v1/timer/tags/"+url.PathEscape(name), nil)
}

func (c *Client) Reset() (*domain.Timer, error) {
	return c.timerCall(http.MethodPost, "/api/v1/timer/reset", nil)
}

func (c *Client) Complete() (*domain.Timer, error) {
	return c.timerCall(http.MethodPost, "/api/v1/timer/complete", nil)
}

func (c *Client) Queue() (*domain.Timer, error) {
	return c.timerCall(http.MethodPost, "/api/v1/timer/queue", nil)
}

// ─── History ────────────────────────────────────────────────────────────────

func (c *Client) ListTimers(status, since string, limit int) ([]*domain.Timer, error) {
	path := "/api/v1/timers?"
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if since != "" {
		q.Set("since", since)
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	var out struct {
		Timers []*domain.Timer `json:"timers"`
	}
	if err := c.do(http.MethodGet, path+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out.Timers, nil
}

func (c *Client) DeleteTimer(id string) error {
	return c.do(http.MethodDelete, "/api/v1/timers/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Resume(id string) (*domain.Timer, error) {
	return c.timerCall(http.MethodPost, "/api/v1/timers/"+url.PathEscape(id)+"/resume", nil)
}

// ─── Routines ───────────────────────────────────────────────────────────────

func (c *Client) ListRoutines() ([]*domain.Routine, error) {
	var out struct {
		Routines []*domain.Routine `json:"routines"`
	}
	if err := c.do(http.MethodGet, "/api/v1/routines", nil, &out); err != nil {
		return nil, err
	}
	return out.Routines, nil
}

func (c *Client) AddRoutine(name string) error {
	return c.do(http.MethodPost, "/api/v1/routines", routineRequest{Name: name}, nil)
}

func (c *Client) DeleteRoutine(name string) error {
	return c.do(http.MethodDelete, "/api/v1/routines/"+url.PathEscape(name), nil, nil)
}

func (c *Client) CompleteRoutine(name string) error {
	return c.do(http.MethodPost, "/api/v1/routines/"+url.PathEscape(name)+"/complete", nil, nil)
}

func (c *Client) DeleteCompletion(name, date string) error {
	path := "/api/v1/routines/" + url.PathEscape(name) + "/completions"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	return c.do(http.MethodDelete, path, nil, nil)
}

// ─── Plumbing ───────────────────────────────────────────────────────────────

func (c *Client) timerCall(method, path string, body any) (*domain.Timer, error) {
	var out domain.Timer
	if err := c.do(method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("is the daemon running? (tempo serve): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%s", apiErr.Error.Message)
		}
		return fmt.Errorf("daemon returned %s", resp.Status)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
