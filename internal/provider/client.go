package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Run is the slice of an actor run we care about.
type Run struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	DefaultDatasetID string `json:"defaultDatasetId"`
}

func (r Run) Terminal() bool {
	switch r.Status {
	case "SUCCEEDED", "FAILED", "ABORTED", "TIMED-OUT", "TIMED_OUT":
		return true
	}
	return false
}

func (r Run) Succeeded() bool { return r.Status == "SUCCEEDED" }

// Client talks to the actor platform's v2 REST API: start a run, poll it
// until terminal, then read the run's default dataset.
type Client struct {
	name    string // provider label used in errors
	baseURL string
	token   string
	hc      *http.Client
	limiter *HostLimiter
	poll    time.Duration
	retries int
	backoff time.Duration
}

type ClientOptions struct {
	BaseURL      string
	Token        string
	PollInterval time.Duration
	Retries      int
	Backoff      time.Duration
	Limiter      *HostLimiter
	HTTPClient   *http.Client
}

func NewClient(name string, opts ClientOptions) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 90 * time.Second}
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = 3 * time.Second
	}
	return &Client{
		name:    name,
		baseURL: opts.BaseURL,
		token:   opts.Token,
		hc:      hc,
		limiter: opts.Limiter,
		poll:    poll,
		retries: opts.Retries,
		backoff: opts.Backoff,
	}
}

// StartActor posts the input body and returns the created run. Transient
// failures are retried with linear backoff.
func (c *Client) StartActor(ctx context.Context, actorID string, input any) (Run, error) {
	u := fmt.Sprintf("%s/acts/%s/runs?token=%s", c.baseURL, url.PathEscape(actorID), url.QueryEscape(c.token))

	var run Run
	err := Retry(ctx, c.retries+1, c.backoff, func() error {
		body, err := json.Marshal(input)
		if err != nil {
			return err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		return c.doJSON(req, &run)
	})
	if err != nil {
		return Run{}, wrapf(c.name, "start-actor", err)
	}
	if run.ID == "" {
		return Run{}, errf(c.name, "start-actor", "actor %s returned no run id", actorID)
	}
	return run, nil
}

func (c *Client) GetRun(ctx context.Context, runID string) (Run, error) {
	u := fmt.Sprintf("%s/actor-runs/%s?token=%s", c.baseURL, url.PathEscape(runID), url.QueryEscape(c.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Run{}, wrapf(c.name, "get-run", err)
	}
	var run Run
	if err := c.doJSON(req, &run); err != nil {
		return Run{}, wrapf(c.name, "get-run", err)
	}
	return run, nil
}

// WaitForRun polls until the run reaches a terminal status or the timeout
// elapses. The remote job can take tens of seconds; the caller's context
// bounds the whole wait.
func (c *Client) WaitForRun(ctx context.Context, runID string, timeout time.Duration) (Run, error) {
	deadline := time.Now().Add(timeout)
	for {
		run, err := c.GetRun(ctx, runID)
		if err != nil {
			return Run{}, err
		}
		if run.Terminal() {
			return run, nil
		}
		if time.Now().After(deadline) {
			return Run{}, errf(c.name, "wait-run", "run %s timed out, last status %s", runID, run.Status)
		}
		select {
		case <-ctx.Done():
			return Run{}, wrapf(c.name, "wait-run", ctx.Err())
		case <-time.After(c.poll):
		}
	}
}

// DatasetItems reads the run's output as raw JSON items; each provider
// decodes its own item shape.
func (c *Client) DatasetItems(ctx context.Context, datasetID string, limit int) ([]json.RawMessage, error) {
	q := url.Values{}
	q.Set("clean", "true")
	q.Set("format", "json")
	q.Set("token", c.token)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	u := fmt.Sprintf("%s/datasets/%s/items?%s", c.baseURL, url.PathEscape(datasetID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, wrapf(c.name, "dataset-items", err)
	}
	var items []json.RawMessage
	if err := c.doJSON(req, &items); err != nil {
		return nil, wrapf(c.name, "dataset-items", err)
	}
	return items, nil
}

// RunAndCollect is the common start → wait → collect sequence.
func (c *Client) RunAndCollect(ctx context.Context, actorID string, input any, timeout time.Duration, limit int) ([]json.RawMessage, error) {
	run, err := c.StartActor(ctx, actorID, input)
	if err != nil {
		return nil, err
	}
	run, err = c.WaitForRun(ctx, run.ID, timeout)
	if err != nil {
		return nil, err
	}
	if !run.Succeeded() {
		return nil, errf(c.name, "wait-run", "run %s finished with status %s", run.ID, run.Status)
	}
	if run.DefaultDatasetID == "" {
		return nil, errf(c.name, "wait-run", "run %s has no default dataset", run.ID)
	}
	return c.DatasetItems(ctx, run.DefaultDatasetID, limit)
}

// doJSON runs the request through the host limiter, checks the status and
// decodes the platform's {"data": ...} envelope (dataset endpoints return a
// bare array instead).
func (c *Client) doJSON(req *http.Request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.WaitURL(req.Context(), req.URL.String()); err != nil {
			return err
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 32<<20))
	if err != nil {
		return err
	}
	if res.StatusCode >= 400 {
		return fmt.Errorf("status %d: %s", res.StatusCode, truncate(string(body), 300))
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, out)
	}
	return json.Unmarshal(body, out)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
