// Package partyapi talks to the remote party collection:
//
//	GET    /events       -> {"data": [Party...]}
//	GET    /events/{id}  -> {"data": Party}
//	POST   /events       -> {"data": Party}
//	DELETE /events/{id}  (response ignored)
package partyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	appLog "partyplanner/internal/log"
	"partyplanner/internal/model"
)

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 4 << 20

// Client issues requests against a single collection endpoint.
type Client struct {
	client    *http.Client
	eventsURL string

	// Location is used to read date-times entered without an offset.
	Location *time.Location
}

// NewClient creates a Client for eventsURL (e.g. ".../api/<cohort>/events").
// A zero timeout means requests are never timed out.
func NewClient(eventsURL string, timeout time.Duration) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		eventsURL: strings.TrimRight(eventsURL, "/"),
		Location:  time.Local,
	}
}

// WithHTTPClient swaps the underlying transport client. Useful for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.client = hc
	return c
}

type listEnvelope struct {
	Data []model.Party `json:"data"`
}

type itemEnvelope struct {
	Data *model.Party `json:"data"`
}

// ListParties returns the collection in server order.
func (c *Client) ListParties(ctx context.Context) ([]model.Party, error) {
	var env listEnvelope
	if err := c.do(ctx, http.MethodGet, c.eventsURL, nil, &env); err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	if env.Data == nil {
		return []model.Party{}, nil
	}
	return env.Data, nil
}

// GetParty fetches a single party. A response whose data is null yields
// (nil, nil).
func (c *Client) GetParty(ctx context.Context, id model.PartyID) (*model.Party, error) {
	if id == "" {
		return nil, errors.New("get party: empty id")
	}
	var env itemEnvelope
	if err := c.do(ctx, http.MethodGet, c.itemURL(id), nil, &env); err != nil {
		return nil, fmt.Errorf("get party %s: %w", id, err)
	}
	return env.Data, nil
}

// CreateParty normalizes the date to a full ISO-8601 timestamp and posts the
// fields. It returns the server's representation of the new party, or
// (nil, nil) when the reply decodes but carries no data (a rejection).
func (c *Client) CreateParty(ctx context.Context, fields model.PartyFields) (*model.Party, error) {
	isoDate, err := model.NormalizeDate(fields.Date, c.Location)
	if err != nil {
		return nil, fmt.Errorf("create party: %w", err)
	}
	fields.Date = isoDate

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("create party: %w", err)
	}

	var env itemEnvelope
	if err := c.do(ctx, http.MethodPost, c.eventsURL, body, &env); err != nil {
		return nil, fmt.Errorf("create party: %w", err)
	}
	return env.Data, nil
}

// DeleteParty issues a DELETE. Only transport failures are reported; the
// status code and body are not inspected.
func (c *Client) DeleteParty(ctx context.Context, id model.PartyID) error {
	if id == "" {
		return errors.New("delete party: empty id")
	}
	if err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil); err != nil {
		return fmt.Errorf("delete party %s: %w", id, err)
	}
	return nil
}

func (c *Client) itemURL(id model.PartyID) string {
	return c.eventsURL + "/" + url.PathEscape(string(id))
}

// do performs one round trip. When out is nil the body is drained and
// discarded; otherwise it is decoded as JSON into out.
func (c *Client) do(ctx context.Context, method, target string, body []byte, out any) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	appLog.Debug("party api request",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	lr := io.LimitReader(resp.Body, maxBodyBytes)
	if out == nil {
		_, _ = io.Copy(io.Discard, lr)
		return nil
	}

	if err := json.NewDecoder(lr).Decode(out); err != nil {
		return fmt.Errorf("decode %s response (status %d): %w", method, resp.StatusCode, err)
	}
	return nil
}
