package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ISOLayout is the timestamp form sent to the remote API:
// UTC with millisecond precision, e.g. 2024-01-01T00:00:00.000Z.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// PartyID is the server-assigned identifier. The API may send it as a JSON
// number or string; either way it is kept as its textual form.
type PartyID string

// UnmarshalJSON accepts both `1` and `"1"`.
func (id *PartyID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PartyID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("party id: %w", err)
	}
	*id = PartyID(n.String())
	return nil
}

func (id PartyID) String() string { return string(id) }

// Party is a single event record as returned by the remote API.
type Party struct {
	ID          PartyID `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Location    string  `json:"location"`
}

// DisplayDate returns the date at calendar-date precision (YYYY-MM-DD).
func (p Party) DisplayDate() string {
	return DisplayDate(p.Date)
}

// PartyFields is the payload of a create request.
type PartyFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}

// Trimmed returns a copy with whitespace trimmed from the text fields.
// Date is left untouched.
func (f PartyFields) Trimmed() PartyFields {
	return PartyFields{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Date:        f.Date,
		Location:    strings.TrimSpace(f.Location),
	}
}

// Complete reports whether all four fields are present.
func (f PartyFields) Complete() bool {
	return f.Name != "" && f.Description != "" && f.Date != "" && f.Location != ""
}

// DisplayDate truncates an ISO-8601 string to its first ten characters.
func DisplayDate(date string) string {
	if len(date) <= 10 {
		return date
	}
	return date[:10]
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// NormalizeDate converts form input into a full ISO-8601 UTC timestamp.
//
// A bare calendar date is taken as midnight UTC, date-times without an
// offset are read in loc (time.Local when nil), and RFC 3339 values keep
// their offset.
func NormalizeDate(input string, loc *time.Location) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", fmt.Errorf("invalid date %q", input)
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC().Format(ISOLayout), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC().Format(ISOLayout), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC().Format(ISOLayout), nil
		}
	}
	return "", fmt.Errorf("invalid date %q", input)
}
