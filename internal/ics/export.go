package ics

import (
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "partyplanner/internal/log"
	"partyplanner/internal/model"
)

const productID = "-//partyplanner//Party Planner//EN"

// ExportParties builds an iCalendar feed with one all-day VEVENT per party.
//
//   - UID is derived from the party id and stable across exports.
//   - The day is the calendar date of the party's timestamp in UTC.
//   - Parties whose date cannot be parsed are skipped and logged.
func ExportParties(parties []model.Party, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName("Party Planner")

	skipped := 0
	for _, p := range parties {
		day, err := partyDay(p.Date)
		if err != nil {
			appLog.Error("ics export: skipping party with bad date", err, "id", p.ID, "date", p.Date)
			skipped++
			continue
		}

		ev := cal.AddEvent(uid(p.ID))
		ev.SetDtStampTime(now)
		ev.SetSummary(p.Name)
		if p.Description != "" {
			ev.SetDescription(p.Description)
		}
		if p.Location != "" {
			ev.SetLocation(p.Location)
		}
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
	}

	appLog.Debug("ics export completed", "event_count", len(parties)-skipped, "skipped", skipped)
	return cal
}

// WriteParties serializes the feed for parties to w.
func WriteParties(w io.Writer, parties []model.Party, now time.Time) error {
	_, err := io.WriteString(w, ExportParties(parties, now).Serialize())
	return err
}

func uid(id model.PartyID) string {
	return "party-" + string(id) + "@partyplanner"
}

// partyDay parses the stored date and truncates it to midnight UTC.
func partyDay(date string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, date)
	if err != nil {
		// Some records carry a bare calendar date.
		t, err = time.Parse("2006-01-02", date)
		if err != nil {
			return time.Time{}, err
		}
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
