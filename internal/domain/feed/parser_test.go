package feed

import (
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("parses a minimal event", func(t *testing.T) {
		raw := "BEGIN:VCALENDAR\r\n" +
			"BEGIN:VEVENT\r\n" +
			"UID:abc123\r\n" +
			"SUMMARY:Acme Corp - site visit\r\n" +
			"DTSTART:20240315T090000Z\r\n" +
			"END:VEVENT\r\n" +
			"END:VCALENDAR\r\n"

		events := Parse([]byte(raw))
		require.Len(t, events, 1)

		assert.Equal(t, "abc123", events[0].UID)
		assert.Equal(t, "Acme Corp - site visit", events[0].Summary)
		assert.Equal(t, "2024-03-15", events[0].Date)
	})

	t.Run("handles date-only DTSTART with parameters", func(t *testing.T) {
		raw := "BEGIN:VEVENT\n" +
			"SUMMARY:All day\n" +
			"DTSTART;VALUE=DATE:20240401\n" +
			"END:VEVENT\n"

		events := Parse([]byte(raw))
		require.Len(t, events, 1)
		assert.Equal(t, "2024-04-01", events[0].Date)
	})

	t.Run("unfolds continuation lines", func(t *testing.T) {
		raw := "BEGIN:VEVENT\r\n" +
			"SUMMARY:Beta LLC - quarterly rev\r\n" +
			" iew meeting\r\n" +
			"DTSTART:20240510T140000Z\r\n" +
			"END:VEVENT\r\n"

		events := Parse([]byte(raw))
		require.Len(t, events, 1)
		assert.Equal(t, "Beta LLC - quarterly review meeting", events[0].Summary)
	})

	t.Run("unescapes description and location", func(t *testing.T) {
		raw := "BEGIN:VEVENT\n" +
			`SUMMARY:Escapes` + "\n" +
			"DTSTART:20240102\n" +
			`DESCRIPTION:Line one\nLine two\, with comma` + "\n" +
			`LOCATION:Springfield\, IL` + "\n" +
			"STATUS:CONFIRMED\n" +
			"END:VEVENT\n"

		events := Parse([]byte(raw))
		require.Len(t, events, 1)
		assert.Equal(t, "Line one\nLine two, with comma", events[0].Description)
		assert.Equal(t, "Springfield, IL", events[0].Location)
		assert.Equal(t, "CONFIRMED", events[0].Status)
	})

	t.Run("drops blocks missing summary or date", func(t *testing.T) {
		raw := "BEGIN:VEVENT\n" +
			"SUMMARY:No date here\n" +
			"END:VEVENT\n" +
			"BEGIN:VEVENT\n" +
			"DTSTART:20240315T090000Z\n" +
			"END:VEVENT\n" +
			"BEGIN:VEVENT\n" +
			"SUMMARY:Complete\n" +
			"DTSTART:20240315T090000Z\n" +
			"END:VEVENT\n"

		events := Parse([]byte(raw))
		require.Len(t, events, 1)
		assert.Equal(t, "Complete", events[0].Summary)
	})

	t.Run("drops events with malformed dates", func(t *testing.T) {
		raw := "BEGIN:VEVENT\n" +
			"SUMMARY:Bad date\n" +
			"DTSTART:tomorrow\n" +
			"END:VEVENT\n"

		assert.Empty(t, Parse([]byte(raw)))
	})

	t.Run("empty and eventless input yields nothing", func(t *testing.T) {
		assert.Empty(t, Parse(nil))
		assert.Empty(t, Parse([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR\n")))
	})

	t.Run("parsing is restartable", func(t *testing.T) {
		raw := []byte("BEGIN:VEVENT\nSUMMARY:Stable\nDTSTART:20240315\nEND:VEVENT\n")
		first := Parse(raw)
		second := Parse(raw)
		assert.Equal(t, first, second)
	})
}

// TestParseLibraryFixture feeds the parser a calendar produced by a
// spec-conformant serializer, including its RFC 5545 line folding.
func TestParseLibraryFixture(t *testing.T) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	event := cal.AddEvent("fixture-uid-1@example.com")
	event.SetSummary("Acme Corp - a rather long appointment summary that will certainly exceed the seventy-five octet folding limit")
	event.SetDescription("Bring the signed contract, the badge, and the parking permit")
	event.SetLocation("Springfield, IL")
	event.SetStartAt(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC))
	event.SetEndAt(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))

	cancelled := cal.AddEvent("fixture-uid-2@example.com")
	cancelled.SetSummary("Beta LLC - cancelled run")
	cancelled.SetStartAt(time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC))
	cancelled.SetStatus(ics.ObjectStatusCancelled)

	events := Parse([]byte(cal.Serialize()))
	require.Len(t, events, 2)

	assert.Equal(t, "fixture-uid-1@example.com", events[0].UID)
	assert.Contains(t, events[0].Summary, "seventy-five octet folding limit")
	assert.Equal(t, "2024-03-15", events[0].Date)
	assert.Equal(t, "Springfield, IL", events[0].Location)

	assert.Equal(t, "CANCELLED", events[1].Status)
	assert.Equal(t, "2024-03-16", events[1].Date)
}
