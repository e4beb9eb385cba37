// Package feed parses iCalendar text into candidate trip events.
//
// The parser is deliberately lenient: it scans VEVENT blocks out of
// whatever text it is handed, and an event block that cannot yield both a
// summary and a date is dropped silently rather than failing the whole
// feed. No timezone conversion is performed; dates are kept as authored.
package feed

import (
	"regexp"
	"strings"
)

const eventDelimiter = "BEGIN:VEVENT"

// propertyPattern matches a logical content line: NAME[;params]:VALUE
var propertyPattern = regexp.MustCompile(`^([A-Za-z0-9-]+)(?:;([^:]*))?:(.*)$`)

var digitsOnly = regexp.MustCompile(`^\d{8}$`)

// property is one scanned content line, before semantic interpretation.
type property struct {
	name   string
	params string
	value  string
}

// Parse converts raw iCalendar text into the events it contains.
func Parse(data []byte) []CalendarEvent {
	blocks := strings.Split(string(data), eventDelimiter)
	if len(blocks) < 2 {
		return nil
	}

	events := make([]CalendarEvent, 0, len(blocks)-1)
	for _, block := range blocks[1:] {
		if event, ok := eventFromProperties(scanProperties(block)); ok {
			events = append(events, event)
		}
	}

	return events
}

// scanProperties unfolds continuation lines and tokenizes the block into
// structured properties. Lines that do not match the content-line shape
// are ignored.
func scanProperties(block string) []property {
	var logical []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		// Folded line: continuation of the previous logical line.
		if (line[0] == ' ' || line[0] == '\t') && len(logical) > 0 {
			logical[len(logical)-1] += line[1:]
			continue
		}
		logical = append(logical, line)
	}

	var props []property
	for _, line := range logical {
		m := propertyPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		props = append(props, property{name: m[1], params: m[2], value: m[3]})
	}

	return props
}

// eventFromProperties interprets scanned properties as a calendar event.
// Returns false when the block lacks a summary or a usable date.
func eventFromProperties(props []property) (CalendarEvent, bool) {
	var event CalendarEvent

	for _, p := range props {
		switch {
		case p.name == "SUMMARY":
			event.Summary = p.value
		case p.name == "UID":
			event.UID = p.value
		case p.name == "DESCRIPTION":
			event.Description = unescapeText(p.value)
		case p.name == "LOCATION":
			event.Location = strings.ReplaceAll(p.value, `\,`, ",")
		case p.name == "STATUS":
			event.Status = p.value
		case strings.HasPrefix(p.name, "DTSTART"):
			event.Date = extractDate(p.value)
		}
	}

	if event.Summary == "" || event.Date == "" {
		return CalendarEvent{}, false
	}

	return event, true
}

// extractDate takes the first 8 characters of a DTSTART value as YYYYMMDD
// and reformats them to YYYY-MM-DD. The trailing UTC marker is stripped
// before slicing. Anything else yields no date.
func extractDate(value string) string {
	value = strings.TrimSuffix(strings.TrimSpace(value), "Z")
	if len(value) < 8 {
		return ""
	}
	raw := value[:8]
	if !digitsOnly.MatchString(raw) {
		return ""
	}
	return raw[:4] + "-" + raw[4:6] + "-" + raw[6:8]
}

// unescapeText undoes iCalendar TEXT escaping for the sequences the
// pipeline cares about.
func unescapeText(value string) string {
	value = strings.ReplaceAll(value, `\n`, "\n")
	value = strings.ReplaceAll(value, `\,`, ",")
	return value
}
