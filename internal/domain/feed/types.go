package feed

// CalendarEvent is one parsed VEVENT from the calendar feed. Only events
// that yielded both a summary and a date are ever emitted by the parser.
type CalendarEvent struct {
	UID         string // may be empty
	Summary     string
	Date        string // YYYY-MM-DD, wall-clock as authored
	Description string
	Location    string
	Status      string
}
