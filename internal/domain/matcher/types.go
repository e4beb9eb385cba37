package matcher

// Config holds matcher configuration
type Config struct {
	// MinMatchLength is the minimum normalized length a known client must
	// have to participate in substring/prefix matching. Prevents short
	// tokens ("Co", "Dr") from causing spurious matches.
	MinMatchLength int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		MinMatchLength: 3,
	}
}
