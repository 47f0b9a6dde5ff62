package formatter

// ConfigurationError is returned before any network activity when a
// required setting is missing.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return e.Field + " is not configured"
}

// EmptyInputError is returned when the body left after removing front matter
// is whitespace only.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "document body is empty"
}
