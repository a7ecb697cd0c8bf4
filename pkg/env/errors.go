package env

// ConfigurationError is fatal: an unrecognized distribution tag, or a target
// machine that does not match the declared distribution. No retry.
type ConfigurationError struct {
    Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }

// ParseError reports vagrant ssh-config output missing an expected key.
type ParseError struct {
    Missing string
}

func (e *ParseError) Error() string { return "ssh-config output missing " + e.Missing }
