package config

// ConfigInitError reports that the configuration directory or file could not
// be prepared. The editor cannot start without them.
type ConfigInitError struct {
	msg string
	err error
}

func (e *ConfigInitError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *ConfigInitError) Unwrap() error {
	return e.err
}
