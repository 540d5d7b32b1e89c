package logger

// nopLogger discards every entry. Scorer, repository, and handler tests use
// it to keep output quiet without stubbing the Logger interface themselves.
type nopLogger struct{}

// NewNop returns a Logger that drops everything it is given.
func NewNop() Logger {
	return &nopLogger{}
}

func (l *nopLogger) Debug(msg string, fields ...Field) {}

func (l *nopLogger) Info(msg string, fields ...Field) {}

func (l *nopLogger) Warn(msg string, fields ...Field) {}

func (l *nopLogger) Error(msg string, fields ...Field) {}

// Fatal drops the entry like the rest; it never exits the process.
func (l *nopLogger) Fatal(msg string, fields ...Field) {}

func (l *nopLogger) With(fields ...Field) Logger {
	return l
}

func (l *nopLogger) Sync() error {
	return nil
}
