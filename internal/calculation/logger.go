package calculation

import "time"

// Logger receives engine diagnostics such as fuzzy category matches and
// unreachable FIRE targets. *logrus.Logger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all engine diagnostics
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// nowFunc stamps GeneratedAt and stands in for a missing as-of date
var nowFunc = time.Now

// SetNowFunc pins the engine clock. Passing nil restores time.Now.
func SetNowFunc(f func() time.Time) {
	if f == nil {
		f = time.Now
	}
	nowFunc = f
}
