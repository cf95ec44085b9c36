package folio

import (
	"fmt"

	"github.com/golang/glog"
)

// Logger receives the experience's diagnostics. Nothing logged here is
// shown to the visitor.
type Logger interface {
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
}

// GlogLogger forwards diagnostics to glog.
type GlogLogger struct{}

func (GlogLogger) Infof(format string, args ...any)    { glog.InfoDepth(1, fmt.Sprintf(format, args...)) }
func (GlogLogger) Warningf(format string, args ...any) { glog.WarningDepth(1, fmt.Sprintf(format, args...)) }
func (GlogLogger) Errorf(format string, args ...any)   { glog.ErrorDepth(1, fmt.Sprintf(format, args...)) }

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Infof(string, ...any)    {}
func (NopLogger) Warningf(string, ...any) {}
func (NopLogger) Errorf(string, ...any)   {}
