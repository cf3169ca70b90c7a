package logger

import (
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New returns a logfmt logger writing to stderr, filtered at lvl and
// annotated with a UTC timestamp and caller.
func New(lvl string) log.Logger {
	return NewWithWriter(os.Stderr, lvl)
}

func NewWithWriter(w io.Writer, lvl string) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(w))
	l = level.NewFilter(l, levelOption(lvl))
	return log.With(l, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

// Nop is handy for tests and for optional collaborators.
func Nop() log.Logger {
	return log.NewNopLogger()
}

func levelOption(lvl string) level.Option {
	switch lvl {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
