package logging

import (
	"io"

	"github.com/inconshreveable/log15"
)

// New returns a logfmt logger writing to w at info level and above
func New(w io.Writer) log15.Logger {
	return NewWithLevel(w, log15.LvlInfo)
}

// NewWithLevel returns a logfmt logger writing to w at the given level and above
func NewWithLevel(w io.Writer, lvl log15.Lvl) log15.Logger {
	logger := log15.New()
	logger.SetHandler(
		log15.LvlFilterHandler(
			lvl,
			log15.StreamHandler(w, log15.LogfmtFormat()),
		),
	)
	return logger
}

// Discard returns a logger that drops every record
func Discard() log15.Logger {
	logger := log15.New()
	logger.SetHandler(log15.DiscardHandler())
	return logger
}
