package main

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with timestamps like "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long something took, once it is done.
type progress struct {
	start time.Time
}

func newProgress() *progress {
	return &progress{start: time.Now()}
}

func (p *progress) done(msg string) {
	log.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
