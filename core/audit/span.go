// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"fmt"
	"runtime/trace"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SysCatalog is the sys field of catalog load records.
const SysCatalog = "catalog"

// Span represents one catalog file being loaded.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration

	Path     string
	Locale   string
	Messages int
	Size     int64
	Warnings int
	Error    error
}

func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()
	ctx, span.task = trace.NewTask(ctx, "catalog.load")
	trace.Log(ctx, "path", span.Path)

	return ctx
}

// End stops the clock. Calling it more than once is harmless.
func (span *Span) End() {
	if span.task != nil {
		span.duration = time.Since(span.start)
		span.task.End()
		span.task = nil
	}
}

// Duration returns the time between Begin and End.
func (span *Span) Duration() time.Duration {
	return span.duration
}

// Log writes the span to logger, or to the global logger if logger is nil.
// Failed loads are logged at warn level, successful ones at debug.
func (span Span) Log(logger *zerolog.Logger) {
	if logger == nil {
		logger = &log.Logger
	}

	event := logger.Debug()
	if span.Error != nil {
		event = logger.Warn()
	}

	event.Str("sys", SysCatalog)
	event.Str("path", span.Path)
	event.Str("len", humanizeSize(span.Size))
	event.Dur("dur", span.duration)

	if span.Locale != "" {
		event.Str("locale", span.Locale)
	}

	if span.Error != nil {
		event.Err(span.Error)
		event.Msg("Failed to load catalog")

		return
	}

	event.Int("messages", span.Messages)

	if span.Warnings > 0 {
		event.Int("warnings", span.Warnings)
	}

	event.Msg("Loaded catalog")
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
	bytesInGB = bytesInMB * bytesInKB
)

func humanizeSize(x int64) string {
	if x < bytesInKB {
		return strconv.FormatInt(x, 10)
	}

	if x < bytesInMB {
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	}

	if x < bytesInGB {
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	}

	return fmt.Sprintf("%.2fG", float64(x)/bytesInGB)
}
