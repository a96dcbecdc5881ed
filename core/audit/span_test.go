// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{1023, "1023"},
		{1024, "1.00K"},
		{1536, "1.50K"},
		{5 * bytesInMB, "5.00M"},
		{3 * bytesInGB, "3.00G"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, humanizeSize(tc.in))
	}
}

func TestSpanLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	span := Span{Path: "locales/app_it_it.ts", Locale: "it-IT", Size: 2048, Messages: 15, Warnings: 1}
	span.Begin(t.Context())
	span.End()
	span.End()
	span.Log(&logger)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))

	assert.Equal(t, "debug", rec["level"])
	assert.Equal(t, SysCatalog, rec["sys"])
	assert.Equal(t, "it-IT", rec["locale"])
	assert.Equal(t, "2.00K", rec["len"])
	assert.InDelta(t, 15, rec["messages"], 0)
	assert.InDelta(t, 1, rec["warnings"], 0)
	assert.Equal(t, "Loaded catalog", rec["message"])
}

func TestSpanLogError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := zerolog.New(&buf)

	span := Span{Path: "broken.ts", Error: errors.New("boom")}
	span.Log(&logger)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))

	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "boom", rec["error"])
	assert.NotContains(t, rec, "messages")
}
