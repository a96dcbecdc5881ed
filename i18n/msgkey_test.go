// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgKeyAsComponent(t *testing.T) {
	current.Store(nil)

	var c templ.Component = MsgKey{Context: "Settings", Source: "foo"}

	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	assert.Equal(t, "foo", sb.String())
}
