package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))
	ctx := context.Background()

	t.Run("Success_NewReport", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, notifier.NotifyNewReport(ctx, "compliance@acme.de", "ACME GmbH"))
		assert.Contains(t, buf.String(), `"msg":"notification: new report"`)
		assert.Contains(t, buf.String(), `"to":"compliance@acme.de"`)
	})

	t.Run("Success_NewMessage", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, notifier.NotifyNewMessage(ctx, "compliance@acme.de", "ACME GmbH"))
		assert.Contains(t, buf.String(), `"organization":"ACME GmbH"`)
	})

	t.Run("Success_DeadlineReminder", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, notifier.NotifyDeadlineReminder(ctx, "compliance@acme.de", "ACME GmbH", 2, 1))
		assert.Contains(t, buf.String(), `"overdue":2`)
		assert.Contains(t, buf.String(), `"upcoming":1`)
	})
}
