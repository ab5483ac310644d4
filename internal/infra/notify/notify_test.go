package notify_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"rocketcart/internal/infra/notify"

	"github.com/stretchr/testify/assert"
)

func TestMulti_FansOut(t *testing.T) {
	var out bytes.Buffer
	var logs bytes.Buffer
	rec := &notify.Recorder{}

	n := notify.Multi{
		notify.NewWriterNotifier(&out),
		notify.NewLogNotifier(slog.New(slog.NewJSONHandler(&logs, nil))),
		rec,
	}
	n.NotifyError(context.Background(), "insufficient stock")
	n.NotifyError(context.Background(), "remove failed")

	assert.Equal(t, "error: insufficient stock\nerror: remove failed\n", out.String())
	assert.Contains(t, logs.String(), `"message":"insufficient stock"`)
	assert.Equal(t, []string{"insufficient stock", "remove failed"}, rec.Messages())
}

func TestRecorder_MessagesIsCopy(t *testing.T) {
	rec := &notify.Recorder{}
	rec.NotifyError(context.Background(), "add failed")

	msgs := rec.Messages()
	msgs[0] = "changed"

	assert.Equal(t, []string{"add failed"}, rec.Messages())
}
