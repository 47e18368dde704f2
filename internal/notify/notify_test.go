package notify_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/ddbrown30/item-browser/internal/notify"
	"github.com/stretchr/testify/assert"
)

func TestNotificationString(t *testing.T) {
	n := notify.Notification{Level: notify.Error, Message: "validFilterSources was not an array"}
	assert.Equal(t, "IB | validFilterSources was not an array", n.String())
}

func TestRecorder(t *testing.T) {
	var r notify.Recorder
	r.Notify(notify.Notification{Level: notify.Info, Message: "a"})
	r.Notify(notify.Notification{Level: notify.Warn, Message: "b"})

	assert.Len(t, r.All(), 2)
	drained := r.Drain()
	assert.Equal(t, "b", drained[1].Message)
	assert.Empty(t, r.All())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	n := notify.Logger(log.New(&buf, "", 0))
	n.Notify(notify.Notification{Level: notify.Error, Message: "boom"})
	assert.Equal(t, "error: IB | boom\n", buf.String())
}

func TestFuncAndDiscard(t *testing.T) {
	var got []string
	f := notify.Func(func(n notify.Notification) { got = append(got, n.Message) })
	f.Notify(notify.Notification{Message: "x"})
	notify.Discard.Notify(notify.Notification{Message: "y"})
	assert.Equal(t, []string{"x"}, got)
}
