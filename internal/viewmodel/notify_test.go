package viewmodel

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/rshade/accountdesk/internal/account"
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Logger: zerolog.New(&buf)}

	n.Notify(Notification{Title: TitleResult, Message: "❌ 002 failed: locked", Severity: account.SeverityError})

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"title":"Result"`)
	assert.Contains(t, out, "002 failed: locked")
}

func TestMultiNotifier(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	n := MultiNotifier(a, nil, b)

	n.Notify(Notification{Title: TitleError, Message: MessageEmptySelection, Severity: account.SeverityError})

	assert.Len(t, a.All(), 1)
	assert.Len(t, b.All(), 1)

	a.Reset()
	assert.Empty(t, a.All())
}
