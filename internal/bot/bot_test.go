package bot

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"topupbot/internal/model"
	"topupbot/internal/store"
)

// MockContext definition for internal use
type MockContext struct {
	tele.Context
	TextVal string
	SendErr error
	Sent    []interface{}
}

func (m *MockContext) Message() *tele.Message {
	return &tele.Message{Text: m.TextVal}
}

func (m *MockContext) Send(what interface{}, opts ...interface{}) error {
	m.Sent = append(m.Sent, what)
	return m.SendErr
}

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	d := NewDispatcher(st, model.NewRegistry(nil), zap.NewNop())
	return &Bot{dispatcher: d, log: zap.NewNop()}
}

func TestHandleTextSendsExactlyOneReply(t *testing.T) {
	b := newTestBot(t)

	for _, text := range []string{"/ping", "/packages", "/packages Foo", "garbage"} {
		ctx := &MockContext{TextVal: text}
		require.NoError(t, b.handleText(ctx))
		assert.Len(t, ctx.Sent, 1, "exactly one reply for %q", text)
	}
}

func TestHandleTextSwallowsSendFailure(t *testing.T) {
	b := newTestBot(t)

	ctx := &MockContext{TextVal: "/ping", SendErr: errors.New("network down")}
	assert.NoError(t, b.handleText(ctx), "delivery failure must not surface")
	assert.Len(t, ctx.Sent, 1)
}

func TestHandleTextIgnoresEmptyMessage(t *testing.T) {
	b := newTestBot(t)

	ctx := &MockContext{TextVal: ""}
	require.NoError(t, b.handleText(ctx))
	assert.Empty(t, ctx.Sent)
}
