package notify

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/staticrender/internal/foundation/errors"
	"git.home.luguber.info/inful/staticrender/internal/report"
)

type fakePublisher struct {
	subject string
	data    []byte
	err     error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.subject, f.data = subject, data
	return f.err
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestNotify_PublishesJSON(t *testing.T) {
	pub := &fakePublisher{}
	n := New(pub, "", quiet())

	b := &report.Build{BuildID: "id-1", Rendered: []string{"index"}}
	require.NoError(t, n.Notify(t.Context(), b))
	require.Equal(t, DefaultSubject, pub.subject)

	var got report.Build
	require.NoError(t, json.Unmarshal(pub.data, &got))
	require.Equal(t, "id-1", got.BuildID)
	require.Equal(t, []string{"index"}, got.Rendered)
	require.NoError(t, n.Close())
}

func TestNotify_PublishErrorIsNetworkError(t *testing.T) {
	n := New(&fakePublisher{err: errors.New("connection closed")}, "custom", quiet())
	err := n.Notify(t.Context(), &report.Build{BuildID: "x"})
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNetwork))
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect("nats://127.0.0.1:1", "", quiet())
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNetwork))
}
