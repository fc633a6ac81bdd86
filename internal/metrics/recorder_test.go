package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutcomeFor(t *testing.T) {
	require.Equal(t, BuildSuccess, OutcomeFor(0, nil, false))
	require.Equal(t, BuildPartial, OutcomeFor(2, nil, false))
	require.Equal(t, BuildFailed, OutcomeFor(0, errors.New("store"), false))
	require.Equal(t, BuildCanceled, OutcomeFor(1, errors.New("ctx"), true))
}

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)
