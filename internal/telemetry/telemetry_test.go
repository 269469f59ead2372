package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetMetrics(t *testing.T) {
	m := GetMetrics()
	require.NotNil(t, m)
	require.Same(t, m, GetMetrics())

	require.NotNil(t, m.BuildsTotal)
	require.NotNil(t, m.BuildErrorsTotal)
	require.NotNil(t, m.BuildDuration)
	require.NotNil(t, m.OutputBytesTotal)
}

func TestMetrics_RecordBuild(t *testing.T) {
	m := GetMetrics()

	// the global provider is a no-op until Init runs, recording must still be safe
	require.NotPanics(t, func() {
		m.RecordBuild(context.Background(), "production", time.Now().Add(-time.Second), 1024, false)
		m.RecordBuild(context.Background(), "development", time.Now(), 0, true)
	})
}

func TestTracer(t *testing.T) {
	_, span := Tracer().Start(context.Background(), "test")
	defer span.End()
	require.NotNil(t, span)
}
