package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portfolio-api/pkg/config"
)

func TestDisabledTracingIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), &config.Config{ServiceName: "portfolio-api"}, nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestUnknownExporterRejected(t *testing.T) {
	cfg := &config.Config{ServiceName: "portfolio-api", Tracing: config.TracingConfig{Enabled: true, Exporter: "zipkin"}}
	_, err := Init(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "zipkin")
}

func TestStdoutExporterShutsDown(t *testing.T) {
	cfg := &config.Config{ServiceName: "portfolio-api", Tracing: config.TracingConfig{Enabled: true, Exporter: ExporterStdout}}
	shutdown, err := Init(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
