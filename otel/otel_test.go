package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitOpenTelemetry_Disabled(t *testing.T) {
	shutdown, err := InitOpenTelemetry(context.Background(), OtelConfig{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitOpenTelemetry_InvalidConfig(t *testing.T) {
	testCases := []struct {
		name string
		cfg  OtelConfig
	}{
		{"missing service", OtelConfig{Enabled: true, Endpoint: "localhost:4318", SampleRate: 1}},
		{"missing endpoint", OtelConfig{Enabled: true, ServiceName: "quizctl", SampleRate: 1}},
		{"sample rate too high", OtelConfig{Enabled: true, ServiceName: "quizctl", Endpoint: "localhost:4318", SampleRate: 1.5}},
		{"negative sample rate", OtelConfig{Enabled: true, ServiceName: "quizctl", Endpoint: "localhost:4318", SampleRate: -0.1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := InitOpenTelemetry(context.Background(), tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestNewResource(t *testing.T) {
	res := newResource(OtelConfig{ServiceName: "quizctl", Environment: "test"})
	require.NotNil(t, res)

	attrs := map[string]string{}
	for _, kv := range res.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "quizctl", attrs["service.name"])
	assert.Equal(t, "dev", attrs["service.version"])
	assert.Equal(t, "test", attrs["deployment.environment"])
}

func TestEndpointHelpers(t *testing.T) {
	assert.True(t, insecure("localhost:4318"))
	assert.True(t, insecure("http://collector:4318"))
	assert.False(t, insecure("https://collector:4318"))

	assert.Equal(t, "collector:4318", hostPort("https://collector:4318"))
	assert.Equal(t, "collector:4318", hostPort("http://collector:4318"))
	assert.Equal(t, "localhost:4318", hostPort("localhost:4318"))
}
