package services

import (
	"bytes"
	"testing"

	"service-launcher/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeServices(t *testing.T) {
	svcs := config.DefaultServices()
	prober := ProberFunc(func(port int) bool { return port == 8002 })

	statuses := ProbeServices(prober, svcs)
	require.Len(t, statuses, 3)
	assert.False(t, statuses[0].Up)
	assert.True(t, statuses[1].Up)
	assert.Equal(t, "people-matcher", statuses[1].Name)
	assert.Equal(t, "http://localhost:8002/docs", statuses[1].URL)

	var buf bytes.Buffer
	require.NoError(t, PrintStatus(&buf, statuses))
	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "running")
	assert.Contains(t, out, "stopped")
	assert.Contains(t, out, "restaurant-matcher")
}

func TestPrintStatus_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintStatus(&buf, nil))
	assert.Contains(t, buf.String(), "No services configured")
}
