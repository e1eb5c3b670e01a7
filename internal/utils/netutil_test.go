package utils

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPortConnectable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port

	assert.True(t, CheckPortConnectable("", port, time.Second))
	assert.True(t, PortProber{Host: "127.0.0.1", Timeout: time.Second}.Probe(port))

	require.NoError(t, ln.Close())
	assert.False(t, CheckPortConnectable("127.0.0.1", port, 200*time.Millisecond))
}
