package utils

import (
	"net"
	"strconv"
	"time"
)

const defaultProbeHost = "127.0.0.1"

/**
 * Check whether a TCP port accepts connections
 * @param {string} host - Host to dial, empty means 127.0.0.1
 * @param {int} port - Port to dial
 * @param {time.Duration} timeout - Connect timeout
 * @returns {bool} true when a connection could be established
 * @description
 * - Any accepted connection counts, the protocol spoken on the port is not checked
 * - The connection is closed immediately
 */
func CheckPortConnectable(host string, port int, timeout time.Duration) bool {
	if host == "" {
		host = defaultProbeHost
	}
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// PortProber probes ports on a fixed host with a fixed timeout.
type PortProber struct {
	Host    string
	Timeout time.Duration
}

func (p PortProber) Probe(port int) bool {
	return CheckPortConnectable(p.Host, port, p.Timeout)
}
