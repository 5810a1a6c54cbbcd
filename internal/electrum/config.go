// Package electrum implements a multiplexed Electrum protocol client over a single TCP or TLS stream.
package electrum

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-portfolio/internal/model"
)

const (
	// DefaultPort is the plain TCP port Electrum servers listen on.
	DefaultPort = 50001

	// DefaultTLSPort is the TLS port Electrum servers listen on.
	DefaultTLSPort = 50002

	// DefaultRequestTimeout bounds a single request/response round trip.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultDialTimeout bounds connection setup including the TLS handshake.
	DefaultDialTimeout = 10 * time.Second

	// DefaultClientName is reported to the server in server.version.
	DefaultClientName = "blockinsight7000-portfolio"

	// DefaultProtocolVersion is the protocol version negotiated in server.version.
	DefaultProtocolVersion = "1.4"
)

// Config holds connection options for one indexer session.
type Config struct {
	Endpoint model.Endpoint

	// TLSSkipVerify accepts self-signed server certificates.
	TLSSkipVerify bool

	// Proxy is an optional SOCKS5 proxy host:port, e.g. a local Tor daemon.
	Proxy string

	DialTimeout    time.Duration
	RequestTimeout time.Duration

	// RequestsPerSecond caps outbound requests on the connection. Zero means unlimited.
	RequestsPerSecond int

	ClientName      string
	ProtocolVersion string
}

// DefaultConfig returns a Config for endpoint with defaults populated.
func DefaultConfig(endpoint model.Endpoint) Config {
	return Config{Endpoint: endpoint}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Endpoint.Port == 0 {
		c.Endpoint.Port = DefaultPort
		if c.Endpoint.TLS {
			c.Endpoint.Port = DefaultTLSPort
		}
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.ClientName == "" {
		c.ClientName = DefaultClientName
	}
	if c.ProtocolVersion == "" {
		c.ProtocolVersion = DefaultProtocolVersion
	}
	return c
}
