package server

import (
	"net"
	"strconv"
	"strings"
)

// Config holds configuration for the local report server.
type Config struct {
	// Host is the interface to bind. Only loopback addresses are accepted.
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the port where the server will listen.
	Port int `mapstructure:"port" default:"8799"`
}

// IsLoopback reports whether Host resolves to a loopback address.
func (c Config) IsLoopback() bool {
	host := strings.TrimSpace(c.Host)
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(strings.Trim(host, "[]"))
	return ip != nil && ip.IsLoopback()
}

// Address returns the host:port listen address.
func (c Config) Address() string {
	return net.JoinHostPort(strings.Trim(c.Host, "[]"), strconv.Itoa(c.Port))
}
