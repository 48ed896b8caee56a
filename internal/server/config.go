package server

import "fmt"

// HttpConfig holds the listener settings for the standalone server.
type HttpConfig struct {
	Host string `conf:"host"`
	Port int    `conf:"port"`
	H2c  bool   `conf:"h2c"`
}

// Addr returns the host:port the server listens on.
func (c HttpConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
