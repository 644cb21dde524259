// Package server provides network listeners for the HTTP server.
package server

import (
	"crypto/tls"
	"fmt"
	"net"
)

// Listener abstracts plain and TLS listener construction so the entrypoint
// can pick one from configuration.
type Listener interface {
	Listen(addr string) (net.Listener, error)
}

// TLSListener produces TLS-enabled listeners from a certificate pair on
// disk.
type TLSListener struct {
	certFile string
	keyFile  string
}

// NewTLSListener creates a listener factory for the given certificate and
// private key files.
func NewTLSListener(certFile, keyFile string) *TLSListener {
	return &TLSListener{certFile: certFile, keyFile: keyFile}
}

// Listen loads the certificate pair and opens a TLS listener on addr.
func (l *TLSListener) Listen(addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFile, l.keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	return tls.Listen("tcp", addr, &tls.Config{Certificates: []tls.Certificate{cert}})
}

// PlainListener produces unencrypted TCP listeners.
type PlainListener struct{}

// NewPlainListener creates a plain listener factory.
func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

// Listen opens a TCP listener on addr.
func (l *PlainListener) Listen(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}
