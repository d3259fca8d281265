// Package transport owns the raw TCP byte stream under the protocol:
// dialing, sending complete frames, and blocking reads of one
// null-delimited frame at a time.
package transport

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// frameDelimiter is the byte the server ends every frame with.
const frameDelimiter byte = 0x00

const dialTimeout = 5 * time.Second

var ErrClosed = errors.New("transport: connection closed")

// Conn is one connected frame stream. Send and ReadFrame may be used
// from different goroutines; neither is safe for concurrent use with
// itself.
type Conn struct {
	conn net.Conn
	r    *bufio.Reader
	log  zerolog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Dial connects to host:port over TCP.
func Dial(host string, port int, log zerolog.Logger) (*Conn, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", addr, err)
	}
	log.Debug().Str("addr", addr).Msg("connected")
	return NewConn(conn, log), nil
}

// NewConn wraps an established net.Conn.
func NewConn(conn net.Conn, log zerolog.Logger) *Conn {
	return &Conn{conn: conn, r: bufio.NewReader(conn), log: log}
}

// Send writes one complete frame, terminator included, to the wire.
func (c *Conn) Send(frame []byte) error {
	if _, err := c.conn.Write(frame); err != nil {
		return fmt.Errorf("transport: send: %w", err)
	}
	return nil
}

// ReadFrame blocks until one full frame arrives and returns its text
// with the delimiter stripped. Any read error means the connection is
// gone and is reported as ErrClosed.
func (c *Conn) ReadFrame() (string, error) {
	raw, err := c.r.ReadString(frameDelimiter)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return raw[:len(raw)-1], nil
}

// Close shuts the connection down. Safe to call more than once.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
		c.log.Debug().Msg("connection closed")
	})
	return c.closeErr
}
