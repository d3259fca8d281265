package frame

import (
	"errors"
	"strings"

	"github.com/stompctl/stompctl/internal/protocol"
)

// Terminator is the single byte that ends one frame on the wire. The codec
// never emits it; the sender appends it after the serialized frame text.
const Terminator byte = 0x00

var (
	ErrEmptyFrame     = errors.New("frame: empty frame")
	ErrMissingCommand = errors.New("frame: missing command line")
)

// Header is one key:value header line.
type Header struct {
	Name  string
	Value string
}

// Frame is one complete STOMP message: command, ordered headers, body.
//
// Headers keep the order they were appended or parsed in, so Serialize
// reproduces the caller's header order. Duplicate names are retained;
// Get resolves them with a last-occurrence-wins policy.
type Frame struct {
	Command protocol.Command
	Headers []Header
	Body    string
}

// New builds a frame with the given command and no headers.
func New(cmd protocol.Command) Frame {
	return Frame{Command: cmd}
}

// Append adds one header line, preserving insertion order.
func (f *Frame) Append(name, value string) {
	f.Headers = append(f.Headers, Header{Name: name, Value: value})
}

// Get returns the value of the named header. When the header appears more
// than once the last occurrence wins.
func (f Frame) Get(name string) (string, bool) {
	for i := len(f.Headers) - 1; i >= 0; i-- {
		if f.Headers[i].Name == name {
			return f.Headers[i].Value, true
		}
	}
	return "", false
}

// Parse decodes one raw frame (terminator already stripped) into command,
// headers and body. Header lines without a colon are skipped rather than
// treated as fatal, and trailing carriage returns are stripped from every
// extracted token.
func Parse(raw string) (Frame, error) {
	if raw == "" {
		return Frame{}, ErrEmptyFrame
	}
	head, body := splitBody(raw)

	lines := strings.Split(head, "\n")
	command := strings.TrimSuffix(lines[0], "\r")
	if command == "" {
		return Frame{}, ErrMissingCommand
	}

	f := Frame{Command: protocol.Command(command), Body: body}
	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		f.Headers = append(f.Headers, Header{Name: name, Value: value})
	}
	return f, nil
}

// Serialize encodes the frame as wire text: command line, one key:value
// line per header in order, a blank line, then the body. The terminator
// byte is deliberately not appended here.
func Serialize(f Frame) []byte {
	var b strings.Builder
	b.WriteString(string(f.Command))
	b.WriteByte('\n')
	for _, h := range f.Headers {
		b.WriteString(h.Name)
		b.WriteByte(':')
		b.WriteString(h.Value)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(f.Body)
	return []byte(b.String())
}

// splitBody separates the command+header block from the body at the first
// blank line, accepting both bare-LF and CRLF framing.
func splitBody(raw string) (head, body string) {
	if i := strings.Index(raw, "\n\n"); i >= 0 {
		return raw[:i], raw[i+2:]
	}
	if i := strings.Index(raw, "\r\n\r\n"); i >= 0 {
		return raw[:i], raw[i+4:]
	}
	return raw, ""
}
