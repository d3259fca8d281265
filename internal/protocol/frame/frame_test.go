package frame

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stompctl/stompctl/internal/protocol"
)

func TestSerializeParseRoundTrip(t *testing.T) {
	in := New(protocol.CommandSend)
	in.Append("destination", "/germany_japan")
	in.Append("receipt", "7")
	in.Body = "user:alice\ntime:12\ndescription:\nkickoff"

	raw := Serialize(in)
	out, err := Parse(string(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out.Command != in.Command {
		t.Fatalf("command mismatch: got %q want %q", out.Command, in.Command)
	}
	if len(out.Headers) != 2 {
		t.Fatalf("unexpected headers: %+v", out.Headers)
	}
	if v, ok := out.Get("destination"); !ok || v != "/germany_japan" {
		t.Fatalf("destination mismatch: %q ok=%v", v, ok)
	}
	if v, ok := out.Get("receipt"); !ok || v != "7" {
		t.Fatalf("receipt mismatch: %q ok=%v", v, ok)
	}
	if out.Body != in.Body {
		t.Fatalf("body mismatch: %q", out.Body)
	}
}

func TestSerializeNeverAppendsTerminator(t *testing.T) {
	f := New(protocol.CommandDisconnect)
	f.Append("receipt", "3")
	raw := Serialize(f)
	if bytes.IndexByte(raw, Terminator) != -1 {
		t.Fatalf("serialized frame contains terminator byte: %q", raw)
	}
	if !bytes.HasSuffix(raw, []byte("\n\n")) {
		t.Fatalf("expected blank line before empty body, got %q", raw)
	}
}

func TestParseCarriageReturnFraming(t *testing.T) {
	raw := "MESSAGE\r\nsubscription:0\r\nmessage-id:5\r\n\r\nuser:bob\r\n"
	f, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Command != protocol.CommandMessage {
		t.Fatalf("unexpected command: %q", f.Command)
	}
	if v, _ := f.Get("subscription"); v != "0" {
		t.Fatalf("unexpected subscription: %q", v)
	}
	if f.Body != "user:bob\r\n" {
		t.Fatalf("unexpected body: %q", f.Body)
	}
}

func TestParseSkipsMalformedHeaderLines(t *testing.T) {
	raw := "CONNECTED\nversion:1.2\nnot a header line\nsession:9\n\n"
	f, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(f.Headers) != 2 {
		t.Fatalf("expected malformed line skipped, got %+v", f.Headers)
	}
	if v, _ := f.Get("session"); v != "9" {
		t.Fatalf("unexpected session: %q", v)
	}
}

func TestGetLastOccurrenceWins(t *testing.T) {
	f, err := Parse("MESSAGE\ndestination:/a\ndestination:/b\n\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v, _ := f.Get("destination"); v != "/b" {
		t.Fatalf("expected last occurrence, got %q", v)
	}
}

func TestParseEmptyFrame(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrEmptyFrame) {
		t.Fatalf("expected ErrEmptyFrame, got %v", err)
	}
	if _, err := Parse("\nfoo:bar\n\n"); !errors.Is(err, ErrMissingCommand) {
		t.Fatalf("expected ErrMissingCommand, got %v", err)
	}
}

func TestParseHeaderValueWithColon(t *testing.T) {
	f, err := Parse("ERROR\nmessage:bad frame: missing destination\n\noops")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v, _ := f.Get("message"); v != "bad frame: missing destination" {
		t.Fatalf("value split at wrong colon: %q", v)
	}
	if f.Body != "oops" {
		t.Fatalf("unexpected body: %q", f.Body)
	}
}
