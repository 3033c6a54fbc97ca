package stomp

import (
	"reflect"
	"testing"
)

func TestDecodeSendFrame(t *testing.T) {
	raw := "SEND\ndestination:/app/chat\n\n{\"sender\":\"alice\",\"content\":\"hi\"}\x00"

	frame := Decode(raw)

	if frame.Command != CommandSend {
		t.Fatalf("unexpected command: %q", frame.Command)
	}
	if got := frame.Headers["destination"]; got != "/app/chat" {
		t.Fatalf("unexpected destination: %q", got)
	}
	if frame.Body != `{"sender":"alice","content":"hi"}` {
		t.Fatalf("unexpected body: %q", frame.Body)
	}
}

func TestDecodeHeaderValueKeepsExtraColons(t *testing.T) {
	frame := Decode("SEND\ndestination:/topic:special\n\n\x00")

	if got := frame.Headers["destination"]; got != "/topic:special" {
		t.Fatalf("header split at wrong colon: %q", got)
	}
}

func TestDecodeIgnoresMalformedHeaderLine(t *testing.T) {
	frame := Decode("SEND\nnocolonhere\ndestination:/app/chat\n\nbody\x00")

	if _, ok := frame.Headers["nocolonhere"]; ok {
		t.Fatal("colon-free line should not become a header")
	}
	if got := frame.Headers["destination"]; got != "/app/chat" {
		t.Fatalf("valid header lost: %q", got)
	}
	if frame.Body != "body" {
		t.Fatalf("unexpected body: %q", frame.Body)
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	frame := Decode("")

	if frame.Command != "" {
		t.Fatalf("expected empty command, got %q", frame.Command)
	}
	if len(frame.Headers) != 0 {
		t.Fatalf("expected no headers, got %v", frame.Headers)
	}
	if frame.Body != "" {
		t.Fatalf("expected empty body, got %q", frame.Body)
	}
}

func TestDecodeConnectWithoutBody(t *testing.T) {
	frame := Decode("CONNECT\n\n\x00")

	if frame.Command != CommandConnect {
		t.Fatalf("unexpected command: %q", frame.Command)
	}
	if frame.Body != "" {
		t.Fatalf("expected empty body, got %q", frame.Body)
	}
}

func TestDecodeBodyPreservesNewlines(t *testing.T) {
	frame := Decode("SEND\ndestination:/app/chat\n\nline one\nline two\x00")

	if frame.Body != "line one\nline two" {
		t.Fatalf("unexpected body: %q", frame.Body)
	}
}

func TestMessageFrame(t *testing.T) {
	got := Message("/topic/messages", `{"id":"1"}`)
	want := "MESSAGE\ndestination:/topic/messages\n\n{\"id\":\"1\"}\x00"

	if got != want {
		t.Fatalf("unexpected frame:\ngot  %q\nwant %q", got, want)
	}
}

func TestConnectedFrame(t *testing.T) {
	if got := Connected(); got != "CONNECTED\nversion:1.2\n\n\x00" {
		t.Fatalf("unexpected handshake frame: %q", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	frames := []Frame{
		{Command: "MESSAGE", Headers: map[string]string{"destination": "/topic/typing"}, Body: `{"users":[]}`},
		{Command: "CONNECTED", Headers: map[string]string{"version": "1.2"}, Body: ""},
		{Command: "SEND", Headers: map[string]string{"destination": "/app/reaction", "receipt": "7"}, Body: "{}"},
	}

	for _, in := range frames {
		out := Decode(Encode(in))
		if out.Command != in.Command {
			t.Fatalf("command changed: got %q want %q", out.Command, in.Command)
		}
		if !reflect.DeepEqual(out.Headers, in.Headers) {
			t.Fatalf("headers changed: got %v want %v", out.Headers, in.Headers)
		}
		if out.Body != in.Body {
			t.Fatalf("body changed: got %q want %q", out.Body, in.Body)
		}
	}
}
