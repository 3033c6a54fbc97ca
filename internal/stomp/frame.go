// Package stomp implements the line-oriented text frames exchanged with
// chat clients: a command line, colon-separated headers, a blank line,
// and a body terminated by a NUL byte.
package stomp

import "strings"

// Terminator delimits every encoded frame on the wire.
const Terminator = "\x00"

// Version reported in the CONNECTED handshake.
const Version = "1.2"

// Commands used by the relay.
const (
	CommandConnect   = "CONNECT"
	CommandConnected = "CONNECTED"
	CommandSend      = "SEND"
	CommandMessage   = "MESSAGE"
)

// Frame is one decoded protocol unit. Frames are transient; they are
// built per inbound or outbound message and never stored.
type Frame struct {
	Command string
	Headers map[string]string
	Body    string
}

// Decode parses raw frame text. Header lines without a colon are
// silently ignored; a single trailing NUL on the body is stripped.
// Empty input yields an empty command, which the dispatcher drops.
func Decode(raw string) Frame {
	lines := strings.Split(raw, "\n")

	frame := Frame{
		Command: lines[0],
		Headers: make(map[string]string),
	}

	bodyStart := -1
	for i := 1; i < len(lines); i++ {
		if lines[i] == "" {
			bodyStart = i + 1
			break
		}
		if idx := strings.Index(lines[i], ":"); idx > 0 {
			frame.Headers[lines[i][:idx]] = lines[i][idx+1:]
		}
	}

	if bodyStart >= 0 {
		frame.Body = strings.TrimSuffix(strings.Join(lines[bodyStart:], "\n"), Terminator)
	}
	return frame
}

// Encode serializes a frame with the NUL terminator appended.
func Encode(f Frame) string {
	var b strings.Builder
	b.WriteString(f.Command)
	b.WriteString("\n")
	for key, value := range f.Headers {
		b.WriteString(key)
		b.WriteString(":")
		b.WriteString(value)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(f.Body)
	b.WriteString(Terminator)
	return b.String()
}

// Message builds a MESSAGE frame addressed to a broadcast destination.
func Message(destination, body string) string {
	return CommandMessage + "\ndestination:" + destination + "\n\n" + body + Terminator
}

// Connected builds the handshake reply to a CONNECT frame.
func Connected() string {
	return CommandConnected + "\nversion:" + Version + "\n\n" + Terminator
}
