package listener

import (
	"bufio"
	"strings"
	"testing"
)

func TestReadStatusOK(t *testing.T) {
	got, err := readStatus(bufio.NewReader(strings.NewReader(okResponse)))
	if err != nil {
		t.Fatalf("readStatus: %v", err)
	}
	if got.Proto != "HTTP/1.1" {
		t.Errorf("proto = %q, want %q", got.Proto, "HTTP/1.1")
	}
	if got.Code != 200 {
		t.Errorf("code = %d, want 200", got.Code)
	}
	if got.Text != "OK" {
		t.Errorf("text = %q, want %q", got.Text, "OK")
	}
	if !got.OK() {
		t.Error("OK() = false, want true")
	}
}

func TestReadStatusError(t *testing.T) {
	got, err := readStatus(bufio.NewReader(strings.NewReader(errorResponse)))
	if err != nil {
		t.Fatalf("readStatus: %v", err)
	}
	if got.Code != 500 {
		t.Errorf("code = %d, want 500", got.Code)
	}
	if got.Text != "Internal Server Error" {
		t.Errorf("text = %q", got.Text)
	}
	if got.OK() {
		t.Error("OK() = true for a 500")
	}
	if got.String() != "HTTP/1.1 500 Internal Server Error" {
		t.Errorf("String() = %q", got.String())
	}
}

func TestReadStatusWithoutNewline(t *testing.T) {
	got, err := readStatus(bufio.NewReader(strings.NewReader("HTTP/1.0 200 OK")))
	if err != nil {
		t.Fatalf("readStatus: %v", err)
	}
	if got.Code != 200 {
		t.Errorf("code = %d, want 200", got.Code)
	}
}

func TestReadStatusMalformed(t *testing.T) {
	for _, in := range []string{"", "hello\r\n", "HTTP/1.1 abc OK\r\n", "SSH-2.0 OpenSSH\r\n"} {
		if _, err := readStatus(bufio.NewReader(strings.NewReader(in))); err == nil {
			t.Errorf("readStatus(%q) succeeded, want error", in)
		}
	}
}
