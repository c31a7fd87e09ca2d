package util

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestLogf(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	was := Logging(false)
	defer Logging(was)

	Logf("quiet %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("logged %q while off", buf.String())
	}

	if Logging(true) {
		t.Fatal("wasn't off")
	}
	Logf("loud %d", 2)
	if !strings.Contains(buf.String(), "loud 2") {
		t.Fatalf("got %q", buf.String())
	}
}
