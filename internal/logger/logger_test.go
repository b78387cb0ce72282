package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("tool %s called", "split_bill")

	output := buf.String()
	if !strings.Contains(output, "level=DEBUG") {
		t.Errorf("expected debug level, got %q", output)
	}
	if !strings.Contains(output, "tool split_bill called") {
		t.Errorf("expected formatted message, got %q", output)
	}
}

func TestDebugAndInfo_WhenNotVerbose(t *testing.T) {
	defer SetOutput(os.Stderr)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden")
	Info("hidden")
	Section("Hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWarnAndError_AlwaysPrinted(t *testing.T) {
	defer SetOutput(os.Stderr)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Warn("upstream %d", 503)
	Error("store closed")

	output := buf.String()
	if !strings.Contains(output, "level=WARN") || !strings.Contains(output, "upstream 503") {
		t.Errorf("expected warning, got %q", output)
	}
	if !strings.Contains(output, "level=ERROR") || !strings.Contains(output, "store closed") {
		t.Errorf("expected error, got %q", output)
	}
}

func TestSection_WhenVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Weather")

	if !strings.Contains(buf.String(), "=== Weather ===") {
		t.Errorf("expected section header, got %q", buf.String())
	}
}
