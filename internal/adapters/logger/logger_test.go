package logger_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/conbuild/conbuild/internal/adapters/logger"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Info("some message")

	output := buf.String()
	if !strings.Contains(output, "some message") {
		t.Errorf("Expected output to contain 'some message', got: %s", output)
	}
	if !strings.Contains(output, "INFO") {
		t.Errorf("Expected output to contain 'INFO', got: %s", output)
	}
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Warn("some warning", "path", "/tmp/missing")

	output := buf.String()
	if !strings.Contains(output, "some warning") {
		t.Errorf("Expected output to contain 'some warning', got: %s", output)
	}
	if !strings.Contains(output, "WARN") {
		t.Errorf("Expected output to contain 'WARN', got: %s", output)
	}
	if !strings.Contains(output, "/tmp/missing") {
		t.Errorf("Expected output to contain the diagnostic payload, got: %s", output)
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Error(os.ErrPermission)

	output := buf.String()
	if !strings.Contains(output, "permission denied") {
		t.Errorf("Expected output to contain 'permission denied', got: %s", output)
	}
	if !strings.Contains(output, "ERROR") {
		t.Errorf("Expected output to contain 'ERROR', got: %s", output)
	}
}

func TestLogger_ErrorNil(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Error(nil)

	if buf.Len() != 0 {
		t.Errorf("Expected no output for nil error, got: %s", buf.String())
	}
}

func TestLogger_DebugSuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Debug("hidden trace")
	if strings.Contains(buf.String(), "hidden trace") {
		t.Errorf("Expected debug output to be suppressed at info level, got: %s", buf.String())
	}

	lg.SetVerbose(true)
	lg.Debug("visible trace")
	if !strings.Contains(buf.String(), "visible trace") {
		t.Errorf("Expected debug output in verbose mode, got: %s", buf.String())
	}
}
