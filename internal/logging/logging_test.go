package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetupVerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)

	Debug("debug message", "key", "value")
	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged in verbose mode")
	}
}

func TestSetupDefaultSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Debug("hidden")
	Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged without verbose")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info message not logged")
	}
}

func TestSetupJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, true, &buf)

	Info("structured", "key", "value")
	out := buf.String()
	if !strings.Contains(out, `"msg":"structured"`) {
		t.Errorf("output not JSON: %s", out)
	}
}

func TestUserHelpers(t *testing.T) {
	var out, errOut bytes.Buffer
	SetUserOutput(&out, &errOut)
	t.Cleanup(func() { SetUserOutput(os.Stdout, os.Stderr) })

	UserInfo("info %d", 1)
	UserSuccess("done")
	UserWarning("careful")
	UserError("broken")

	if !strings.Contains(out.String(), "ℹ info 1") {
		t.Errorf("stdout = %q", out.String())
	}
	if !strings.Contains(out.String(), "✓ done") {
		t.Errorf("stdout = %q", out.String())
	}
	if !strings.Contains(errOut.String(), "⚠ careful") {
		t.Errorf("stderr = %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "✗ broken") {
		t.Errorf("stderr = %q", errOut.String())
	}
}
