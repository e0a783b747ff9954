package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitGeneralError},
		{"unsupported url", UnsupportedURL("https://example.com/clip"), ExitUnsupportedURL},
		{"engine error", EngineError("download failed", errors.New("exit status 1")), ExitEngineError},
		{"config error", ConfigError("bad config", nil), ExitConfigError},
		{"setup error", SetupError(errors.New("no network")), ExitSetupError},
		{"wrapped in fmt", fmt.Errorf("outer: %w", UnsupportedURL("x")), ExitUnsupportedURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := Wrap(ExitEngineError, "probe failed", errors.New("timeout"))
	if err.Error() != "probe failed: timeout" {
		t.Errorf("Error() = %q", err.Error())
	}

	bare := New(ExitGeneralError, "no URLs given")
	if bare.Error() != "no URLs given" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ExitConfigError, "load failed", cause)
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
}
