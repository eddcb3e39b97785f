package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestFault_Error(t *testing.T) {
	tests := []struct {
		name  string
		fault *Fault
		want  string
	}{
		{
			name:  "with cause",
			fault: DecodeFault("unreadable payload", errors.New("bad header")),
			want:  "[decode] unreadable payload: bad header",
		},
		{
			name:  "without cause",
			fault: EngineUnavailable("no engine for language", nil),
			want:  "[engine_unavailable] no engine for language",
		},
		{
			name:  "recognition",
			fault: RecognitionFault("engine failed", errors.New("boom")),
			want:  "[recognition] engine failed: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fault.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFault_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	fault := RecognitionFault("wrapped", cause)

	if !errors.Is(fault, cause) {
		t.Errorf("errors.Is should find the wrapped cause")
	}
}

func TestClassifyFault(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FaultType
	}{
		{
			name: "decode fault",
			err:  DecodeFault("bad image", nil),
			want: FaultDecode,
		},
		{
			name: "wrapped decode fault",
			err:  fmt.Errorf("outer: %w", DecodeFault("bad image", nil)),
			want: FaultDecode,
		},
		{
			name: "engine unavailable",
			err:  EngineUnavailable("missing traineddata", nil),
			want: FaultEngineUnavailable,
		},
		{
			name: "context canceled",
			err:  context.Canceled,
			want: FaultCancelled,
		},
		{
			name: "deadline exceeded",
			err:  fmt.Errorf("timed out: %w", context.DeadlineExceeded),
			want: FaultCancelled,
		},
		{
			name: "plain error",
			err:  errors.New("something broke"),
			want: FaultRecognition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyFault(tt.err); got != tt.want {
				t.Errorf("ClassifyFault() = %q, want %q", got, tt.want)
			}
		})
	}
}
