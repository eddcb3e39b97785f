package domain

import (
	"context"
	"errors"
	"fmt"
)

// FaultType classifies recognition faults for callers and logs.
type FaultType string

const (
	FaultDecode            FaultType = "decode"
	FaultEngineUnavailable FaultType = "engine_unavailable"
	FaultRecognition       FaultType = "recognition"
	FaultCancelled         FaultType = "cancelled"
)

// Fault is a classified recognition fault with optional cause.
type Fault struct {
	Type    FaultType
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", f.Type, f.Message, f.Err)
	}
	return fmt.Sprintf("[%s] %s", f.Type, f.Message)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// NewFault creates a new classified fault
func NewFault(faultType FaultType, message string, err error) *Fault {
	return &Fault{
		Type:    faultType,
		Message: message,
		Err:     err,
	}
}

// Common fault constructors
func DecodeFault(message string, err error) *Fault {
	return NewFault(FaultDecode, message, err)
}

func EngineUnavailable(message string, err error) *Fault {
	return NewFault(FaultEngineUnavailable, message, err)
}

func RecognitionFault(message string, err error) *Fault {
	return NewFault(FaultRecognition, message, err)
}

func CancelledFault(message string, err error) *Fault {
	return NewFault(FaultCancelled, message, err)
}

// ClassifyFault returns the fault classification of err. Context
// cancellation and deadline expiry map to FaultCancelled; any error
// without a Fault in its chain maps to FaultRecognition.
func ClassifyFault(err error) FaultType {
	var f *Fault
	if errors.As(err, &f) {
		return f.Type
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return FaultCancelled
	}
	return FaultRecognition
}
