package types

import "fmt"

// NoDataError means an upstream returned no usable record for a symbol.
type NoDataError struct {
	Symbol string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data for symbol %s", e.Symbol)
}

// TransportError means the request or the response envelope itself
// failed: network error, non-2xx status, unparseable payload.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// InferenceError means summary generation failed or returned content
// that cannot be used.
type InferenceError struct {
	Symbol string
	Err    error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("summary generation failed for %s: %v", e.Symbol, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// DeliveryError means the outbound email for one recipient failed.
type DeliveryError struct {
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
