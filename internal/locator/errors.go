package locator

import (
	"context"
	"errors"
)

// Kind is the closed set of position failure classes reported by the
// device geolocation capability.
type Kind string

const (
	KindPermissionDenied    Kind = "permission-denied"
	KindPositionUnavailable Kind = "position-unavailable"
	KindTimeout             Kind = "timeout"
	KindUnsupported         Kind = "unsupported"
)

// PositionError is a classified geolocation failure.
type PositionError struct {
	Kind Kind
}

func (e *PositionError) Error() string {
	switch e.Kind {
	case KindPermissionDenied:
		return "Location access denied. Please check your location permissions."
	case KindPositionUnavailable:
		return "Location information unavailable. Please check your device location settings."
	case KindTimeout:
		return "Location request timed out. Please try again."
	case KindUnsupported:
		return "Geolocation is not supported on this device."
	default:
		return "Unable to retrieve your location."
	}
}

// NewError builds a PositionError for a known kind.
func NewError(kind Kind) *PositionError {
	return &PositionError{Kind: kind}
}

// Classify maps any error coming back from a position provider to a
// PositionError. Deadline errors classify as timeouts; anything else
// unknown falls into an unclassified PositionError with the generic
// message.
func Classify(err error) *PositionError {
	if err == nil {
		return nil
	}
	var perr *PositionError
	if errors.As(err, &perr) {
		return perr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &PositionError{Kind: KindTimeout}
	}
	return &PositionError{}
}
