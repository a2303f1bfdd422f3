package order

import (
	"fmt"
	"strings"

	"groundhandling/internal/pkg/errs"
)

// Kind selects which saga template serves the order.
//
// Kind used to be inferred from the passenger list (empty meaning discharge),
// which made a load order without passengers indistinguishable from a discharge.
// It is now an explicit field; KindFromPassengers keeps the old inference for
// callers that do not send one.
type Kind int

const (
	// UnknownKind is the zero value and is never valid.
	UnknownKind Kind = iota
	// Discharge brings arriving passengers from the aircraft to the terminal.
	Discharge
	// Load brings departing passengers from the terminal to the aircraft.
	Load
)

var kindStrings = map[Kind]string{
	Discharge: "discharge",
	Load:      "load",
}

// ParseKind converts "load" or "discharge" (case-insensitive) into a Kind.
func ParseKind(s string) (Kind, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for k, str := range kindStrings {
		if str == needle {
			return k, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a known order kind", s))
}

// KindFromPassengers returns Load for a non-empty passenger list and Discharge otherwise.
func KindFromPassengers(passengers []string) Kind {
	if len(passengers) > 0 {
		return Load
	}
	return Discharge
}

// Validate rejects UnknownKind and out-of-range values.
func (k Kind) Validate() error {
	if _, ok := kindStrings[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid order kind", k))
	}
	return nil
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := kindStrings[k]; ok {
		return s
	}
	return "unknown"
}
