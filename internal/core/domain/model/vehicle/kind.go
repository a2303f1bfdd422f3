package vehicle

import (
	"fmt"
	"strings"

	"groundhandling/internal/pkg/errs"
)

// Kind is the type of a ground-handling vehicle. Its string value is used
// verbatim on the wire, e.g. in garage exit requests.
type Kind string

const (
	// Bus carries passengers between terminals and aircraft.
	Bus Kind = "bus"
	// BaggageCart carries baggage between terminals and aircraft.
	BaggageCart Kind = "baggage-cart"
)

// Kinds lists every known vehicle kind.
func Kinds() []Kind {
	return []Kind{Bus, BaggageCart}
}

// ParseKind converts a wire value into a Kind. An empty string yields Bus.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Bus, nil
	}
	k := Kind(s)
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

// Validate rejects unknown kinds.
func (k Kind) Validate() error {
	switch k {
	case Bus, BaggageCart:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicle kind", fmt.Errorf("%q is not a known vehicle kind", string(k)))
	}
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}
