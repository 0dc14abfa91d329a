package assistly

import (
	"errors"
	"fmt"
	"strings"
)

// DetailKind selects a customer contact sub-resource.
type DetailKind string

const (
	DetailEmail   DetailKind = "email"
	DetailPhone   DetailKind = "phone"
	DetailAddress DetailKind = "address"
)

// ErrUnknownDetailKind is returned for kinds outside email, phone and address.
var ErrUnknownDetailKind = errors.New("unknown customer detail kind")

// DetailKinds lists every supported kind.
func DetailKinds() []DetailKind {
	return []DetailKind{DetailEmail, DetailPhone, DetailAddress}
}

// ParseDetailKind accepts a kind name in singular or plural form ("email", "emails",
// "addresses"). The path form "addresss" is accepted too.
func ParseDetailKind(s string) (DetailKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range DetailKinds() {
		if name == string(k) || name == k.plural() || name == k.collection() {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDetailKind, s)
}

func (k DetailKind) valid() bool {
	switch k {
	case DetailEmail, DetailPhone, DetailAddress:
		return true
	}
	return false
}

// collection is the kind plus "s": "emails", "phones", "addresss".
func (k DetailKind) collection() string {
	return string(k) + "s"
}

func (k DetailKind) plural() string {
	if k == DetailAddress {
		return "addresses"
	}
	return string(k) + "s"
}

func (k DetailKind) String() string { return string(k) }
