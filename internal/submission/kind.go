package submission

import "fmt"

// Kind names a submission form.
type Kind string

const (
	Contact       Kind = "contact"
	Collaboration Kind = "collaboration"
	Waitlist      Kind = "waitlist"
)

func (k Kind) String() string { return string(k) }

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case Contact, Collaboration, Waitlist:
		return true
	}
	return false
}

// ParseKind maps a kind name to Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// LegacyKind picks the kind for the generic send-mail endpoint: a company
// marks a collaboration request, anything else is a contact. Kept only for
// clients of the old single-form API.
func LegacyKind(in Input) Kind {
	if singleLine(in.Company) != "" {
		return Collaboration
	}
	return Contact
}
