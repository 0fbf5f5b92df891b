package submission

import (
	"github.com/dmitrymomot/formrelay/pkg/sanitizer"
	"github.com/dmitrymomot/formrelay/pkg/validator"
)

// Field limits in characters.
const (
	MaxNameLength     = 200
	MaxEmailLength    = 254
	MaxCompanyLength  = 200
	MaxInterestLength = 100
	MaxMessageLength  = 5000
)

// Input is a form as posted, JSON or urlencoded.
type Input struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Message  string `json:"message" form:"message"`
	Company  string `json:"company" form:"company"`
	Interest string `json:"interest" form:"interest"`
}

// Submission is a normalized form. Fields that do not belong to Kind are
// always empty: a contact has no company, a waitlist entry has no message
// or company.
type Submission struct {
	Kind     Kind
	Name     string
	Email    string
	Message  string
	Company  string
	Interest string
}

// InterestDisplay is the label for the submission's interest code.
func (s Submission) InterestDisplay() string {
	return InterestDisplay(s.Kind, s.Interest)
}

var (
	singleLine = sanitizer.Compose(sanitizer.NFC, sanitizer.SingleLine)
	multiLine  = sanitizer.Compose(sanitizer.NFC, sanitizer.MultiLine)
)

// Normalize cleans in for kind and validates the result. Name, company and
// interest are trimmed with inner whitespace folded to single spaces. The
// message keeps its line breaks and the email is lowercased. On failure the
// error is validator.ValidationErrors whose first entry carries the
// message to show the user.
func Normalize(kind Kind, in Input) (Submission, error) {
	if !kind.Valid() {
		return Submission{}, ErrUnknownKind
	}

	s := Submission{
		Kind:     kind,
		Name:     singleLine(in.Name),
		Email:    sanitizer.TrimToLower(in.Email),
		Interest: singleLine(in.Interest),
	}
	if kind != Waitlist {
		s.Message = multiLine(in.Message)
	}
	if kind == Collaboration {
		s.Company = singleLine(in.Company)
	}

	if err := validator.Apply(rules(s)...); err != nil {
		return Submission{}, err
	}
	return s, nil
}

func rules(s Submission) []validator.Rule {
	var required validator.Rule
	if s.Kind == Waitlist {
		required = validator.RequiredAll("fields", s.Name, s.Email, s.Interest).
			WithMessage(MsgMissingWaitlistFields)
	} else {
		required = validator.RequiredAll("fields", s.Name, s.Email, s.Message).
			WithMessage(MsgMissingFields)
	}

	return []validator.Rule{
		required,
		validator.ValidEmail("email", s.Email).WithMessage(MsgInvalidEmail),
		validator.NoControlChars("email", s.Email).WithMessage(MsgInvalidEmail),
		validator.MaxRunes("name", s.Name, MaxNameLength).
			WithMessage("Name must be at most 200 characters."),
		validator.MaxRunes("email", s.Email, MaxEmailLength).
			WithMessage("Email must be at most 254 characters."),
		validator.MaxRunes("company", s.Company, MaxCompanyLength).
			WithMessage("Company must be at most 200 characters."),
		validator.MaxRunes("interest", s.Interest, MaxInterestLength).
			WithMessage("Interest must be at most 100 characters."),
		validator.MaxRunes("message", s.Message, MaxMessageLength).
			WithMessage("Message must be at most 5000 characters."),
	}
}
