package speech

import (
	"fmt"

	"golang.org/x/text/language"
)

// Gender of a synthetic voice.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

// String returns the string representation of the gender.
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

// Age bracket of a synthetic voice.
type Age int

const (
	AgeUnknown Age = iota
	AgeChild
	AgeTeenager
	AgeAdult
	AgeSenior
)

// String returns the string representation of the age bracket.
func (a Age) String() string {
	switch a {
	case AgeChild:
		return "child"
	case AgeTeenager:
		return "teenager"
	case AgeAdult:
		return "adult"
	case AgeSenior:
		return "senior"
	default:
		return "unknown"
	}
}

// Voice describes one synthetic voice a backend offers.
type Voice struct {
	Name   string       // Human-readable name
	Locale language.Tag // Locale the voice speaks
	Gender Gender
	Age    Age
	ID     string // Opaque per-backend identifier
}

// String returns a short description of the voice.
func (v Voice) String() string {
	return fmt.Sprintf("%s (%s, %s %s)", v.Name, v.Locale, v.Gender, v.Age)
}

// Equal reports whether two voices identify the same backend voice.
func (v Voice) Equal(other Voice) bool {
	return v.ID == other.ID && v.Name == other.Name
}
