package booking

import (
	"pawbook/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

// PetProfile is the step-2 form. Weight drives the package price tier; the
// rest is carried through to the submit payload.
type PetProfile struct {
	Name              string
	Type              PetType
	Breed             string
	MixedBreed        bool
	PreciseType       string
	Birthday          string // YYYY-MM
	Gender            Gender
	Weight            *decimal.Decimal
	WeightUnit        pricing.WeightUnit
	CoatCondition     CoatCondition
	Behavior          Behavior
	GroomingFrequency GroomingFrequency
	PhotoIDs          []int64
	ReferencePhotoIDs []int64
	SpecialNotes      string
}

func (p PetProfile) IsEmpty() bool {
	return p.Name == "" &&
		p.Breed == "" &&
		p.Birthday == "" &&
		p.Gender == "" &&
		p.Weight == nil &&
		p.CoatCondition == "" &&
		p.Behavior == "" &&
		p.GroomingFrequency == "" &&
		len(p.PhotoIDs) == 0 &&
		len(p.ReferencePhotoIDs) == 0 &&
		p.SpecialNotes == ""
}
