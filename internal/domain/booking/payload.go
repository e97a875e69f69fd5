package booking

import (
	"pawbook/internal/domain/catalog"
	"pawbook/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

// SubmitPayload is the wire shape handed to the booking backend on final
// submission. Projected coupons carry no persisted identity, so only issued
// coupon ids are included; the server re-derives granted coupons from the
// membership intent.
type SubmitPayload struct {
	ServiceID          int64
	AddOnIDs           []int64
	WeightValue        *decimal.Decimal
	WeightUnit         pricing.WeightUnit
	MembershipPlanID   *int64
	OpenMembership     bool
	UseSpecialCoupon   bool
	UseOfficialCoupon  bool
	SelectedCouponIDs  []int64
	Address            AddressPayload
	Pet                PetPayload
	PreferredTimeSlots []TimeSlot
	Notes              string
	StoreID            *int64
}

type AddressPayload struct {
	ID          *int64
	Address     string
	City        string
	Province    string
	PostalCode  string
	ServiceType ServiceType
}

type PetPayload struct {
	Name              string
	Type              PetType
	Breed             string
	MixedBreed        bool
	PreciseType       string
	Birthday          string
	Gender            Gender
	WeightValue       *decimal.Decimal
	WeightUnit        pricing.WeightUnit
	CoatCondition     CoatCondition
	Behavior          Behavior
	GroomingFrequency GroomingFrequency
	SpecialNotes      string
	PhotoIDs          []int64
	ReferencePhotoIDs []int64
}

// BuildSubmitPayload assembles the submission from the current selections,
// resolving the visit address from the saved address, the chosen store, or
// the manual entry, in that order of preference.
func (s *Session) BuildSubmitPayload(snap *catalog.Snapshot) (SubmitPayload, error) {
	if s.serviceID == nil {
		return SubmitPayload{}, ErrNoServiceSelected
	}

	var storeID *int64
	if s.serviceType == ServiceTypeInStore {
		storeID = s.storeID
	}

	return SubmitPayload{
		ServiceID:          *s.serviceID,
		AddOnIDs:           s.AddOnIDs(),
		WeightValue:        s.pet.Weight,
		WeightUnit:         s.pet.WeightUnit,
		MembershipPlanID:   s.membershipPlanID,
		OpenMembership:     s.membership == MembershipOptedIn,
		UseSpecialCoupon:   s.UseMembershipDiscount(),
		UseOfficialCoupon:  s.UseCashCoupon(),
		SelectedCouponIDs:  s.issuedCouponIDs(),
		Address:            s.buildAddressPayload(snap),
		Pet:                s.buildPetPayload(),
		PreferredTimeSlots: s.Slots(),
		Notes:              s.notes,
		StoreID:            storeID,
	}, nil
}

func (s *Session) issuedCouponIDs() []int64 {
	ids := make([]int64, 0, len(s.selectedCoupons))
	for _, ref := range s.selectedCoupons {
		if !ref.IsProjected() {
			ids = append(ids, ref.ID)
		}
	}
	return ids
}

func (s *Session) buildAddressPayload(snap *catalog.Snapshot) AddressPayload {
	if s.addressID != nil {
		if addr, ok := snap.AddressByID(*s.addressID); ok {
			id := addr.ID
			return AddressPayload{
				ID:          &id,
				Address:     addr.Address,
				City:        addr.City,
				Province:    addr.Province,
				PostalCode:  addr.PostalCode,
				ServiceType: s.serviceType,
			}
		}
	}
	if s.storeID != nil {
		if store, ok := snap.StoreByID(*s.storeID); ok {
			return AddressPayload{
				Address:     store.Address,
				City:        store.City,
				Province:    store.Province,
				PostalCode:  store.PostalCode,
				ServiceType: s.serviceType,
			}
		}
	}
	return AddressPayload{
		Address:     s.manualAddress.Address,
		City:        s.manualAddress.City,
		Province:    s.manualAddress.Province,
		PostalCode:  s.manualAddress.PostalCode,
		ServiceType: s.serviceType,
	}
}

func (s *Session) buildPetPayload() PetPayload {
	return PetPayload{
		Name:              s.pet.Name,
		Type:              s.pet.Type,
		Breed:             s.pet.Breed,
		MixedBreed:        s.pet.MixedBreed,
		PreciseType:       s.pet.PreciseType,
		Birthday:          s.pet.Birthday,
		Gender:            s.pet.Gender,
		WeightValue:       s.pet.Weight,
		WeightUnit:        s.pet.WeightUnit,
		CoatCondition:     s.pet.CoatCondition,
		Behavior:          s.pet.Behavior,
		GroomingFrequency: s.pet.GroomingFrequency,
		SpecialNotes:      s.pet.SpecialNotes,
		PhotoIDs:          append([]int64(nil), s.pet.PhotoIDs...),
		ReferencePhotoIDs: append([]int64(nil), s.pet.ReferencePhotoIDs...),
	}
}
