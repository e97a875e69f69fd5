package request

import (
	"strings"

	"pawbook/internal/domain/booking"
	"pawbook/internal/domain/catalog"
	"pawbook/internal/domain/couponing"
	"pawbook/internal/domain/pricing"
	"pawbook/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type JumpToStepRequest struct {
	Step int `json:"step" binding:"required,min=1,max=6"`
}

type ServiceTypeRequest struct {
	ServiceType string `json:"service_type" binding:"required,oneof=mobile in_store"`
}

type SelectAddressRequest struct {
	AddressID int64 `json:"address_id" binding:"required"`
}

type SelectStoreRequest struct {
	StoreID int64 `json:"store_id" binding:"required"`
}

type ManualAddressRequest struct {
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	Province   string `json:"province" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
}

func (r ManualAddressRequest) ToDomain() booking.ManualAddress {
	return booking.ManualAddress{
		Address:    strings.TrimSpace(r.Address),
		City:       strings.TrimSpace(r.City),
		Province:   strings.TrimSpace(r.Province),
		PostalCode: strings.TrimSpace(r.PostalCode),
	}
}

type PetRequest struct {
	Name              string  `json:"name"`
	Type              string  `json:"type" binding:"omitempty,oneof=dog cat"`
	Breed             string  `json:"breed"`
	MixedBreed        bool    `json:"mixed_breed"`
	PreciseType       string  `json:"precise_type"`
	Birthday          string  `json:"birthday"`
	Gender            string  `json:"gender" binding:"omitempty,oneof=male female"`
	Weight            *string `json:"weight"`
	WeightUnit        string  `json:"weight_unit" binding:"omitempty,oneof=kg lbs"`
	CoatCondition     string  `json:"coat_condition"`
	Behavior          string  `json:"behavior"`
	GroomingFrequency string  `json:"grooming_frequency"`
	PhotoIDs          []int64 `json:"photo_ids"`
	ReferencePhotoIDs []int64 `json:"reference_photo_ids"`
	SpecialNotes      string  `json:"special_notes"`
}

func (r PetRequest) ToDomain() (booking.PetProfile, error) {
	pet := booking.PetProfile{
		Name:              strings.TrimSpace(r.Name),
		Type:              booking.PetType(r.Type),
		Breed:             strings.TrimSpace(r.Breed),
		MixedBreed:        r.MixedBreed,
		PreciseType:       strings.TrimSpace(r.PreciseType),
		Birthday:          strings.TrimSpace(r.Birthday),
		Gender:            booking.Gender(r.Gender),
		WeightUnit:        pricing.WeightUnit(r.WeightUnit),
		CoatCondition:     booking.CoatCondition(r.CoatCondition),
		Behavior:          booking.Behavior(r.Behavior),
		GroomingFrequency: booking.GroomingFrequency(r.GroomingFrequency),
		PhotoIDs:          r.PhotoIDs,
		ReferencePhotoIDs: r.ReferencePhotoIDs,
		SpecialNotes:      strings.TrimSpace(r.SpecialNotes),
	}
	if pet.WeightUnit == "" {
		pet.WeightUnit = pricing.UnitKg
	}
	if r.Weight != nil && strings.TrimSpace(*r.Weight) != "" {
		w, err := decimal.NewFromString(strings.TrimSpace(*r.Weight))
		if err != nil {
			return booking.PetProfile{}, errs.New("invalid weight value")
		}
		pet.Weight = &w
	}
	return pet, nil
}

type SelectServiceRequest struct {
	ServiceID int64 `json:"service_id" binding:"required"`
}

type ToggleAddOnRequest struct {
	AddOnID int64 `json:"add_on_id" binding:"required"`
}

type ChooseMembershipRequest struct {
	PlanID int64 `json:"plan_id" binding:"required"`
}

type DiscountToggleRequest struct {
	Enabled bool `json:"enabled"`
}

type CouponCategoryRequest struct {
	Category string `json:"category" binding:"required,oneof=cash invite birthday special_gift"`
}

func (r CouponCategoryRequest) GroupID() couponing.GroupID {
	return couponing.GroupID(r.Category)
}

type CouponSelectRequest struct {
	Category     string `json:"category" binding:"required,oneof=cash invite birthday special_gift"`
	CouponID     *int64 `json:"coupon_id"`
	ProjectedKey string `json:"projected_key"`
}

func (r CouponSelectRequest) GroupID() couponing.GroupID {
	return couponing.GroupID(r.Category)
}

func (r CouponSelectRequest) Ref() (catalog.CouponRef, error) {
	if r.CouponID != nil {
		return catalog.CouponRef{ID: *r.CouponID}, nil
	}
	if key := strings.TrimSpace(r.ProjectedKey); key != "" {
		return catalog.CouponRef{Key: key}, nil
	}
	return catalog.CouponRef{}, errs.New("coupon_id or projected_key is required")
}

type CouponDeselectRequest struct {
	CouponID     *int64 `json:"coupon_id"`
	ProjectedKey string `json:"projected_key"`
}

func (r CouponDeselectRequest) Ref() (catalog.CouponRef, error) {
	if r.CouponID != nil {
		return catalog.CouponRef{ID: *r.CouponID}, nil
	}
	if key := strings.TrimSpace(r.ProjectedKey); key != "" {
		return catalog.CouponRef{Key: key}, nil
	}
	return catalog.CouponRef{}, errs.New("coupon_id or projected_key is required")
}

type SelectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

func (r SelectDateRequest) ToDomain() (booking.Date, error) {
	return booking.ParseDate(r.Date)
}

type TimeSlotRequest struct {
	Date   string `json:"date" binding:"required"`
	Period string `json:"period" binding:"required,oneof=morning afternoon"`
}

func (r TimeSlotRequest) ToDomain() (booking.Date, booking.Period, error) {
	d, err := booking.ParseDate(r.Date)
	if err != nil {
		return booking.Date{}, "", err
	}
	return d, booking.Period(r.Period), nil
}

type NotesRequest struct {
	Notes string `json:"notes"`
}
