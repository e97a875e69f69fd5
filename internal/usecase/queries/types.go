package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side). Monetary amounts are display-rounded to
// two decimal places here and nowhere earlier.

type SessionView struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	CurrentStep int       `json:"current_step"`

	ServiceType   string       `json:"service_type"`
	AddressID     *int64       `json:"address_id,omitempty"`
	StoreID       *int64       `json:"store_id,omitempty"`
	ManualAddress *AddressView `json:"manual_address,omitempty"`

	Pet PetView `json:"pet"`

	ServiceID *int64  `json:"service_id,omitempty"`
	AddOnIDs  []int64 `json:"add_on_ids"`

	MembershipDecision    string `json:"membership_decision"`
	MembershipPlanID      *int64 `json:"membership_plan_id,omitempty"`
	UseMembership         bool   `json:"use_membership"`
	UseMembershipDiscount bool   `json:"use_membership_discount"`
	UseCashCoupon         bool   `json:"use_cash_coupon"`

	SelectedCoupons []CouponRefView `json:"selected_coupons"`
	TimeSlots       []TimeSlotView  `json:"time_slots"`

	Notes       string    `json:"notes"`
	HasFormData bool      `json:"has_form_data"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AddressView struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}

type PetView struct {
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	Breed             string  `json:"breed,omitempty"`
	MixedBreed        bool    `json:"mixed_breed"`
	PreciseType       string  `json:"precise_type,omitempty"`
	Birthday          string  `json:"birthday,omitempty"`
	Gender            string  `json:"gender,omitempty"`
	Weight            *string `json:"weight,omitempty"`
	WeightUnit        string  `json:"weight_unit"`
	CoatCondition     string  `json:"coat_condition,omitempty"`
	Behavior          string  `json:"behavior,omitempty"`
	GroomingFrequency string  `json:"grooming_frequency,omitempty"`
	SpecialNotes      string  `json:"special_notes,omitempty"`
}

type TimeSlotView struct {
	Date   string `json:"date"`
	Period string `json:"period"`
}

type CouponRefView struct {
	ID           *int64 `json:"id,omitempty"`
	ProjectedKey string `json:"projected_key,omitempty"`
}

type QuoteView struct {
	PackagePrice       string `json:"package_price"`
	AddOnsPrice        string `json:"add_ons_price"`
	OriginalTotal      string `json:"original_total"`
	PercentOff         string `json:"percent_off"`
	DiscountedPackage  string `json:"discounted_package"`
	DiscountedAddOns   string `json:"discounted_add_ons"`
	DiscountedSubtotal string `json:"discounted_subtotal"`
	CashCoupon         string `json:"cash_coupon"`
	CouponTotal        string `json:"coupon_total"`
	MembershipFee      string `json:"membership_fee"`
	FinalTotal         string `json:"final_total"`
	Savings            string `json:"savings"`
}

type CouponView struct {
	Ref       CouponRefView `json:"ref"`
	Category  string        `json:"category"`
	Type      string        `json:"type"`
	Amount    string        `json:"amount"`
	Status    string        `json:"status"`
	Projected bool          `json:"projected"`
	Selected  bool          `json:"selected"`
	ExpiresAt *time.Time    `json:"expires_at,omitempty"`
	ValidFrom *time.Time    `json:"valid_from,omitempty"`
}

type CouponGroupsView struct {
	Cash        []CouponView `json:"cash"`
	Invite      []CouponView `json:"invite"`
	Birthday    []CouponView `json:"birthday"`
	SpecialGift []CouponView `json:"special_gift"`
}

type ServiceView struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	BasePrice   string           `json:"base_price"`
	WeightTiers []WeightTierView `json:"weight_tiers,omitempty"`
	Items       []LineItemView   `json:"items,omitempty"`
}

type WeightTierView struct {
	MinKg string  `json:"min_weight_kg"`
	MaxKg *string `json:"max_weight_kg,omitempty"`
	Price string  `json:"price"`
}

type LineItemView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	DisplayOrder int    `json:"display_order"`
}

type AddOnView struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	Price                string `json:"price"`
	Category             string `json:"category,omitempty"`
	MostPopular          bool   `json:"most_popular"`
	IncludedInMembership bool   `json:"included_in_membership"`
}

type MembershipPlanView struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Fee          string        `json:"fee"`
	DiscountRate string        `json:"discount_rate"`
	PercentOff   string        `json:"percent_off"`
	CouponCount  int           `json:"coupon_count"`
	CouponAmount string        `json:"coupon_amount"`
	Benefits     []BenefitView `json:"benefits"`
}

type BenefitView struct {
	Content      string `json:"content"`
	DisplayOrder int    `json:"display_order"`
	Highlight    bool   `json:"is_highlight"`
}

type SavedAddressView struct {
	ID         int64  `json:"id"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	IsDefault  bool   `json:"is_default"`
}

type StoreView struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}

type CurrentUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	IsMember bool      `json:"is_member"`
	PlanID   *int64    `json:"membership_plan_id,omitempty"`
}
