package booking

import (
	"time"

	"pawbook/internal/domain/catalog"
	"pawbook/internal/domain/couponing"

	"github.com/google/uuid"
)

// Session is the single mutable state of one booking wizard run. Every
// mutation goes through a named operation so the slot cap, coupon
// exclusivity groups, and the coupled discount toggles are enforced in one
// place. Invalid selection attempts are silent no-ops, not errors.
type Session struct {
	id     uuid.UUID
	userID uuid.UUID
	policy SlotPolicy

	step Step

	serviceType   ServiceType
	addressID     *int64
	storeID       *int64
	manualAddress ManualAddress

	pet PetProfile

	serviceID *int64
	addOnIDs  []int64

	membership       MembershipDecision
	membershipPlanID *int64
	discountMode     DiscountMode

	selectedCoupons   []catalog.CouponRef
	couponVersionSeen uint64

	slots      []TimeSlot
	activeDate *Date

	notes string

	createdAt time.Time
	updatedAt time.Time
}

// ManualAddress is a hand-entered visit address for mobile service when no
// saved address is selected.
type ManualAddress struct {
	Address    string
	City       string
	Province   string
	PostalCode string
}

func NewSession(userID uuid.UUID, policy SlotPolicy, now time.Time) *Session {
	return &Session{
		id:           uuid.New(),
		userID:       userID,
		policy:       policy,
		step:         StepAddress,
		serviceType:  ServiceTypeMobile,
		membership:   MembershipUndecided,
		discountMode: DiscountNone,
		createdAt:    now,
		updatedAt:    now,
	}
}

// ---------------------------------------------------------------------------
// Step state machine: a bounded counter with direct-jump from the review
// step's "Modify" actions. No transition validates step content.

func (s *Session) NextStep(now time.Time) {
	if s.step < maxStep {
		s.step++
	}
	s.touch(now)
}

func (s *Session) PreviousStep(now time.Time) {
	if s.step > minStep {
		s.step--
	}
	s.touch(now)
}

func (s *Session) JumpTo(step Step, now time.Time) {
	if step < minStep {
		step = minStep
	}
	if step > maxStep {
		step = maxStep
	}
	s.step = step
	s.touch(now)
}

func (s *Session) CanSubmit() bool {
	return s.step == StepReview
}

// ---------------------------------------------------------------------------
// Step 1: address and service type

func (s *Session) SetServiceType(t ServiceType, now time.Time) {
	if !t.IsValid() {
		return
	}
	s.serviceType = t
	s.touch(now)
}

func (s *Session) SelectAddress(id int64, now time.Time) {
	s.addressID = &id
	s.storeID = nil
	s.touch(now)
}

func (s *Session) SelectStore(id int64, now time.Time) {
	s.storeID = &id
	s.addressID = nil
	s.touch(now)
}

func (s *Session) SetManualAddress(a ManualAddress, now time.Time) {
	s.manualAddress = a
	s.addressID = nil
	s.touch(now)
}

// ---------------------------------------------------------------------------
// Step 2: pet profile

func (s *Session) UpdatePet(p PetProfile, now time.Time) {
	s.pet = p
	s.touch(now)
}

// ---------------------------------------------------------------------------
// Step 3: package and add-ons

// SelectService replaces any previously chosen service; at most one is
// selected at a time.
func (s *Session) SelectService(id int64, now time.Time) {
	s.serviceID = &id
	s.touch(now)
}

// ToggleAddOn adds or removes an add-on; the selection is a set.
func (s *Session) ToggleAddOn(id int64, now time.Time) {
	for i, existing := range s.addOnIDs {
		if existing == id {
			s.addOnIDs = append(s.addOnIDs[:i], s.addOnIDs[i+1:]...)
			s.touch(now)
			return
		}
	}
	s.addOnIDs = append(s.addOnIDs, id)
	s.touch(now)
}

// ---------------------------------------------------------------------------
// Step 4: membership and discount toggles

func (s *Session) ChooseMembership(planID int64, now time.Time) {
	s.membership = MembershipOptedIn
	s.membershipPlanID = &planID
	s.touch(now)
}

// DeclineMembership remembers the explicit "no thanks": both discount
// toggles are cleared and projected coupons fall out of every candidate
// pool on the next coupon sync.
func (s *Session) DeclineMembership(now time.Time) {
	s.membership = MembershipDeclined
	s.membershipPlanID = nil
	s.discountMode = DiscountNone
	s.touch(now)
}

// SetMembershipDiscount and SetCashCoupon are a coupled pair: toggling
// either one moves both, so they are always both on or both off.
func (s *Session) SetMembershipDiscount(on bool, now time.Time) {
	s.setDiscountMode(on, now)
}

func (s *Session) SetCashCoupon(on bool, now time.Time) {
	s.setDiscountMode(on, now)
}

func (s *Session) setDiscountMode(on bool, now time.Time) {
	if on {
		s.discountMode = DiscountMember
	} else {
		s.discountMode = DiscountNone
	}
	s.touch(now)
}

// MembershipActiveFor resolves the effective membership context for pricing
// at a given step: the package step looks at existing membership only, the
// upsell and review steps also count a membership being purchased in this
// session unless the user explicitly declined.
func (s *Session) MembershipActiveFor(step Step, userIsMember bool) bool {
	if userIsMember {
		return true
	}
	if step <= StepPackage {
		return false
	}
	return s.membership == MembershipOptedIn
}

// ---------------------------------------------------------------------------
// Coupons. The resolver owns ordering and grouping; the session owns the
// selected set and the run-once auto-selection guard.

// IncludeProjectedCoupons reports whether not-yet-issued membership coupons
// may enter candidate pools.
func (s *Session) IncludeProjectedCoupons() bool {
	return s.membership == MembershipOptedIn
}

// SyncCoupons reacts to a catalog snapshot: it prunes stale selections and
// fires auto-selection at most once per snapshot version, so unrelated
// state changes never re-trigger it or overwrite a manual deselection.
func (s *Session) SyncCoupons(version uint64, groups couponing.Groups, now time.Time) {
	s.selectedCoupons = couponing.Prune(s.selectedCoupons, groups)
	if version > s.couponVersionSeen {
		s.selectedCoupons = couponing.AutoSelect(s.selectedCoupons, groups, now)
		s.couponVersionSeen = version
	}
	s.touch(now)
}

func (s *Session) SelectCouponCategory(groups couponing.Groups, id couponing.GroupID, now time.Time) {
	s.selectedCoupons = couponing.SelectCategory(s.selectedCoupons, groups, id)
	s.touch(now)
}

func (s *Session) ClearCouponCategory(groups couponing.Groups, id couponing.GroupID, now time.Time) {
	s.selectedCoupons = couponing.ClearCategory(s.selectedCoupons, groups, id)
	s.touch(now)
}

func (s *Session) SelectCoupon(groups couponing.Groups, id couponing.GroupID, ref catalog.CouponRef, now time.Time) {
	s.selectedCoupons = couponing.SelectOne(s.selectedCoupons, groups, id, ref)
	s.touch(now)
}

func (s *Session) DeselectCoupon(ref catalog.CouponRef, now time.Time) {
	s.selectedCoupons = couponing.Deselect(s.selectedCoupons, ref)
	s.touch(now)
}

// ---------------------------------------------------------------------------
// Step 5: time slots

// SelectDate sets the active date for period toggling. Re-selecting the
// active date deselects it and removes all slots on that date. Dates outside
// the booking window are silently rejected.
func (s *Session) SelectDate(d Date, today time.Time) {
	if !s.policy.InWindow(d, today) {
		return
	}
	if s.activeDate != nil && *s.activeDate == d {
		s.activeDate = nil
		s.removeSlotsOn(d)
		s.touch(today)
		return
	}
	s.activeDate = &d
	s.touch(today)
}

// TogglePeriod adds the (date, period) pair when absent and under the cap,
// removes it when present. Exceeding the cap is a capacity guard no-op.
func (s *Session) TogglePeriod(d Date, p Period, today time.Time) {
	if !p.IsValid() || !s.policy.InWindow(d, today) {
		return
	}
	for i, slot := range s.slots {
		if slot.Date == d && slot.Period == p {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			s.touch(today)
			return
		}
	}
	if len(s.slots) >= s.policy.MaxSlots {
		return
	}
	s.slots = append(s.slots, TimeSlot{Date: d, Period: p})
	s.touch(today)
}

// RemoveSlot is unconditional removal, always allowed.
func (s *Session) RemoveSlot(d Date, p Period, now time.Time) {
	for i, slot := range s.slots {
		if slot.Date == d && slot.Period == p {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			s.touch(now)
			return
		}
	}
}

func (s *Session) removeSlotsOn(d Date) {
	kept := s.slots[:0]
	for _, slot := range s.slots {
		if slot.Date != d {
			kept = append(kept, slot)
		}
	}
	s.slots = kept
}

// ---------------------------------------------------------------------------

func (s *Session) SetNotes(notes string, now time.Time) {
	s.notes = notes
	s.touch(now)
}

// Reset discards every selection after a successful submission, returning
// the session to the wizard start.
func (s *Session) Reset(now time.Time) {
	fresh := NewSession(s.userID, s.policy, now)
	fresh.id = s.id
	fresh.createdAt = s.createdAt
	*s = *fresh
}

// HasFormData reports whether the user has entered anything worth warning
// about before navigating away.
func (s *Session) HasFormData() bool {
	return s.step > StepAddress ||
		s.addressID != nil ||
		s.storeID != nil ||
		s.manualAddress != (ManualAddress{}) ||
		!s.pet.IsEmpty() ||
		s.serviceID != nil ||
		len(s.addOnIDs) > 0 ||
		s.membership != MembershipUndecided ||
		s.discountMode != DiscountNone ||
		len(s.selectedCoupons) > 0 ||
		len(s.slots) > 0 ||
		s.notes != ""
}

func (s *Session) touch(now time.Time) {
	s.updatedAt = now
}

// ---------------------------------------------------------------------------
// Accessors

func (s *Session) ID() uuid.UUID                        { return s.id }
func (s *Session) UserID() uuid.UUID                    { return s.userID }
func (s *Session) Step() Step                           { return s.step }
func (s *Session) ServiceType() ServiceType             { return s.serviceType }
func (s *Session) AddressID() *int64                    { return s.addressID }
func (s *Session) StoreID() *int64                      { return s.storeID }
func (s *Session) ManualAddr() ManualAddress            { return s.manualAddress }
func (s *Session) Pet() PetProfile                      { return s.pet }
func (s *Session) ServiceID() *int64                    { return s.serviceID }
func (s *Session) AddOnIDs() []int64                    { return append([]int64(nil), s.addOnIDs...) }
func (s *Session) Membership() MembershipDecision       { return s.membership }
func (s *Session) MembershipPlanID() *int64             { return s.membershipPlanID }
func (s *Session) UseMembership() bool                  { return s.membership == MembershipOptedIn }
func (s *Session) UseMembershipDiscount() bool          { return s.discountMode == DiscountMember }
func (s *Session) UseCashCoupon() bool                  { return s.discountMode == DiscountMember }
func (s *Session) SelectedCoupons() []catalog.CouponRef { return append([]catalog.CouponRef(nil), s.selectedCoupons...) }
func (s *Session) Slots() []TimeSlot                    { return append([]TimeSlot(nil), s.slots...) }
func (s *Session) ActiveDate() *Date                    { return s.activeDate }
func (s *Session) Notes() string                        { return s.notes }
func (s *Session) CreatedAt() time.Time                 { return s.createdAt }
func (s *Session) UpdatedAt() time.Time                 { return s.updatedAt }
