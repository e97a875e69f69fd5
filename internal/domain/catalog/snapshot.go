package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Snapshot is the read-only reference data a booking session resolves
// against. Version is a monotonic counter bumped by the cache only when the
// coupon content actually changes; the coupon resolver uses it as its
// run-once auto-selection guard.
type Snapshot struct {
	Version   uint64
	Services  []Service
	AddOns    []AddOn
	Plans     []MembershipPlan
	Coupons   []Coupon
	Addresses []Address
	Stores    []StoreLocation
}

func (s *Snapshot) ServiceByID(id int64) (Service, bool) {
	for _, svc := range s.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return Service{}, false
}

func (s *Snapshot) AddOnByID(id int64) (AddOn, bool) {
	for _, a := range s.AddOns {
		if a.ID == id {
			return a, true
		}
	}
	return AddOn{}, false
}

func (s *Snapshot) PlanByID(id int64) (MembershipPlan, bool) {
	for _, p := range s.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return MembershipPlan{}, false
}

func (s *Snapshot) AddressByID(id int64) (Address, bool) {
	for _, a := range s.Addresses {
		if a.ID == id {
			return a, true
		}
	}
	return Address{}, false
}

func (s *Snapshot) StoreByID(id int64) (StoreLocation, bool) {
	for _, st := range s.Stores {
		if st.ID == id {
			return st, true
		}
	}
	return StoreLocation{}, false
}

// DefaultPlan returns the plan offered on the membership step. Plans are
// listed in display order; the first is the one upsold.
func (s *Snapshot) DefaultPlan() (MembershipPlan, bool) {
	if len(s.Plans) == 0 {
		return MembershipPlan{}, false
	}
	return s.Plans[0], true
}

// CouponByRef resolves a selection reference against issued coupons plus the
// projected coupons of the given plan. A false return means the reference is
// stale and contributes no discount.
func (s *Snapshot) CouponByRef(ref CouponRef, projected []Coupon) (Coupon, bool) {
	if ref.IsProjected() {
		for _, c := range projected {
			if c.ProjectedKey == ref.Key {
				return c, true
			}
		}
		return Coupon{}, false
	}
	for _, c := range s.Coupons {
		if !c.IsProjected() && c.ID == ref.ID {
			return c, true
		}
	}
	return Coupon{}, false
}

// CouponSignature fingerprints the coupon content of a fetch result so the
// cache can tell a genuinely new snapshot from an unrelated re-read. Sorted
// refs plus per-category counts; order of the input does not matter.
func CouponSignature(coupons []Coupon) string {
	refs := make([]string, 0, len(coupons))
	counts := map[CouponCategory]int{}
	for _, c := range coupons {
		refs = append(refs, c.Ref().String()+":"+string(c.Status))
		counts[c.Category]++
	}
	sort.Strings(refs)

	cats := make([]string, 0, len(counts))
	for cat, n := range counts {
		cats = append(cats, fmt.Sprintf("%s=%d", cat, n))
	}
	sort.Strings(cats)

	sum := sha256.Sum256([]byte(strings.Join(refs, ",") + "|" + strings.Join(cats, ",")))
	return hex.EncodeToString(sum[:])
}
