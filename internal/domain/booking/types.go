package booking

type Step int

const (
	StepAddress Step = iota + 1
	StepPetProfile
	StepPackage
	StepMembership
	StepDateTime
	StepReview

	minStep = StepAddress
	maxStep = StepReview
)

func (s Step) IsValid() bool {
	return s >= minStep && s <= maxStep
}

type ServiceType string

const (
	ServiceTypeMobile  ServiceType = "mobile"
	ServiceTypeInStore ServiceType = "in_store"
)

func (t ServiceType) IsValid() bool {
	return t == ServiceTypeMobile || t == ServiceTypeInStore
}

type PetType string

const (
	PetTypeDog   PetType = "dog"
	PetTypeCat   PetType = "cat"
	PetTypeOther PetType = "other"
)

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

type CoatCondition string

const (
	CoatNotMatted      CoatCondition = "not_matted"
	CoatMatted         CoatCondition = "matted"
	CoatSeverelyMatted CoatCondition = "severely_matted"
)

type Behavior string

const (
	BehaviorFriendly     Behavior = "friendly"
	BehaviorAnxious      Behavior = "anxious"
	BehaviorHardToHandle Behavior = "hard_to_handle"
	BehaviorSeniorPet    Behavior = "senior_pets"
)

type GroomingFrequency string

const (
	FrequencyWeekly       GroomingFrequency = "weekly"
	FrequencyBiWeekly     GroomingFrequency = "bi_weekly"
	FrequencyMonthly      GroomingFrequency = "monthly"
	FrequencyOccasionally GroomingFrequency = "occasionally"
)

// MembershipDecision tracks the upsell outcome. Declined is remembered so
// later steps stop treating membership as "being purchased this session".
type MembershipDecision string

const (
	MembershipUndecided MembershipDecision = "undecided"
	MembershipOptedIn   MembershipDecision = "opted_in"
	MembershipDeclined  MembershipDecision = "declined"
)

// DiscountMode collapses the two coupled toggles (membership discount and
// cash coupon) into one flag: the pair always moves together.
type DiscountMode string

const (
	DiscountNone   DiscountMode = "none"
	DiscountMember DiscountMode = "member"
)
