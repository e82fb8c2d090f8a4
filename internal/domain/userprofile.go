package domain

import "time"

// UserProfile is the identity and physiology snapshot used by every
// calculation. Treated as immutable per planning cycle; mutated only by
// explicit profile-edit events.
type UserProfile struct {
	ID               string        `json:"id"`
	Name             string        `json:"name,omitempty"`
	WeightKg         float64       `json:"weightKg,omitempty"`
	SleepTargetHours float64       `json:"sleepTargetHours"`
	WorkSchedule     WorkSchedule  `json:"workSchedule"`
	WorkIntensity    WorkIntensity `json:"workIntensity"`
	MaritalStatus    MaritalStatus `json:"maritalStatus"`
	ChildrenCount    int           `json:"childrenCount"`
	Conditions       []string      `json:"conditions,omitempty"`
	Goal             string        `json:"goal,omitempty"`

	Locale   string `json:"locale,omitempty"`
	Timezone string `json:"timezone,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasCondition reports whether the profile lists a medical condition
// containing the given marker (case-insensitive substring match).
func (p *UserProfile) HasCondition(marker string) bool {
	for _, c := range p.Conditions {
		if containsFold(c, marker) {
			return true
		}
	}
	return false
}

// Partnered reports whether the user shares a household with a partner.
func (p *UserProfile) Partnered() bool {
	return p.MaritalStatus == StatusPartnered || p.MaritalStatus == StatusMarried
}
