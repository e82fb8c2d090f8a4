package domain

// BioLoadSnapshot is a derived estimate of mental and physical strain.
// Recomputed fresh on every planning cycle; never persisted as
// authoritative state, only embedded for display.
type BioLoadSnapshot struct {
	NeuralBattery   float64  // clamped to [0,100]
	HormonalLoad    float64  // clamped to [0,100]
	PhysicalFatigue float64  // clamped to [0,100]
	VitaminWarnings []string // ordered
	SocialDrain     float64  // reported unclamped for transparency
}
