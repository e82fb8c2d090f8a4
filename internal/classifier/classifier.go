// Package classifier derives a discrete user-activity state from raw
// position samples. It owns the only writable copy of the current
// context state; everything else reads it through Current.
package classifier

import (
	"math"
	"time"

	"github.com/alexanderramin/pulseplan/internal/domain"
)

// Speed thresholds in km/h.
const (
	drivingMinSpeed = 25.0
	runningMinSpeed = 8.0
	walkingMinSpeed = 3.0

	// drivingConfirmSamples is the consecutive above-threshold samples
	// required before committing to driving. Downshifts commit on a
	// single sample: fast deceleration must be reported immediately so
	// notifications are not wrongly suppressed.
	drivingConfirmSamples = 2

	earthRadiusKm = 6371.0
)

// Classifier converts position samples into a UserContextState.
// Not safe for concurrent use; the engine loop owns it.
type Classifier struct {
	state     domain.UserContextState
	changedAt time.Time

	havePrev     bool
	prev         domain.PositionSample
	drivingStreak int
}

// New returns a classifier in the idle state.
func New() *Classifier {
	return &Classifier{state: domain.ContextIdle}
}

// Current returns the committed state and when it last changed.
func (c *Classifier) Current() (domain.UserContextState, time.Time) {
	return c.state, c.changedAt
}

// Reset clears all counters and returns to idle. Called on subscription
// start and stop, and when positioning becomes unavailable; the failure
// mode must never claim driving or running.
func (c *Classifier) Reset() {
	c.state = domain.ContextIdle
	c.changedAt = time.Time{}
	c.havePrev = false
	c.prev = domain.PositionSample{}
	c.drivingStreak = 0
}

// Observe ingests one position sample and returns the committed state.
func (c *Classifier) Observe(sample domain.PositionSample) domain.UserContextState {
	if !c.havePrev {
		c.prev = sample
		c.havePrev = true
		return c.state
	}

	elapsed := time.Duration(sample.Timestamp-c.prev.Timestamp) * time.Millisecond
	if elapsed <= 0 {
		// Out-of-order or duplicate sample; keep the previous fix.
		return c.state
	}

	distKm := haversineKm(c.prev.Latitude, c.prev.Longitude, sample.Latitude, sample.Longitude)
	speedKmh := distKm / elapsed.Hours()
	c.prev = sample

	c.commit(c.classify(speedKmh), domain.TimeOf(sample.Timestamp))
	return c.state
}

func (c *Classifier) classify(speedKmh float64) domain.UserContextState {
	switch {
	case speedKmh > drivingMinSpeed:
		c.drivingStreak++
		if c.drivingStreak >= drivingConfirmSamples {
			return domain.ContextDriving
		}
		// One high-speed sample could be GPS jitter; hold the current
		// state until confirmed.
		return c.state
	case speedKmh >= runningMinSpeed:
		c.drivingStreak = 0
		return domain.ContextRunning
	case speedKmh >= walkingMinSpeed:
		c.drivingStreak = 0
		return domain.ContextWalking
	default:
		c.drivingStreak = 0
		return domain.ContextIdle
	}
}

func (c *Classifier) commit(next domain.UserContextState, at time.Time) {
	if next == c.state {
		return
	}
	c.state = next
	c.changedAt = at
}

// haversineKm computes the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
