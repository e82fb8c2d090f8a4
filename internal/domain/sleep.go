package domain

import "time"

// MotionSample is one raw accelerometer reading.
type MotionSample struct {
	Magnitude float64 `json:"magnitude"`
	Timestamp int64   `json:"timestamp"` // epoch ms
}

// PositionSample is one raw positioning reading.
type PositionSample struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"` // epoch ms
}

// StageSegment is a coarse sleep-stage estimate over a time range.
type StageSegment struct {
	Stage SleepStage `json:"stage"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
}

// SleepSession is a completed tracking session. Created only on session
// completion (stop or auto-wake), immutable afterward.
type SleepSession struct {
	ID              string         `json:"id"`
	StartTime       time.Time      `json:"startTime"`
	EndTime         time.Time      `json:"endTime"`
	DurationMinutes int            `json:"durationMinutes"`
	MovementSamples []MotionSample `json:"movementSamples,omitempty"`
	EfficiencyScore float64        `json:"efficiencyScore"`
	Stages          []StageSegment `json:"stages,omitempty"`
	// Manual marks a session entered by hand when motion sensing was
	// unavailable.
	Manual bool `json:"manual,omitempty"`
}
