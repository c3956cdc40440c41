package config

import (
	"fmt"
	"math"
)

// Default quality thresholds. A metric is healthy while it stays at or
// below its max (at or above for MaintainabilityMin).
const (
	DefaultCyclomaticMax         = 10.0
	DefaultCognitiveMax          = 15.0
	DefaultWMCMax                = 20.0
	DefaultLCOMMax               = 0.7
	DefaultCombinedComplexityMax = 30.0
	DefaultMaintainabilityMin    = 20.0
)

// Policy file keys.
const (
	KeyCyclomaticMax         = "cyclomaticMax"
	KeyCognitiveMax          = "cognitiveMax"
	KeyWMCMax                = "wmcMax"
	KeyLCOMMax               = "lcomMax"
	KeyCombinedComplexityMax = "combinedComplexityMax"
	KeyMaintainabilityMin    = "maintainabilityMin"
)

// Keys lists the policy keys in assessment order.
var Keys = []string{
	KeyCyclomaticMax,
	KeyCognitiveMax,
	KeyWMCMax,
	KeyLCOMMax,
	KeyCombinedComplexityMax,
	KeyMaintainabilityMin,
}

// ThresholdPolicy holds the limits applied by the quality assessor.
type ThresholdPolicy struct {
	CyclomaticMax         float64 `json:"cyclomaticMax"`
	CognitiveMax          float64 `json:"cognitiveMax"`
	WMCMax                float64 `json:"wmcMax"`
	LCOMMax               float64 `json:"lcomMax"`
	CombinedComplexityMax float64 `json:"combinedComplexityMax"`
	MaintainabilityMin    float64 `json:"maintainabilityMin"`
}

// DefaultPolicy returns the default thresholds.
func DefaultPolicy() ThresholdPolicy {
	return ThresholdPolicy{
		CyclomaticMax:         DefaultCyclomaticMax,
		CognitiveMax:          DefaultCognitiveMax,
		WMCMax:                DefaultWMCMax,
		LCOMMax:               DefaultLCOMMax,
		CombinedComplexityMax: DefaultCombinedComplexityMax,
		MaintainabilityMin:    DefaultMaintainabilityMin,
	}
}

// AsMap returns the policy keyed by policy file key.
func (p ThresholdPolicy) AsMap() map[string]float64 {
	return map[string]float64{
		KeyCyclomaticMax:         p.CyclomaticMax,
		KeyCognitiveMax:          p.CognitiveMax,
		KeyWMCMax:                p.WMCMax,
		KeyLCOMMax:               p.LCOMMax,
		KeyCombinedComplexityMax: p.CombinedComplexityMax,
		KeyMaintainabilityMin:    p.MaintainabilityMin,
	}
}

// With returns a copy of p with key set to value.
func (p ThresholdPolicy) With(key string, value float64) (ThresholdPolicy, error) {
	switch key {
	case KeyCyclomaticMax:
		p.CyclomaticMax = value
	case KeyCognitiveMax:
		p.CognitiveMax = value
	case KeyWMCMax:
		p.WMCMax = value
	case KeyLCOMMax:
		p.LCOMMax = value
	case KeyCombinedComplexityMax:
		p.CombinedComplexityMax = value
	case KeyMaintainabilityMin:
		p.MaintainabilityMin = value
	default:
		return p, fmt.Errorf("unknown threshold %q", key)
	}
	return p, nil
}

// Validate rejects non-finite limits.
func (p ThresholdPolicy) Validate() error {
	values := p.AsMap()
	for _, key := range Keys {
		v := values[key]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("threshold %s must be a finite number, got %v", key, v)
		}
	}
	return nil
}
