package provider

import (
	"time"

	"codeberg.org/vibecode/server/internal/analyzer"
)

// everything known about a request by the time generation starts:
// the original request, its analysis, and the collected answers
// (with defaults substituted for skipped questions)
type EnrichedContext struct {
	Request  analyzer.UserRequest    `json:"request"`
	Analysis analyzer.IntentAnalysis `json:"analysis"`
	Answers  map[string]string       `json:"answers,omitempty"`
}

// the produced component source
type GeneratedCode struct {
	Code          string `json:"code"`
	Language      string `json:"language"` // "tsx" or "jsx"
	ComponentName string `json:"component_name"`
}

// a complete generation result
type Generation struct {
	Code        GeneratedCode `json:"code"`
	Suggestions []string      `json:"suggestions,omitempty"`
	Model       string        `json:"model"`
}

// tuning for the mock provider
type Config struct {
	Latency           time.Duration // simulated generation time
	RequestsPerSecond float64
	Burst             int
}

func DefaultConfig() Config {
	return Config{
		Latency:           800 * time.Millisecond,
		RequestsPerSecond: 5,
		Burst:             10,
	}
}
