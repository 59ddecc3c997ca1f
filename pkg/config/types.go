// Package config provides report configuration loading and validation.
package config

// Config controls report presentation. It never describes log formats: the
// field patterns are fixed, and what this file tunes is how the computed
// statistics are rendered.
type Config struct {
	// TopEndpoints is the length of the endpoint and error rankings.
	TopEndpoints int `yaml:"top_endpoints"`

	// SlowestRequests is the length of the slowest-requests table.
	SlowestRequests int `yaml:"slowest_requests"`

	// ErrorRateHigh and ErrorRateModerate are the error-rate banding
	// thresholds, in percent. Above high the summary carries a warning
	// banner; above moderate, a notice.
	ErrorRateHigh     float64 `yaml:"error_rate_high"`
	ErrorRateModerate float64 `yaml:"error_rate_moderate"`

	// SlowThresholdMs and VerySlowThresholdMs are the latency color
	// bands for the slowest-requests table.
	SlowThresholdMs     float64 `yaml:"slow_threshold_ms"`
	VerySlowThresholdMs float64 `yaml:"very_slow_threshold_ms"`

	// BarWidth is the maximum width of the endpoint frequency bar.
	BarWidth int `yaml:"bar_width"`

	// EndpointWidth is the truncation width for endpoints in the
	// slowest-requests table.
	EndpointWidth int `yaml:"endpoint_width"`

	// NoColor disables ANSI styling in the text report.
	NoColor bool `yaml:"no_color"`
}
