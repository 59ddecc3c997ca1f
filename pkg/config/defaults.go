package config

// Default thresholds used when a config file does not override them.
const (
	DefaultTopEndpoints        = 10
	DefaultSlowestRequests     = 10
	DefaultErrorRateHigh       = 5.0
	DefaultErrorRateModerate   = 1.0
	DefaultSlowThresholdMs     = 500.0
	DefaultVerySlowThresholdMs = 1000.0
	DefaultBarWidth            = 30
	DefaultEndpointWidth       = 35
)

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	return &Config{
		TopEndpoints:        DefaultTopEndpoints,
		SlowestRequests:     DefaultSlowestRequests,
		ErrorRateHigh:       DefaultErrorRateHigh,
		ErrorRateModerate:   DefaultErrorRateModerate,
		SlowThresholdMs:     DefaultSlowThresholdMs,
		VerySlowThresholdMs: DefaultVerySlowThresholdMs,
		BarWidth:            DefaultBarWidth,
		EndpointWidth:       DefaultEndpointWidth,
	}
}
