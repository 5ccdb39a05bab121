// Provide test utilities for the common package
package common

// Initialize a new config object for unittests
func NewTestConfig() Config {
	p := NewConfig([]byte("votebook-unittest"))
	p.RateLimitAPI = "1000-S"
	return p
}
