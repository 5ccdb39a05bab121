package common

import (
	"time"
)

const (
	DefaultMaxTitleLength       = 100
	DefaultMaxDescriptionLength = 1000
	DefaultMinOptions           = 1
	DefaultMaxOptions           = 20
	DefaultMaxOptionLength      = 100
	DefaultMaxEarlyVoterBonus   = 100

	// DefaultVoterBitmapBytes covers every one of the 8192 voter slots.
	DefaultVoterBitmapBytes = 1024

	DefaultRateLimitAPI      = "100-S"
	DefaultHTTPTimeout       = 10 * time.Second
	DefaultResultsCacheSize  = 1024
	DefaultHistoryLimit      = 100
	DefaultNTPServer         = "pool.ntp.org"
	DefaultNTPUpdateInterval = 10 * time.Minute
)

//
// Config holds the limits the engine enforces on polls and the node
// settings which are not part of the state transition rules.
//
type Config struct {
	MaxTitleLength       int
	MaxDescriptionLength int
	MinOptions           int
	MaxOptions           int
	MaxOptionLength      int
	MaxEarlyVoterBonus   uint8
	VoterBitmapBytes     int

	NetworkID []byte

	// Those fields are not engine-related
	RateLimitAPI     string
	ResultsCacheSize int
	HistoryLimit     int
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.MaxTitleLength = DefaultMaxTitleLength
	p.MaxDescriptionLength = DefaultMaxDescriptionLength
	p.MinOptions = DefaultMinOptions
	p.MaxOptions = DefaultMaxOptions
	p.MaxOptionLength = DefaultMaxOptionLength
	p.MaxEarlyVoterBonus = DefaultMaxEarlyVoterBonus
	p.VoterBitmapBytes = DefaultVoterBitmapBytes

	p.NetworkID = networkID

	p.RateLimitAPI = DefaultRateLimitAPI
	p.ResultsCacheSize = DefaultResultsCacheSize
	p.HistoryLimit = DefaultHistoryLimit

	return p
}
