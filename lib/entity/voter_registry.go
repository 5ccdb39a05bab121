package entity

import (
	"boscoin.io/votebook/lib/common"
)

// VoterSlots is the number of bitmap positions a voter key can hash to.
const VoterSlots uint64 = 8192

// VoterRegistry remembers who voted in a poll. The bitmap only proves
// absence; `Voters` is the authoritative list.
type VoterRegistry struct {
	PollID      uint64       `json:"poll_id"`
	VoterBitmap []byte       `json:"voter_bitmap"`
	Voters      []common.Key `json:"voters"`
}

func NewVoterRegistry(pollID uint64, bitmapBytes int) *VoterRegistry {
	return &VoterRegistry{
		PollID:      pollID,
		VoterBitmap: make([]byte, bitmapBytes),
		Voters:      []common.Key{},
	}
}

func (r *VoterRegistry) Serialize() ([]byte, error) {
	return Encode(r)
}

func (r *VoterRegistry) Deserialize(b []byte) error {
	return Decode(b, r)
}

// VoterHash sums the first 8 bytes of the key, each shifted to its own
// byte position.
func VoterHash(k common.Key) (hash uint64) {
	for i := 0; i < 8; i++ {
		hash += uint64(k[i]) << (uint(i) * 8)
	}
	return
}

func VoterSlot(k common.Key) (byteIndex uint64, bit uint8) {
	slot := VoterHash(k) % VoterSlots
	return slot / 8, uint8(slot % 8)
}

// Find returns the position of the voter in `Voters`, or -1.
func (r *VoterRegistry) Find(k common.Key) int {
	byteIndex, bit := VoterSlot(k)
	if byteIndex >= uint64(len(r.VoterBitmap)) {
		return -1
	}
	if r.VoterBitmap[byteIndex]&(1<<bit) == 0 {
		return -1
	}

	for i, v := range r.Voters {
		if v == k {
			return i
		}
	}

	return -1
}

func (r *VoterRegistry) Contains(k common.Key) bool {
	return r.Find(k) >= 0
}

// Add registers the voter; it returns false when the voter was already
// registered.
func (r *VoterRegistry) Add(k common.Key) bool {
	if r.Contains(k) {
		return false
	}

	byteIndex, bit := VoterSlot(k)
	for byteIndex >= uint64(len(r.VoterBitmap)) {
		r.VoterBitmap = append(r.VoterBitmap, 0)
	}
	r.VoterBitmap[byteIndex] |= 1 << bit
	r.Voters = append(r.Voters, k)

	return true
}
