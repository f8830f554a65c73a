package selection

import "errors"

// ErrInvalidParams is returned when selection parameters are out of range.
var ErrInvalidParams = errors.New("invalid selection parameters")

// Params defines the tunable constants of the round-3 mixed policy.
type Params struct {
	// CoreQuota caps how many "core"-tagged cards open a round-3 deck.
	CoreQuota int

	// AppliedQuota is the cumulative size, core included, the deck may reach
	// before "applied"-tagged cards stop being preferred.
	AppliedQuota int

	// ReplicationPad is added to ceil(page/len(corpus)) when a thin corpus is
	// replicated to pad the candidate pool.
	ReplicationPad int
}

// NewDefaultParams creates a new Params instance with default values.
// The quotas are fixed and do not scale with the page size.
func NewDefaultParams() *Params {
	return &Params{
		CoreQuota:      10,
		AppliedQuota:   20,
		ReplicationPad: 1,
	}
}

// Validate checks that the quotas are usable.
func (p *Params) Validate() error {
	if p == nil {
		return ErrInvalidParams
	}
	if p.CoreQuota < 0 || p.AppliedQuota < p.CoreQuota || p.ReplicationPad < 1 {
		return ErrInvalidParams
	}
	return nil
}
