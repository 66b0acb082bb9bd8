package sim

import "fmt"

const (
	// MinPacketIncrement and MaxPacketIncrement bound the per-step draw of new packets.
	MinPacketIncrement = 1
	MaxPacketIncrement = 10
)

// GenerationPolicy decides how many packets a flow offers to its queue in a step.
// Implementations update f.Inflight and return it; they never touch RemainingPackets.
type GenerationPolicy interface {
	Offer(f *Flow, now int64, rng RandSource) int
}

// drawIncrement returns a uniform draw in [MinPacketIncrement, MaxPacketIncrement].
func drawIncrement(rng RandSource) int {
	return MinPacketIncrement + rng.Intn(MaxPacketIncrement-MinPacketIncrement+1)
}

// WindowGeneration accumulates the draw into the flow's offer window, so
// packets that did not fit in the queue last step are offered again.
// The window never exceeds the flow's remaining packets.
type WindowGeneration struct{}

func (w *WindowGeneration) Offer(f *Flow, now int64, rng RandSource) int {
	if !f.CanGenerate(now) {
		return 0
	}
	draw := drawIncrement(rng)
	f.Inflight = min(f.Inflight+draw, f.RemainingPackets)
	return f.Inflight
}

// RedrawGeneration replaces the offer window with a fresh draw each step.
// Offer that did not fit is forgotten; this is the window policy with no
// carry-over between steps.
type RedrawGeneration struct{}

func (r *RedrawGeneration) Offer(f *Flow, now int64, rng RandSource) int {
	if !f.CanGenerate(now) {
		return 0
	}
	draw := drawIncrement(rng)
	f.Inflight = min(draw, f.RemainingPackets)
	return f.Inflight
}

// NewGenerationPolicy creates a GenerationPolicy by name.
// Valid names: "window" (default), "redraw".
// Empty string defaults to WindowGeneration (for CLI flag default compatibility).
// Panics on unrecognized names.
func NewGenerationPolicy(name string) GenerationPolicy {
	if !IsValidGenerationPolicy(name) {
		panic(fmt.Sprintf("unknown generation policy %q", name))
	}
	switch name {
	case "", "window":
		return &WindowGeneration{}
	case "redraw":
		return &RedrawGeneration{}
	default:
		panic(fmt.Sprintf("unhandled generation policy %q", name))
	}
}

// IsValidGenerationPolicy returns true if name is a recognized generation policy.
func IsValidGenerationPolicy(name string) bool {
	return ValidGenerationPolicies[name]
}
