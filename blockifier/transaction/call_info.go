package transaction

import (
	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
)

// ExecutionResources counts the VM resources a run consumed.
type ExecutionResources struct {
	Steps        uint64
	MemoryHoles  uint64
	Pedersen     uint64
	RangeCheck   uint64
	Ecdsa        uint64
	Bitwise      uint64
	EcOp         uint64
	Poseidon     uint64
	SegmentArena uint64
}

func (r ExecutionResources) Add(other ExecutionResources) ExecutionResources {
	return ExecutionResources{
		Steps:        r.Steps + other.Steps,
		MemoryHoles:  r.MemoryHoles + other.MemoryHoles,
		Pedersen:     r.Pedersen + other.Pedersen,
		RangeCheck:   r.RangeCheck + other.RangeCheck,
		Ecdsa:        r.Ecdsa + other.Ecdsa,
		Bitwise:      r.Bitwise + other.Bitwise,
		EcOp:         r.EcOp + other.EcOp,
		Poseidon:     r.Poseidon + other.Poseidon,
		SegmentArena: r.SegmentArena + other.SegmentArena,
	}
}

type CallExecution struct {
	Retdata        []felt.Felt
	Events         []core.Event
	L2ToL1Messages []core.L2ToL1Message
	Failed         bool
	GasConsumed    uint64
}

// CallInfo is the outcome of a call. Resources include the resources of InnerCalls.
type CallInfo struct {
	Call       *CallEntryPoint
	Execution  CallExecution
	Resources  ExecutionResources
	InnerCalls []*CallInfo
}

// Walk visits the call tree in pre-order.
func (ci *CallInfo) Walk(visit func(*CallInfo)) {
	if ci == nil {
		return
	}
	visit(ci)
	for _, inner := range ci.InnerCalls {
		inner.Walk(visit)
	}
}

// Events returns the events emitted by the call and its inner calls in call order.
func (ci *CallInfo) Events() []*core.Event {
	var events []*core.Event
	ci.Walk(func(c *CallInfo) {
		for i := range c.Execution.Events {
			events = append(events, &c.Execution.Events[i])
		}
	})
	return events
}
