package vm

import (
	"fmt"
	"time"

	"github.com/NethermindEth/junovm/utils"
)

type invocationState uint8

const (
	received invocationState = iota
	decoding
	executing
	reported
)

func (s invocationState) String() string {
	switch s {
	case received:
		return "received"
	case decoding:
		return "decoding"
	case executing:
		return "executing"
	case reported:
		return "reported"
	default:
		return "<unknown>"
	}
}

// invocation tracks one Call or Execute and guarantees the host gets exactly one
// outcome for it.
type invocation struct {
	kind     InvocationKind
	handle   Handle
	host     Host
	log      utils.SimpleLogger
	listener EventListener
	start    time.Time
	state    invocationState
}

func (v *VM) begin(kind InvocationKind, handle Handle) *invocation {
	return &invocation{
		kind:     kind,
		handle:   handle,
		host:     v.host,
		log:      v.log,
		listener: v.listener,
		start:    time.Now(),
		state:    received,
	}
}

func (i *invocation) decoding() {
	i.state = decoding
}

func (i *invocation) executing() {
	i.state = executing
}

// reportError sends err to the host unless an outcome was already reported. It
// returns err so callers can hand it back to theirs.
func (i *invocation) reportError(err error) error {
	if i.state == reported {
		i.log.Warnw("Dropping error of an invocation that already reported", "kind", i.kind, "err", err)
		return err
	}
	i.state = reported
	i.log.Debugw("Invocation failed", "kind", i.kind, "err", err)
	i.host.ReportError(i.handle, err.Error())
	i.listener.OnInvocation(i.kind, time.Since(i.start), err)
	return err
}

func (i *invocation) reportResult(send func()) {
	if i.state == reported {
		i.log.Warnw("Dropping result of an invocation that already reported", "kind", i.kind)
		return
	}
	i.state = reported
	send()
	i.listener.OnInvocation(i.kind, time.Since(i.start), nil)
}

// recoverPanic turns a panic into a reported error. Panics while decoding are host
// input errors, any later panic is an execution error.
func (i *invocation) recoverPanic(errp *error) {
	r := recover()
	if r == nil {
		return
	}

	cause := fmt.Errorf("panic: %v", r)
	var err error
	switch i.state {
	case received, decoding:
		err = &DecodeError{What: "input", Err: cause}
	default:
		err = &ExecutionError{Err: cause}
	}
	i.log.Errorw("Recovered from panic", "kind", i.kind, "state", i.state, "panic", r)
	*errp = i.reportError(err)
}

// Reject reports that an invocation's arguments could not be read at all, for
// instance a null buffer handed across the C boundary.
func (v *VM) Reject(kind InvocationKind, handle Handle, what string, cause error) error {
	inv := v.begin(kind, handle)
	inv.decoding()
	return inv.reportError(&DecodeError{What: what, Err: cause})
}
