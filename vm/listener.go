package vm

import "time"

type InvocationKind uint8

const (
	CallInvocation InvocationKind = iota
	ExecuteInvocation
)

func (k InvocationKind) String() string {
	switch k {
	case CallInvocation:
		return "call"
	case ExecuteInvocation:
		return "execute"
	default:
		return "<unknown>"
	}
}

//go:generate mockgen -destination=../mocks/mock_vm_listener.go -package=mocks github.com/NethermindEth/junovm/vm EventListener
type EventListener interface {
	OnHostRead(kind StateKind, found bool)
	OnInvocation(kind InvocationKind, took time.Duration, err error)
}

type SelectiveListener struct {
	OnHostReadCb   func(kind StateKind, found bool)
	OnInvocationCb func(kind InvocationKind, took time.Duration, err error)
}

func (l SelectiveListener) OnHostRead(kind StateKind, found bool) {
	if l.OnHostReadCb != nil {
		l.OnHostReadCb(kind, found)
	}
}

func (l SelectiveListener) OnInvocation(kind InvocationKind, took time.Duration, err error) {
	if l.OnInvocationCb != nil {
		l.OnInvocationCb(kind, took, err)
	}
}
