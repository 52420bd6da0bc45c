package core

import (
	"github.com/NethermindEth/junovm/core/crypto"
	"github.com/NethermindEth/junovm/core/felt"
)

type EntryPointType uint8

const (
	External EntryPointType = iota
	L1Handler
	Constructor
)

func (t EntryPointType) String() string {
	switch t {
	case External:
		return "EXTERNAL"
	case L1Handler:
		return "L1_HANDLER"
	case Constructor:
		return "CONSTRUCTOR"
	default:
		return "<unknown>"
	}
}

// EntryPoint uniquely identifies a Cairo function to execute.
type EntryPoint struct {
	// starknet_keccak hash of the function name.
	Selector *felt.Felt
	// The offset of the instruction that should be called in the class's bytecode.
	Offset uint64
	// Builtins used by the function, only set for compiled Sierra classes.
	Builtins []string
}

const (
	defaultEntryPointName   = "__default__"
	defaultL1EntryPointName = "__l1_default__"
)

// SelectorFromName returns the entry point selector of the function with the given
// name. The default entry points have the zero selector.
func SelectorFromName(name string) *felt.Felt {
	if name == defaultEntryPointName || name == defaultL1EntryPointName {
		return new(felt.Felt)
	}
	return crypto.StarknetKeccak([]byte(name))
}
