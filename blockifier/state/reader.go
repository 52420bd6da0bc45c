package state

import (
	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
)

// StateReader is the read-only view of the ledger the execution engine runs against.
// Absent values are reported as errors by the implementation.
type StateReader interface {
	Storage(contractAddress, key felt.Felt) (felt.Felt, error)
	Nonce(contractAddress felt.Felt) (felt.Felt, error)
	ClassHash(contractAddress felt.Felt) (felt.Felt, error)
	Class(classHash felt.Felt) (core.ContractClass, error)
	CompiledClassHash(classHash felt.Felt) (felt.Felt, error)
}

// State is a StateReader which also accepts writes.
type State interface {
	StateReader

	SetStorage(contractAddress, key, value felt.Felt) error
	IncrementNonce(contractAddress felt.Felt) error
	SetClassHash(contractAddress, classHash felt.Felt) error
	SetContractClass(classHash felt.Felt, class core.ContractClass) error
	SetCompiledClassHash(classHash, compiledClassHash felt.Felt) error
}
