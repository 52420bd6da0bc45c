package state

import (
	"github.com/NethermindEth/junovm/core/felt"
)

const (
	DefaultNonceMapCapacity             = 16
	DefaultClassHashMapCapacity         = 16
	DefaultStorageMapCapacity           = 64
	DefaultCompiledClassHashMapCapacity = 16
	DefaultDeclaredContractMapCapacity  = 4
)

// StorageEntry names one storage cell of a contract.
type StorageEntry struct {
	ContractAddress felt.Felt
	Key             felt.Felt
}

// StateMaps holds plain state values keyed by their identifiers. It is owned by a
// single invocation and is not safe for concurrent use.
type StateMaps struct {
	Nonces              map[felt.Felt]felt.Felt
	ClassHashes         map[felt.Felt]felt.Felt
	Storage             map[StorageEntry]felt.Felt
	CompiledClassHashes map[felt.Felt]felt.Felt
	DeclaredContracts   map[felt.Felt]bool
}

// NewStateMaps creates a new instance of StateMaps with initialized maps.
func NewStateMaps() StateMaps {
	return StateMaps{
		Nonces:              make(map[felt.Felt]felt.Felt, DefaultNonceMapCapacity),
		ClassHashes:         make(map[felt.Felt]felt.Felt, DefaultClassHashMapCapacity),
		Storage:             make(map[StorageEntry]felt.Felt, DefaultStorageMapCapacity),
		CompiledClassHashes: make(map[felt.Felt]felt.Felt, DefaultCompiledClassHashMapCapacity),
		DeclaredContracts:   make(map[felt.Felt]bool, DefaultDeclaredContractMapCapacity),
	}
}

func (sm *StateMaps) GetNonce(contractAddress felt.Felt) (felt.Felt, bool) {
	nonce, exists := sm.Nonces[contractAddress]
	return nonce, exists
}

func (sm *StateMaps) SetNonce(contractAddress, nonce felt.Felt) {
	sm.Nonces[contractAddress] = nonce
}

func (sm *StateMaps) GetClassHash(contractAddress felt.Felt) (felt.Felt, bool) {
	classHash, exists := sm.ClassHashes[contractAddress]
	return classHash, exists
}

func (sm *StateMaps) SetClassHash(contractAddress, classHash felt.Felt) {
	sm.ClassHashes[contractAddress] = classHash
}

func (sm *StateMaps) GetStorage(entry StorageEntry) (felt.Felt, bool) {
	value, exists := sm.Storage[entry]
	return value, exists
}

func (sm *StateMaps) SetStorage(entry StorageEntry, value felt.Felt) {
	sm.Storage[entry] = value
}

func (sm *StateMaps) GetCompiledClassHash(classHash felt.Felt) (felt.Felt, bool) {
	compiledClassHash, exists := sm.CompiledClassHashes[classHash]
	return compiledClassHash, exists
}

func (sm *StateMaps) SetCompiledClassHash(classHash, compiledClassHash felt.Felt) {
	sm.CompiledClassHashes[classHash] = compiledClassHash
}

// IsContractDeclared checks if a contract is declared for a given class hash.
func (sm *StateMaps) IsContractDeclared(classHash felt.Felt) bool {
	return sm.DeclaredContracts[classHash]
}

func (sm *StateMaps) DeclareContract(classHash felt.Felt) {
	sm.DeclaredContracts[classHash] = true
}

// ContractAddresses returns the contract addresses touched by any of the maps.
func (sm *StateMaps) ContractAddresses() map[felt.Felt]struct{} {
	addresses := make(map[felt.Felt]struct{}, len(sm.Nonces)+len(sm.ClassHashes)+len(sm.Storage))
	for address := range sm.Nonces {
		addresses[address] = struct{}{}
	}
	for address := range sm.ClassHashes {
		addresses[address] = struct{}{}
	}
	for entry := range sm.Storage {
		addresses[entry.ContractAddress] = struct{}{}
	}
	return addresses
}
