package vm

import (
	"fmt"
	"unsafe"

	"github.com/NethermindEth/junovm/blockifier/state"
	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
)

var _ state.StateReader = (*StateBridge)(nil)

type lookup[T any] struct {
	value T
	err   error
}

// StateBridge serves the engine's state reads through host callbacks.
//
// The first answer the host gives for a key, found or not, is kept and served for
// every later read of that key, so one invocation sees a consistent snapshot of the
// host state. A StateBridge belongs to a single invocation and is not safe for
// concurrent use.
type StateBridge struct {
	host     Host
	handle   Handle
	hasher   ClassHasher
	listener EventListener

	storage             map[state.StorageEntry]lookup[felt.Felt]
	nonces              map[felt.Felt]lookup[felt.Felt]
	classHashes         map[felt.Felt]lookup[felt.Felt]
	classes             map[felt.Felt]lookup[core.ContractClass]
	compiledClassHashes map[felt.Felt]lookup[felt.Felt]

	overlay *state.CachedState
}

func NewStateBridge(host Host, handle Handle, hasher ClassHasher, listener EventListener) *StateBridge {
	return &StateBridge{
		host:                host,
		handle:              handle,
		hasher:              hasher,
		listener:            listener,
		storage:             make(map[state.StorageEntry]lookup[felt.Felt]),
		nonces:              make(map[felt.Felt]lookup[felt.Felt]),
		classHashes:         make(map[felt.Felt]lookup[felt.Felt]),
		classes:             make(map[felt.Felt]lookup[core.ContractClass]),
		compiledClassHashes: make(map[felt.Felt]lookup[felt.Felt]),
	}
}

func (b *StateBridge) Storage(contractAddress, key felt.Felt) (felt.Felt, error) {
	entry := state.StorageEntry{ContractAddress: contractAddress, Key: key}
	if cached, ok := b.storage[entry]; ok {
		return cached.value, cached.err
	}

	addressBytes, keyBytes := contractAddress.Bytes(), key.Bytes()
	ptr := b.host.GetStorageAt(b.handle, &addressBytes, &keyBytes)
	result := b.fetchFelt(StorageKind, ptr, contractAddress, &key)
	b.storage[entry] = result
	return result.value, result.err
}

func (b *StateBridge) Nonce(contractAddress felt.Felt) (felt.Felt, error) {
	if cached, ok := b.nonces[contractAddress]; ok {
		return cached.value, cached.err
	}

	addressBytes := contractAddress.Bytes()
	ptr := b.host.GetNonceAt(b.handle, &addressBytes)
	result := b.fetchFelt(NonceKind, ptr, contractAddress, nil)
	b.nonces[contractAddress] = result
	return result.value, result.err
}

func (b *StateBridge) ClassHash(contractAddress felt.Felt) (felt.Felt, error) {
	if cached, ok := b.classHashes[contractAddress]; ok {
		return cached.value, cached.err
	}

	addressBytes := contractAddress.Bytes()
	ptr := b.host.GetClassHashAt(b.handle, &addressBytes)
	result := b.fetchFelt(ClassHashKind, ptr, contractAddress, nil)
	b.classHashes[contractAddress] = result
	return result.value, result.err
}

func (b *StateBridge) fetchFelt(kind StateKind, ptr unsafe.Pointer, address felt.Felt, key *felt.Felt) lookup[felt.Felt] {
	b.listener.OnHostRead(kind, ptr != nil)
	if ptr == nil {
		return lookup[felt.Felt]{err: &NotFoundError{Kind: kind, Address: address, Key: key}}
	}
	return lookup[felt.Felt]{value: takeFelt(b.host, ptr)}
}

// Class fetches and parses a class. A payload that cannot be parsed is reported as a
// MissingClassError wrapping ErrMalformedClass.
func (b *StateBridge) Class(classHash felt.Felt) (core.ContractClass, error) {
	if cached, ok := b.classes[classHash]; ok {
		return cached.value, cached.err
	}

	hashBytes := classHash.Bytes()
	ptr := b.host.GetClass(b.handle, &hashBytes)
	b.listener.OnHostRead(ClassKind, ptr != nil)

	var result lookup[core.ContractClass]
	if ptr == nil {
		result.err = &MissingClassError{ClassHash: classHash}
	} else if payload, err := takeString(b.host, ptr); err != nil {
		result.err = &MissingClassError{ClassHash: classHash, Err: fmt.Errorf("%w: %w", ErrMalformedClass, err)}
	} else if class, err := ParseClass([]byte(payload)); err != nil {
		result.err = &MissingClassError{ClassHash: classHash, Err: fmt.Errorf("%w: %w", ErrMalformedClass, err)}
	} else {
		result.value = class
	}

	b.classes[classHash] = result
	return result.value, result.err
}

// CompiledClassHash derives the compiled class hash of the class with the engine's
// class hasher.
func (b *StateBridge) CompiledClassHash(classHash felt.Felt) (felt.Felt, error) {
	if cached, ok := b.compiledClassHashes[classHash]; ok {
		return cached.value, cached.err
	}

	var result lookup[felt.Felt]
	if class, err := b.Class(classHash); err != nil {
		result.err = err
	} else {
		result.value, result.err = b.hasher.CompiledClassHash(class)
	}

	b.compiledClassHashes[classHash] = result
	return result.value, result.err
}

// Overlay returns the copy-on-write state the engine writes to, creating it on first use.
func (b *StateBridge) Overlay() *state.CachedState {
	if b.overlay == nil {
		b.overlay = state.NewCachedState(b)
	}
	return b.overlay
}

// CountStorageChanges returns the number of storage cells changed through the overlay
// and the number of contracts whose state changed.
func (b *StateBridge) CountStorageChanges() (cellsWritten, contractsTouched int) {
	if b.overlay == nil {
		return 0, 0
	}
	return b.overlay.CountStorageChanges()
}
