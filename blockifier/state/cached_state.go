package state

import (
	"fmt"

	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
)

var _ State = (*CachedState)(nil)

// CachedState is a copy-on-write overlay over a StateReader. Reads fall through to the
// reader once and are remembered as initial values, writes stay in the overlay and
// never reach the reader. Dropping a CachedState discards every write made to it.
type CachedState struct {
	reader  StateReader
	initial StateMaps
	writes  StateMaps
	classes map[felt.Felt]core.ContractClass
}

func NewCachedState(reader StateReader) *CachedState {
	return &CachedState{
		reader:  reader,
		initial: NewStateMaps(),
		writes:  NewStateMaps(),
		classes: make(map[felt.Felt]core.ContractClass),
	}
}

func (c *CachedState) Storage(contractAddress, key felt.Felt) (felt.Felt, error) {
	entry := StorageEntry{ContractAddress: contractAddress, Key: key}
	if value, ok := c.writes.GetStorage(entry); ok {
		return value, nil
	}
	if value, ok := c.initial.GetStorage(entry); ok {
		return value, nil
	}

	value, err := c.reader.Storage(contractAddress, key)
	if err != nil {
		return felt.Zero, err
	}
	c.initial.SetStorage(entry, value)
	return value, nil
}

func (c *CachedState) Nonce(contractAddress felt.Felt) (felt.Felt, error) {
	if nonce, ok := c.writes.GetNonce(contractAddress); ok {
		return nonce, nil
	}
	if nonce, ok := c.initial.GetNonce(contractAddress); ok {
		return nonce, nil
	}

	nonce, err := c.reader.Nonce(contractAddress)
	if err != nil {
		return felt.Zero, err
	}
	c.initial.SetNonce(contractAddress, nonce)
	return nonce, nil
}

func (c *CachedState) ClassHash(contractAddress felt.Felt) (felt.Felt, error) {
	if classHash, ok := c.writes.GetClassHash(contractAddress); ok {
		return classHash, nil
	}
	if classHash, ok := c.initial.GetClassHash(contractAddress); ok {
		return classHash, nil
	}

	classHash, err := c.reader.ClassHash(contractAddress)
	if err != nil {
		return felt.Zero, err
	}
	c.initial.SetClassHash(contractAddress, classHash)
	return classHash, nil
}

func (c *CachedState) Class(classHash felt.Felt) (core.ContractClass, error) {
	if class, ok := c.classes[classHash]; ok {
		return class, nil
	}
	class, err := c.reader.Class(classHash)
	if err != nil {
		return nil, err
	}
	c.classes[classHash] = class
	return class, nil
}

func (c *CachedState) CompiledClassHash(classHash felt.Felt) (felt.Felt, error) {
	if compiledClassHash, ok := c.writes.GetCompiledClassHash(classHash); ok {
		return compiledClassHash, nil
	}
	if compiledClassHash, ok := c.initial.GetCompiledClassHash(classHash); ok {
		return compiledClassHash, nil
	}

	compiledClassHash, err := c.reader.CompiledClassHash(classHash)
	if err != nil {
		return felt.Zero, err
	}
	c.initial.SetCompiledClassHash(classHash, compiledClassHash)
	return compiledClassHash, nil
}

func (c *CachedState) SetStorage(contractAddress, key, value felt.Felt) error {
	c.writes.SetStorage(StorageEntry{ContractAddress: contractAddress, Key: key}, value)
	return nil
}

func (c *CachedState) IncrementNonce(contractAddress felt.Felt) error {
	nonce, err := c.Nonce(contractAddress)
	if err != nil {
		return fmt.Errorf("increment nonce of %s: %w", contractAddress.String(), err)
	}
	c.writes.SetNonce(contractAddress, *new(felt.Felt).Add(&nonce, &felt.One))
	return nil
}

func (c *CachedState) SetClassHash(contractAddress, classHash felt.Felt) error {
	if contractAddress.IsZero() {
		return fmt.Errorf("cannot deploy contract at address %s", contractAddress.String())
	}
	c.writes.SetClassHash(contractAddress, classHash)
	return nil
}

func (c *CachedState) SetContractClass(classHash felt.Felt, class core.ContractClass) error {
	c.classes[classHash] = class
	c.writes.DeclareContract(classHash)
	return nil
}

func (c *CachedState) SetCompiledClassHash(classHash, compiledClassHash felt.Felt) error {
	c.writes.SetCompiledClassHash(classHash, compiledClassHash)
	return nil
}

// StateDiff returns the writes which differ from the values the reader holds. Cells
// that were written without being read first are compared against the reader, an
// absent cell counting as zero.
func (c *CachedState) StateDiff() StateMaps {
	diff := NewStateMaps()
	for entry, value := range c.writes.Storage {
		initial, ok := c.initial.GetStorage(entry)
		if !ok {
			var err error
			if initial, err = c.reader.Storage(entry.ContractAddress, entry.Key); err != nil {
				initial = felt.Zero
			}
		}
		if !initial.Equal(&value) {
			diff.SetStorage(entry, value)
		}
	}
	for address, nonce := range c.writes.Nonces {
		if initial, ok := c.initial.GetNonce(address); !ok || !initial.Equal(&nonce) {
			diff.SetNonce(address, nonce)
		}
	}
	for address, classHash := range c.writes.ClassHashes {
		if initial, ok := c.initial.GetClassHash(address); !ok || !initial.Equal(&classHash) {
			diff.SetClassHash(address, classHash)
		}
	}
	for classHash, compiledClassHash := range c.writes.CompiledClassHashes {
		diff.SetCompiledClassHash(classHash, compiledClassHash)
	}
	for classHash := range c.writes.DeclaredContracts {
		diff.DeclareContract(classHash)
	}
	return diff
}

// CountStorageChanges returns the number of storage cells whose value changed and the
// number of contracts whose storage, nonce or class hash changed.
func (c *CachedState) CountStorageChanges() (cellsWritten, contractsTouched int) {
	diff := c.StateDiff()
	return len(diff.Storage), len(diff.ContractAddresses())
}
