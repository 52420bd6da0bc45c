package transaction

import (
	"fmt"

	"github.com/NethermindEth/junovm/blockifier/state"
	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
)

// CallEntryPoint describes one call into a contract.
type CallEntryPoint struct {
	// ClassHash is the class hash of the entry point.
	// It is nil when it can be deduced from the storage address.
	ClassHash *felt.Felt

	// CodeAddress is optional, since there is no address to the code implementation
	// in a library call and for outermost calls (triggered by the transaction itself).
	CodeAddress *felt.Felt

	EntryPointType     core.EntryPointType
	EntryPointSelector felt.Felt
	Calldata           []felt.Felt
	StorageAddress     felt.Felt
	CallerAddress      felt.Felt
	CallType           CallType

	// InitialGas is the initial gas for this call
	InitialGas uint64
}

// CallType represents the type of call, regular, or delegate
type CallType uint8

const (
	Call CallType = iota
	Delegate
)

func (c CallType) String() string {
	switch c {
	case Call:
		return "CALL"
	case Delegate:
		return "DELEGATE"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Prepare resolves the class and entry point the call runs. It fails when the
// storage address holds no contract or the class has no matching entry point.
func (c *CallEntryPoint) Prepare(reader state.StateReader) (core.ContractClass, core.EntryPoint, error) {
	storageClassHash, err := reader.ClassHash(c.StorageAddress)
	if err != nil {
		return nil, core.EntryPoint{}, err
	}
	if storageClassHash.IsZero() {
		return nil, core.EntryPoint{}, fmt.Errorf("uninitialized storage address: %s", c.StorageAddress.String())
	}

	classHash := storageClassHash
	if c.ClassHash != nil {
		classHash = *c.ClassHash
	}

	class, err := reader.Class(classHash)
	if err != nil {
		return nil, core.EntryPoint{}, err
	}

	if entryPoint, ok := core.FindEntryPoint(class, c.EntryPointType, &c.EntryPointSelector); ok {
		return class, entryPoint, nil
	}
	// Cairo 0 classes may route unknown selectors to their default entry point.
	if class.Version() == 0 {
		if entryPoint, ok := core.FindEntryPoint(class, c.EntryPointType, &felt.Zero); ok {
			return class, entryPoint, nil
		}
	}

	if len(class.EntryPoints(c.EntryPointType)) == 0 {
		return nil, core.EntryPoint{}, PreExecutionError{
			errorType: PreExecutionErrorTypeNoEntryPointOfTypeFound,
			message:   fmt.Sprintf("no entry point of type %s found in contract with class hash %s", c.EntryPointType, classHash.String()),
		}
	}
	return nil, core.EntryPoint{}, PreExecutionError{
		errorType: PreExecutionErrorTypeEntryPointNotFound,
		message: fmt.Sprintf("entry point %s not found in contract with class hash %s",
			c.EntryPointSelector.String(), classHash.String()),
	}
}

// PreExecutionError represents errors that can occur before execution
type PreExecutionError struct {
	errorType PreExecutionErrorType
	message   string
}

type PreExecutionErrorType int

const (
	PreExecutionErrorTypeEntryPointNotFound PreExecutionErrorType = iota
	PreExecutionErrorTypeNoEntryPointOfTypeFound
	PreExecutionErrorTypeInsufficientEntryPointGas
)

func (e PreExecutionError) Error() string {
	return e.message
}

func (e PreExecutionError) Type() PreExecutionErrorType {
	return e.errorType
}
