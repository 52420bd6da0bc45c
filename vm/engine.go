package vm

import (
	"github.com/NethermindEth/junovm/blockifier/api"
	"github.com/NethermindEth/junovm/blockifier/state"
	"github.com/NethermindEth/junovm/blockifier/transaction"
	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
)

// ClassHasher derives the compiled class hash of a class.
type ClassHasher interface {
	CompiledClassHash(class core.ContractClass) (felt.Felt, error)
}

// Engine runs Cairo code. It reads and writes state only through the State it is
// given and reports reverts through TransactionExecutionInfo.RevertError.
//
//go:generate mockgen -destination=../mocks/mock_engine.go -package=mocks github.com/NethermindEth/junovm/vm Engine
type Engine interface {
	ClassHasher

	Call(call *transaction.CallEntryPoint, class core.ContractClass, state state.State,
		blockContext *api.BlockContext) (*transaction.CallInfo, error)
	Execute(txn core.Transaction, class core.ContractClass, paidFeeOnL1 *felt.Felt, state state.State,
		blockContext *api.BlockContext, flags api.ExecutionFlags) (*transaction.TransactionExecutionInfo, error)
}
