package vm

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/NethermindEth/junovm/adapters/sn2core"
	"github.com/NethermindEth/junovm/blockifier/api"
	"github.com/NethermindEth/junovm/blockifier/transaction"
	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
	"github.com/NethermindEth/junovm/starknet"
	"github.com/NethermindEth/junovm/utils"
	"github.com/bits-and-blooms/bloom/v3"
)

var errDeclareWithoutClass = errors.New("declare transaction requires a class")

// VM is the invocation boundary. It keeps no per-invocation state and can serve
// concurrent invocations as long as each uses its own handle.
type VM struct {
	host     Host
	engine   Engine
	log      utils.SimpleLogger
	listener EventListener
}

type Option func(*VM)

func WithListener(listener EventListener) Option {
	return func(v *VM) {
		v.listener = listener
	}
}

func New(host Host, engine Engine, log utils.SimpleLogger, opts ...Option) *VM {
	v := &VM{
		host:     host,
		engine:   engine,
		log:      log,
		listener: &SelectiveListener{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type CallRequest struct {
	ContractAddress    [felt.Bytes]byte
	EntryPointSelector [felt.Bytes]byte
	Calldata           [][felt.Bytes]byte
	Handle             Handle
	BlockNumber        uint64
	BlockTimestamp     uint64
	ChainID            string
}

type ExecuteRequest struct {
	TransactionJSON string
	// ClassJSON is nil when no class accompanies the transaction.
	ClassJSON      *string
	Handle         Handle
	BlockNumber    uint64
	BlockTimestamp uint64
	ChainID        string
}

// ExecutionResult is what a successful Execute learned about the transaction.
type ExecutionResult struct {
	Transaction      core.Transaction
	Info             *transaction.TransactionExecutionInfo
	Fee              transaction.Fee
	EventsBloom      *bloom.BloomFilter
	StorageChanges   int
	ContractsTouched int
}

// Call runs an external entry point on a throwaway copy of the host state and sends
// the return values to the host with AppendResponse. Exactly one of the return data
// or an error is reported to the host; the returned values mirror that report.
func (v *VM) Call(req *CallRequest) (retdata []felt.Felt, err error) {
	inv := v.begin(CallInvocation, req.Handle)
	defer inv.recoverPanic(&err)

	inv.decoding()
	if !utf8.ValidString(req.ChainID) {
		return nil, inv.reportError(&DecodeError{What: "chain id", Err: errInvalidUTF8})
	}
	call := &transaction.CallEntryPoint{
		EntryPointType:     core.External,
		EntryPointSelector: felt.FromBytes(req.EntryPointSelector[:]),
		Calldata:           make([]felt.Felt, len(req.Calldata)),
		StorageAddress:     felt.FromBytes(req.ContractAddress[:]),
		CallerAddress:      felt.Zero,
		CallType:           transaction.Call,
		InitialGas:         api.DefaultInitialGas,
	}
	for i := range req.Calldata {
		call.Calldata[i] = felt.FromBytes(req.Calldata[i][:])
	}

	inv.executing()
	bridge := NewStateBridge(v.host, req.Handle, v.engine, v.listener)
	overlay := bridge.Overlay()

	class, _, err := call.Prepare(overlay)
	if err != nil {
		return nil, inv.reportError(&ExecutionError{Err: err})
	}

	blockContext := api.NewBlockContext(req.ChainID, req.BlockNumber, req.BlockTimestamp)
	callInfo, err := v.engine.Call(call, class, overlay, blockContext)
	if err != nil {
		return nil, inv.reportError(&ExecutionError{Err: err})
	}
	if callInfo.Execution.Failed {
		return nil, inv.reportError(&ExecutionError{
			Err: fmt.Errorf("execution failed: %s", utils.FeltArrToString(utils.Map(callInfo.Execution.Retdata, utils.HeapPtr[felt.Felt]))),
		})
	}

	inv.reportResult(func() {
		for i := range callInfo.Execution.Retdata {
			value := callInfo.Execution.Retdata[i].Bytes()
			v.host.AppendResponse(req.Handle, &value)
		}
	})
	return callInfo.Execution.Retdata, nil
}

// Execute runs a transaction and reports its actual fee to the host with
// SetGasConsumed. A transaction that cannot be decoded never reaches the host state.
func (v *VM) Execute(req *ExecuteRequest) (result *ExecutionResult, err error) {
	inv := v.begin(ExecuteInvocation, req.Handle)
	defer inv.recoverPanic(&err)

	inv.decoding()
	txn, paidFeeOnL1, class, err := decodeExecuteRequest(req)
	if err != nil {
		return nil, inv.reportError(err)
	}

	inv.executing()
	blockContext := api.NewBlockContext(req.ChainID, req.BlockNumber, req.BlockTimestamp)
	bridge := NewStateBridge(v.host, req.Handle, v.engine, v.listener)

	maxFee := transaction.MaxFee(txn, paidFeeOnL1)
	flags := api.NewExecutionFlags(txn.TxVersion().HasQueryBit(), maxFee != nil && !maxFee.IsZero())

	info, err := v.engine.Execute(txn, class, paidFeeOnL1, bridge.Overlay(), blockContext, flags)
	if err != nil {
		return nil, inv.reportError(&ExecutionError{Err: err})
	}
	if info.Reverted() {
		return nil, inv.reportError(&ExecutionError{Err: fmt.Errorf("transaction reverted: %s", info.RevertError)})
	}

	fee := transaction.ActualFee(info.TotalResources(), blockContext, transaction.FeeUnit(txn))
	if flags.ChargeFee {
		if err = transaction.AssertActualFeeInBounds(fee, maxFee); err != nil {
			return nil, inv.reportError(&ExecutionError{Err: err})
		}
	}

	result = &ExecutionResult{
		Transaction: txn,
		Info:        info,
		Fee:         fee,
		EventsBloom: core.EventsBloom(info.Events()),
	}
	result.StorageChanges, result.ContractsTouched = bridge.CountStorageChanges()
	v.log.Debugw("Executed transaction",
		"hash", txn.Hash(),
		"fee", &fee.Amount,
		"unit", fee.Unit,
		"storageChanges", result.StorageChanges,
		"contractsTouched", result.ContractsTouched,
		"events", len(info.Events()),
		"eventsBloomBits", result.EventsBloom.BitSet().Count(),
	)

	inv.reportResult(func() {
		gasConsumed := fee.Amount.Bytes()
		v.host.SetGasConsumed(req.Handle, &gasConsumed)
	})
	return result, nil
}

func decodeExecuteRequest(req *ExecuteRequest) (core.Transaction, *felt.Felt, core.ContractClass, error) {
	if !utf8.ValidString(req.ChainID) {
		return nil, nil, nil, &DecodeError{What: "chain id", Err: errInvalidUTF8}
	}
	if !utf8.ValidString(req.TransactionJSON) {
		return nil, nil, nil, &DecodeError{What: "transaction", Err: errInvalidUTF8}
	}

	envelope, err := starknet.UnmarshalEnvelope([]byte(req.TransactionJSON))
	if err != nil {
		return nil, nil, nil, &DecodeError{What: "transaction", Err: err}
	}
	txn, err := sn2core.AdaptEnvelope(envelope, core.ChainIDFelt(req.ChainID))
	if err != nil {
		return nil, nil, nil, &DecodeError{What: "transaction", Err: err}
	}

	var class core.ContractClass
	if req.ClassJSON != nil {
		if !utf8.ValidString(*req.ClassJSON) {
			return nil, nil, nil, &DecodeError{What: "class", Err: errInvalidUTF8}
		}
		if class, err = ParseClass([]byte(*req.ClassJSON)); err != nil {
			return nil, nil, nil, &DecodeError{What: "class", Err: err}
		}
	} else if _, ok := txn.(*core.DeclareTransaction); ok {
		return nil, nil, nil, &DecodeError{What: "class", Err: errDeclareWithoutClass}
	}
	return txn, envelope.PaidFeeOnL1, class, nil
}
