// Package ffi exposes the VM to a host process over the C ABI. The host links the
// shared library built from cmd/libcairovm and provides the Juno* callbacks.
package ffi

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/NethermindEth/junovm/blockifier/api"
	"github.com/NethermindEth/junovm/blockifier/state"
	"github.com/NethermindEth/junovm/blockifier/transaction"
	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
	"github.com/NethermindEth/junovm/utils"
	"github.com/NethermindEth/junovm/vm"
)

var ErrEngineUnavailable = errors.New("execution engine unavailable")

var (
	mu       sync.RWMutex
	host     vm.Host            = cHost{}
	log      utils.SimpleLogger = utils.NewNopLogger()
	listener vm.EventListener   = &vm.SelectiveListener{}
	engine   vm.Engine          = unavailableEngine{}
	machine  *vm.VM
)

func init() {
	rebuild()
}

// Configure sets the logger and listener used by every following invocation.
func Configure(logger utils.SimpleLogger, l vm.EventListener) {
	mu.Lock()
	defer mu.Unlock()
	log, listener = logger, l
	rebuild()
}

// SetEngine installs the engine that runs Cairo code. Until it is called every
// invocation fails with ErrEngineUnavailable.
func SetEngine(e vm.Engine) {
	mu.Lock()
	defer mu.Unlock()
	engine = e
	rebuild()
}

// EngineInstalled reports whether SetEngine has been called.
func EngineInstalled() bool {
	mu.RLock()
	defer mu.RUnlock()
	_, unavailable := engine.(unavailableEngine)
	return !unavailable
}

func rebuild() {
	machine = vm.New(host, engine, log, vm.WithListener(listener))
}

func current() *vm.VM {
	mu.RLock()
	defer mu.RUnlock()
	return machine
}

func runCall(contractAddress, entryPointSelector, calldata unsafe.Pointer, calldataLen int, handle vm.Handle,
	blockNumber, blockTimestamp uint64, chainID unsafe.Pointer,
) {
	v := current()
	req := &vm.CallRequest{
		Handle:         handle,
		BlockNumber:    blockNumber,
		BlockTimestamp: blockTimestamp,
	}

	var err error
	if req.ContractAddress, err = feltBuffer(contractAddress); err != nil {
		_ = v.Reject(vm.CallInvocation, handle, "contract address", err)
		return
	}
	if req.EntryPointSelector, err = feltBuffer(entryPointSelector); err != nil {
		_ = v.Reject(vm.CallInvocation, handle, "entry point selector", err)
		return
	}
	if req.Calldata, err = feltBuffers(calldata, calldataLen); err != nil {
		_ = v.Reject(vm.CallInvocation, handle, "calldata", err)
		return
	}
	if req.ChainID, err = cString(chainID); err != nil {
		_ = v.Reject(vm.CallInvocation, handle, "chain id", err)
		return
	}
	_, _ = v.Call(req)
}

func runExecute(txnJSON, classJSON unsafe.Pointer, handle vm.Handle, blockNumber, blockTimestamp uint64,
	chainID unsafe.Pointer,
) {
	v := current()
	req := &vm.ExecuteRequest{
		Handle:         handle,
		BlockNumber:    blockNumber,
		BlockTimestamp: blockTimestamp,
	}

	var err error
	if req.TransactionJSON, err = cString(txnJSON); err != nil {
		_ = v.Reject(vm.ExecuteInvocation, handle, "transaction", err)
		return
	}
	if req.ClassJSON, err = optionalCString(classJSON); err != nil {
		_ = v.Reject(vm.ExecuteInvocation, handle, "class", err)
		return
	}
	if req.ChainID, err = cString(chainID); err != nil {
		_ = v.Reject(vm.ExecuteInvocation, handle, "chain id", err)
		return
	}
	_, _ = v.Execute(req)
}

type unavailableEngine struct{}

func (unavailableEngine) CompiledClassHash(core.ContractClass) (felt.Felt, error) {
	return felt.Zero, ErrEngineUnavailable
}

func (unavailableEngine) Call(*transaction.CallEntryPoint, core.ContractClass, state.State,
	*api.BlockContext,
) (*transaction.CallInfo, error) {
	return nil, ErrEngineUnavailable
}

func (unavailableEngine) Execute(core.Transaction, core.ContractClass, *felt.Felt, state.State,
	*api.BlockContext, api.ExecutionFlags,
) (*transaction.TransactionExecutionInfo, error) {
	return nil, ErrEngineUnavailable
}
