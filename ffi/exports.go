package ffi

//#include <stdint.h>
//#include <stddef.h>
import "C"

import (
	"unsafe"

	"github.com/NethermindEth/junovm/vm"
)

//export cairoVMCall
func cairoVMCall(contractAddress, entryPointSelector *C.char, calldata **C.char, lenCalldata C.size_t,
	handle C.uintptr_t, blockNumber, blockTimestamp C.ulonglong, chainID *C.char,
) {
	runCall(unsafe.Pointer(contractAddress), unsafe.Pointer(entryPointSelector), unsafe.Pointer(calldata),
		int(lenCalldata), vm.Handle(handle), uint64(blockNumber), uint64(blockTimestamp), unsafe.Pointer(chainID))
}

//export cairoVMExecute
func cairoVMExecute(txnJSON, classJSON *C.char, handle C.uintptr_t, blockNumber, blockTimestamp C.ulonglong,
	chainID *C.char,
) {
	runExecute(unsafe.Pointer(txnJSON), unsafe.Pointer(classJSON), vm.Handle(handle), uint64(blockNumber),
		uint64(blockTimestamp), unsafe.Pointer(chainID))
}
