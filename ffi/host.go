package ffi

/*
#include <stdint.h>
#include <stdlib.h>

extern void* JunoStateGetStorageAt(uintptr_t handle, void* contract_address, void* storage_location);
extern void* JunoStateGetNonceAt(uintptr_t handle, void* contract_address);
extern void* JunoStateGetClassHashAt(uintptr_t handle, void* contract_address);
extern char* JunoStateGetClass(uintptr_t handle, void* class_hash);
extern void JunoFree(void* ptr);
extern void JunoReportError(uintptr_t handle, char* err);
extern void JunoAppendResponse(uintptr_t handle, void* value);
extern void JunoSetGasConsumed(uintptr_t handle, void* value);

// The host process defines the callbacks above; they are resolved when the library is loaded.
#cgo linux LDFLAGS: -Wl,--unresolved-symbols=ignore-all
#cgo darwin LDFLAGS: -Wl,-undefined,dynamic_lookup
*/
import "C"

import (
	"unsafe"

	"github.com/NethermindEth/junovm/core/felt"
	"github.com/NethermindEth/junovm/vm"
)

// cHost forwards vm.Host calls to the callbacks exported by the embedding process.
type cHost struct{}

var _ vm.Host = cHost{}

func (cHost) GetStorageAt(handle vm.Handle, contractAddress, key *[felt.Bytes]byte) unsafe.Pointer {
	return C.JunoStateGetStorageAt(C.uintptr_t(handle), unsafe.Pointer(contractAddress), unsafe.Pointer(key))
}

func (cHost) GetNonceAt(handle vm.Handle, contractAddress *[felt.Bytes]byte) unsafe.Pointer {
	return C.JunoStateGetNonceAt(C.uintptr_t(handle), unsafe.Pointer(contractAddress))
}

func (cHost) GetClassHashAt(handle vm.Handle, contractAddress *[felt.Bytes]byte) unsafe.Pointer {
	return C.JunoStateGetClassHashAt(C.uintptr_t(handle), unsafe.Pointer(contractAddress))
}

func (cHost) GetClass(handle vm.Handle, classHash *[felt.Bytes]byte) unsafe.Pointer {
	return unsafe.Pointer(C.JunoStateGetClass(C.uintptr_t(handle), unsafe.Pointer(classHash)))
}

func (cHost) Free(ptr unsafe.Pointer) {
	C.JunoFree(ptr)
}

func (cHost) ReportError(handle vm.Handle, message string) {
	cMessage := C.CString(message)
	defer C.free(unsafe.Pointer(cMessage))
	C.JunoReportError(C.uintptr_t(handle), cMessage)
}

func (cHost) AppendResponse(handle vm.Handle, value *[felt.Bytes]byte) {
	C.JunoAppendResponse(C.uintptr_t(handle), unsafe.Pointer(value))
}

func (cHost) SetGasConsumed(handle vm.Handle, value *[felt.Bytes]byte) {
	C.JunoSetGasConsumed(C.uintptr_t(handle), unsafe.Pointer(value))
}
