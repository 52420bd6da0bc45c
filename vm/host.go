package vm

import (
	"unsafe"

	"github.com/NethermindEth/junovm/core/felt"
)

// Handle names the host-side state view of one invocation. It is never dereferenced,
// only passed back to the host.
type Handle uintptr

// Host is implemented by the process embedding the VM.
//
// The four accessors return nil when the host has no value. A non-nil result points to
// 32 bytes, or to a NUL-terminated string for GetClass, and stays owned by the host
// until it is passed to Free. Pointers handed to the host are only valid for the
// duration of the callback.
type Host interface {
	GetStorageAt(handle Handle, contractAddress, key *[felt.Bytes]byte) unsafe.Pointer
	GetNonceAt(handle Handle, contractAddress *[felt.Bytes]byte) unsafe.Pointer
	GetClassHashAt(handle Handle, contractAddress *[felt.Bytes]byte) unsafe.Pointer
	GetClass(handle Handle, classHash *[felt.Bytes]byte) unsafe.Pointer
	Free(ptr unsafe.Pointer)

	ReportError(handle Handle, message string)
	AppendResponse(handle Handle, value *[felt.Bytes]byte)
	SetGasConsumed(handle Handle, value *[felt.Bytes]byte)
}
