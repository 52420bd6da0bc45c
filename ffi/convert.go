package ffi

import (
	"unsafe"

	"github.com/NethermindEth/junovm/core/felt"
	"github.com/pkg/errors"
)

var errNullPointer = errors.New("null pointer")

// feltBuffer copies the 32 bytes at ptr.
func feltBuffer(ptr unsafe.Pointer) ([felt.Bytes]byte, error) {
	var buf [felt.Bytes]byte
	if ptr == nil {
		return buf, errNullPointer
	}
	copy(buf[:], unsafe.Slice((*byte)(ptr), felt.Bytes))
	return buf, nil
}

// feltBuffers copies n 32 byte buffers from an array of pointers.
func feltBuffers(array unsafe.Pointer, n int) ([][felt.Bytes]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if array == nil {
		return nil, errors.Wrapf(errNullPointer, "array of %d elements", n)
	}

	ptrs := unsafe.Slice((*unsafe.Pointer)(array), n)
	bufs := make([][felt.Bytes]byte, n)
	for i, ptr := range ptrs {
		buf, err := feltBuffer(ptr)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		bufs[i] = buf
	}
	return bufs, nil
}

// cString copies the NUL-terminated string at ptr. Validating the encoding is left
// to the VM.
func cString(ptr unsafe.Pointer) (string, error) {
	if ptr == nil {
		return "", errNullPointer
	}
	n := 0
	for *(*byte)(unsafe.Add(ptr, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(ptr), n)), nil
}

// optionalCString is cString for arguments where null means absent.
func optionalCString(ptr unsafe.Pointer) (*string, error) {
	if ptr == nil {
		return nil, nil
	}
	s, err := cString(ptr)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
