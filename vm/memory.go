package vm

import (
	"errors"
	"unicode/utf8"
	"unsafe"

	"github.com/NethermindEth/junovm/core/felt"
)

var errInvalidUTF8 = errors.New("string is not valid UTF-8")

// takeFelt decodes the 32 bytes at ptr and releases the buffer.
func takeFelt(host Host, ptr unsafe.Pointer) felt.Felt {
	defer host.Free(ptr)
	return felt.FromBytes(unsafe.Slice((*byte)(ptr), felt.Bytes))
}

// takeString copies the NUL-terminated string at ptr and releases the buffer.
func takeString(host Host, ptr unsafe.Pointer) (string, error) {
	defer host.Free(ptr)

	n := 0
	for *(*byte)(unsafe.Add(ptr, n)) != 0 {
		n++
	}
	s := string(unsafe.Slice((*byte)(ptr), n))
	if !utf8.ValidString(s) {
		return "", errInvalidUTF8
	}
	return s, nil
}
