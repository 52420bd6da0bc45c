package vm_test

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/NethermindEth/junovm/core/felt"
	"github.com/NethermindEth/junovm/vm"
	"github.com/stretchr/testify/assert"
)

var _ vm.Host = (*fakeHost)(nil)

type storageKey struct {
	address, key [felt.Bytes]byte
}

// fakeHost serves state from maps and hands out Go allocated buffers, tracking that
// every one of them is freed exactly once.
type fakeHost struct {
	t  testing.TB
	mu sync.Mutex

	storage     map[storageKey][felt.Bytes]byte
	nonces      map[[felt.Bytes]byte][felt.Bytes]byte
	classHashes map[[felt.Bytes]byte][felt.Bytes]byte
	classes     map[[felt.Bytes]byte][]byte

	live      map[unsafe.Pointer]struct{}
	allocated int
	reads     map[vm.StateKind]int

	errors      map[vm.Handle][]string
	responses   map[vm.Handle][]felt.Felt
	gasConsumed map[vm.Handle][]felt.Felt
}

func newFakeHost(t testing.TB) *fakeHost {
	h := &fakeHost{
		t:           t,
		storage:     make(map[storageKey][felt.Bytes]byte),
		nonces:      make(map[[felt.Bytes]byte][felt.Bytes]byte),
		classHashes: make(map[[felt.Bytes]byte][felt.Bytes]byte),
		classes:     make(map[[felt.Bytes]byte][]byte),
		live:        make(map[unsafe.Pointer]struct{}),
		reads:       make(map[vm.StateKind]int),
		errors:      make(map[vm.Handle][]string),
		responses:   make(map[vm.Handle][]felt.Felt),
		gasConsumed: make(map[vm.Handle][]felt.Felt),
	}
	t.Cleanup(func() {
		assert.Empty(t, h.live, "host buffers were not freed")
	})
	return h
}

func (h *fakeHost) setStorage(address, key, value felt.Felt) {
	h.storage[storageKey{address.Bytes(), key.Bytes()}] = value.Bytes()
}

func (h *fakeHost) setNonce(address, nonce felt.Felt) {
	h.nonces[address.Bytes()] = nonce.Bytes()
}

func (h *fakeHost) setClassHash(address, classHash felt.Felt) {
	h.classHashes[address.Bytes()] = classHash.Bytes()
}

func (h *fakeHost) setClass(classHash felt.Felt, payload []byte) {
	h.classes[classHash.Bytes()] = payload
}

func (h *fakeHost) readCount(kind vm.StateKind) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reads[kind]
}

func (h *fakeHost) totalReads() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	total := 0
	for _, n := range h.reads {
		total += n
	}
	return total
}

// allocFelt must be called with mu held.
func (h *fakeHost) allocFelt(value [felt.Bytes]byte, ok bool) unsafe.Pointer {
	if !ok {
		return nil
	}
	buf := new([felt.Bytes]byte)
	*buf = value
	ptr := unsafe.Pointer(buf)
	h.live[ptr] = struct{}{}
	h.allocated++
	return ptr
}

func (h *fakeHost) GetStorageAt(_ vm.Handle, contractAddress, key *[felt.Bytes]byte) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reads[vm.StorageKind]++
	value, ok := h.storage[storageKey{*contractAddress, *key}]
	return h.allocFelt(value, ok)
}

func (h *fakeHost) GetNonceAt(_ vm.Handle, contractAddress *[felt.Bytes]byte) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reads[vm.NonceKind]++
	value, ok := h.nonces[*contractAddress]
	return h.allocFelt(value, ok)
}

func (h *fakeHost) GetClassHashAt(_ vm.Handle, contractAddress *[felt.Bytes]byte) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reads[vm.ClassHashKind]++
	value, ok := h.classHashes[*contractAddress]
	return h.allocFelt(value, ok)
}

func (h *fakeHost) GetClass(_ vm.Handle, classHash *[felt.Bytes]byte) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reads[vm.ClassKind]++
	payload, ok := h.classes[*classHash]
	if !ok {
		return nil
	}
	buf := make([]byte, len(payload)+1)
	copy(buf, payload)
	ptr := unsafe.Pointer(&buf[0])
	h.live[ptr] = struct{}{}
	h.allocated++
	return ptr
}

func (h *fakeHost) Free(ptr unsafe.Pointer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.live[ptr]; !ok {
		h.t.Errorf("free of a pointer that is not live: %p", ptr)
		return
	}
	delete(h.live, ptr)
}

func (h *fakeHost) ReportError(handle vm.Handle, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors[handle] = append(h.errors[handle], message)
}

func (h *fakeHost) AppendResponse(handle vm.Handle, value *[felt.Bytes]byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses[handle] = append(h.responses[handle], felt.FromBytes(value[:]))
}

func (h *fakeHost) SetGasConsumed(handle vm.Handle, value *[felt.Bytes]byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gasConsumed[handle] = append(h.gasConsumed[handle], felt.FromBytes(value[:]))
}

// outcomes returns the number of reports the host received for handle.
func (h *fakeHost) outcomes(handle vm.Handle) (errors, gasConsumed int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.errors[handle]), len(h.gasConsumed[handle])
}
