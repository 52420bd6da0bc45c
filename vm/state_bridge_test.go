package vm_test

import (
	"fmt"
	"testing"

	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
	"github.com/NethermindEth/junovm/mocks"
	"github.com/NethermindEth/junovm/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testPrime = "0x800000000000011000000000000000000000000000000000000000000000001"

func casmClassJSON(selectors ...*felt.Felt) string {
	entryPoints := ""
	for i, selector := range selectors {
		if i > 0 {
			entryPoints += ","
		}
		entryPoints += fmt.Sprintf(`{"selector": %q, "offset": %d, "builtins": ["range_check"]}`, selector.String(), i)
	}
	return fmt.Sprintf(`{
		"prime": %q,
		"compiler_version": "2.6.0",
		"bytecode": ["0xa0680017fff8000", "0x7"],
		"hints": [],
		"entry_points_by_type": {"EXTERNAL": [%s], "L1_HANDLER": [], "CONSTRUCTOR": []}
	}`, testPrime, entryPoints)
}

func newBridge(t *testing.T, host vm.Host) *vm.StateBridge {
	return vm.NewStateBridge(host, 1, mocks.NewMockEngine(gomock.NewController(t)), vm.SelectiveListener{})
}

func TestStateBridgeStorage(t *testing.T) {
	address, key := felt.FromUint64(0xc0de), felt.FromUint64(0x5)

	t.Run("not found", func(t *testing.T) {
		host := newFakeHost(t)
		bridge := newBridge(t, host)

		_, err := bridge.Storage(address, key)
		var notFound *vm.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, vm.StorageKind, notFound.Kind)
		assert.Equal(t, address, notFound.Address)
		assert.Equal(t, &key, notFound.Key)
		assert.Equal(t, 1, host.readCount(vm.StorageKind))

		_, err = bridge.Storage(address, key)
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, 1, host.readCount(vm.StorageKind))
	})

	t.Run("first answer is kept", func(t *testing.T) {
		host := newFakeHost(t)
		host.setStorage(address, key, felt.FromUint64(42))
		bridge := newBridge(t, host)

		for j := 0; j < 3; j++ {
			value, err := bridge.Storage(address, key)
			require.NoError(t, err)
			assert.Equal(t, felt.FromUint64(42), value)
		}
		assert.Equal(t, 1, host.readCount(vm.StorageKind))

		host.setStorage(address, key, felt.FromUint64(43))
		value, err := bridge.Storage(address, key)
		require.NoError(t, err)
		assert.Equal(t, felt.FromUint64(42), value)

		value, err = newBridge(t, host).Storage(address, key)
		require.NoError(t, err)
		assert.Equal(t, felt.FromUint64(43), value)
	})

	t.Run("distinct keys are distinct reads", func(t *testing.T) {
		host := newFakeHost(t)
		host.setStorage(address, key, felt.FromUint64(1))
		host.setStorage(address, felt.FromUint64(6), felt.FromUint64(2))
		bridge := newBridge(t, host)

		first, err := bridge.Storage(address, key)
		require.NoError(t, err)
		second, err := bridge.Storage(address, felt.FromUint64(6))
		require.NoError(t, err)
		assert.Equal(t, felt.FromUint64(1), first)
		assert.Equal(t, felt.FromUint64(2), second)
		assert.Equal(t, 2, host.readCount(vm.StorageKind))
		assert.Equal(t, 2, host.allocated)
	})
}

func TestStateBridgeNonceAndClassHash(t *testing.T) {
	address := felt.FromUint64(0xacc)
	host := newFakeHost(t)
	host.setNonce(address, felt.FromUint64(3))
	bridge := newBridge(t, host)

	nonce, err := bridge.Nonce(address)
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64(3), nonce)

	_, err = bridge.Nonce(felt.FromUint64(0xdead))
	var notFound *vm.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, vm.NonceKind, notFound.Kind)
	assert.Nil(t, notFound.Key)
	assert.EqualError(t, err, "nonce of contract 0xdead not found")

	_, err = bridge.ClassHash(address)
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, vm.ClassHashKind, notFound.Kind)
	assert.EqualError(t, err, "class hash of contract 0xacc not found")

	host.setClassHash(address, felt.FromUint64(0xc1a55))
	_, err = bridge.ClassHash(address)
	require.Error(t, err)
	assert.Equal(t, 1, host.readCount(vm.ClassHashKind))
}

func TestStateBridgeClass(t *testing.T) {
	classHash := felt.FromUint64(0xc1a55)

	t.Run("missing", func(t *testing.T) {
		bridge := newBridge(t, newFakeHost(t))

		_, err := bridge.Class(classHash)
		var missing *vm.MissingClassError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, classHash, missing.ClassHash)
		assert.NotErrorIs(t, err, vm.ErrMalformedClass)
		assert.EqualError(t, err, "class 0xc1a55 is missing")
	})

	t.Run("malformed", func(t *testing.T) {
		for name, payload := range map[string][]byte{
			"not json":       []byte(`{"bytecode": [`),
			"unknown format": []byte(`{"sierra_program": []}`),
			"wrong prime":    []byte(`{"prime": "0x11", "bytecode": ["0x1"], "entry_points_by_type": {}}`),
			"invalid utf8":   {'{', 0xc3, 0x28, '}'},
		} {
			t.Run(name, func(t *testing.T) {
				host := newFakeHost(t)
				host.setClass(classHash, payload)
				bridge := newBridge(t, host)

				_, err := bridge.Class(classHash)
				var missing *vm.MissingClassError
				require.ErrorAs(t, err, &missing)
				assert.ErrorIs(t, err, vm.ErrMalformedClass)
			})
		}
	})

	t.Run("parsed once", func(t *testing.T) {
		transfer := core.SelectorFromName("transfer")
		host := newFakeHost(t)
		host.setClass(classHash, []byte(casmClassJSON(transfer)))
		bridge := newBridge(t, host)

		class, err := bridge.Class(classHash)
		require.NoError(t, err)
		casm, ok := class.(*core.CasmClass)
		require.True(t, ok)
		require.Len(t, casm.External, 1)
		assert.Equal(t, transfer, casm.External[0].Selector)

		again, err := bridge.Class(classHash)
		require.NoError(t, err)
		assert.Same(t, casm, again)
		assert.Equal(t, 1, host.readCount(vm.ClassKind))
	})
}

func TestStateBridgeCompiledClassHash(t *testing.T) {
	classHash := felt.FromUint64(0xc1a55)
	host := newFakeHost(t)
	host.setClass(classHash, []byte(casmClassJSON(core.SelectorFromName("transfer"))))

	mockCtrl := gomock.NewController(t)
	engine := mocks.NewMockEngine(mockCtrl)
	bridge := vm.NewStateBridge(host, 1, engine, vm.SelectiveListener{})

	expected := felt.FromUint64(0xcca5)
	engine.EXPECT().CompiledClassHash(gomock.AssignableToTypeOf(&core.CasmClass{})).Return(expected, nil).Times(1)

	for j := 0; j < 2; j++ {
		compiledClassHash, err := bridge.CompiledClassHash(classHash)
		require.NoError(t, err)
		assert.Equal(t, expected, compiledClassHash)
	}

	_, err := bridge.CompiledClassHash(felt.FromUint64(0xdead))
	var missing *vm.MissingClassError
	require.ErrorAs(t, err, &missing)
}

func TestStateBridgeCountStorageChanges(t *testing.T) {
	address := felt.FromUint64(0xc0de)
	host := newFakeHost(t)
	host.setStorage(address, felt.FromUint64(1), felt.FromUint64(10))
	bridge := newBridge(t, host)

	cells, contracts := bridge.CountStorageChanges()
	assert.Zero(t, cells)
	assert.Zero(t, contracts)

	overlay := bridge.Overlay()
	assert.Same(t, overlay, bridge.Overlay())

	require.NoError(t, overlay.SetStorage(address, felt.FromUint64(1), felt.FromUint64(11)))
	require.NoError(t, overlay.SetStorage(address, felt.FromUint64(2), felt.FromUint64(12)))

	cells, contracts = bridge.CountStorageChanges()
	assert.Equal(t, 2, cells)
	assert.Equal(t, 1, contracts)

	// the overlay never writes through to the bridge
	value, err := bridge.Storage(address, felt.FromUint64(1))
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64(10), value)
}

func TestStateBridgeReportsHostReads(t *testing.T) {
	address := felt.FromUint64(0xc0de)
	host := newFakeHost(t)
	host.setNonce(address, felt.Zero)

	mockCtrl := gomock.NewController(t)
	listener := mocks.NewMockEventListener(mockCtrl)
	bridge := vm.NewStateBridge(host, 1, mocks.NewMockEngine(mockCtrl), listener)

	listener.EXPECT().OnHostRead(vm.NonceKind, true).Times(1)
	listener.EXPECT().OnHostRead(vm.StorageKind, false).Times(1)
	listener.EXPECT().OnHostRead(vm.ClassKind, false).Times(1)

	for j := 0; j < 2; j++ {
		_, err := bridge.Nonce(address)
		require.NoError(t, err)
		_, err = bridge.Storage(address, felt.Zero)
		require.Error(t, err)
		_, err = bridge.Class(felt.Zero)
		require.Error(t, err)
	}
}
