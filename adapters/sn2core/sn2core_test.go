package sn2core_test

import (
	"encoding/json"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/junovm/adapters/sn2core"
	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
	"github.com/NethermindEth/junovm/starknet"
	"github.com/NethermindEth/junovm/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const casmClassJSON = `{
	"prime": "0x800000000000011000000000000000000000000000000000000000000000001",
	"compiler_version": "2.6.0",
	"bytecode": ["0xa0680017fff8000", "0x7"],
	"hints": [],
	"bytecode_segment_lengths": 2,
	"entry_points_by_type": {
		"EXTERNAL": [{"selector": "0x83afd3f4caedc6eebf44246fe54e38c95e3179a5ec9ea81740eca5b482d12e", "offset": 0, "builtins": ["range_check"]}],
		"L1_HANDLER": [],
		"CONSTRUCTOR": []
	}
}`

const cairo0ClassJSON = `{
	"abi": [],
	"program": {"data": ["0x1"]},
	"entry_points_by_type": {
		"EXTERNAL": [{"selector": "0x2", "offset": "0x3a"}],
		"L1_HANDLER": [],
		"CONSTRUCTOR": [{"selector": "0x28ffe4ff0f226a9107253e17a904099aa4f63a02a5621de0576e5aa71bc5194", "offset": "0x10"}]
	}
}`

func unmarshalClass(t *testing.T, data string) *starknet.CompiledClass {
	t.Helper()

	var class starknet.CompiledClass
	require.NoError(t, json.Unmarshal([]byte(data), &class))
	return &class
}

func TestAdaptCompiledClass(t *testing.T) {
	t.Run("casm", func(t *testing.T) {
		class, err := sn2core.AdaptCompiledClass(unmarshalClass(t, casmClassJSON))
		require.NoError(t, err)

		casm, ok := class.(*core.CasmClass)
		require.True(t, ok)
		assert.Equal(t, uint64(1), casm.Version())
		assert.True(t, casm.CompilerVersion.Equal(semver.MustParse("2.6.0")))
		assert.Equal(t, core.SegmentLengths{Length: 2}, casm.BytecodeSegmentLengths)

		ep, found := core.FindEntryPoint(casm, core.External, core.SelectorFromName("transfer"))
		require.True(t, found)
		assert.Equal(t, []string{"range_check"}, ep.Builtins)
	})

	t.Run("cairo 0", func(t *testing.T) {
		class, err := sn2core.AdaptCompiledClass(unmarshalClass(t, cairo0ClassJSON))
		require.NoError(t, err)

		cairo0, ok := class.(*core.Cairo0Class)
		require.True(t, ok)
		assert.Equal(t, uint64(0), cairo0.Version())
		require.Len(t, cairo0.Externals, 1)
		assert.Equal(t, uint64(0x3a), cairo0.Externals[0].Offset)
		require.Len(t, cairo0.Constructors, 1)
		assert.Empty(t, cairo0.L1Handlers)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := sn2core.AdaptCompiledClass(new(starknet.CompiledClass))
		assert.ErrorIs(t, err, starknet.ErrUnknownClassFormat)
	})

	t.Run("wrong prime", func(t *testing.T) {
		class := unmarshalClass(t, casmClassJSON)
		class.Casm.Prime = "0x7"
		_, err := sn2core.AdaptCompiledClass(class)
		assert.Error(t, err)
	})

	t.Run("bad compiler version", func(t *testing.T) {
		class := unmarshalClass(t, casmClassJSON)
		class.Casm.CompilerVersion = "two"
		_, err := sn2core.AdaptCompiledClass(class)
		assert.Error(t, err)
	})

	t.Run("entry point without selector", func(t *testing.T) {
		class := unmarshalClass(t, casmClassJSON)
		class.Casm.EntryPoints.External[0].Selector = nil
		_, err := sn2core.AdaptCompiledClass(class)
		assert.Error(t, err)
	})

	t.Run("offset out of range", func(t *testing.T) {
		class := unmarshalClass(t, cairo0ClassJSON)
		class.Deprecated.EntryPoints.External[0].Offset = utils.HexToFelt(t, "0x10000000000000000")
		_, err := sn2core.AdaptCompiledClass(class)
		assert.Error(t, err)
	})
}

func unmarshalEnvelope(t *testing.T, data string) *starknet.TransactionEnvelope {
	t.Helper()

	envelope, err := starknet.UnmarshalEnvelope([]byte(data))
	require.NoError(t, err)
	return envelope
}

func TestAdaptEnvelope(t *testing.T) {
	chainID := core.ChainIDFelt("SN_TEST")

	t.Run("invoke v1 with hash", func(t *testing.T) {
		envelope := unmarshalEnvelope(t, `{
			"query_bit": false,
			"txn": {"Invoke": {"V1": {
				"sender_address": "0x5e4de4", "calldata": ["0x1"], "max_fee": "0x64",
				"nonce": "0x1", "signature": ["0xa", "0xb"]
			}}},
			"txn_hash": "0x1234"
		}`)
		txn, err := sn2core.AdaptEnvelope(envelope, chainID)
		require.NoError(t, err)

		invoke, ok := txn.(*core.InvokeTransaction)
		require.True(t, ok)
		assert.Equal(t, felt.NewFromUint64(0x1234), invoke.Hash())
		assert.True(t, invoke.Version.Is(1))
		assert.False(t, invoke.Version.HasQueryBit())
		assert.Equal(t, []*felt.Felt{felt.NewFromUint64(0xa), felt.NewFromUint64(0xb)}, invoke.Signature())
	})

	t.Run("invoke v1 hash is derived", func(t *testing.T) {
		envelope := unmarshalEnvelope(t, `{
			"query_bit": true,
			"txn": {"Invoke": {"V1": {
				"sender_address": "0x5e4de4", "calldata": [], "max_fee": "0x64",
				"nonce": "0x1", "signature": []
			}}}
		}`)
		txn, err := sn2core.AdaptEnvelope(envelope, chainID)
		require.NoError(t, err)
		assert.True(t, txn.TxVersion().HasQueryBit())

		want, err := core.TransactionHash(txn, chainID)
		require.NoError(t, err)
		assert.Equal(t, want, txn.Hash())
	})

	t.Run("invoke v3 without hash", func(t *testing.T) {
		envelope := unmarshalEnvelope(t, `{
			"query_bit": false,
			"txn": {"Invoke": {"V3": {
				"sender_address": "0x5e4de4", "calldata": [], "nonce": "0x0", "signature": [],
				"tip": "0x0", "paymaster_data": [], "account_deployment_data": [],
				"resource_bounds": {"L1_GAS": {"max_amount": "0x10", "max_price_per_unit": "0x2"}},
				"nonce_data_availability_mode": "L1", "fee_data_availability_mode": "L1"
			}}}
		}`)
		_, err := sn2core.AdaptEnvelope(envelope, chainID)
		assert.ErrorIs(t, err, core.ErrHashUnsupported)

		envelope.TxnHash = felt.NewFromUint64(1)
		txn, err := sn2core.AdaptEnvelope(envelope, chainID)
		require.NoError(t, err)
		invoke := txn.(*core.InvokeTransaction)
		assert.Equal(t, core.ResourceBounds{MaxAmount: 0x10, MaxPricePerUnit: felt.NewFromUint64(2)},
			invoke.ResourceBounds[core.ResourceL1Gas])
	})

	t.Run("deploy account address is derived", func(t *testing.T) {
		envelope := unmarshalEnvelope(t, `{
			"query_bit": false,
			"txn": {"DeployAccount": {"V1": {
				"class_hash": "0x0439218681f9108b470d2379cf589ef47e60dc5888ee49ec70071671d74ca9c6",
				"contract_address_salt": "0x5bebda1b28ba6daa824126577b9fbc984033e8b18360f5e1ef694cb172c7aa5",
				"constructor_calldata": [], "max_fee": "0x64", "nonce": "0x0", "signature": []
			}}},
			"txn_hash": "0x99"
		}`)
		txn, err := sn2core.AdaptEnvelope(envelope, chainID)
		require.NoError(t, err)

		deployAccount := txn.(*core.DeployAccountTransaction)
		assert.Equal(t, utils.HexToFelt(t, "0x43c6817e70b3fd99a4f120790b2e82c6843df62b573fdadf9e2d677b60ac5eb"),
			deployAccount.ContractAddress)
	})

	t.Run("declare v0 defaults nonce", func(t *testing.T) {
		envelope := unmarshalEnvelope(t, `{
			"query_bit": false,
			"txn": {"Declare": {"V0": {
				"class_hash": "0xc1a55", "sender_address": "0x1", "max_fee": "0x0", "signature": []
			}}},
			"txn_hash": "0x98"
		}`)
		txn, err := sn2core.AdaptEnvelope(envelope, chainID)
		require.NoError(t, err)
		assert.Equal(t, &felt.Zero, txn.(*core.DeclareTransaction).Nonce)
	})

	t.Run("l1 handler", func(t *testing.T) {
		envelope := unmarshalEnvelope(t, `{
			"query_bit": false,
			"txn": {"L1Handler": {
				"version": "0x0", "contract_address": "0xc0de", "entry_point_selector": "0x1",
				"nonce": "0x7", "calldata": ["0xae0ee0a63a2ce6baeeffe56e7714fb4efe48d419"]
			}}
		}`)
		txn, err := sn2core.AdaptEnvelope(envelope, chainID)
		require.NoError(t, err)

		l1Handler, ok := txn.(*core.L1HandlerTransaction)
		require.True(t, ok)
		want, err := core.TransactionHash(l1Handler, chainID)
		require.NoError(t, err)
		assert.Equal(t, want, l1Handler.Hash())
	})
}

func TestAdaptTransactionErrors(t *testing.T) {
	tests := map[string]starknet.TxnVariant{
		"deploy is unsupported": {Type: starknet.TxnDeploy},
		"unknown version":       {Type: starknet.TxnInvoke, Version: 2},
		"missing sender": {
			Type:    starknet.TxnInvoke,
			Version: 1,
			Transaction: starknet.Transaction{
				CallData:  &[]*felt.Felt{},
				MaxFee:    &felt.Zero,
				Nonce:     &felt.Zero,
				Signature: &[]*felt.Felt{},
			},
		},
		"missing calldata": {
			Type:    starknet.TxnL1Handler,
			Version: 0,
			Transaction: starknet.Transaction{
				ContractAddress:    &felt.One,
				EntryPointSelector: &felt.One,
				Nonce:              &felt.Zero,
			},
		},
	}
	for name, variant := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := sn2core.AdaptTransaction(&variant, false)
			assert.Error(t, err)
		})
	}

	t.Run("unsupported sentinel", func(t *testing.T) {
		_, err := sn2core.AdaptTransaction(&starknet.TxnVariant{Type: starknet.TxnDeploy}, false)
		assert.ErrorIs(t, err, sn2core.ErrUnsupportedTransaction)
	})
}
