package transaction_test

import (
	"testing"

	"github.com/NethermindEth/junovm/blockifier/api"
	"github.com/NethermindEth/junovm/blockifier/transaction"
	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActualFee(t *testing.T) {
	blockContext := api.NewBlockContext("SN_TEST", 1, 1000)

	tests := map[string]struct {
		resources transaction.ExecutionResources
		want      uint64
	}{
		"nothing": {
			want: 0,
		},
		"steps only": {
			resources: transaction.ExecutionResources{Steps: 150},
			want:      150,
		},
		"not rounded": {
			resources: transaction.ExecutionResources{Steps: 1000, Pedersen: 3, RangeCheck: 10},
			// 1000 + 3*32 + 10*16
			want: 1256,
		},
		"every builtin": {
			resources: transaction.ExecutionResources{
				Steps:        1,
				MemoryHoles:  1000,
				Pedersen:     1,
				RangeCheck:   1,
				Ecdsa:        1,
				Bitwise:      1,
				EcOp:         1,
				Poseidon:     1,
				SegmentArena: 1,
			},
			// 1 + 32 + 16 + 2048 + 64 + 1024 + 32 + 10
			want: 3227,
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			fee := transaction.ActualFee(test.resources, blockContext, transaction.ETH)
			assert.Equal(t, felt.FromUint64(test.want), fee.Amount)
			assert.Equal(t, transaction.ETH, fee.Unit)
		})
	}
}

func TestActualFeeScalesWithGasPrice(t *testing.T) {
	blockContext := api.NewBlockContext("SN_TEST", 1, 1000)
	blockContext.BlockInfo.GasPrice = 7

	fee := transaction.ActualFee(transaction.ExecutionResources{Steps: 150, Bitwise: 2}, blockContext, transaction.STRK)
	assert.Equal(t, felt.FromUint64((150+2*64)*7), fee.Amount)
	assert.Equal(t, transaction.STRK, fee.Unit)
}

func TestFeeUnit(t *testing.T) {
	assert.Equal(t, transaction.ETH, transaction.FeeUnit(&core.InvokeTransaction{Version: core.NewTransactionVersion(1)}))
	assert.Equal(t, transaction.STRK, transaction.FeeUnit(&core.InvokeTransaction{Version: core.NewTransactionVersion(3)}))
	assert.Equal(t, transaction.STRK, transaction.FeeUnit(&core.DeclareTransaction{Version: core.NewQueryVersion(3)}))
	assert.Equal(t, transaction.ETH, transaction.FeeUnit(&core.L1HandlerTransaction{Version: core.NewTransactionVersion(0)}))

	token, err := transaction.FeeTokenFromString("STRK")
	require.NoError(t, err)
	assert.Equal(t, transaction.STRK, token)
	_, err = transaction.FeeTokenFromString("WEI")
	assert.Error(t, err)
}

func TestMaxFee(t *testing.T) {
	t.Run("v1 max fee", func(t *testing.T) {
		txn := &core.InvokeTransaction{Version: core.NewTransactionVersion(1), MaxFee: felt.NewFromUint64(500)}
		assert.Equal(t, uint256.NewInt(500), transaction.MaxFee(txn, nil))
	})

	t.Run("v3 resource bounds", func(t *testing.T) {
		txn := &core.InvokeTransaction{
			Version: core.NewTransactionVersion(3),
			ResourceFields: core.ResourceFields{
				ResourceBounds: map[core.Resource]core.ResourceBounds{
					core.ResourceL1Gas: {MaxAmount: 10, MaxPricePerUnit: felt.NewFromUint64(7)},
					core.ResourceL2Gas: {MaxAmount: 3, MaxPricePerUnit: felt.NewFromUint64(2)},
				},
			},
		}
		assert.Equal(t, uint256.NewInt(76), transaction.MaxFee(txn, nil))
	})

	t.Run("l1 handler", func(t *testing.T) {
		txn := &core.L1HandlerTransaction{Version: core.NewTransactionVersion(0)}
		assert.Nil(t, transaction.MaxFee(txn, nil))
		assert.Equal(t, uint256.NewInt(9), transaction.MaxFee(txn, felt.NewFromUint64(9)))
	})

	t.Run("unset", func(t *testing.T) {
		assert.Nil(t, transaction.MaxFee(&core.DeployAccountTransaction{Version: core.NewTransactionVersion(1)}, nil))
	})
}

func TestAssertActualFeeInBounds(t *testing.T) {
	fee := transaction.Fee{Amount: felt.FromUint64(13)}

	require.NoError(t, transaction.AssertActualFeeInBounds(fee, nil))
	require.NoError(t, transaction.AssertActualFeeInBounds(fee, uint256.NewInt(13)))

	err := transaction.AssertActualFeeInBounds(fee, uint256.NewInt(12))
	require.ErrorIs(t, err, transaction.ErrFeeOutOfBounds)
	assert.EqualError(t, err, "actual fee exceeded bounds; max possible fee is 12")
}
