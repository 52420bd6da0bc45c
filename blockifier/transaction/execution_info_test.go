package transaction_test

import (
	"testing"

	"github.com/NethermindEth/junovm/blockifier/transaction"
	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
	"github.com/stretchr/testify/assert"
)

func TestTransactionExecutionInfo(t *testing.T) {
	event := func(n uint64) core.Event {
		return core.Event{From: felt.NewFromUint64(n)}
	}

	info := &transaction.TransactionExecutionInfo{
		ValidateCallInfo: &transaction.CallInfo{
			Execution: transaction.CallExecution{Events: []core.Event{event(1)}},
			Resources: transaction.ExecutionResources{Steps: 10, RangeCheck: 1},
		},
		ExecuteCallInfo: &transaction.CallInfo{
			Execution: transaction.CallExecution{Events: []core.Event{event(2)}},
			Resources: transaction.ExecutionResources{Steps: 100, Pedersen: 2},
			InnerCalls: []*transaction.CallInfo{
				{Execution: transaction.CallExecution{Events: []core.Event{event(3), event(4)}}},
			},
		},
	}

	assert.False(t, info.Reverted())
	assert.Equal(t, transaction.ExecutionResources{Steps: 110, RangeCheck: 1, Pedersen: 2}, info.TotalResources())

	var from []uint64
	for _, e := range info.Events() {
		from = append(from, e.From.Uint64())
	}
	assert.Equal(t, []uint64{1, 2, 3, 4}, from)

	info.RevertError = "execution failed"
	assert.True(t, info.Reverted())
}
