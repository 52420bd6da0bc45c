package transaction

import "github.com/NethermindEth/junovm/core"

// RevertError is the reason a transaction was reverted.
type RevertError string

// TransactionExecutionInfo contains information about a transaction's execution.
type TransactionExecutionInfo struct {
	// ValidateCallInfo is the transaction validation call info; nil for L1Handler.
	ValidateCallInfo *CallInfo
	// ExecuteCallInfo is the transaction execution call info; nil for Declare.
	ExecuteCallInfo *CallInfo
	// FeeTransferCallInfo is the fee transfer call info; nil for L1Handler.
	FeeTransferCallInfo *CallInfo
	// RevertError is set when the transaction was reverted.
	RevertError RevertError
}

func (i *TransactionExecutionInfo) Reverted() bool {
	return i.RevertError != ""
}

func (i *TransactionExecutionInfo) callInfos() []*CallInfo {
	var callInfos []*CallInfo
	for _, ci := range []*CallInfo{i.ValidateCallInfo, i.ExecuteCallInfo, i.FeeTransferCallInfo} {
		if ci != nil {
			callInfos = append(callInfos, ci)
		}
	}
	return callInfos
}

// TotalResources sums the resources of the top level calls.
func (i *TransactionExecutionInfo) TotalResources() ExecutionResources {
	var total ExecutionResources
	for _, ci := range i.callInfos() {
		total = total.Add(ci.Resources)
	}
	return total
}

// Events returns the events of validation, execution and fee transfer in that order.
func (i *TransactionExecutionInfo) Events() []*core.Event {
	var events []*core.Event
	for _, ci := range i.callInfos() {
		events = append(events, ci.Events()...)
	}
	return events
}
