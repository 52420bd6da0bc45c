package transaction

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/junovm/blockifier/api"
	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/core/felt"
	"github.com/holiman/uint256"
)

// FeeToken represents the token used for fees
type FeeToken uint8

const (
	ETH FeeToken = iota
	STRK
)

func (ft FeeToken) String() string {
	switch ft {
	case ETH:
		return "ETH"
	case STRK:
		return "STRK"
	default:
		return "UNKNOWN"
	}
}

// FeeTokenFromString converts a string to a FeeToken
func FeeTokenFromString(s string) (FeeToken, error) {
	switch s {
	case "ETH":
		return ETH, nil
	case "STRK":
		return STRK, nil
	default:
		return 0, fmt.Errorf("invalid fee token: %s", s)
	}
}

// Fee represents the transaction fee in units of the relevant fee token.
type Fee struct {
	Amount felt.Felt
	Unit   FeeToken
}

// FeeUnit returns the token a transaction pays its fee in: STRK from version 3 on.
func FeeUnit(txn core.Transaction) FeeToken {
	if _, ok := txn.(*core.L1HandlerTransaction); ok {
		return ETH
	}
	if version := txn.TxVersion(); version != nil && version.Is(3) {
		return STRK
	}
	return ETH
}

// ActualFee weighs the resources with the block's fee costs and applies the gas price.
func ActualFee(resources ExecutionResources, blockContext *api.BlockContext, unit FeeToken) Fee {
	costs := blockContext.VersionedConstants.VMResourceFeeCost
	weighted := []struct{ count, weight uint64 }{
		{resources.Steps, costs.Steps},
		{resources.Pedersen, costs.Pedersen},
		{resources.RangeCheck, costs.RangeCheck},
		{resources.Ecdsa, costs.Ecdsa},
		{resources.Bitwise, costs.Bitwise},
		{resources.EcOp, costs.EcOp},
		{resources.Poseidon, costs.Poseidon},
		{resources.SegmentArena, costs.SegmentArena},
	}

	total := new(uint256.Int)
	for _, w := range weighted {
		total.Add(total, new(uint256.Int).Mul(uint256.NewInt(w.count), uint256.NewInt(w.weight)))
	}

	total.Mul(total, uint256.NewInt(blockContext.BlockInfo.GasPrice))

	return Fee{Amount: uint256ToFelt(total), Unit: unit}
}

// MaxFee returns the most the transaction agreed to pay, or nil when it set no bound.
// L1 handler transactions are bounded by the fee paid on L1.
func MaxFee(txn core.Transaction, paidFeeOnL1 *felt.Felt) *uint256.Int {
	switch t := txn.(type) {
	case *core.InvokeTransaction:
		return accountMaxFee(t.Version, t.MaxFee, t.ResourceFields)
	case *core.DeclareTransaction:
		return accountMaxFee(t.Version, t.MaxFee, t.ResourceFields)
	case *core.DeployAccountTransaction:
		return accountMaxFee(t.Version, t.MaxFee, t.ResourceFields)
	case *core.L1HandlerTransaction:
		if paidFeeOnL1 == nil {
			return nil
		}
		return feltToUint256(paidFeeOnL1)
	default:
		return nil
	}
}

func accountMaxFee(version *core.TransactionVersion, maxFee *felt.Felt, fields core.ResourceFields) *uint256.Int {
	if version != nil && version.Is(3) {
		total := new(uint256.Int)
		for _, bounds := range fields.ResourceBounds {
			if bounds.MaxPricePerUnit == nil {
				continue
			}
			product, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(bounds.MaxAmount), feltToUint256(bounds.MaxPricePerUnit))
			if _, sumOverflow := total.AddOverflow(total, product); overflow || sumOverflow {
				return new(uint256.Int).SetAllOne()
			}
		}
		return total
	}
	if maxFee == nil {
		return nil
	}
	return feltToUint256(maxFee)
}

var ErrFeeOutOfBounds = errors.New("actual fee exceeded bounds")

// AssertActualFeeInBounds checks if the actual fee is within the allowed bounds.
func AssertActualFeeInBounds(actualFee Fee, maxFee *uint256.Int) error {
	if maxFee == nil {
		return nil
	}
	if feltToUint256(&actualFee.Amount).Gt(maxFee) {
		return fmt.Errorf("%w; max possible fee is %s", ErrFeeOutOfBounds, maxFee.Dec())
	}
	return nil
}

func feltToUint256(f *felt.Felt) *uint256.Int {
	b := f.Bytes()
	return new(uint256.Int).SetBytes32(b[:])
}

func uint256ToFelt(u *uint256.Int) felt.Felt {
	b := u.Bytes32()
	return felt.FromBytes(b[:])
}
