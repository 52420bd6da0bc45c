package api

import (
	"github.com/NethermindEth/junovm/core/felt"
	"github.com/fxamacker/cbor/v2"
)

const (
	// GasPrice is fixed at 1 so the fee the engine reports equals the gas consumed.
	GasPrice uint64 = 1

	MaxNSteps         uint32 = 1_000_000
	MaxRecursionDepth uint64 = 50

	// DefaultInitialGas is the gas an entry point called from outside a transaction starts with.
	DefaultInitialGas uint64 = 10_000_000_000
)

// FeeTokenAddress is the address of the token contract fees are charged in.
var FeeTokenAddress = *mustParseFelt("0x049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7")

// VmResourceCosts holds the fee weight of each resource, as a multiple of the weight
// of one Cairo step.
type VmResourceCosts struct {
	Steps        uint64 `cbor:"1,keyasint"`
	Pedersen     uint64 `cbor:"2,keyasint"`
	RangeCheck   uint64 `cbor:"3,keyasint"`
	Ecdsa        uint64 `cbor:"4,keyasint"`
	Bitwise      uint64 `cbor:"5,keyasint"`
	EcOp         uint64 `cbor:"6,keyasint"`
	Poseidon     uint64 `cbor:"7,keyasint"`
	SegmentArena uint64 `cbor:"8,keyasint"`
}

func DefaultVmResourceCosts() VmResourceCosts {
	const stepWeight = 1
	return VmResourceCosts{
		Steps:        stepWeight,
		Pedersen:     stepWeight * 32,
		RangeCheck:   stepWeight * 16,
		Ecdsa:        stepWeight * 2048,
		Bitwise:      stepWeight * 64,
		EcOp:         stepWeight * 1024,
		Poseidon:     stepWeight * 32,
		SegmentArena: stepWeight * 10,
	}
}

// VersionedConstants holds constants that may change with versions of the protocol
type VersionedConstants struct {
	// Maximum number of steps for invoke transactions
	InvokeTxMaxNSteps uint32 `cbor:"1,keyasint"`
	// Maximum number of steps for validation
	ValidateMaxNSteps uint32          `cbor:"2,keyasint"`
	MaxRecursionDepth uint64          `cbor:"3,keyasint"`
	VMResourceFeeCost VmResourceCosts `cbor:"4,keyasint"`
}

type BlockInfo struct {
	BlockNumber    uint64 `cbor:"1,keyasint"`
	BlockTimestamp uint64 `cbor:"2,keyasint"`
	GasPrice       uint64 `cbor:"3,keyasint"`
}

type ChainInfo struct {
	ChainID         string    `cbor:"1,keyasint"`
	FeeTokenAddress felt.Felt `cbor:"2,keyasint"`
}

// BlockContext holds the per-block parameters every execution runs with.
type BlockContext struct {
	BlockInfo          BlockInfo          `cbor:"1,keyasint"`
	ChainInfo          ChainInfo          `cbor:"2,keyasint"`
	VersionedConstants VersionedConstants `cbor:"3,keyasint"`
}

// NewBlockContext builds the execution context of a block. It has no side effects.
func NewBlockContext(chainID string, blockNumber, blockTimestamp uint64) *BlockContext {
	return &BlockContext{
		BlockInfo: BlockInfo{
			BlockNumber:    blockNumber,
			BlockTimestamp: blockTimestamp,
			GasPrice:       GasPrice,
		},
		ChainInfo: ChainInfo{
			ChainID:         chainID,
			FeeTokenAddress: FeeTokenAddress,
		},
		VersionedConstants: VersionedConstants{
			InvokeTxMaxNSteps: MaxNSteps,
			ValidateMaxNSteps: MaxNSteps,
			MaxRecursionDepth: MaxRecursionDepth,
			VMResourceFeeCost: DefaultVmResourceCosts(),
		},
	}
}

var encMode = func() cbor.EncMode {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// plainBlockContext has the fields of BlockContext but none of its methods, so the
// cbor encoder does not route back through MarshalBinary.
type plainBlockContext BlockContext

// MarshalBinary returns the canonical CBOR encoding of the context.
func (c *BlockContext) MarshalBinary() ([]byte, error) {
	return encMode.Marshal((*plainBlockContext)(c))
}

func UnmarshalBlockContext(data []byte) (*BlockContext, error) {
	var c plainBlockContext
	if err := cbor.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return (*BlockContext)(&c), nil
}

func mustParseFelt(s string) *felt.Felt {
	f, err := new(felt.Felt).SetString(s)
	if err != nil {
		panic(err)
	}
	return f
}
