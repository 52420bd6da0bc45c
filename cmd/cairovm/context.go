package main

import (
	"encoding/hex"
	"fmt"

	"github.com/NethermindEth/junovm/blockifier/api"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type blockContextView struct {
	BlockNumber       uint64            `yaml:"block_number"`
	BlockTimestamp    uint64            `yaml:"block_timestamp"`
	GasPrice          uint64            `yaml:"gas_price"`
	ChainID           string            `yaml:"chain_id"`
	FeeTokenAddress   string            `yaml:"fee_token_address"`
	InvokeTxMaxNSteps uint32            `yaml:"invoke_tx_max_n_steps"`
	ValidateMaxNSteps uint32            `yaml:"validate_max_n_steps"`
	MaxRecursionDepth uint64            `yaml:"max_recursion_depth"`
	VMResourceFeeCost map[string]uint64 `yaml:"vm_resource_fee_cost"`
}

func newBlockContextView(c *api.BlockContext) blockContextView {
	costs := c.VersionedConstants.VMResourceFeeCost
	return blockContextView{
		BlockNumber:       c.BlockInfo.BlockNumber,
		BlockTimestamp:    c.BlockInfo.BlockTimestamp,
		GasPrice:          c.BlockInfo.GasPrice,
		ChainID:           c.ChainInfo.ChainID,
		FeeTokenAddress:   c.ChainInfo.FeeTokenAddress.String(),
		InvokeTxMaxNSteps: c.VersionedConstants.InvokeTxMaxNSteps,
		ValidateMaxNSteps: c.VersionedConstants.ValidateMaxNSteps,
		MaxRecursionDepth: c.VersionedConstants.MaxRecursionDepth,
		VMResourceFeeCost: map[string]uint64{
			"n_steps":             costs.Steps,
			"pedersen_builtin":    costs.Pedersen,
			"range_check_builtin": costs.RangeCheck,
			"ecdsa_builtin":       costs.Ecdsa,
			"bitwise_builtin":     costs.Bitwise,
			"ec_op_builtin":       costs.EcOp,
			"poseidon_builtin":    costs.Poseidon,
			"segment_arena":       costs.SegmentArena,
		},
	}
}

func ContextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Print the block context invocations run with",
		Long: `This subcommand builds the block context from the chain id, block number and
timestamp and prints it as yaml, or as hex encoded cbor with --output cbor.`,
		Args: cobra.NoArgs,
		RunE: printContext,
	}
}

func printContext(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	blockContext := api.NewBlockContext(cfg.ChainID, cfg.BlockNumber, cfg.BlockTimestamp)
	switch cfg.Output {
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(newBlockContextView(blockContext))
	case "cbor":
		encoded, err := blockContext.MarshalBinary()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(encoded))
		return err
	default:
		return fmt.Errorf("unknown output format %q", cfg.Output)
	}
}
