package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/NethermindEth/junovm/adapters/sn2core"
	"github.com/NethermindEth/junovm/blockifier/api"
	"github.com/NethermindEth/junovm/blockifier/transaction"
	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/starknet"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func TxnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "txn <file>",
		Short: "Decode a transaction envelope and show how it would be executed",
		Long: `This subcommand decodes a transaction envelope the way the VM does, deriving the
hash from --chain-id when the envelope carries none, and prints the execution flags
and fee bound it would run with.`,
		Args: cobra.ExactArgs(1),
		RunE: printTxn,
	}
}

func txnKind(txn core.Transaction) string {
	switch txn.(type) {
	case *core.InvokeTransaction:
		return "INVOKE"
	case *core.DeclareTransaction:
		return "DECLARE"
	case *core.DeployAccountTransaction:
		return "DEPLOY_ACCOUNT"
	case *core.L1HandlerTransaction:
		return "L1_HANDLER"
	default:
		return "<unknown>"
	}
}

func printTxn(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	envelope, err := starknet.UnmarshalEnvelope(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}
	txn, err := sn2core.AdaptEnvelope(envelope, core.ChainIDFelt(cfg.ChainID))
	if err != nil {
		return fmt.Errorf("adapt %s: %w", args[0], err)
	}

	maxFee := transaction.MaxFee(txn, envelope.PaidFeeOnL1)
	flags := api.NewExecutionFlags(txn.TxVersion().HasQueryBit(), maxFee != nil && !maxFee.IsZero())
	version := txn.TxVersion().WithoutQueryBit()
	maxFeeText := "none"
	if maxFee != nil {
		maxFeeText = maxFee.Dec()
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Field", "Value"})
	table.AppendBulk([][]string{
		{"Kind", txnKind(txn)},
		{"Hash", txn.Hash().String()},
		{"Version", version.String()},
		{"Query", strconv.FormatBool(flags.OnlyQuery)},
		{"Fee unit", transaction.FeeUnit(txn).String()},
		{"Max fee", maxFeeText},
		{"Charge fee", strconv.FormatBool(flags.ChargeFee)},
		{"Validate", strconv.FormatBool(flags.Validate)},
	})
	table.Render()
	return nil
}
