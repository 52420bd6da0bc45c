package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/NethermindEth/junovm/core"
	"github.com/NethermindEth/junovm/vm"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func ClassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "class <file>",
		Short: "Parse a compiled class and list its entry points",
		Args:  cobra.ExactArgs(1),
		RunE:  printClass,
	}
}

func printClass(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	class, err := vm.ParseClass(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}
	log.Debugw("Parsed class", "file", args[0], "version", class.Version())

	out := cmd.OutOrStdout()
	if _, err = fmt.Fprintf(out, "Cairo version: %d\n", class.Version()); err != nil {
		return err
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Type", "Selector", "Offset", "Builtins"})
	for _, t := range []core.EntryPointType{core.External, core.L1Handler, core.Constructor} {
		for _, ep := range class.EntryPoints(t) {
			table.Append([]string{
				t.String(),
				ep.Selector.String(),
				strconv.FormatUint(ep.Offset, 10),
				strings.Join(ep.Builtins, ","),
			})
		}
	}
	table.Render()
	return nil
}
