package main

import (
	"strings"

	"github.com/NethermindEth/junovm/utils"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version string

const (
	configF         = "config"
	logLevelF       = "log-level"
	chainIDF        = "chain-id"
	blockNumberF    = "block-number"
	blockTimestampF = "block-timestamp"
	outputF         = "output"

	defaultConfig         = ""
	defaultLogLevel       = utils.INFO
	defaultChainID        = "SN_MAIN"
	defaultBlockNumber    = uint64(0)
	defaultBlockTimestamp = uint64(0)
	defaultOutput         = "yaml"

	envPrefix = "CAIROVM"

	configFlagUsage   = "The yaml configuration file."
	logLevelFlagUsage = "Options: debug, info, warn, error."
	chainIDUsage      = "Chain id the execution context is built for."
	blockNumberUsage  = "Block number of the execution context."
	blockTimeUsage    = "Block timestamp of the execution context."
	outputUsage       = "Output format of the context command. Options: yaml, cbor."
)

// Config is shared by every subcommand. Values come from flags, then CAIROVM_*
// environment variables, then the config file.
type Config struct {
	LogLevel       utils.LogLevel `mapstructure:"log-level"`
	ChainID        string         `mapstructure:"chain-id"`
	BlockNumber    uint64         `mapstructure:"block-number"`
	BlockTimestamp uint64         `mapstructure:"block-timestamp"`
	Output         string         `mapstructure:"output"`
}

func NewCmd() *cobra.Command {
	cairoCmd := &cobra.Command{
		Use:           "cairovm",
		Short:         "Inspect the inputs the Cairo VM boundary accepts.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	logLevel := defaultLogLevel
	flags := cairoCmd.PersistentFlags()
	flags.String(configF, defaultConfig, configFlagUsage)
	flags.Var(&logLevel, logLevelF, logLevelFlagUsage)
	flags.String(chainIDF, defaultChainID, chainIDUsage)
	flags.Uint64(blockNumberF, defaultBlockNumber, blockNumberUsage)
	flags.Uint64(blockTimestampF, defaultBlockTimestamp, blockTimeUsage)
	flags.String(outputF, defaultOutput, outputUsage)

	cairoCmd.AddCommand(ContextCmd(), ClassCmd(), TxnCmd())
	return cairoCmd
}

func loadConfig(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	cfgFile, err := cmd.Flags().GetString(configF)
	if err != nil {
		return nil, err
	}
	if cfgFile != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(cfgFile)
		if err = v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err = v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	cfg := new(Config)
	if err = v.Unmarshal(cfg, viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc())); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *Config) (utils.SimpleLogger, error) {
	return utils.NewZapLogger(cfg.LogLevel, false)
}
