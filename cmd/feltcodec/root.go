package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/cartridge-gg/feltcodec"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix = "FELTCODEC"

	logLevelF     = "log-level"
	outputF       = "output"
	legacyF       = "legacy"
	decimalInputF = "decimal-input"
	debugEnv      = "debug"

	outputText = "text"
	outputJSON = "json"
)

type app struct {
	v   *viper.Viper
	out io.Writer
	log Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	a := &app{v: v, out: out, log: NewNopLogger()}
	logLevel := INFO

	rootCmd := &cobra.Command{
		Use:           "feltcodec",
		Short:         "Convert strings and u256 values to and from Starknet felts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().Var(&logLevel, logLevelF, "Log level: debug, info, warn or error.")
	rootCmd.PersistentFlags().String(outputF, outputText, "Output format: text or json.")

	rootCmd.AddCommand(
		a.encodeCmd(),
		a.decodeCmd(),
		a.u256Cmd(),
		a.blockIDCmd(),
	)
	return rootCmd
}

func (a *app) configure(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	var level LogLevel
	if err := level.Set(a.v.GetString(logLevelF)); err != nil {
		return err
	}
	// FELTCODEC_DEBUG wins over --log-level.
	if a.v.GetString(debugEnv) != "" {
		level = DEBUG
	}
	logger, err := NewZapLogger(level)
	if err != nil {
		return err
	}
	a.log = logger

	switch output := a.v.GetString(outputF); output {
	case outputText, outputJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (known: text, json)", output)
	}
}

func (a *app) encodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <text>",
		Short: "Encode text as Cairo ByteArray calldata",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			text := args[0]

			var (
				felts []*felt.Felt
				err   error
			)
			if a.v.GetBool(legacyF) {
				felts, err = feltcodec.EncodeLegacyString(text)
			} else {
				felts, err = feltcodec.EncodeByteArray(text).MarshalCairo()
			}
			if err != nil {
				return err
			}
			a.log.Debugw("Encoded string", "bytes", len(text), "felts", len(felts), "legacy", a.v.GetBool(legacyF))

			hexes := make([]string, len(felts))
			for i, f := range felts {
				hexes[i] = f.String()
			}
			return a.emit(hexes, hexes...)
		},
	}
	cmd.Flags().Bool(legacyF, false, "Use the legacy [count, short strings...] layout.")
	return cmd
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <felt>...",
		Short: "Decode a long string from felts (hex or decimal)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			elements := make([]*felt.Felt, len(args))
			for i, arg := range args {
				f, err := feltcodec.FeltFromString(arg)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i, err)
				}
				elements[i] = f
			}

			s, err := feltcodec.ParseLongString(elements)
			if err != nil {
				a.log.Warnw("Failed to parse long string", "felts", len(elements), "err", err)
				return err
			}
			return a.emit(s, s)
		},
	}
}

type u256Output struct {
	Hex           string `json:"hex"`
	Decimal       string `json:"decimal"`
	PaddedDecimal string `json:"padded_decimal"`
	Low           string `json:"low"`
	High          string `json:"high"`
}

func (a *app) u256Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "u256 <value>",
		Short: "Show a u256 in hex, decimal and limb form",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			parse := feltcodec.U256FromHex
			if a.v.GetBool(decimalInputF) {
				parse = feltcodec.U256FromDecimal
			}
			value, err := parse(args[0])
			if err != nil {
				return err
			}
			limbs, err := value.MarshalCairo()
			if err != nil {
				return err
			}

			o := u256Output{
				Hex:           value.Hex(),
				Decimal:       value.Decimal(false),
				PaddedDecimal: value.Decimal(true),
				Low:           limbs[0].String(),
				High:          limbs[1].String(),
			}
			return a.emit(o,
				"hex:            "+o.Hex,
				"decimal:        "+o.Decimal,
				"padded decimal: "+o.PaddedDecimal,
				"low:            "+o.Low,
				"high:           "+o.High,
			)
		},
	}
	cmd.Flags().Bool(decimalInputF, false, "Read the value as decimal instead of hex.")
	return cmd
}

func (a *app) blockIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "block-id <latest|pending|number|hash>",
		Short: "Parse a block identifier into its JSON-RPC form",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := feltcodec.ParseBlockID(args[0])
			if err != nil {
				return err
			}
			raw, err := json.Marshal(id)
			if err != nil {
				return err
			}
			return a.emit(json.RawMessage(raw), string(raw))
		},
	}
}

// emit writes value as JSON, or lines as plain text, depending on --output.
func (a *app) emit(value any, lines ...string) error {
	if a.v.GetString(outputF) == outputJSON {
		return json.NewEncoder(a.out).Encode(value)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(a.out, line); err != nil {
			return err
		}
	}
	return nil
}
