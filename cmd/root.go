package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/anchore/bomcodec/bomcodec"
	"github.com/anchore/bomcodec/bomcodec/format"
	"github.com/anchore/bomcodec/bomcodec/schema"
	"github.com/anchore/bomcodec/internal"
	"github.com/anchore/bomcodec/internal/config"
	internalFormat "github.com/anchore/bomcodec/internal/format"
	"github.com/anchore/bomcodec/internal/log"
)

var persistentOpts = config.CliOnlyOptions{}

var rootCmd = &cobra.Command{
	Use:   fmt.Sprintf("%s [FILE]", internal.ApplicationName),
	Short: "Convert software bill of materials documents between XML and JSON",
	Long: `Reads a bill of materials document from a file (or stdin) and writes it in one or more formats:
    bomcodec bom.xml                                 write bom.xml as JSON to stdout
    bomcodec bom.json -o cyclonedx-xml               write bom.json as XML to stdout
    bomcodec bom.xml -o json=bom.json -o xml         write JSON to a file and XML to stdout
    cat bom.json | bomcodec -o xml --pretty          read from stdin
`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDefaultCmd(cmd.OutOrStdout(), args)
	},
}

func init() {
	setGlobalCliOptions()
	setRootFlags(rootCmd.Flags())
}

func setGlobalCliOptions() {
	rootCmd.PersistentFlags().StringVarP(&persistentOpts.ConfigPath, "config", "c", "", "application config file")

	flag := "quiet"
	rootCmd.PersistentFlags().BoolP(
		flag, "q", false,
		"suppress all logging output",
	)
	if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		fmt.Printf("unable to bind flag '%s': %+v", flag, err)
		os.Exit(1)
	}

	rootCmd.PersistentFlags().CountVarP(&persistentOpts.Verbosity, "verbose", "v", "increase verbosity (-v = info, -vv = debug)")
}

func setRootFlags(flags *pflag.FlagSet) {
	flags.StringArrayP(
		"output", "o", nil,
		fmt.Sprintf("document output format, optionally with a destination (<format>=<file>), formats=%v", format.AvailableFormats),
	)

	flags.StringP(
		"file", "", "",
		"file to write the default document output to (default is STDOUT)",
	)

	flags.StringP(
		"input-format", "", "",
		fmt.Sprintf("format of the input document (detected when empty), formats=%v", format.AvailableFormats),
	)

	flags.StringP(
		"enum-convention", "", schema.CurrentConvention.String(),
		fmt.Sprintf("casing of enumerated values, options=%v", schema.Conventions),
	)

	flags.StringP(
		"xml-prefix", "", "",
		"bind the XML namespace to this prefix instead of the default namespace",
	)

	flags.BoolP(
		"pretty", "", false,
		"indent the encoded output",
	)
}

func bindRootConfigOptions(flags *pflag.FlagSet) error {
	for key, flag := range map[string]string{
		"output":                "output",
		"file":                  "file",
		"codec.input-format":    "input-format",
		"codec.enum-convention": "enum-convention",
		"codec.xml-prefix":      "xml-prefix",
		"codec.pretty":          "pretty",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

func runDefaultCmd(stdout io.Writer, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}
	log.Debugf("read %s of document input", humanize.Bytes(uint64(len(data))))

	opts := appConfig.CodecOptions()
	doc, err := bomcodec.Unmarshal(data, appConfig.Codec.InputFormatOpt, opts...)
	if err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	writer, err := internalFormat.MakeDocumentWriter(appConfig.Outputs, appConfig.File, stdout, internalFormat.EncodingConfig{Options: opts})
	if err != nil {
		return err
	}
	defer log.CloseAndLogError(writer, "document writer")

	return writer.Write(doc)
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 1 && strings.TrimSpace(args[0]) != "-" {
		log.Debugf("reading document from %q", args[0])
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("unable to read document: %w", err)
		}
		return data, nil
	}

	isPipedInput, err := internal.IsPipedInput()
	if err != nil {
		return nil, err
	}
	if !isPipedInput {
		return nil, fmt.Errorf("a document file must be given (or provided via stdin)")
	}

	log.Debug("reading document from stdin")
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("unable to read document from stdin: %w", err)
	}
	return data, nil
}
