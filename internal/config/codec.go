package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/anchore/bomcodec/bomcodec/format"
	"github.com/anchore/bomcodec/bomcodec/schema"
)

// codec contains the options passed to the document encoder and decoder.
type codec struct {
	InputFormat    string            `yaml:"input-format" json:"input-format" mapstructure:"input-format"`          // --input-format, the format of the input document (detected when empty)
	InputFormatOpt format.Format     `yaml:"-" json:"-"`                                                            // the parsed input format
	EnumConvention string            `yaml:"enum-convention" json:"enum-convention" mapstructure:"enum-convention"` // --enum-convention, the casing of enumerated values
	ConventionOpt  schema.Convention `yaml:"-" json:"-"`                                                            // the parsed enum convention
	XMLPrefix      string            `yaml:"xml-prefix" json:"xml-prefix" mapstructure:"xml-prefix"`                // --xml-prefix, bind the XML namespace to this prefix
	Pretty         bool              `yaml:"pretty" json:"pretty" mapstructure:"pretty"`                            // --pretty, indent the encoded output
}

func (cfg codec) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("codec.input-format", "")
	v.SetDefault("codec.enum-convention", schema.CurrentConvention.String())
	v.SetDefault("codec.xml-prefix", "")
	v.SetDefault("codec.pretty", false)
}

func (cfg *codec) parseConfigValues() error {
	convention, err := schema.ParseConvention(cfg.EnumConvention)
	if err != nil {
		return err
	}
	cfg.ConventionOpt = convention

	cfg.InputFormatOpt = format.UnknownFormat
	if strings.TrimSpace(cfg.InputFormat) != "" {
		cfg.InputFormatOpt = format.Parse(cfg.InputFormat)
		if cfg.InputFormatOpt == format.UnknownFormat {
			return fmt.Errorf("bad --input-format value '%s', supported formats are: %+v", cfg.InputFormat, format.AvailableFormats)
		}
	}

	if strings.ContainsAny(cfg.XMLPrefix, ": \t\n<>\"'") {
		return fmt.Errorf("bad --xml-prefix value '%s'", cfg.XMLPrefix)
	}
	return nil
}
