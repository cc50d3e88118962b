package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	MinifyConfig struct {
		Enabled   bool `yaml:"enabled"`
		Workers   int  `yaml:"workers" validate:"gte=0,lte=256"`
		CacheSize int  `yaml:"cache_size" validate:"gte=0"`
	}

	OutputConfig struct {
		Mode                OutputMode `yaml:"mode"`
		NameTemplate        string     `yaml:"name_template" validate:"required"`
		DeclarationTemplate string     `yaml:"declaration_template" validate:"required"`
	}

	Config struct {
		Version   int               `yaml:"version" validate:"eq=1"`
		Minify    MinifyConfig      `yaml:"minify"`
		Targets   map[string]string `yaml:"targets" validate:"dive,required"`
		Output    OutputConfig      `yaml:"output"`
		Logging   LoggingConfig     `yaml:"logging"`
		Reporting ReporterConfig    `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field names above
	NameTemplateFieldName        TemplateFieldName = "name_template"
	DeclarationTemplateFieldName TemplateFieldName = "declaration_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(NameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(DeclarationTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined are allowed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration expands the configuration template for defaults, puts
// values from the file at path (if any) on top of it and validates the
// result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// targets from the file replace default ones instead of merging
	cfg.Targets = nil
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare expands configuration template and returns it.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
