// Package config reads the configuration file describing which OpenAPI documents are rendered
// into which HTML document.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nobl9/govy/pkg/govy"
	"github.com/nobl9/govy/pkg/rules"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nieomylnieja/oasdoc/internal/configdoc"
)

// FileName is the name of the configuration file looked up when no path is given.
const FileName = "oasdoc.yaml"

type Config struct {
	// Input is the HTML document holding the marked regions.
	Input string `yaml:"input"`
	// Output is where the rendered document is written, "-" stands for standard output.
	Output string `yaml:"output"`
	// StrictValidation makes validation problems fatal, it defaults to true.
	StrictValidation *bool `yaml:"strictValidation"`
	// APIs are listed in precedence order, a later document overrides
	// the paths it shares with earlier ones.
	APIs             []API     `yaml:"apis"`
	Selectors        Selectors `yaml:"selectors"`
	HiddenProperties []string  `yaml:"hiddenProperties"`
}

type API struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type Selectors struct {
	SummaryTable  string `yaml:"summaryTable"`
	CallerTable   string `yaml:"callerTable"`
	DetailSection string `yaml:"detailSection"`
}

// Strict reports whether validation problems are fatal.
func (c Config) Strict() bool {
	return c.StrictValidation == nil || *c.StrictValidation
}

// Default returns the configuration used when the file does not say otherwise.
// The documents are ordered so that the exchanges API overrides the others.
func Default() Config {
	return Config{
		Output: "-",
		APIs: []API{
			{Name: "issuer", Path: "issuer.yml"},
			{Name: "verifier", Path: "verifier.yml"},
			{Name: "holder", Path: "holder.yml"},
			{Name: "exchanges", Path: "exchanges.yml"},
		},
		Selectors: Selectors{
			SummaryTable:  "api-summary-table",
			CallerTable:   "api-component-table",
			DetailSection: "api-detail",
		},
	}
}

// Load reads and validates the configuration file.
// Relative paths are resolved against the directory of the file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config file %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "invalid config file %s", path)
	}
	return cfg.ResolvePaths(filepath.Dir(path)), nil
}

// Parse decodes the configuration, applies defaults and validates the result.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	def := Default()
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.APIs == nil {
		c.APIs = def.APIs
	}
	if c.Selectors.SummaryTable == "" {
		c.Selectors.SummaryTable = def.Selectors.SummaryTable
	}
	if c.Selectors.CallerTable == "" {
		c.Selectors.CallerTable = def.Selectors.CallerTable
	}
	if c.Selectors.DetailSection == "" {
		c.Selectors.DetailSection = def.Selectors.DetailSection
	}
	return c
}

// ResolvePaths makes relative input, output and API paths relative to dir.
func (c Config) ResolvePaths(dir string) Config {
	resolve := func(path string) string {
		if path == "" || path == "-" || filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(dir, path)
	}
	c.Input = resolve(c.Input)
	c.Output = resolve(c.Output)
	apis := make([]API, 0, len(c.APIs))
	for _, api := range c.APIs {
		api.Path = resolve(api.Path)
		apis = append(apis, api)
	}
	c.APIs = apis
	return c
}

func (c Config) Validate() error {
	return configValidator.Validate(c)
}

// Reference documents every property of the configuration file along with its validation rules.
func Reference() (configdoc.ObjectDoc, error) {
	return configdoc.Generate(configValidator)
}

var apiValidator = govy.New(
	govy.For(func(a API) string { return a.Name }).
		WithName("name").
		Required().
		Rules(rules.StringNotEmpty()),
	govy.For(func(a API) string { return a.Path }).
		WithName("path").
		Required().
		Rules(rules.StringNotEmpty()),
)

var selectorsValidator = govy.New(
	govy.For(func(s Selectors) string { return s.SummaryTable }).
		WithName("summaryTable").
		Rules(className()),
	govy.For(func(s Selectors) string { return s.CallerTable }).
		WithName("callerTable").
		Rules(className()),
	govy.For(func(s Selectors) string { return s.DetailSection }).
		WithName("detailSection").
		Rules(className()),
)

var configValidator = govy.New(
	govy.For(func(c Config) string { return c.Input }).
		WithName("input").
		Required().
		Rules(rules.StringNotEmpty()),
	govy.ForSlice(func(c Config) []API { return c.APIs }).
		WithName("apis").
		Rules(
			rules.SliceMinLength[[]API](1),
			rules.SliceUnique[[]API](func(a API) string { return a.Name }),
		).
		IncludeForEach(apiValidator),
	govy.For(func(c Config) Selectors { return c.Selectors }).
		WithName("selectors").
		Include(selectorsValidator),
	govy.ForSlice(func(c Config) []string { return c.HiddenProperties }).
		WithName("hiddenProperties").
		RulesForEach(rules.StringNotEmpty()),
).WithName("Config")

// className checks that the value can be matched against a single class of the "class" attribute.
func className() govy.Rule[string] {
	return govy.NewRule(func(v string) error {
		if strings.ContainsFunc(v, isSpace) {
			return errors.Errorf("class name %q must not contain whitespace", v)
		}
		return nil
	}).WithDescription("must be a single class name")
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}
