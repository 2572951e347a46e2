package main

import (
	"flag"
	"io"
	"os"
)

// cliConfig holds the command line flags, they take precedence over the configuration file.
type cliConfig struct {
	ConfigPath string
	Input      string
	Output     string
	LogLevel   string
	LogFormat  string
	ConfigDoc  bool
}

func parseFlags(args []string, output io.Writer) (*cliConfig, error) {
	cfg := &cliConfig{}
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.ConfigPath, "config",
		getEnv("OASDOC_CONFIG", ""),
		"Path to configuration file, looked up in parent directories if not set (env: OASDOC_CONFIG)")
	fs.StringVar(&cfg.Input, "input", "",
		"Path to the HTML document with marked regions, overrides the configuration file")
	fs.StringVar(&cfg.Output, "output", "",
		"Path to the rendered HTML document, - for standard output, overrides the configuration file")
	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("OASDOC_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: OASDOC_LOG_LEVEL)")
	fs.StringVar(&cfg.LogFormat, "log-format",
		getEnv("OASDOC_LOG_FORMAT", "text"),
		"Log format: json, text (env: OASDOC_LOG_FORMAT)")
	fs.BoolVar(&cfg.ConfigDoc, "config-doc", false,
		"Print the configuration file reference as JSON and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}
