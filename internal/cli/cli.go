package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/plugrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments on top of environment defaults. It
// returns a populated app.Config, a boolean indicating if the program should
// exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	envCfg, err := app.FromEnv()
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet := flag.NewFlagSet("plugrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
plugrid - deterministic plugin load-order resolution with tier validation.

Usage:
  plugrid [options] [PLUGINS_PATH]

Arguments:
  PLUGINS_PATH
    Path to a single .hcl manifest file or a directory containing .hcl
    manifest files.

Options:
`)
		flagSet.PrintDefaults()
	}

	pluginsFlag := flagSet.String("plugins", "", "Path to the plugin manifest file or directory.")
	pFlag := flagSet.String("p", "", "Path to the plugin manifest file or directory (shorthand).")
	tiersFlag := flagSet.String("tiers", envCfg.TiersPath, "Path to the tier catalog file.")
	registryFlag := flagSet.String("registry-url", envCfg.RegistryURL, "Base URL of a plugin registry to merge manifests from.")
	logFormatFlag := flagSet.String("log-format", envCfg.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envCfg.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	strictFlag := flagSet.Bool("strict", envCfg.Strict, "Treat any validation issue as fatal.")
	noColorFlag := flagSet.Bool("no-color", envCfg.NoColor, "Disable colored report output.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := envCfg.PluginsPath
	if *pluginsFlag != "" {
		path = *pluginsFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Plugins path determined.", "path", path)

	if path == "" && *registryFlag == "" {
		slog.Debug("No manifest source provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		PluginsPath: path,
		TiersPath:   *tiersFlag,
		RegistryURL: *registryFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		Strict:      *strictFlag,
		NoColor:     *noColorFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
