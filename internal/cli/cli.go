package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/nfsprofile/internal/app"
	"github.com/vk/nfsprofile/internal/rspec"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("nfsprofile", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
nfsprofile - Generates the request RSpec for an NFS cluster profile.

Usage:
  nfsprofile [options] [PARAMS_PATH...]

Arguments:
  PARAMS_PATH
    .hcl, .yaml or .yml files, or directories containing them, holding a
    profile definition and/or a parameters block.

Options:
`)
		flagSet.PrintDefaults()
	}

	overrides := map[string]string{}
	flagSet.Func("set", "Parameter override as name=value. May be repeated.", func(s string) error {
		name, value, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("expected name=value, got %q", s)
		}
		overrides[name] = value
		return nil
	})

	profileFlag := flagSet.String("profile", "", "Builtin profile name or path to a profile file. Defaults to nfs-cluster.")
	formatFlag := flagSet.String("format", "xml", "Output format. Options: "+formatList()+".")
	outputFlag := flagSet.String("o", "", "Write the document to this file instead of stdout.")
	describeFlag := flagSet.Bool("describe", false, "Print the profile's parameter template and exit.")
	listFlag := flagSet.Bool("list-profiles", false, "List the builtin profiles and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	format, err := rspec.ParseFormat(*formatFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
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
		Profile:      *profileFlag,
		ParamPaths:   flagSet.Args(),
		Overrides:    overrides,
		Format:       format,
		OutputPath:   *outputFlag,
		Describe:     *describeFlag,
		ListProfiles: *listFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func formatList() string {
	names := make([]string, len(rspec.Formats))
	for i, f := range rspec.Formats {
		names[i] = "'" + string(f) + "'"
	}
	return strings.Join(names, ", ")
}
