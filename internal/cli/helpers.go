package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quayside/storefront/internal/engine"
	"github.com/quayside/storefront/internal/store"
)

// openEngine opens the database and builds a gateway over it. The
// returned cleanup closes the store and must always be deferred.
func openEngine(opts *RootOptions) (*engine.Engine, func(), error) {
	configureLogging(opts)

	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	cleanup := func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}
	return engine.New(st), cleanup, nil
}

// configureLogging sets the default slog handler based on the verbose
// flag. Logs go to stderr so JSON output on stdout stays parseable.
func configureLogging(opts *RootOptions) {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// newFormatter builds the output formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// rejectionExit turns a manager error into CLI output plus an ExitError.
// Business rejections print their code and exit 1; structural errors
// exit 2.
func rejectionExit(f *OutputFormatter, err error) error {
	if engine.IsRejection(err) {
		code := string(engine.CodeOf(err))
		_ = f.Error(code, err.Error())
		return NewExitError(ExitFailure, err.Error())
	}
	_ = f.Error("STORE_ERROR", err.Error())
	return WrapExitError(ExitCommandError, "operation failed", err)
}
