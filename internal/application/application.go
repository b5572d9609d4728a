package application

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/eugenenazirov/squadconv/internal/config"
	"github.com/eugenenazirov/squadconv/internal/logging"
	"github.com/eugenenazirov/squadconv/internal/stack"
	"github.com/eugenenazirov/squadconv/internal/transcoder"
)

// Name is used for the log file prefix and CLI banner.
const Name = "squadconv"

// Options carries the parsed command line.
type Options struct {
	SettingsDir string
	Input       string
	// Output is empty to write to stdout.
	Output string
	From   string
	To     string
}

// App holds the resources of one invocation.
type App struct {
	opts       Options
	stack      *stack.Stack
	settings   config.Settings
	logger     *logging.Logger
	transcoder *transcoder.Transcoder
}

// bootConfig holds the BootOption values.
type bootConfig struct {
	console io.Writer
	stdout  io.Writer
}

// BootOption configures Bootstrap.
type BootOption func(*bootConfig)

// WithConsole sets where log records are duplicated. Defaults to stderr.
func WithConsole(w io.Writer) BootOption {
	return func(s *bootConfig) { s.console = w }
}

// WithStdout sets where output goes when no output path is given.
func WithStdout(w io.Writer) BootOption {
	return func(s *bootConfig) { s.stdout = w }
}

// Bootstrap resolves the stack, loads settings and starts logging. A stack
// that cannot be resolved is reported on diag and the defaults are used alone.
// Every other failure is fatal.
func Bootstrap(opts Options, environ []string, diag io.Writer, bootOpts ...BootOption) (*App, error) {
	var st bootConfig
	for _, opt := range bootOpts {
		opt(&st)
	}
	if diag == nil {
		diag = io.Discard
	}

	from, to, err := parseFormats(opts)
	if err != nil {
		return nil, err
	}

	env := config.EnvMap(environ)

	var tag *stack.Stack
	s, err := stack.Lookup(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	if err != nil {
		fmt.Fprintf(diag, "couldn't fetch stack from env, defaulting to none: %v\n", err)
	} else {
		tag = &s
	}

	settings, err := config.Load(opts.SettingsDir, tag)
	if err != nil {
		return nil, err
	}

	logDir, err := settings.Logging.ResolveLogDir(env)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Dir:     logDir,
		Level:   settings.Logging.Verbosity,
		Name:    Name,
		Console: st.console,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	tcOpts := []transcoder.Option{transcoder.WithFormats(from, to)}
	if st.stdout != nil {
		tcOpts = append(tcOpts, transcoder.WithStdout(st.stdout))
	}
	tc, err := transcoder.New(logger.Logger, tcOpts...)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	app := &App{
		opts:       opts,
		stack:      tag,
		settings:   settings,
		logger:     logger,
		transcoder: tc,
	}

	logger.Info("application launched",
		zap.String("settings_dir", opts.SettingsDir),
		zap.String("log_dir", logDir),
		zap.String("verbosity", settings.Logging.Verbosity),
		zap.String("log_file", logger.Path()),
	)
	if tag != nil {
		logger.Info("using stack", zap.Stringer("stack", *tag))
	} else {
		logger.Info("using stack", zap.String("stack", "none"))
	}

	return app, nil
}

// parseFormats applies the JSON to YAML defaults for empty names.
func parseFormats(opts Options) (transcoder.Format, transcoder.Format, error) {
	from, to := transcoder.JSON, transcoder.YAML
	var err error
	if opts.From != "" {
		if from, err = transcoder.ParseFormat(opts.From); err != nil {
			return "", "", fmt.Errorf("source format: %w", err)
		}
	}
	if opts.To != "" {
		if to, err = transcoder.ParseFormat(opts.To); err != nil {
			return "", "", fmt.Errorf("target format: %w", err)
		}
	}
	return from, to, nil
}

// Run transcodes the input document.
func (a *App) Run() error {
	if err := a.transcoder.Transcode(a.opts.Input, a.opts.Output); err != nil {
		a.logger.Error("transcoding failed", zap.Error(err))
		return err
	}
	a.logger.Info("transcoding finished")
	return nil
}

// Close flushes and closes the log file.
func (a *App) Close() error {
	return a.logger.Close()
}

// Stack returns the resolved stack, or nil when none was selected.
func (a *App) Stack() *stack.Stack {
	return a.stack
}

// Settings returns the loaded settings.
func (a *App) Settings() config.Settings {
	return a.settings
}

// LogPath returns the path of the log file.
func (a *App) LogPath() string {
	return a.logger.Path()
}
