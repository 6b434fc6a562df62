package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/discover/internal/catalog"
	"github.com/desertthunder/discover/internal/credentials"
	"github.com/desertthunder/discover/internal/search"
	"github.com/desertthunder/discover/internal/services"
	"github.com/desertthunder/discover/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	configPath string
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	ConfigPath string
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		configPath: opts.ConfigPath,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		browseCommand, searchCommand, tuiCommand, serveCommand, initCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// before applies the root --config and --verbose flags.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.IsSet("config") {
		path := cmd.String("config")
		r.configPath = path
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("config file not found, keeping defaults", "path", path)
			return ctx, nil
		}

		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, fmt.Errorf("%w: %w", shared.ErrMissingConfig, err)
		}
		config.ApplyEnv()
		r.config = config

		if level, err := shared.ParseLogLevel(config.Log.Level); err == nil {
			shared.SetLogLevel(r.logger, level)
		}
	}

	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	return ctx, nil
}

// SetLogger replaces the runner's logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// session wires one credential provider, one search state and one orchestrator.
type session struct {
	orchestrator *catalog.Orchestrator
	provider     *credentials.Provider
	state        *search.State
	logger       *log.Logger
}

func (r *Runner) newSession() (*session, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	sp := r.config.Credentials.Spotify
	auth, err := credentials.NewSpotifyAuthenticator(sp.ClientID, sp.ClientSecret, sp.TokenURL, r.httpClient)
	if err != nil {
		return nil, err
	}

	provider := credentials.NewProvider(auth, r.logger)
	state := search.NewState()
	client := services.NewCatalogClient(services.CatalogOpts{
		BaseURL:           r.config.Catalog.BaseURL,
		HTTPClient:        r.httpClient,
		Country:           r.config.Catalog.Country,
		Locale:            r.config.Catalog.Locale,
		Limit:             r.config.Catalog.Limit,
		RequestsPerSecond: r.config.Catalog.RequestsPerSecond,
		SearchType:        r.config.Search.Type,
		Logger:            r.logger,
	})

	return &session{
		orchestrator: catalog.New(catalog.Opts{
			Credentials: provider,
			Search:      state,
			Catalog:     client,
			Logger:      r.logger,
		}),
		provider: provider,
		state:    state,
		logger:   r.logger,
	}, nil
}

// start subscribes the orchestrator and acquires the credential in the background.
func (s *session) start(ctx context.Context) {
	s.orchestrator.Start(ctx)
	go func() {
		if err := s.provider.Acquire(ctx); err != nil {
			s.logger.Debug("acquire returned", "error", err)
		}
	}()
}

func (s *session) close() {
	s.orchestrator.Close()
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
