// Package main is the entry point for ValleySim.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/samdwyer/valleysim/internal/config"
	"github.com/samdwyer/valleysim/internal/facility"
	"github.com/samdwyer/valleysim/internal/scenario"
	"github.com/samdwyer/valleysim/internal/sim"
	"github.com/samdwyer/valleysim/internal/telemetry"
	"github.com/samdwyer/valleysim/internal/ui"
)

func main() {
	os.Exit(run())
}

// run wires up the environment and executes the CLI, returning the exit code.
func run() int {
	// Load .env file for local development
	// This makes HONEYCOMB_VALLEYSIM_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	if cfg.Telemetry {
		telemetry.ConfigureHoneycomb(cfg.HoneycombAPIKey, cfg.HoneycombDataset)
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Simulation will run without observability")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "valleysim",
		Short:        "Quarterly market simulation of tech giants and startups",
		SilenceUsage: true,
	}
	root.AddCommand(
		newRunCmd(cfg),
		newBoardCmd(cfg),
		newEventsCmd(cfg),
	)
	return root
}

// runOptions are the flags shared by run and board.
type runOptions struct {
	years     int
	seed      int64
	scenario  string
	maxRounds int
	apply     bool
	facility  string
	verbose   bool
}

func (o *runOptions) bind(cmd *cobra.Command, cfg config.Config) {
	flags := cmd.Flags()
	flags.IntVar(&o.years, "years", cfg.Years, "Number of years to simulate")
	flags.Int64Var(&o.seed, "seed", cfg.Seed, "Random seed (0 picks one from the clock)")
	flags.StringVar(&o.scenario, "scenario", cfg.Scenario, "Scenario YAML file (default: built-in)")
	flags.IntVar(&o.maxRounds, "max-rounds", cfg.MaxRounds, "Round limit per duel (0 for the default)")
	flags.BoolVar(&o.apply, "apply-enhancements", cfg.ApplyEnhancements, "Apply purchased enhancements each odd quarter")
	flags.StringVar(&o.facility, "facility", cfg.Facility, "Facility built with each new startup (office, factory, store)")
}

func (o *runOptions) simConfig() sim.Config {
	return sim.Config{
		Seed:              o.seed,
		MaxDuelRounds:     o.maxRounds,
		ApplyEnhancements: o.apply,
		FacilityKind:      o.facility,
	}
}

// outcome is everything a finished run produced.
type outcome struct {
	scenario *scenario.Scenario
	sim      *sim.Simulation
	reports  []sim.QuarterReport
}

// simulate loads the scenario and runs it. A failed run still returns the
// quarters that completed.
func simulate(ctx context.Context, o *runOptions, logger *slog.Logger) (outcome, error) {
	if o.years < 0 {
		return outcome{}, fmt.Errorf("--years must not be negative, got %d", o.years)
	}
	if _, err := facility.ParseKind(o.facility); err != nil {
		return outcome{}, err
	}

	sc, err := scenario.LoadPath(o.scenario)
	if err != nil {
		return outcome{}, fmt.Errorf("load scenario: %w", err)
	}

	s := sim.New(o.simConfig(),
		sim.WithLogger(logger),
		sim.WithRegistry(facility.NewRegistry()),
	)
	if err := sc.Populate(s); err != nil {
		return outcome{}, fmt.Errorf("populate scenario %q: %w", sc.Name, err)
	}

	reports, err := s.Run(ctx, o.years)
	return outcome{scenario: sc, sim: s, reports: reports}, err
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newRunCmd(cfg config.Config) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
			out, err := simulate(cmd.Context(), &opts, logger)
			if out.sim == nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), out)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Simulation complete.")
			return nil
		},
	}
	opts.bind(cmd, cfg)
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every duel and action")
	return cmd
}

func newBoardCmd(cfg config.Config) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Run the simulation and show the final market board",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The board owns the terminal, so engine logs are dropped.
			out, err := simulate(cmd.Context(), &opts, slog.New(slog.NewTextHandler(io.Discard, nil)))
			if out.sim == nil {
				return err
			}

			palette, perr := out.scenario.Palette()
			if perr != nil {
				log.Printf("Warning: %v", perr)
			}

			screen, serr := ui.NewScreen()
			if serr != nil {
				return fmt.Errorf("open terminal: %w", serr)
			}
			defer screen.Close()

			renderer := ui.NewRenderer(screen, palette.Color)
			board := ui.BoardFrom(boardTitle(out), out.sim, out.reports)
			draw := func() { renderer.Render(board) }
			draw()
			screen.WaitForKey(draw)
			return err
		},
	}
	opts.bind(cmd, cfg)
	return cmd
}

func boardTitle(out outcome) string {
	return fmt.Sprintf("%s  seed %d  %d quarters", out.scenario.Name, out.sim.Seed(), len(out.reports))
}

func newEventsCmd(cfg config.Config) *cobra.Command {
	path := cfg.Scenario
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the scenario's scheduled market events",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.LoadPath(path)
			if err != nil {
				return fmt.Errorf("load scenario: %w", err)
			}
			events, err := sc.BuildEvents()
			if err != nil {
				return err
			}
			printEvents(cmd.OutOrStdout(), sc.Name, events)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "scenario", path, "Scenario YAML file (default: built-in)")
	return cmd
}
