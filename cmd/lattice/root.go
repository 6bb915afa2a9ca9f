package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/lattice"
	"github.com/phanxgames/lattice/demo"
	"github.com/phanxgames/lattice/ebitenhost"
	"github.com/phanxgames/lattice/termhost"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lattice",
	Short: "Run the lattice example interfaces",
	Long: `lattice shows the example chest and player interfaces in a terminal or a
window, or replays a JSON script against an in-memory host.

Settings come from ~/.config/lattice/config.toml (or --config), LATTICE_*
environment variables, and flags, in increasing precedence.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $HOME/.config/lattice/config.toml)")
	rootCmd.PersistentFlags().String("host", "term", "host to show interfaces on: term or window")
	rootCmd.PersistentFlags().String("policy", "", "open policy: replace, reject, or stack")
	rootCmd.PersistentFlags().Bool("debug", false, "log per-pass render stats")
	rootCmd.PersistentFlags().String("concrete", "LIME_CONCRETE", "material the selected chest option is drawn in")
}

// interactiveHost is a host that runs its own loop.
type interactiveHost interface {
	lattice.Host
	Viewer() lattice.ViewerID
	Message(viewer lattice.ViewerID, msg string)
	Run(e *lattice.Engine) error
}

func newHost(c cliConfig) (interactiveHost, error) {
	switch strings.ToLower(c.Host) {
	case "term", "terminal", "":
		return termhost.New(termhost.Options{
			TickInterval: time.Duration(c.Term.TickMillis) * time.Millisecond,
			CellWidth:    c.Term.CellWidth,
		}), nil
	case "window", "ebiten":
		return ebitenhost.New(ebitenhost.Config{
			Title:    "lattice",
			CellSize: c.Window.CellSize,
			ShowTPS:  c.Window.ShowTPS,
		}), nil
	default:
		return nil, fmt.Errorf("unknown host %q", c.Host)
	}
}

// runInteractive opens one of the example interfaces on the configured host
// and blocks until the viewer is done with it.
func runInteractive(cmd *cobra.Command, name string, opts ...lattice.OpenOption) error {
	c, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	shutdown, err := setupTracing(ctx, c.Otel, "lattice")
	if err != nil {
		log.Printf("warn: tracing disabled: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("warn: flush traces: %v", err)
		}
	}()

	cfg, err := engineSettings(c)
	if err != nil {
		return err
	}
	host, err := newHost(c)
	if err != nil {
		return err
	}

	d := demo.New(host.Message)
	engine := lattice.NewEngine(host,
		lattice.WithConfig(cfg),
		lattice.WithLogger(log.New(os.Stderr, "[lattice] ", log.LstdFlags)),
	)

	args, err := demo.ParseArguments(map[string]any{demo.ArgConcrete.Name(): c.Concrete})
	if err != nil {
		return err
	}
	iface, ok := d.Interfaces()[name]
	if !ok {
		return fmt.Errorf("unknown interface %q", name)
	}
	if _, err := engine.Open(ctx, iface, host.Viewer(), args, opts...); err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	return host.Run(engine)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
