package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/lattice"
	"github.com/phanxgames/lattice/demo"
	"github.com/phanxgames/lattice/memhost"
)

var replayOut string

// replayCmd represents the replay command
var replayCmd = &cobra.Command{
	Use:   "replay <script.json>",
	Short: "Replay a JSON script against the example interfaces in memory",
	Long: `Replays a script of open, click, tick, flush, close, hostclose, and snapshot
steps against an in-memory host and prints every snapshot. For example:

  {"steps": [
    {"action": "open", "viewer": "alice", "interface": "chest", "args": {"concrete": "lime_concrete"}},
    {"action": "click", "viewer": "alice", "x": 1, "y": 2},
    {"action": "snapshot", "viewer": "alice", "label": "after-click"}
  ]}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg, err := engineSettings(c)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := memhost.LoadScript(data)
		if err != nil {
			return err
		}

		host := memhost.New()
		d := demo.New(func(viewer lattice.ViewerID, msg string) {
			fmt.Fprintf(cmd.OutOrStdout(), "<%s> %s\n", viewer, msg)
		})
		engine := lattice.NewEngine(host,
			lattice.WithConfig(cfg),
			lattice.WithLogger(log.New(cmd.ErrOrStderr(), "[lattice] ", 0)),
		)
		runner := &memhost.Runner{
			Engine:     engine,
			Host:       host,
			Interfaces: d.Interfaces(),
			Arguments:  demo.ParseArguments,
			Out:        cmd.OutOrStdout(),
			Dir:        replayOut,
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		defer engine.CloseAll(context.Background(), lattice.CloseDisconnect)
		return runner.Run(ctx, script)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayOut, "out", "o", "", "also write each snapshot to this directory")
}
