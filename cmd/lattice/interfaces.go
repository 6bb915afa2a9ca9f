package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/lattice"
	"github.com/phanxgames/lattice/demo"
)

var chestTitle string

// chestCmd represents the chest command
var chestCmd = &cobra.Command{
	Use:   "chest",
	Short: "Show the example chest interface",
	Long: `Shows a five-row chest. Column 1 lists the options; clicking one redraws the
large digit on the right in the --concrete material.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []lattice.OpenOption
		if chestTitle != "" {
			opts = append(opts, lattice.WithTitle(chestTitle))
		}
		return runInteractive(cmd, "chest", opts...)
	},
}

// playerCmd represents the player command
var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Show the animated player inventory interface",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd, "player")
	},
}

func init() {
	rootCmd.AddCommand(chestCmd)
	rootCmd.AddCommand(playerCmd)

	chestCmd.Flags().StringVarP(&chestTitle, "title", "t", "", fmt.Sprintf("title override (default %q)", demo.ChestTitle))
}
