// Command soulsanity is a demonstration harness for the sanity-check
// core: it runs the C5 passes over a handful of built-in fixtures
// mirroring spec.md §8's seed scenarios and renders the outcome. It is a
// consumer of the core, not part of its public interface — the core
// package itself exposes no CLI, wire protocol or on-disk format.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "soulsanity",
	Short: "Run the sanity-check passes over the built-in fixture set",
}

func main() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostic output (auto|on|off)")
	rootCmd.PersistentFlags().String("manifest", "", "path to a soulmod.toml overriding the default ceilings")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
