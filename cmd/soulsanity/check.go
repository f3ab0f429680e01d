package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"soulcore/internal/diagfmt"
	"soulcore/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the sanity-check passes over every built-in fixture",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	manifestPath, _ := cmd.Flags().GetString("manifest")
	colorMode, _ := cmd.Flags().GetString("color")
	applyColorMode(colorMode)

	manifest := project.DefaultManifest()
	if manifestPath != "" {
		loaded, err := project.LoadManifest(manifestPath)
		if err != nil {
			return fmt.Errorf("soulsanity: %w", err)
		}
		manifest = loaded
	}

	fixtures := builtinFixtures()
	results, err := runFixturesWithUI(fixtures, manifest)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n", res.fixture.name)
		if err := diagfmt.Render(cmd.OutOrStdout(), res.bag.Items(), res.fixture.unit.Files, diagfmt.Options{Color: !color.NoColor}); err != nil {
			return err
		}
		if res.err == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "  clean")
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	if failed > 0 {
		return fmt.Errorf("soulsanity: %d of %d fixtures reported diagnostics", failed, len(results))
	}
	return nil
}

func applyColorMode(mode string) {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		// "auto": leave fatih/color's terminal autodetection in place.
	}
}
