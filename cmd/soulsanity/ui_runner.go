package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"soulcore/internal/ast"
	"soulcore/internal/diag"
	"soulcore/internal/project"
	"soulcore/internal/sema"
	"soulcore/internal/ui"
)

type checkResult struct {
	fixture fixture
	bag     *diag.Bag
	err     error
}

// runFixturesWithUI drives sema.Run over every fixture on a background
// goroutine, emitting a ui.Event per fixture as it starts and finishes so
// a Bubble Tea progress view can render live status while the checks run.
func runFixturesWithUI(fixtures []fixture, manifest project.Manifest) ([]checkResult, error) {
	events := make(chan ui.Event, len(fixtures)*2)
	resultsCh := make(chan []checkResult, 1)

	names := make([]string, len(fixtures))
	for i, f := range fixtures {
		names[i] = f.name
	}

	go func() {
		results := make([]checkResult, len(fixtures))
		limits := manifest.SemaLimits()
		for i, f := range fixtures {
			events <- ui.Event{Name: f.name, Status: ui.StatusChecking}
			bag := diag.NewBag(64)
			r := diag.BagReporter{Bag: bag}
			err := sema.Run(f.unit, []ast.ModuleID{f.root}, limits, r)
			status := ui.StatusClean
			if err != nil {
				status = ui.StatusFailed
			}
			events <- ui.Event{Name: f.name, Status: status}
			results[i] = checkResult{fixture: f, bag: bag, err: err}
		}
		close(events)
		resultsCh <- results
	}()

	model := ui.NewProgressModel("soulsanity", names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	results := <-resultsCh
	if uiErr != nil {
		return nil, uiErr
	}
	return results, nil
}
