// flowdeck is a decorative content-marketing workflow console for the
// terminal.
//
// It simulates drifting pipeline metrics, rotates a four-stage workflow
// strip, keeps a capped ops log, and can ask the Gemini API for a short
// uppercase status line built from the current console state.
//
// Usage:
//
//	flowdeck                    # Run the console (needs GEMINI_API_KEY)
//	flowdeck --brief <path>     # Use a specific campaign brief
//	flowdeck --model <name>     # Override the Gemini model
//	flowdeck --json             # Dump boot state as JSON and exit
//	flowdeck --debug <file>     # Write diagnostics to a log file
//	flowdeck --version          # Print version and exit
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"flowdeck/internal/advisor"
	"flowdeck/internal/brief"
	"flowdeck/internal/config"
	"flowdeck/internal/console"
)

// Version is set via ldflags at build time (e.g. -X main.Version=v0.1.0).
var Version = "dev"

func main() {
	briefFlag := flag.String("brief", "", "path to campaign brief (default: auto-discover campaign.md)")
	modelFlag := flag.String("model", "", "Gemini model name")
	jsonMode := flag.Bool("json", false, "dump boot state as JSON and exit (no TUI, no credential needed)")
	debugFlag := flag.String("debug", "", "write debug diagnostics to this file")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("flowdeck %s\n", Version)
		os.Exit(0)
	}

	logger, err := buildLogger(*debugFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowdeck: log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowdeck: %v\n", err)
		os.Exit(1)
	}

	briefPath, briefText := resolveBrief(*briefFlag, cfg.Brief, logger)

	// --json mode: build the console, print one snapshot, exit. The
	// advisor is never constructed, so no credential is needed.
	if *jsonMode {
		c := console.New(console.Config{
			Logger:    logger,
			BriefPath: briefPath,
			BriefText: briefText,
		})
		out := buildJSONOutput(c.Snapshot())
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "flowdeck: json: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	model := *modelFlag
	if model == "" {
		model = cfg.Model
	}

	gem, err := advisor.NewGemini(context.Background(), cfg.Credential(), model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flowdeck: %v\n", err)
		os.Exit(1)
	}

	ctrl := console.New(console.Config{
		Advisor:   gem,
		Logger:    logger,
		BriefPath: briefPath,
		BriefText: briefText,
	})
	if err := ctrl.Start(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "flowdeck: %v\n", err)
		os.Exit(1)
	}

	var w *brief.Watcher
	if briefPath != "" {
		w, err = brief.NewWatcher(briefPath)
		if err != nil {
			// A dead watcher only loses live reload; the console still runs.
			logger.Warn("brief watcher unavailable", zap.String("path", briefPath), zap.Error(err))
			w = nil
		}
	}

	m := newModel(ctrl, briefPath, Version)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Feed engine change signals into the TUI.
	go func() {
		for range ctrl.Changes() {
			p.Send(consoleChangedMsg{})
		}
	}()

	// Feed brief edits into the TUI.
	if w != nil {
		go func() {
			for range w.Changes() {
				p.Send(briefChangedMsg{})
			}
		}()
	}

	_, runErr := p.Run()

	ctrl.Stop()
	if w != nil {
		w.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "flowdeck: %v\n", runErr)
		os.Exit(1)
	}
}

// buildLogger returns a nop logger unless a debug file is requested.
// The terminal belongs to the TUI, so diagnostics never go to stderr.
func buildLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

// resolveBrief picks the campaign brief by priority: flag > config
// file > discovery. A missing brief is never fatal; the console just
// runs without campaign context.
func resolveBrief(flagPath, cfgPath string, logger *zap.Logger) (string, string) {
	path := flagPath
	if path == "" {
		path = cfgPath
	}
	if path == "" {
		discovered, err := brief.Discover()
		if err != nil {
			logger.Debug("no campaign brief", zap.Error(err))
			return "", ""
		}
		path = discovered
	}

	text, err := brief.Load(path)
	if err != nil {
		logger.Warn("brief unreadable", zap.String("path", path), zap.Error(err))
		return "", ""
	}
	return path, text
}

// jsonOutput is the structure for --json mode.
type jsonOutput struct {
	Metrics jsonMetrics    `json:"metrics"`
	Steps   []jsonStep     `json:"steps"`
	Log     []jsonLogEntry `json:"log"`
	Stats   jsonStats      `json:"stats"`
}

type jsonMetrics struct {
	CPULoad        float64 `json:"cpu_load"`
	FlowVelocity   float64 `json:"flow_velocity"`
	Views          int64   `json:"views"`
	ConversionRate float64 `json:"conversion_rate"`
}

type jsonStep struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Subtext string `json:"subtext"`
	Active  bool   `json:"active"`
}

type jsonLogEntry struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Kind string `json:"kind"`
	At   string `json:"at"`
}

type jsonStats struct {
	Ticks       int64  `json:"ticks"`
	AdvisorBusy bool   `json:"advisor_busy"`
	Brief       string `json:"brief,omitempty"`
}

// buildJSONOutput converts a snapshot into the JSON output structure.
func buildJSONOutput(snap console.Snapshot) jsonOutput {
	catalog := console.Steps()
	steps := make([]jsonStep, len(catalog))
	for i, s := range catalog {
		steps[i] = jsonStep{
			ID:      s.ID,
			Label:   s.Label,
			Subtext: s.Subtext,
			Active:  i == snap.ActiveStep,
		}
	}

	log := make([]jsonLogEntry, len(snap.Log))
	for i, e := range snap.Log {
		log[i] = jsonLogEntry{
			ID:   e.ID,
			Text: e.Text,
			Kind: e.Kind.String(),
			At:   e.At.Format(time.RFC3339),
		}
	}

	return jsonOutput{
		Metrics: jsonMetrics{
			CPULoad:        snap.Metrics.CPULoad,
			FlowVelocity:   snap.Metrics.FlowVelocity,
			Views:          snap.Metrics.Views,
			ConversionRate: snap.Metrics.ConversionRate,
		},
		Steps: steps,
		Log:   log,
		Stats: jsonStats{
			Ticks:       snap.Ticks,
			AdvisorBusy: snap.AdvisorBusy,
			Brief:       snap.BriefPath,
		},
	}
}
