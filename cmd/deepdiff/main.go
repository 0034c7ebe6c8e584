// Command deepdiff compares two JSON or YAML documents and prints the
// structural difference between them. Exit code 0 means the documents are
// equal, 1 means they differ, 2 means the comparison itself failed.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/urfave/cli/v3"

	deepdiff "github.com/fry69/deep-diff"
)

func main() {
	initLogger()
	app := newApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.WithError(err).Error("deepdiff failed")
		os.Exit(2)
	}
	if hadDifferences {
		os.Exit(1)
	}
}

// hadDifferences distinguishes "the documents differ" from real failures
// for the process exit code
var hadDifferences bool

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "deepdiff",
		Usage: "structural diff for JSON and YAML documents",
		Commands: []*cli.Command{
			diffCommand(),
			hashCommand(),
		},
	}
}

func diffCommand() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two documents",
		UsageText: "deepdiff diff [options] LEFT RIGHT",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "order-independent",
				Aliases: []string{"o"},
				Usage:   "compare arrays as unordered multisets",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "emit the change records as JSON instead of pretty text",
			},
			&cli.BoolFlag{
				Name:    "stats",
				Aliases: []string{"s"},
				Usage:   "append a summary line of change counts",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable ANSI colors",
			},
		},
		Action: diffAction,
	}
}

func diffAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("diff needs exactly two documents, got %d", cmd.Args().Len())
	}
	lhs, err := loadDocument(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	rhs, err := loadDocument(cmd.Args().Get(1))
	if err != nil {
		return err
	}

	start := time.Now()
	var changes deepdiff.Changes
	if cmd.Bool("order-independent") {
		changes, err = deepdiff.OrderIndependentDiff(lhs, rhs)
	} else {
		changes, err = deepdiff.Diff(lhs, rhs)
	}
	if err != nil {
		return err
	}
	log.Debugf("compared in %s, %d records", time.Since(start), len(changes))

	colorize := !cmd.Bool("no-color") && !color.NoColor
	if cmd.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(changes); err != nil {
			return err
		}
	} else if err := deepdiff.FormatPretty(os.Stdout, changes, colorize); err != nil {
		return err
	}
	if cmd.Bool("stats") {
		if err := deepdiff.FormatPrettyStats(os.Stdout, changes.Stats(), colorize); err != nil {
			return err
		}
	}

	hadDifferences = len(changes) > 0
	return nil
}

func hashCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash",
		Usage:     "print a document's order-independent hash",
		UsageText: "deepdiff hash FILE",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("hash needs exactly one document, got %d", cmd.Args().Len())
			}
			doc, err := loadDocument(cmd.Args().Get(0))
			if err != nil {
				return err
			}
			fmt.Println(deepdiff.OrderIndependentHash(doc))
			return nil
		},
	}
}

// loadDocument reads a file and unmarshals it by extension: .yaml/.yml as
// YAML, anything else as JSON first with a YAML fallback
func loadDocument(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s as YAML: %w", path, err)
		}
	default:
		if jerr := json.Unmarshal(data, &doc); jerr != nil {
			if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
				return nil, fmt.Errorf("parsing %s: not JSON (%v) and not YAML (%v)", path, jerr, yerr)
			}
		}
	}
	return doc, nil
}

// initLogger sets up apex with a terse handler and a level taken from the
// DEEPDIFF_LOG env variable
func initLogger() {
	level := strings.ToLower(os.Getenv("DEEPDIFF_LOG"))
	if level == "" {
		level = "error"
	}
	apexLevel := log.ErrorLevel
	switch level {
	case "debug":
		apexLevel = log.DebugLevel
	case "info":
		apexLevel = log.InfoLevel
	case "warn":
		apexLevel = log.WarnLevel
	case "fatal":
		apexLevel = log.FatalLevel
	}
	log.SetHandler(&stderrHandler{})
	log.SetLevel(apexLevel)
}

// stderrHandler writes log lines to stderr so they never mix with diff
// output on stdout
type stderrHandler struct{}

func (h *stderrHandler) HandleLog(e *log.Entry) error {
	ts := time.Now().Format("2006-01-02 15:04:05")
	msg := e.Message
	if v := e.Fields.Get("error"); v != nil {
		msg = fmt.Sprintf("%s: %v", msg, v)
	}
	fmt.Fprintf(os.Stderr, "%s %s %s\n", ts, strings.ToUpper(e.Level.String()[:1]), msg)
	return nil
}
