// Command docxlayout loads word-processing documents and prints their
// layout, text, parts and styles for inspection.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/tsawler/docxlayout/internal/logging"
)

const version = "0.1.0"

// envFile overrides the document argument of every command.
const envFile = "DOCXLAYOUT_FILE"

// CLI defines the command-line interface for docxlayout.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"console" enum:"console,json" help:"Log format (console, json)"`

	Layout  LayoutCmd  `cmd:"" help:"Lay out a document and print a page summary"`
	Text    TextCmd    `cmd:"" help:"Print the laid out text, one line per output line"`
	Parts   PartsCmd   `cmd:"" help:"List the parts of a package"`
	Styles  StylesCmd  `cmd:"" help:"List style definitions and their inheritance"`
	Watch   WatchCmd   `cmd:"" help:"Re-layout a document whenever the file changes"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("docxlayout"),
		kong.Description("Inspect the layout of .docx documents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	log, err := newLogger(CLI.LogLevel, CLI.LogFormat)
	ctx.FatalIfErrorf(err)
	defer func() { _ = log.Sync() }()

	ctx.BindTo(os.Stdout, (*io.Writer)(nil))
	err = ctx.Run(log)
	ctx.FatalIfErrorf(err)
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	f, err := logging.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl, f), nil
}
