package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/protodex/protodex/internal/catalog"
	"github.com/protodex/protodex/internal/config"
	"github.com/protodex/protodex/internal/errors"
	"github.com/protodex/protodex/internal/extractor"
	"github.com/protodex/protodex/internal/formatter"
	"github.com/protodex/protodex/internal/models"
	"github.com/protodex/protodex/internal/server"
	"github.com/protodex/protodex/internal/walker"
)

// CLI defines the command-line interface
var CLI struct {
	Input   string `help:"Path to a mod directory or a single Lua file. If not specified, reads Lua source from stdin." short:"i" type:"path"`
	Output  string `help:"Path to output JSON file. If not specified, writes to stdout." short:"o" type:"path"`
	Call    string `help:"Registration call to extract." short:"c" default:"data:extend"`
	Ext     string `help:"File extension to scan for." default:".lua"`
	BaseDir string `help:"Base game prototype directory used to backfill items referenced by recipes." type:"path"`
	Pretty  bool   `help:"Indent the JSON output." default:"true" negatable:""`
	Serve   string `help:"Serve a directory over HTTP for manual inspection instead of extracting." type:"path"`
	Port    int    `help:"Port for --serve." default:"8003"`
	Config  string `help:"Path to a config file. Defaults to the nearest .protodex.yml." type:"path"`
	Debug   bool   `help:"Enable debug logging." short:"d"`
	Version bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("protodex"),
		kong.Description("A tool to extract prototype definitions from Factorio mod Lua files"),
		kong.UsageOnError(),
	)

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("protodex version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err == nil {
		err = run(&Context{Debug: cfg.Dev.Debug, Config: cfg})
	}
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: protodex --help\n")

		os.Exit(1)
	}
}

// loadConfig resolves the config file and layers CLI overrides on top
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, CLI.Call, CLI.Ext, CLI.BaseDir, CLI.Port, CLI.Debug)
	if err != nil {
		return nil, errors.NewInputError("failed to load configuration", err)
	}
	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config

	// Serve mode short-circuits the pipeline entirely
	if CLI.Serve != "" {
		return server.Serve(CLI.Serve, cfg.Server.Port)
	}

	ex := extractor.New(cfg.Call)
	if ctx.Debug {
		ex.SetDebug(os.Stderr)
	}

	// 1. Extract records from every input text
	records, err := extractRecords(ctx, ex)
	if err != nil {
		return err
	}

	// 2. Organize records by prototype type and attach display names
	cat := catalog.Organize(records, formatter.NewFormatterWithConfig(cfg))

	// 3. Backfill base-game items referenced by recipes, when a base dir is known
	if cfg.Catalog.BaseDir != "" {
		base := catalog.LoadBaseIndex(cfg.Catalog.BaseDir, cfg.Extension, ex)
		if added := cat.BackfillItems(base); added > 0 {
			fmt.Fprintf(os.Stderr, "Added %d missing base items\n", added)
		}
	}

	// 4. Print the summary, then write the JSON catalog
	printSummary(cat)
	return writeOutput(cat)
}

// extractRecords gathers records from the input path or from stdin
func extractRecords(ctx *Context, ex *extractor.Extractor) ([]models.Record, error) {
	if CLI.Input != "" {
		return extractFromFiles(ctx, ex)
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive, nothing was piped
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if len(source) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return ex.Extract(string(source)), nil
}

// extractFromFiles walks the input path and extracts records file by file.
// A file that cannot be read is reported and skipped; it never aborts the
// scan of the remaining files.
func extractFromFiles(ctx *Context, ex *extractor.Extractor) ([]models.Record, error) {
	files, err := walker.FindFiles(CLI.Input, ctx.Config.Extension)
	if err != nil {
		return nil, err
	}
	if ctx.Debug {
		fmt.Fprintf(os.Stderr, "Found %d %s files\n", len(files), ctx.Config.Extension)
	}

	var records []models.Record
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", path, err)
			continue
		}
		recs := ex.Extract(string(data))
		if ctx.Debug && len(recs) > 0 {
			fmt.Fprintf(os.Stderr, "%s: %d entries\n", path, len(recs))
		}
		records = append(records, recs...)
	}
	return records, nil
}

// printSummary writes per-type counts to stderr
func printSummary(cat *catalog.Catalog) {
	header := color.New(color.FgCyan, color.Bold)
	header.Fprintln(os.Stderr, "=== SUMMARY ===")
	for _, line := range cat.Summary() {
		fmt.Fprintln(os.Stderr, line)
	}
	total := color.New(color.FgGreen)
	total.Fprintf(os.Stderr, "Total: %d entries\n", cat.Total())
}

// writeOutput writes the catalog to file or stdout
func writeOutput(cat *catalog.Catalog) error {
	if CLI.Output != "" {
		file, err := os.Create(CLI.Output)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to create file '%s'", CLI.Output), err)
		}
		defer func() {
			if err := file.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
			}
		}()
		if err := cat.WriteJSON(file, CLI.Pretty); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Catalog written to %s\n", CLI.Output)
		return nil
	}

	return cat.WriteJSON(os.Stdout, CLI.Pretty)
}
