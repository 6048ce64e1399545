// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"stylescan/internal/config"
	"stylescan/internal/core"
	"stylescan/internal/detectives"
	"stylescan/internal/entities"
	"stylescan/internal/evidence"
	"stylescan/internal/findings"
	"stylescan/internal/formatters"
	_ "stylescan/internal/formatters/csv"
	_ "stylescan/internal/formatters/json"
	_ "stylescan/internal/formatters/text"
	"stylescan/internal/observability"
	"stylescan/internal/parallel"
	"stylescan/internal/paths"
	"stylescan/internal/registry"
	"stylescan/internal/styles"
	"stylescan/internal/suppressions"
	"stylescan/internal/validation"
	"stylescan/internal/version"
)

// configFlags holds command line flag values
type configFlags struct {
	outputFormat string
	severities   string
	minEvidence  float64
	contentType  string
	audience     string
	domain       string
	blockType    string
	configFile   string
	profile      string
	tablesDir    string
	registryPath string
	suppressions string
	workers      int
	watch        bool
	initTables   bool
	noColor      bool
	verbose      bool
	debug        bool
	showVersion  bool
	listFormats  bool
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		fmt.Println(version.Info())
		return
	}
	if flags.listFormats {
		fmt.Println("Available output formats:", strings.Join(formatters.List(), ", "))
		return
	}

	// Disable colors when not writing to a terminal.
	if flags.noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	cfg := loadConfiguration(flags.configFile)
	applyFlagOverrides(cfg, flags)

	if flags.profile != "" {
		if _, err := cfg.ApplyProfile(flags.profile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}

	observer := observability.NewStandardObserver(observability.ObservabilityMetrics, os.Stderr)
	if cfg.Defaults.Debug {
		debugObs := observability.NewDebugObserver(os.Stderr)
		observer = debugObs.StandardObserver
		observer.DebugObserver = debugObs
	}

	if flags.initTables {
		if err := seedTables(cfg.Tables.Dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		fmt.Printf("Seeded default evidence tables in %s\n", cfg.Tables.Dir)
		return
	}

	inputs := paths.Collect(flag.Args(), cfg.Defaults.Recursive, observer)
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: stylescan [options] <file|directory>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	provider := evidence.NewProvider(cfg.Tables.Dir, observer)
	if cfg.Tables.Watch {
		watcher, err := evidence.NewWatcher(provider)
		if err != nil {
			observer.LogWarning("main", "watch_tables", err)
		} else {
			defer watcher.Close()
		}
	}

	reg := registry.New(nil)
	if cfg.Registry.Path != "" {
		reg = registry.Load(cfg.Registry.Path, observer)
	}
	suppressionManager := suppressions.NewManager(cfg.Suppressions, observer)

	desc := styles.ContextDescriptor{
		ContentType: cfg.Defaults.ContentType,
		Audience:    cfg.Defaults.Audience,
		Domain:      cfg.Defaults.Domain,
		BlockType:   flags.blockType,
	}
	deps := core.Deps{
		Tables:      provider,
		Registry:    reg,
		Suppression: suppressionManager,
		Observer:    observer,
	}

	pool := parallel.NewPool(flags.workers, observer)
	results, stats := pool.Process(inputs, func() parallel.AnalyzeFunc {
		analyzer := core.NewAnalyzer(cfg, deps)
		return func(path string) ([]findings.Finding, []findings.SuppressedFinding, []entities.DetectedEntity, error) {
			doc, err := paths.LoadDocument(path)
			if err != nil {
				return nil, nil, nil, err
			}
			report := analyzer.Analyze(doc, desc, path)
			return report.Findings, report.Suppressed, report.Entities, nil
		}
	})

	var allFindings []findings.Finding
	var allSuppressed []findings.SuppressedFinding
	var allEntities []entities.DetectedEntity
	for _, r := range results {
		allFindings = append(allFindings, r.Findings...)
		allSuppressed = append(allSuppressed, r.Suppressed...)
		allEntities = append(allEntities, r.Entities...)
	}

	formatter, ok := formatters.Get(cfg.Defaults.Format)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown output format %q (available: %s)\n",
			cfg.Defaults.Format, strings.Join(formatters.List(), ", "))
		os.Exit(2)
	}

	output, err := formatter.Format(allFindings, allSuppressed, allEntities, formatters.FormatterOptions{
		Severities: core.ParseSeverities(cfg.Defaults.Severities),
		Verbose:    cfg.Defaults.Verbose,
		NoColor:    color.NoColor,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(2)
	}
	fmt.Println(output)

	if stats.FailedFiles > 0 {
		fmt.Fprintf(os.Stderr, "%d document(s) could not be processed\n", stats.FailedFiles)
	}
	if len(allFindings) > 0 {
		os.Exit(1)
	}
}

func parseFlags() configFlags {
	var flags configFlags
	flag.StringVar(&flags.outputFormat, "format", "", "Output format (text, json, csv)")
	flag.StringVar(&flags.severities, "severity", "", "Comma-separated severities to report (high,medium,low or all)")
	flag.Float64Var(&flags.minEvidence, "min-evidence", -1, "Minimum evidence score for a finding (0..1)")
	flag.StringVar(&flags.contentType, "content-type", "", "Document content type (general, technical, legal)")
	flag.StringVar(&flags.audience, "audience", "", "Target audience (general, expert)")
	flag.StringVar(&flags.domain, "domain", "", "Document domain for vocabulary checks")
	flag.StringVar(&flags.blockType, "block-type", "", "Block type of the input (paragraph, heading, code, ...)")
	flag.StringVar(&flags.configFile, "config", "", "Path to configuration file")
	flag.StringVar(&flags.profile, "profile", "", "Named configuration profile to apply")
	flag.StringVar(&flags.tablesDir, "tables", "", "Directory of evidence table files")
	flag.StringVar(&flags.registryPath, "registry", "", "Path to the name registry file")
	flag.StringVar(&flags.suppressions, "suppressions", "", "Path to the suppressions file")
	flag.IntVar(&flags.workers, "workers", 0, "Number of parallel workers (0 = number of CPUs)")
	flag.BoolVar(&flags.watch, "watch", false, "Hot-reload evidence tables on change")
	flag.BoolVar(&flags.initTables, "init-tables", false, "Write the built-in evidence tables to the tables directory and exit")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.verbose, "verbose", false, "Show decision trails in output")
	flag.BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&flags.showVersion, "version", false, "Show version information")
	flag.BoolVar(&flags.listFormats, "list-formats", false, "List available output formats")
	flag.Parse()
	return flags
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("")
	}
	return cfg
}

func applyFlagOverrides(cfg *config.Config, flags configFlags) {
	if flags.outputFormat != "" {
		cfg.Defaults.Format = flags.outputFormat
	}
	if flags.severities != "" {
		cfg.Defaults.Severities = flags.severities
	}
	if flags.minEvidence >= 0 {
		cfg.Defaults.MinEvidence = flags.minEvidence
	}
	if flags.contentType != "" {
		cfg.Defaults.ContentType = flags.contentType
	}
	if flags.audience != "" {
		cfg.Defaults.Audience = flags.audience
	}
	if flags.domain != "" {
		cfg.Defaults.Domain = flags.domain
	}
	if flags.tablesDir != "" {
		cfg.Tables.Dir = flags.tablesDir
	}
	if flags.registryPath != "" {
		cfg.Registry.Path = flags.registryPath
	}
	if flags.suppressions != "" {
		cfg.Suppressions = flags.suppressions
	}
	if flags.watch {
		cfg.Tables.Watch = true
	}
	if flags.verbose {
		cfg.Defaults.Verbose = true
	}
	if flags.debug {
		cfg.Defaults.Debug = true
	}
	if flags.noColor {
		cfg.Defaults.NoColor = true
	}
}

// seedTables writes the built-in evidence tables.
func seedTables(dir string) error {
	seeds := map[string]map[string]evidence.Entry{
		detectives.LatinAbbreviationTable:    detectives.DefaultLatinEntries(),
		detectives.CommonAcronymTable:        detectives.DefaultCommonAcronyms(),
		detectives.VerbableAbbreviationTable: detectives.DefaultVerbableEntries(),
		validation.DomainVocabularyTable:     {},
	}
	for name, entries := range seeds {
		if err := evidence.SaveTable(dir, name, entries); err != nil {
			return err
		}
	}
	return nil
}
