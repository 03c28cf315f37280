// Command mago-analyze is a thin smoke-test driver for the analyzer
// core (mirrors cmd/funxy's role in the teacher repo): it has no
// lexer or parser of its own, so each scenario hand-builds the AST
// fragment it exercises, the same way internal/analyzer's own tests
// do, then reports what landed in the diagnostic sink.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/yigitcukuren/mago-sub004/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("mago-analyze", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config fixture overriding tunables")
	goldenPath := fs.String("golden", "", "path to a txtar golden fixture to verify scenario output against")
	quiet := fs.Bool("quiet", false, "suppress the per-scenario diagnostic listing")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadYAML(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mago-analyze: loading config: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	activeConfig = cfg

	var golden map[string]expectedCounts
	if *goldenPath != "" {
		data, err := os.ReadFile(*goldenPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mago-analyze: reading golden fixture: %v\n", err)
			return 1
		}
		parsed, err := parseGolden(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mago-analyze: parsing golden fixture: %v\n", err)
			return 1
		}
		golden = parsed
	}

	color := colorEnabled()
	var mismatches []string
	for _, sc := range scenarios {
		sink := sc.run()
		if !*quiet {
			fmt.Printf("%s:\n", sc.name)
			for _, d := range sink.Sorted() {
				fmt.Printf("  %s %s\n", colorize(color, severityColor(d.Kind), string(d.Kind)), d.Message)
			}
		}
		if golden != nil {
			mismatches = append(mismatches, compareGolden(sc.name, sink, golden)...)
		}
	}

	if len(mismatches) > 0 {
		fmt.Fprintln(os.Stderr, "mago-analyze: golden mismatch:")
		for _, m := range mismatches {
			fmt.Fprintf(os.Stderr, "  %s\n", m)
		}
		return 1
	}
	return 0
}
