// Package config carries the small set of tunables the analyzer needs
// as explicit parameters rather than hidden singletons (spec §9's
// "global mutable state" design note, applied to configuration knobs):
// the root throwable interface name, the loop fixed-point cap, the
// literal-string widen threshold, and the test/LSP mode flags.
package config

// Version is the current analyzer version.
// Set at build time via -ldflags, or left at its default for dev builds.
var Version = "0.1.0"

// RootThrowableInterface is the conventional root interface every
// caught/thrown class-like is checked against (spec §4.5.1,
// GLOSSARY "Throwable root"). Parameterized rather than hardcoded so a
// caller analyzing a codebase with a renamed root can override it.
const RootThrowableInterface = "Throwable"

// LoopFixedPointCap bounds the number of re-analysis passes a loop
// body gets before the analyzer widens aggressively and accepts the
// result, guaranteeing termination (spec §4.3, §9 "Loop fixed-point").
const LoopFixedPointCap = 3

// LiteralStringWidenThreshold is how many distinct literal strings
// combine tolerates before folding them into a general string atomic.
// typeops.Combine uses its own typeops.LiteralStringWidenThreshold with
// the same value; Config.LiteralStringWidenThreshold is not read by it.
const LiteralStringWidenThreshold = 3

// IsTestMode indicates the analyzer is running under its own test
// suite rather than against a real codebase index. No component in
// this module reads the flag; cmd/mago-analyze always runs its built-in
// scenarios against the golden txtar archive.
var IsTestMode = false

// IsLSPMode indicates the analyzer is being driven incrementally by an
// editor integration rather than a whole-program batch run. No
// component changes behavior based on this flag today; it exists so a
// future incremental driver has somewhere to read it from without
// threading a new parameter through every call.
var IsLSPMode = false

// Config is the literal tunable set a caller may override. Production
// callers construct this directly; tests may load it from a YAML
// fixture via LoadYAML, matching the teacher's use of yaml.v3 for
// structured fixtures.
type Config struct {
	RootThrowableInterface      string `yaml:"root_throwable_interface"`
	LoopFixedPointCap           int    `yaml:"loop_fixed_point_cap"`
	LiteralStringWidenThreshold int    `yaml:"literal_string_widen_threshold"`
}

// Default returns the Config matching the package-level constants.
func Default() Config {
	return Config{
		RootThrowableInterface:      RootThrowableInterface,
		LoopFixedPointCap:           LoopFixedPointCap,
		LiteralStringWidenThreshold: LiteralStringWidenThreshold,
	}
}
