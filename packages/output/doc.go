// Package output provides formatters for displaying verification sessions.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: Machine-readable JSON output
//   - JUnit: JUnit XML format for CI integration
//
// Each formatter implements the Formatter interface; ForConfig builds the
// set of formatters named by a configuration's reporters list.
package output
