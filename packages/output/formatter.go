package output

import (
	"fmt"
	"io"

	"github.com/verityhq/verity/packages/core/config"
	"github.com/verityhq/verity/packages/verify"
)

// Formatter renders one finalized session.
type Formatter interface {
	FormatSession(sessionID string, records []verify.Record) error
}

// ForConfig builds the formatters named by cfg.Reporters, all writing to w.
func ForConfig(cfg *config.Config, w io.Writer) ([]Formatter, error) {
	formatters := make([]Formatter, 0, len(cfg.Reporters))
	for _, name := range cfg.Reporters {
		switch name {
		case "console":
			formatters = append(formatters, NewConsoleFormatter(
				WithWriter(w),
				WithVerbose(cfg.GetVerbose()),
				WithNoColor(cfg.GetNoColor()),
			))
		case "json":
			formatters = append(formatters, NewJSONFormatter(JSONWithWriter(w)))
		case "junit":
			formatters = append(formatters, NewJUnitFormatter(JUnitWithWriter(w)))
		default:
			return nil, fmt.Errorf("unknown reporter: %s", name)
		}
	}
	return formatters, nil
}
