package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/verityhq/verity/packages/verify"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Session string       `json:"session"`
	Summary JSONSummary  `json:"summary"`
	Checks  []JSONRecord `json:"checks"`
	Time    string       `json:"time"`
}

// JSONSummary represents the session summary
type JSONSummary struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// JSONRecord represents a single verification outcome
type JSONRecord struct {
	Message        string `json:"message"`
	Passed         bool   `json:"passed"`
	Expected       string `json:"expected,omitempty"`
	Actual         string `json:"actual,omitempty"`
	WaitSeconds    int    `json:"waitSeconds,omitempty"`
	IntervalMillis int    `json:"intervalMillis,omitempty"`
	Attempts       int    `json:"attempts"`
	ElapsedMillis  int64  `json:"elapsedMillis"`
	CreatedAt      string `json:"createdAt"`
}

// JSONFormatter renders a session as machine-readable JSON.
type JSONFormatter struct {
	writer io.Writer
	pretty bool
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
		pretty: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func JSONWithCompact() JSONOption {
	return func(f *JSONFormatter) {
		f.pretty = false
	}
}

func (f *JSONFormatter) FormatSession(sessionID string, records []verify.Record) error {
	out := JSONOutput{
		Session: sessionID,
		Checks:  make([]JSONRecord, 0, len(records)),
		Time:    time.Now().Format(time.RFC3339),
	}

	for _, r := range records {
		out.Summary.Total++
		if r.Passed {
			out.Summary.Passed++
		} else {
			out.Summary.Failed++
		}
		out.Checks = append(out.Checks, JSONRecord{
			Message:        r.Message,
			Passed:         r.Passed,
			Expected:       r.Expected,
			Actual:         r.Actual,
			WaitSeconds:    r.WaitSeconds,
			IntervalMillis: r.IntervalMillis,
			Attempts:       r.Attempts,
			ElapsedMillis:  r.ElapsedMillis,
			CreatedAt:      r.CreatedAt.Format(time.RFC3339Nano),
		})
	}

	encoder := json.NewEncoder(f.writer)
	if f.pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(out)
}
