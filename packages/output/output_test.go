package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verityhq/verity/packages/core/config"
	"github.com/verityhq/verity/packages/verify"
)

func sessionRecords() []verify.Record {
	now := time.Now()
	return []verify.Record{
		{
			ID: "r1", Passed: true, Message: "status should equal 200",
			DiffStyle: true, Expected: "200", Actual: "200",
			Attempts: 1, ElapsedMillis: 3, CreatedAt: now,
		},
		{
			ID: "r2", Passed: false, Message: `body should contain "ok"`,
			Actual: "service unavailable", WaitSeconds: 2, IntervalMillis: 250,
			Attempts: 9, ElapsedMillis: 2012, CreatedAt: now,
		},
	}
}

func TestConsoleFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithVerbose(true))

	require.NoError(t, f.FormatSession("sess-1", sessionRecords()))
	out := buf.String()

	assert.Contains(t, out, "Session: sess-1")
	assert.Contains(t, out, "✓ status should equal 200")
	assert.Contains(t, out, `✗ body should contain "ok"`)
	assert.Contains(t, out, "Actual: service unavailable")
	assert.Contains(t, out, "Waited up to 2s at 250ms intervals, 9 attempt(s)")
	assert.Contains(t, out, "1 passed")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "2 total")
}

func TestConsoleFormatter_DiffStyleFailure(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))

	records := []verify.Record{{
		Passed: false, Message: "title should equal", DiffStyle: true,
		Expected: "Home", Actual: "Login",
	}}
	require.NoError(t, f.FormatSession("s", records))

	assert.Contains(t, buf.String(), "Expected: Home")
	assert.Contains(t, buf.String(), "Actual:   Login")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))

	require.NoError(t, f.FormatSession("sess-2", sessionRecords()))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "sess-2", out.Session)
	assert.Equal(t, 2, out.Summary.Total)
	assert.Equal(t, 1, out.Summary.Passed)
	assert.Equal(t, 1, out.Summary.Failed)
	require.Len(t, out.Checks, 2)
	assert.Equal(t, 9, out.Checks[1].Attempts)
}

func TestJUnitFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJUnitFormatter(JUnitWithWriter(&buf))

	require.NoError(t, f.FormatSession("sess-3", sessionRecords()))
	require.NoError(t, f.Flush())
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `tests="2"`)
	assert.Contains(t, out, `failures="1"`)
	assert.Contains(t, out, "VerificationError")
	assert.Contains(t, out, "status should equal 200")
}

func TestForConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Reporters: []string{"console", "json", "junit"}, NoColor: config.BoolPtr(true)}

	formatters, err := ForConfig(cfg, &buf)
	require.NoError(t, err)
	require.Len(t, formatters, 3)

	_, err = ForConfig(&config.Config{Reporters: []string{"html"}}, &buf)
	assert.EqualError(t, err, "unknown reporter: html")
}
