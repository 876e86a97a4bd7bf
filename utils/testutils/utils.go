package testutils

import (
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/benoitkugler/tablelayout/logger"
)

func AssertEqual(t *testing.T, got, exp interface{}) {
	t.Helper()
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("expected\n%v\n got \n%v", exp, got)
	}
}

// CapturedLogs redirects the output of the warning logger,
// so that tests may check their content.
type CapturedLogs struct {
	previous io.Writer
	buf      strings.Builder
}

// CaptureLogs starts capturing the warnings emitted during layout.
// One of the AssertXxx methods must be called to restore the logger.
func CaptureLogs() *CapturedLogs {
	c := CapturedLogs{previous: logger.WarningLogger.Writer()}
	logger.WarningLogger.SetOutput(&c.buf)
	return &c
}

// Logs restore the logger and returns the captured lines.
func (c *CapturedLogs) Logs() []string {
	logger.WarningLogger.SetOutput(c.previous)
	out := strings.TrimSuffix(c.buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// AssertNoLogs restore the logger and fails if any warning was emitted.
func (c *CapturedLogs) AssertNoLogs(t *testing.T) {
	t.Helper()
	if logs := c.Logs(); len(logs) != 0 {
		t.Fatalf("expected no logs, got (%d): \n %s", len(logs), strings.Join(logs, "\n"))
	}
}
