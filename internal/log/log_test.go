package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })
	return &buf
}

func TestLog_FormatsFields(t *testing.T) {
	buf := captureLog(t)

	Info(CatMatch, "Selecting", "start", 1, "end", 4)

	line := buf.String()
	require.Contains(t, line, "[INFO] [match] Selecting start=1 end=4")
	require.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestLog_OrphanKey(t *testing.T) {
	buf := captureLog(t)

	Debug(CatAction, "Run", "action")

	require.Contains(t, buf.String(), "action=<missing>")
}

func TestLog_MinLevelFilters(t *testing.T) {
	buf := captureLog(t)
	SetMinLevel(LevelWarn)

	Debug(CatUI, "hidden")
	Warn(CatUI, "shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "[WARN] [ui] shown")
}

func TestLog_Disabled(t *testing.T) {
	buf := captureLog(t)
	SetEnabled(false)

	Error(CatCLI, "dropped")

	require.Empty(t, buf.String())
}

func TestLog_ErrorErr(t *testing.T) {
	buf := captureLog(t)

	ErrorErr(CatConfig, "Load failed", errors.New("boom"), "path", "x.yaml")
	ErrorErr(CatConfig, "Nil error", nil)

	require.Contains(t, buf.String(), "path=x.yaml error=boom")
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestLevel_String(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}

func TestDebugRequested(t *testing.T) {
	t.Setenv(EnvDebug, "")
	require.False(t, DebugRequested())

	t.Setenv(EnvDebug, "1")
	require.True(t, DebugRequested())
}
