package colors

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debug(msg string, _ ...any) { r.lines = append(r.lines, "debug:"+msg) }
func (r *recordingLogger) Info(msg string, _ ...any)  { r.lines = append(r.lines, "info:"+msg) }
func (r *recordingLogger) Warn(msg string, _ ...any)  { r.lines = append(r.lines, "warn:"+msg) }
func (r *recordingLogger) Error(msg string, _ ...any) { r.lines = append(r.lines, "error:"+msg) }

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	restore := SetOutput(&out, &errOut)
	t.Cleanup(restore)
	return &out, &errOut
}

func TestError(t *testing.T) {
	out, errOut := capture(t)

	Error("something went wrong")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error:")
	assert.Contains(t, errOut.String(), "something went wrong")
	assert.Contains(t, errOut.String(), Red)
}

func TestSuccess(t *testing.T) {
	out, _ := capture(t)

	Success("Note created successfully!")

	assert.Contains(t, out.String(), checkmark)
	assert.Contains(t, out.String(), "Note created successfully!")
	assert.Contains(t, out.String(), Green)
}

func TestWarningAndInfo(t *testing.T) {
	out, errOut := capture(t)

	Warning("this is a warning")
	Info("for your info")

	assert.Contains(t, errOut.String(), "Warning:")
	assert.Contains(t, errOut.String(), "this is a warning")
	assert.Contains(t, out.String(), Blue+"for your info")
}

func TestDebugOnlyWhenEnabled(t *testing.T) {
	_, errOut := capture(t)
	t.Cleanup(func() { SetDebug(false) })

	SetDebug(false)
	Debug("hidden")
	assert.Empty(t, errOut.String())

	SetDebug(true)
	Debug("shown")
	assert.Contains(t, errOut.String(), "Debug:")
	assert.Contains(t, errOut.String(), "shown")
}

func TestQuietSuppressesStdoutOnly(t *testing.T) {
	out, errOut := capture(t)
	SetQuiet(true)
	t.Cleanup(func() { SetQuiet(false) })

	Success("done")
	Info("fyi")
	Error("bad")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "bad")
}

func TestMessagesMirroredToLogger(t *testing.T) {
	capture(t)
	rec := &recordingLogger{}
	SetLogger(rec)
	t.Cleanup(func() { SetLogger(nil) })

	Success("a")
	Warning("b")
	Error("c", "d")

	assert.Equal(t, []string{"info:a", "warn:b", "error:c d"}, rec.lines)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, fmt.Errorf("closed") }

func TestWriteFailureDoesNotPanic(t *testing.T) {
	restore := SetOutput(failingWriter{}, nil)
	t.Cleanup(restore)

	assert.NotPanics(t, func() { Success("lost") })
}
