package errs

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/nsengine/internal/logger"
)

func TestErrorMessage(t *testing.T) {
	err := New("material.New", CodeShaderCompilationFailed, Fatal, "vertex: %s", "0:3: syntax error")
	assert.Equal(t, "material.New: vertex: 0:3: syntax error", err.Error())

	bare := &E{Op: "mesh.Initialize", Code: CodeInvalidState}
	assert.Equal(t, "mesh.Initialize: invalid state", bare.Error())
}

func TestCodeThroughWrapping(t *testing.T) {
	base := Wrap("obj.Load", CodeFileIO, Error, fs.ErrNotExist)
	wrapped := fmt.Errorf("load scene: %w", base)

	assert.True(t, Is(wrapped, CodeFileIO))
	assert.False(t, Is(wrapped, CodeMalformedGeometry))
	assert.Equal(t, Error, SeverityOf(wrapped))
	assert.True(t, errors.Is(wrapped, fs.ErrNotExist))

	assert.Nil(t, Wrap("noop", CodeFileIO, Error, nil))
	assert.Equal(t, CodeNone, CodeOf(errors.New("plain")))
	assert.Equal(t, Error, SeverityOf(errors.New("plain")))
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "DEBUG", Debug.String())
	assert.Equal(t, "WARNING", Warning.String())
	assert.Equal(t, "FATAL", Fatal.String())
}

func TestReportRecordsLastError(t *testing.T) {
	require.NoError(t, logger.InitWithFileConfig("error", logger.FileConfig{}, false))
	logger.ClearLastError()

	assert.Nil(t, Report(nil))

	err := New("material.Uniform", CodeUniformNotFound, Warning, "uniform %q not found", "u_missing")
	assert.Same(t, err, Report(err))

	last, ok := logger.LastError()
	require.True(t, ok)
	assert.Equal(t, zapcore.WarnLevel, last.Level)
	assert.Contains(t, last.String(), "u_missing")

	Report(New("material.New", CodeShaderCompilationFailed, Fatal, "bad shader"))
	last, _ = logger.LastError()
	assert.Equal(t, zapcore.DPanicLevel, last.Level)
	assert.Contains(t, last.String(), "FATAL")
}
