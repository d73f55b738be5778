package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wecisecode/rbtree/logger"
)

type mapConfig map[string]string

func (m mapConfig) GetString(key string, defaultvalue ...string) string {
	if v, ok := m[key]; ok {
		return v
	}
	if len(defaultvalue) > 0 {
		return defaultvalue[0]
	}
	return ""
}

func (m mapConfig) GetBool(key string, defaultvalue ...bool) bool {
	if v, ok := m[key]; ok {
		return v == "true"
	}
	return len(defaultvalue) > 0 && defaultvalue[0]
}

func newBufferLogger() (*logger.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logger.New()
	log.SetOutput(buf)
	log.SetColor(false)
	return log, buf
}

func TestLevelFilter(t *testing.T) {
	log, buf := newBufferLogger()
	log.SetLevel(logger.LevelWARN)
	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	log.Errorf("shown %d", 2)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[W]")
	assert.Contains(t, out, "shown 2")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestUserdefineFormat(t *testing.T) {
	log, buf := newBufferLogger()
	log.SetFormat("[level] file:line [module] msg", "\n")
	log.AddFormat("module", func(buf *[]byte, fa *logger.FmtArgs) {
		*buf = append(*buf, "test"...)
	})
	log.Info("hello", 42)
	assert.Regexp(t, `^\[I\] logger_test\.go:\d+ \[test\] hello 42\n$`, buf.String())
}

func TestWithConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "rbtree.log")
	log, buf := newBufferLogger()
	log.WithConfig(mapConfig{
		"log.level":        "info",
		"log.consolelevel": "error",
		"log.format":       "level msg",
		"log.file":         file,
	}, "log")
	defer log.Close()

	log.Debug("dropped")
	log.Info("to file")
	log.Error("everywhere")

	assert.Equal(t, "E everywhere\n", buf.String())
	bs, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "I to file\nE everywhere\n", string(bs))
}

func TestCodeSettingWins(t *testing.T) {
	log, buf := newBufferLogger()
	log.SetLevel(logger.ERROR)
	log.WithConfig(mapConfig{"level": "trace"})
	log.Warn("still hidden")
	assert.Empty(t, buf.String())
	lv, _ := log.Level()
	assert.Equal(t, logger.ERROR, lv)
}

func TestDefaultLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	logger.SetColor(false)
	logger.SetLevel(logger.TRACE)
	defer logger.SetOutput(os.Stdout)

	logger.Trace("t")
	logger.Debugf("d%d", 1)
	logger.Info("i")
	for _, flag := range []string{"[T]", "[D]", "[I]"} {
		assert.Contains(t, buf.String(), flag)
	}
	assert.Contains(t, buf.String(), "d1")
}
