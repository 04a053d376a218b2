package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("WARN"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("error"))
	assert.Equal(t, logrus.TraceLevel, GetLevel("trace"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("info"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("nonsense"))
}

func TestSetup_File(t *testing.T) {
	defer logrus.SetOutput(os.Stdout)

	name := filepath.Join(t.TempDir(), "server")
	Setup(SetupParams{
		LogFileName:   name,
		LogLevel:      "info",
		LogFormatJSON: true,
	})

	logrus.Info("pump score recomputed")

	data, err := os.ReadFile(name + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"pump score recomputed"`)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
