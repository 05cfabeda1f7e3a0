package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONFieldsAndCaller(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	var buf bytes.Buffer
	l := New(Config{Format: "json", Output: &buf})

	l.WithContext(Fields{"request_id": "abc"}).Error("store write failed", errors.New("disk full"), Fields{
		"path": "data/retailers.json",
	})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "store write failed", line["message"])
	assert.Equal(t, "disk full", line["error"])
	assert.Equal(t, "abc", line["request_id"])
	assert.Equal(t, "data/retailers.json", line["path"])
	assert.True(t, strings.Contains(line["caller"].(string), "logger_test.go"))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLogLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel("verbose"))
}
