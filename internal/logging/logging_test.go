package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ohitsming/guapital-sub001/internal/calculation"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug", "json").GetLevel())
	assert.Equal(t, logrus.WarnLevel, New("WARN", "json").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("", "json").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("chatty", "text").GetLevel())
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info", "json")
	logger.WithField("user_id", "u-1").Info("evaluated")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "evaluated", entry["msg"])
	assert.Equal(t, "u-1", entry["user_id"])
}

func TestNewWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "info", "text").Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestLogrusSatisfiesEngineLogger(t *testing.T) {
	var buf bytes.Buffer
	var l calculation.Logger = NewWithWriter(&buf, "debug", "json")
	l.Debugf("resolved %d accounts", 3)
	assert.Contains(t, buf.String(), "resolved 3 accounts")
}
