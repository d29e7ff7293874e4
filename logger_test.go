package nutriplan

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileGenerationLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewFileGenerationLogger(&buf)

	require.NoError(t, logger.LogAttempt(AttemptLog{Kind: "plan", Timestamp: time.Now(), State: "well_formed"}))
	require.NoError(t, logger.LogAttempt(AttemptLog{Kind: "chat", Timestamp: time.Now(), Error: "timeout"}))
	assert.Zero(t, buf.Len(), "nothing written before flush")

	require.NoError(t, logger.Flush())

	var doc struct {
		Session struct {
			Attempts []AttemptLog `json:"attempts"`
		} `json:"generation_session"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Session.Attempts, 2)
	assert.Equal(t, "well_formed", doc.Session.Attempts[0].State)
	assert.Equal(t, "timeout", doc.Session.Attempts[1].Error)
}

func TestStdoutGenerationLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := &StdoutGenerationLogger{out: &buf}

	require.NoError(t, logger.LogAttempt(AttemptLog{Kind: "plan", Model: "llama3.2"}))
	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "{"))
	assert.Contains(t, line, `"model":"llama3.2"`)
}

func TestNewGenerationLogFilePath(t *testing.T) {
	path := NewGenerationLogFilePath("logs", "us.anthropic.Claude:v1/latest")
	assert.True(t, strings.HasPrefix(path, "logs/"))
	assert.True(t, strings.HasSuffix(path, ".us.anthropic.claude_v1_latest.json"))
}
