package summary

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultJSONShape(t *testing.T) {
	out, err := sonic.Marshal(Success("Example", "A page."))
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Example","summary":"A page."}`, string(out))

	out, err = sonic.Marshal(Failuref("API error: %d", 500))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"API error: 500"}`, string(out))
}

func TestResultText(t *testing.T) {
	assert.Equal(t, NoSummary, Result{Title: "x"}.Text())
	assert.Equal(t, "body", Success("x", "body").Text())
	assert.True(t, Failure("boom").IsError())
	assert.False(t, Success("x", "y").IsError())
}
