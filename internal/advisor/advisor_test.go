package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiRejectsEmptyKey(t *testing.T) {
	for _, key := range []string{"", "   ", "\t\n"} {
		_, err := NewGemini(context.Background(), key, "")
		require.Error(t, err, "key %q", key)

		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr, "key %q", key)
		assert.Contains(t, cfgErr.Error(), "API key")
	}
}

func TestRequestErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := &RequestError{Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Reason: "no API key"}
	assert.Equal(t, "advisor config: no API key", err.Error())
}
