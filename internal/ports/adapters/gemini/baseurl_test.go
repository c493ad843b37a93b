package gemini

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateBaseURL(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateBaseURL("", nil))
	require.NoError(t, ValidateBaseURL("https://generativelanguage.googleapis.com", nil))
	require.NoError(t, ValidateBaseURL("https://generativelanguage.googleapis.com/", nil))
	require.NoError(t, ValidateBaseURL("https://proxy.internal", []string{"proxy.internal"}))

	require.Error(t, ValidateBaseURL("http://generativelanguage.googleapis.com", nil))
	require.Error(t, ValidateBaseURL("https://evil.example.net", nil))
	require.Error(t, ValidateBaseURL("https://user:pw@generativelanguage.googleapis.com", nil))
	require.Error(t, ValidateBaseURL("https://generativelanguage.googleapis.com?x=1", nil))
	require.Error(t, ValidateBaseURL("generativelanguage.googleapis.com", nil))
}
