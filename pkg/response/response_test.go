package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorEnvelope(t *testing.T) {
	body, err := json.Marshal(Error("UNAUTHORIZED", "missing token", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"UNAUTHORIZED","message":"missing token"}}`, string(body))
}

func TestErrorEnvelopeWithDetails(t *testing.T) {
	body, err := json.Marshal(Error("BAD_REQUEST", "invalid filter", map[string]string{"min": "not a number"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"BAD_REQUEST","message":"invalid filter","details":{"min":"not a number"}}}`, string(body))
}
