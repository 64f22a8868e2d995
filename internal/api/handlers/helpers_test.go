package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/stretchr/testify/require"
)

// decodeResponse unwraps the envelope and, when dest is non-nil, re-decodes Data into it.
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, dest any) response.APIResponse {
	t.Helper()

	var body response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	if dest != nil {
		raw, err := json.Marshal(body.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, dest))
	}

	return body
}
