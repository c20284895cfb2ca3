//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"shareit/internal/handler/httperr"

	"github.com/stretchr/testify/assert"
)

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if targetStruct == nil || w.Code < 200 || w.Code >= 300 {
		return
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "failed to decode response JSON: %s", w.Body.String())
}

// AssertErrorResponse checks the status and that the envelope message contains expectedErrorMsg.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) *httperr.Response {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var resp httperr.Response
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "failed to decode error JSON: %s", w.Body.String()) {
		return nil
	}
	if expectedErrorMsg != "" {
		assert.Contains(t, resp.Error.Message, expectedErrorMsg, "error message mismatch")
	}
	return &resp
}
