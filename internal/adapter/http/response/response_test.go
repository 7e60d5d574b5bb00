package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), rec
}

func TestFailure_Send(t *testing.T) {
	tests := []struct {
		name        string
		failure     Failure
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails map[string]string
	}{
		{"invalid body", InvalidBody, http.StatusBadRequest, CodeInvalidRequest, MsgInvalidRequestBody, nil},
		{"bad request", BadRequest("code must be 2 or 3 characters"), http.StatusBadRequest, CodeInvalidRequest, "code must be 2 or 3 characters", nil},
		{
			name:        "validation with details",
			failure:     Validation.WithDetails(map[string]string{"origin": "origin is required"}),
			wantStatus:  http.StatusBadRequest,
			wantCode:    CodeValidationError,
			wantMessage: MsgValidationFailed,
			wantDetails: map[string]string{"origin": "origin is required"},
		},
		{"validation with message", Validation.WithMessage("at most 3 offers can be compared"), http.StatusBadRequest, CodeValidationError, "at most 3 offers can be compared", nil},
		{"unavailable", Unavailable, http.StatusServiceUnavailable, CodeServiceUnavailable, MsgServiceUnavailable, nil},
		{"timeout", Timeout, http.StatusGatewayTimeout, CodeTimeout, MsgTimeout, nil},
		{"cancelled", Cancelled, http.StatusGatewayTimeout, CodeTimeout, MsgRequestCancelled, nil},
		{"internal", Internal, http.StatusInternalServerError, CodeInternalError, MsgInternalError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()

			require.NoError(t, tt.failure.Send(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body ErrorDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, tt.wantDetails, body.Details)
		})
	}
}

func TestFailure_ModifiersCopy(t *testing.T) {
	_ = Validation.WithMessage("changed").WithDetails(map[string]string{"x": "y"})

	assert.Equal(t, MsgValidationFailed, Validation.Body.Message)
	assert.Nil(t, Validation.Body.Details)
}

func TestFailure_DetailsOmittedWhenEmpty(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Unavailable.Send(c))
	assert.NotContains(t, rec.Body.String(), "details")
}

func TestOK(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, OK(c, map[string]string{"code": "AA", "name": "American Airlines"}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"code":"AA","name":"American Airlines"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Health(c, 2))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","sources":2}`, rec.Body.String())
}
