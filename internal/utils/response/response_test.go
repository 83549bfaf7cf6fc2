package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/hackathon-api/internal/form"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, WriteJSON(rec, http.StatusCreated, map[string]int64{"id": 7}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":7}`, rec.Body.String())
}

func TestValidationError_JoinsInFieldOrder(t *testing.T) {
	resp := ValidationError(&form.ValidationError{Fields: map[string]string{
		"email":     "Email Address is required",
		"full_name": "Full Name is required",
	}})

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "Email Address is required, Full Name is required", resp.Error)
	assert.Len(t, resp.Fields, 2)
}

func TestFromError(t *testing.T) {
	notices := []form.Notice{{Kind: form.Failure, Message: "nope"}}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &form.ValidationError{Fields: map[string]string{"a": "b"}}, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("rejected: %w", &form.ValidationError{Fields: map[string]string{"a": "b"}}), http.StatusBadRequest},
		{"busy", form.ErrBusy, http.StatusConflict},
		{"store", errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := FromError(tt.err, notices)
			assert.Equal(t, tt.want, status)
			assert.Equal(t, notices, resp.Notifications)

			b, err := json.Marshal(resp)
			require.NoError(t, err)
			assert.Contains(t, string(b), `"status":"error"`)
		})
	}
}
