package flow

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	launcher := newManual()
	correlator := New(launcher)
	handler := NewHandler(correlator)
	done := launchAsync(correlator, "flow://x")
	launch := <-launcher.launches

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/flow/other/result", strings.NewReader("{}")))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/flow/"+launch.ID+"/result", strings.NewReader(`{"discount_amount":"1.50"}`)))
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	out := <-done
	require.NoError(t, out.err)
	assert.Equal(t, `{"discount_amount":"1.50"}`, *out.payload)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/flow/"+launch.ID+"/result", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}

func TestHandler_EmptyBody(t *testing.T) {
	launcher := newManual()
	correlator := New(launcher)
	handler := NewHandler(correlator)
	done := launchAsync(correlator, "flow://x")
	launch := <-launcher.launches

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/flow/"+launch.ID+"/result", strings.NewReader(" ")))
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	out := <-done
	require.NoError(t, out.err)
	assert.Nil(t, out.payload)
}
