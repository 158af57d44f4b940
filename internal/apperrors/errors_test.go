package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(New(KindNotFound, "post not found")))
	assert.Equal(t, KindConflict, KindOf(Wrap(KindConflict, "duplicate", errors.New("pq: unique violation"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("anything else")))
}

func TestKindOfWrappedDeeper(t *testing.T) {
	inner := New(KindUnauthorized, "nope")
	outer := fmt.Errorf("handler: %w", inner)

	assert.Equal(t, KindUnauthorized, KindOf(outer))
	assert.True(t, IsKind(outer, KindUnauthorized))
}

func TestRespondStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		kind   Kind
		status int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindValidationFailed, http.StatusBadRequest},
		{KindUpstreamUnavailable, http.StatusBadGateway},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Respond(c, New(tc.kind, "message"))

		assert.Equal(t, tc.status, w.Code, tc.kind.String())
	}
}

func TestRespondNeverLeaksWrappedCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, Wrap(KindInternal, "failed to load post", errors.New("pq: connection reset by peer")))

	assert.NotContains(t, w.Body.String(), "connection reset")
	assert.Contains(t, w.Body.String(), "failed to load post")
}

func TestRespondUnknownErrorIsGeneric500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, errors.New("secret database details"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
	assert.Contains(t, w.Body.String(), "internal server error")
}
