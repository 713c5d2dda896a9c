package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusNotFound, rw.Status())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, rw.Written())
}

func TestResponseWriter_Write(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)
	assert.False(t, rw.Written())

	n, err := rw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = rw.Write([]byte(" world"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello world", w.Body.String())
	assert.EqualValues(t, 11, rw.Size())
}

func TestResponseWriter_OnBeforeWrite(t *testing.T) {
	t.Parallel()

	t.Run("hooks run once in order before the header", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		rw := NewResponseWriter(w)

		var calls []string
		rw.OnBeforeWrite(func() {
			calls = append(calls, "first")
			rw.Header().Set("Vary", "Accept-Language")
		})
		rw.OnBeforeWrite(func() { calls = append(calls, "second") })

		rw.WriteHeader(http.StatusFound)
		_, _ = rw.Write([]byte("x"))

		assert.Equal(t, []string{"first", "second"}, calls)
		assert.Equal(t, "Accept-Language", w.Header().Get("Vary"))
	})

	t.Run("implicit write triggers hooks", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		rw := NewResponseWriter(w)

		var ran bool
		rw.OnBeforeWrite(func() { ran = true })
		_, _ = rw.Write([]byte("x"))

		assert.True(t, ran)
	})

	t.Run("hooks added after the response started are dropped", func(t *testing.T) {
		t.Parallel()

		rw := NewResponseWriter(httptest.NewRecorder())
		rw.WriteHeader(http.StatusOK)

		var ran bool
		rw.OnBeforeWrite(func() { ran = true })
		_, _ = rw.Write([]byte("x"))

		assert.False(t, ran)
	})
}

func TestResponseWriter_Unwrap(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)
	assert.Same(t, w, rw.Unwrap())

	rw.Flush()
	assert.True(t, w.Flushed)
	assert.True(t, rw.Written())
}
