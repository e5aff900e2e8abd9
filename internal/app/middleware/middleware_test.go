package middleware

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test secret")

func sessionEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetSessionID(r.Context())))
	})
}

func TestSessionCookie_NewSession(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	SessionCookie(testSecret)(sessionEcho()).ServeHTTP(w, r)
	result := w.Result()
	defer result.Body.Close()

	cookies := result.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)

	body, err := io.ReadAll(result.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, string(body))
	assert.True(t, strings.HasPrefix(cookies[0].Value, string(body)+"|"))
}

func TestSessionCookie_ExistingSession(t *testing.T) {
	sc, err := NewSessionSignedCookie(testSecret)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(sc.Cookie)
	w := httptest.NewRecorder()
	SessionCookie(testSecret)(sessionEcho()).ServeHTTP(w, r)
	result := w.Result()
	defer result.Body.Close()

	assert.Empty(t, result.Cookies(), "valid cookie is not reissued")
	body, err := io.ReadAll(result.Body)
	require.NoError(t, err)
	assert.Equal(t, sc.BaseValue, string(body))
}

func TestSessionCookie_ReplacesBadCookie(t *testing.T) {
	foreign, err := NewSessionSignedCookie([]byte("other secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
	}{
		{name: "signed with other secret", value: foreign.Value},
		{name: "unsigned", value: "c0ffee"},
		{name: "sign is not hex", value: "c0ffee|zz"},
		{name: "empty id", value: "|abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.value})
			w := httptest.NewRecorder()
			SessionCookie(testSecret)(sessionEcho()).ServeHTTP(w, r)
			result := w.Result()
			defer result.Body.Close()

			require.Equal(t, http.StatusOK, result.StatusCode)
			require.Len(t, result.Cookies(), 1)
			assert.NotEqual(t, tt.value, result.Cookies()[0].Value)
		})
	}
}

func TestSessionCookie_EmptySecret(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	SessionCookie(nil)(sessionEcho()).ServeHTTP(w, r)
	result := w.Result()
	defer result.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
}

func TestSignedCookie_Roundtrip(t *testing.T) {
	sc, err := NewSessionSignedCookie(testSecret)
	require.NoError(t, err)

	check := SignedCookie{Cookie: &http.Cookie{Value: sc.Value}, secret: testSecret}
	require.NoError(t, check.DetachSign())
	assert.Equal(t, sc.BaseValue, check.BaseValue)

	check.Value = sc.Value + "00"
	assert.ErrorIs(t, check.DetachSign(), ErrSignedCookieInvalidSign)
}

func TestGetSessionID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", GetSessionID(r.Context()))
	assert.Equal(t, "xxxx", GetSessionID(WithSessionID(r.Context(), "xxxx")))
}

func TestDecompress(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		_, _ = w.Write(b)
	})

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(`{"longURL":"https://ya.ru"}`))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	tests := []struct {
		name     string
		body     []byte
		encoding string
		status   int
		want     string
	}{
		{name: "gzip", body: buf.Bytes(), encoding: "gzip", status: http.StatusOK, want: `{"longURL":"https://ya.ru"}`},
		{name: "plain", body: []byte(`{"longURL":"x"}`), status: http.StatusOK, want: `{"longURL":"x"}`},
		{name: "broken gzip", body: []byte("not gzip"), encoding: "gzip", status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/shorten", bytes.NewReader(tt.body))
			if tt.encoding != "" {
				r.Header.Set("Content-Encoding", tt.encoding)
			}
			w := httptest.NewRecorder()
			Decompress(echo).ServeHTTP(w, r)
			result := w.Result()
			defer result.Body.Close()

			require.Equal(t, tt.status, result.StatusCode)
			if tt.want != "" {
				b, err := io.ReadAll(result.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.want, string(b))
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	h := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSeeOther)
		_, _ = w.Write([]byte("ok"))
	}))

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/", entry["uri"])
	assert.Equal(t, float64(http.StatusSeeOther), entry["status"])
	assert.Equal(t, float64(2), entry["size"])
}
