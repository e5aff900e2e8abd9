package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UndeadDemidov/shortlink-form/internal/app/shortening"
	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusUnsupportedMediaType)
			return
		}
		_, _ = w.Write([]byte(`{"body":{"shortURL":"abc123"}}`))
	}))
	defer up.Close()

	tests := []struct {
		name       string
		args       []string
		wantErr    error
		wantStdout string
	}{
		{
			name:       "bare link",
			args:       []string{"-e", up.URL, "-b", "https://s.io", "https://ya.ru"},
			wantStdout: "https://s.io/?code=abc123\n",
		},
		{
			name:       "html",
			args:       []string{"-e", up.URL, "-b", "https://s.io", "--html", "https://ya.ru"},
			wantStdout: "<a href=\"https://s.io/?code=abc123\" target=\"_blank\">https://s.io/?code=abc123</a>\n",
		},
		{
			name:    "no url",
			args:    []string{"-e", up.URL},
			wantErr: errUsage,
		},
		{
			name:    "unknown flag",
			args:    []string{"--nope", "https://ya.ru"},
			wantErr: errUsage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantStdout, stdout.String())
		})
	}
}

func TestRun_RequestFailed(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer up.Close()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-e", up.URL, "https://ya.ru"}, &stdout, &stderr)
	assert.ErrorIs(t, err, shortening.ErrRequestFailed)
	assert.Empty(t, stdout.String())
}
