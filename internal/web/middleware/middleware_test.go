package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
})

func TestWriteKeyAuth(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		method     string
		key        string
		wantStatus int
	}{
		{"no keys configured", nil, http.MethodPost, "", http.StatusOK},
		{"read without key", []string{"k1"}, http.MethodGet, "", http.StatusOK},
		{"head without key", []string{"k1"}, http.MethodHead, "", http.StatusOK},
		{"write without key", []string{"k1"}, http.MethodPost, "", http.StatusUnauthorized},
		{"write with wrong key", []string{"k1"}, http.MethodPost, "nope", http.StatusForbidden},
		{"write with valid key", []string{"k1", "k2"}, http.MethodPost, "k2", http.StatusOK},
		{"key prefix is not enough", []string{"k1"}, http.MethodPost, "k", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/vendors", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()

			WriteKeyAuth(tt.keys)(okHandler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), "AUTH001")
			}
			if tt.wantStatus == http.StatusForbidden {
				assert.Contains(t, rec.Body.String(), "AUTH002")
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("down"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/vendors", nil)
	Logger(failing).ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "status=503")
	assert.Contains(t, out, "bytes=4")
	assert.Contains(t, out, "path=/api/vendors")
}

func TestLogger_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	Logger(okHandler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "status=200")
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name       string
		trusted    []string
		remoteAddr string
		realIP     string
		forwarded  string
		want       string
	}{
		{
			name:       "no trusted proxies ignores headers",
			remoteAddr: "10.0.0.1:1234",
			realIP:     "1.2.3.4",
			want:       "10.0.0.1:1234",
		},
		{
			name:       "trusted proxy uses X-Real-IP",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.0.0.1:1234",
			realIP:     "1.2.3.4",
			want:       "1.2.3.4",
		},
		{
			name:       "trusted single ip uses first forwarded entry",
			trusted:    []string{"10.0.0.1"},
			remoteAddr: "10.0.0.1:1234",
			forwarded:  "5.6.7.8, 10.0.0.1",
			want:       "5.6.7.8",
		},
		{
			name:       "untrusted proxy ignores headers",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "192.168.1.1:1234",
			realIP:     "1.2.3.4",
			want:       "192.168.1.1:1234",
		},
		{
			name:       "invalid header ip is ignored",
			trusted:    []string{"10.0.0.0/8"},
			remoteAddr: "10.0.0.1:1234",
			realIP:     "not-an-ip",
			want:       "10.0.0.1:1234",
		},
		{
			name:       "invalid trusted entry is skipped",
			trusted:    []string{"garbage", "10.0.0.0/8"},
			remoteAddr: "10.0.0.1:1234",
			realIP:     "1.2.3.4",
			want:       "1.2.3.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := TrustedRealIP(tt.trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}
