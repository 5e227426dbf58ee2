package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		origins    []string
		origin     string
		method     string
		preflight  bool
		wantAllow  string
		wantStatus int
	}{
		{
			name:       "wildcard echoes origin",
			origins:    []string{"*"},
			origin:     "https://app.example.com",
			method:     http.MethodGet,
			wantAllow:  "https://app.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "listed origin allowed",
			origins:    []string{"https://app.example.com"},
			origin:     "https://app.example.com",
			method:     http.MethodGet,
			wantAllow:  "https://app.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unlisted origin gets no headers",
			origins:    []string{"https://app.example.com"},
			origin:     "https://evil.example.com",
			method:     http.MethodGet,
			wantAllow:  "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "no origin header passes through",
			origins:    []string{"*"},
			origin:     "",
			method:     http.MethodGet,
			wantAllow:  "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "preflight short-circuits",
			origins:    []string{"*"},
			origin:     "https://app.example.com",
			method:     http.MethodOptions,
			preflight:  true,
			wantAllow:  "https://app.example.com",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/resources", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", "POST")
			}

			rec := httptest.NewRecorder()
			CORS(tt.origins)(okHandler).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}
