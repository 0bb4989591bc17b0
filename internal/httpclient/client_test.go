package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientPost(t *testing.T) {
	var gotMethod, gotContentType, gotBody, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotUA = r.Header.Get("User-Agent")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := New(nil)
	resp, err := client.Post(context.Background(), srv.URL, "application/json", strings.NewReader(`{"a":1}`))
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotBody != `{"a":1}` {
		t.Errorf("body = %q", gotBody)
	}
	if gotUA != "ytresearch/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("Body = %q", resp.Body)
	}
}

func TestClientNonSuccessStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		wantOK bool
	}{
		{"200", http.StatusOK, true},
		{"204", http.StatusNoContent, true},
		{"301", http.StatusMovedPermanently, false},
		{"404", http.StatusNotFound, false},
		{"500", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("response detail"))
			}))
			defer srv.Close()

			client := New(nil)
			_, err := client.Do(context.Background(), http.MethodGet, srv.URL, nil, nil)

			if tt.wantOK {
				if err != nil {
					t.Errorf("Do() error = %v, want nil", err)
				}
				return
			}

			var herr *HTTPError
			if !errors.As(err, &herr) {
				t.Fatalf("Do() = %v, want *HTTPError", err)
			}
			if herr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", herr.StatusCode, tt.status)
			}
			if !strings.Contains(string(herr.Body), "response detail") {
				t.Errorf("Body = %q, want the response body captured", herr.Body)
			}
		})
	}
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := New(&Config{Timeout: 20 * time.Millisecond, Transport: DefaultTransportConfig()})
	_, err := client.Do(context.Background(), http.MethodGet, srv.URL, nil, nil)
	if err == nil {
		t.Fatal("Do() error = nil, want timeout")
	}
}

func TestClientContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New(nil)
	_, err := client.Do(ctx, http.MethodGet, srv.URL, nil, nil)
	if err == nil {
		t.Fatal("Do() error = nil, want context error")
	}
}

func TestClientCustomHeaders(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Custom")
	}))
	defer srv.Close()

	client := New(nil)
	if _, err := client.Do(context.Background(), http.MethodGet, srv.URL, nil, map[string]string{"X-Custom": "value"}); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if got != "value" {
		t.Errorf("X-Custom = %q, want %q", got, "value")
	}
}

func TestHTTPErrorMessage(t *testing.T) {
	err := &HTTPError{StatusCode: 502, Body: []byte("bad gateway")}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("Error() = %q, want the status code included", err.Error())
	}
}
