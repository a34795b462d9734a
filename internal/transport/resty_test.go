package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRestTransportSendReturnsStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") == "" {
			t.Error("expected Content-Type header to be forwarded")
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("--batchresponse--\r\n"))
	}))
	defer server.Close()

	transport := NewRestTransport(5 * time.Second)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/_api/$batch", strings.NewReader("body"))
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	req.Header.Set("Content-Type", "multipart/mixed; boundary=batch_x")

	resp, err := transport.Send(context.Background(), req)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d, want %d", resp.Status, http.StatusOK)
	}
	if resp.Body != "--batchresponse--\r\n" {
		t.Errorf("Body = %q, want batch trailer", resp.Body)
	}
}

func TestGraphTransportSendReturnsStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"responses":[]}`))
	}))
	defer server.Close()

	transport := NewGraphTransport(5 * time.Second)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/beta/$batch", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}

	resp, err := transport.Send(context.Background(), req)
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d, want %d", resp.Status, http.StatusOK)
	}
	if resp.Body != `{"responses":[]}` {
		t.Errorf("Body = %q, want empty responses envelope", resp.Body)
	}
}

func TestTransportSurfacesNon2xxWithoutError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	transport := NewRestTransport(5 * time.Second)
	req, _ := http.NewRequest(http.MethodPost, server.URL+"/_api/$batch", strings.NewReader("body"))

	resp, err := transport.Send(context.Background(), req)
	if err != nil {
		t.Fatalf("Send returned error for an HTTP-level failure: %v", err)
	}
	if resp.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want %d", resp.Status, http.StatusInternalServerError)
	}
}
