package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	contractx "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/contract"
	storex "github.com/tanpawarit/Courier-Multi-Agent-Support/agent/store"
)

func TestPublishEscalation(t *testing.T) {
	t.Parallel()

	var got contractx.Escalation
	var auth, contentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client, err := NewClient(Config{URL: srv.URL, Token: "secret"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	e := contractx.Escalation{
		TicketID:   42,
		CustomerID: 2,
		Priority:   storex.PriorityHigh,
		Reason:     "charged twice",
	}
	if err := client.PublishEscalation(context.Background(), e); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if got != e {
		t.Fatalf("payload mismatch:\nwant %+v\ngot  %+v", e, got)
	}
	if auth != "Bearer secret" {
		t.Fatalf("unexpected authorization header: %q", auth)
	}
	if contentType != "application/json" {
		t.Fatalf("unexpected content type: %q", contentType)
	}
}

func TestPublishEscalationNon2xx(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewClient(Config{URL: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if err := client.PublishEscalation(context.Background(), contractx.Escalation{TicketID: 1}); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error for missing url")
	}
	if _, err := NewClient(Config{URL: "::not-a-url"}); err == nil {
		t.Fatal("expected error for malformed url")
	}
}
