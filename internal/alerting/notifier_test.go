package alerting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func testNote() Notification {
	return Notification{
		Item:        "Rolled oats",
		Store:       "Corner Market",
		Unit:        "oz",
		UnitPrice:   decimal.RequireFromString("0.24938"),
		PreviousLow: decimal.RequireFromString("0.31188"),
		RockBottom:  decimal.RequireFromString("0.24938"),
		Timestamp:   time.Now(),
	}
}

func TestTelegramNotifierSuccess(t *testing.T) {
	received := make(map[string]string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "sendMessage") {
			t.Fatalf("path should contain sendMessage, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	notifier := NewTelegramNotifier("token", "chat", srv.URL, time.Second, testLogger())

	if err := notifier.Notify(context.Background(), testNote()); err != nil {
		t.Fatalf("Notify should succeed: %v", err)
	}

	if received["chat_id"] != "chat" {
		t.Fatalf("wrong chat_id: %#v", received)
	}
	if !strings.Contains(received["text"], "Rolled oats") {
		t.Fatalf("message should mention the item: %q", received["text"])
	}
}

func TestTelegramNotifierError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false})
	}))
	defer srv.Close()

	notifier := NewTelegramNotifier("token", "chat", srv.URL, time.Second, testLogger())

	if err := notifier.Notify(context.Background(), testNote()); err == nil {
		t.Fatal("ok=false must surface as an error")
	}
}

func TestTelegramNotifierHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	notifier := NewTelegramNotifier("token", "chat", srv.URL, time.Second, testLogger())

	if err := notifier.Notify(context.Background(), testNote()); err == nil {
		t.Fatal("non-2xx status must surface as an error")
	}
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
