package speech

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type attempt struct {
	Device    string
	RequestID string
}

// fakeService answers /transcribe per device and records every attempt.
type fakeService struct {
	mu       sync.Mutex
	attempts []attempt
	// respond maps device name to a handler for that attempt.
	respond map[string]func(w http.ResponseWriter)
}

func (s *fakeService) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transcribe" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req wireRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.attempts = append(s.attempts, attempt{Device: req.Device, RequestID: req.RequestID})
		respond := s.respond[req.Device]
		s.mu.Unlock()
		if respond == nil {
			http.Error(w, "unexpected device "+req.Device, http.StatusBadRequest)
			return
		}
		respond(w)
	})
}

func text(body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		json.NewEncoder(w).Encode(wireResponse{Text: body})
	}
}

func failure(status int, code string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(wireResponse{ErrorCode: code, Error: "device failed"})
	}
}

func newTestClient(t *testing.T, svc *fakeService) *Client {
	t.Helper()
	srv := httptest.NewServer(svc.handler())
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:        srv.URL,
		PrimaryDevice:  "cuda",
		FallbackDevice: "cpu",
		Timeout:        5 * time.Second,
	})
}

func TestTranscribe_PrimarySucceeds(t *testing.T) {
	svc := &fakeService{respond: map[string]func(http.ResponseWriter){
		"cuda": text("dentist tomorrow at nine"),
	}}
	c := newTestClient(t, svc)

	got, err := c.Transcribe(context.Background(), Request{Duration: 5 * time.Second, Language: "en"})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got != "dentist tomorrow at nine" {
		t.Fatalf("text = %q", got)
	}
	if len(svc.attempts) != 1 || svc.attempts[0].Device != "cuda" {
		t.Fatalf("attempts = %+v, want one on cuda", svc.attempts)
	}
	if svc.attempts[0].RequestID == "" {
		t.Fatal("attempt carries no correlation ID")
	}
}

func TestTranscribe_FallsBackOnResourceExhaustion(t *testing.T) {
	svc := &fakeService{respond: map[string]func(http.ResponseWriter){
		"cuda": failure(http.StatusInsufficientStorage, CodeOutOfMemory),
		"cpu":  text("team offsite friday"),
	}}
	c := newTestClient(t, svc)

	got, err := c.Transcribe(context.Background(), Request{Duration: 5 * time.Second})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got != "team offsite friday" {
		t.Fatalf("text = %q", got)
	}
	if len(svc.attempts) != 2 {
		t.Fatalf("attempts = %+v, want cuda then cpu", svc.attempts)
	}
	if svc.attempts[0].Device != "cuda" || svc.attempts[1].Device != "cpu" {
		t.Fatalf("device order = %+v", svc.attempts)
	}
	if svc.attempts[0].RequestID != svc.attempts[1].RequestID {
		t.Fatal("both attempts must share one correlation ID")
	}
}

func TestTranscribe_NoFallbackOnOrdinaryFailure(t *testing.T) {
	svc := &fakeService{respond: map[string]func(http.ResponseWriter){
		"cuda": failure(http.StatusInternalServerError, ""),
	}}
	c := newTestClient(t, svc)

	_, err := c.Transcribe(context.Background(), Request{Duration: 5 * time.Second})
	var derr *DeviceError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DeviceError, got %v", err)
	}
	if derr.Device != "cuda" {
		t.Fatalf("failed device = %q", derr.Device)
	}
	if len(svc.attempts) != 1 {
		t.Fatalf("attempts = %+v, ordinary failures must not trigger the fallback", svc.attempts)
	}
}

func TestTranscribe_NoSpeech(t *testing.T) {
	svc := &fakeService{respond: map[string]func(http.ResponseWriter){
		"cuda": text(""),
	}}
	c := newTestClient(t, svc)

	_, err := c.Transcribe(context.Background(), Request{Duration: 5 * time.Second})
	if !errors.Is(err, ErrNoSpeech) {
		t.Fatalf("expected ErrNoSpeech, got %v", err)
	}
	if len(svc.attempts) != 1 {
		t.Fatalf("attempts = %+v, silence is not a device failure", svc.attempts)
	}
}

func TestTranscribe_BothDevicesFail(t *testing.T) {
	svc := &fakeService{respond: map[string]func(http.ResponseWriter){
		"cuda": failure(http.StatusNotImplemented, CodeDeviceUnavailable),
		"cpu":  failure(http.StatusInternalServerError, ""),
	}}
	c := newTestClient(t, svc)

	_, err := c.Transcribe(context.Background(), Request{Duration: 5 * time.Second})
	var derr *DeviceError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DeviceError, got %v", err)
	}
	if derr.Device != "cpu" {
		t.Fatalf("final error from %q, want the fallback device", derr.Device)
	}
}
