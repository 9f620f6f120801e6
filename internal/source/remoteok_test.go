package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amberin/jobradar/internal/model"
)

func TestRemoteOKFetchSuccess(t *testing.T) {
	payload := `[
		{"legal": "API terms of use apply"},
		{
			"id": 12345,
			"position": "Senior Go Engineer",
			"company": "Acme",
			"description": "<p>Build &amp; run services</p>",
			"url": "https://remoteok.com/remote-jobs/12345",
			"epoch": 1700000000
		},
		{
			"id": "67890",
			"position": "Backend Engineer",
			"company": "Globex",
			"url": "https://remoteok.com/remote-jobs/67890",
			"date": "2026-02-10T09:00:00Z"
		}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	adapter := NewRemoteOKAdapter(srv.Client())
	adapter.baseURL = srv.URL

	jobs, err := adapter.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs (legal notice dropped), got %d", len(jobs))
	}

	j := jobs[0]
	if j.ID != "remoteok-12345" {
		t.Errorf("expected ID remoteok-12345, got %s", j.ID)
	}
	if j.Title != "Senior Go Engineer" {
		t.Errorf("unexpected title: %s", j.Title)
	}
	if j.Company != "Acme" {
		t.Errorf("unexpected company: %s", j.Company)
	}
	if j.Description != "Build & run services" {
		t.Errorf("expected HTML stripped description, got %q", j.Description)
	}
	if j.Source != model.SourceRemoteOK {
		t.Errorf("unexpected source: %s", j.Source)
	}
}

func TestRemoteOKNon200IsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	adapter := NewRemoteOKAdapter(srv.Client())
	adapter.baseURL = srv.URL

	_, err := adapter.FetchJobs(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var terr *model.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
	if terr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", terr.StatusCode)
	}
	if terr.RetryAfter != 30*time.Second {
		t.Errorf("expected RetryAfter 30s, got %v", terr.RetryAfter)
	}
}

func TestRemoteOKMalformedPayloadIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"this is": "not an array"`))
	}))
	defer srv.Close()

	adapter := NewRemoteOKAdapter(srv.Client())
	adapter.baseURL = srv.URL

	_, err := adapter.FetchJobs(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var perr *model.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %T: %v", err, err)
	}
}

func TestRemoteOKEmptyBoard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	adapter := NewRemoteOKAdapter(srv.Client())
	adapter.baseURL = srv.URL

	jobs, err := adapter.FetchJobs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("expected no jobs, got %d", len(jobs))
	}
}
