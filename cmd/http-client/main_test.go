package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
)

func TestBrandsCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/perfumes/brands", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["HMNS","Onix"]`))
	})
	mux.HandleFunc("/api/inter/brands", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["Creed","hmns"]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var stdout bytes.Buffer
	cmd := newRootCmd(slog.New(slog.NewTextHandler(io.Discard, nil)), &stdout)
	cmd.SetArgs([]string{"brands", "--api", srv.URL})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	var got dropdown
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if len(got.Brands) != 3 || got.Brands[0] != "Creed" || got.Perfumes != nil {
		t.Errorf("output = %+v", got)
	}
}

func TestCommandReportsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cmd := newRootCmd(slog.New(slog.NewTextHandler(io.Discard, nil)), io.Discard)
	cmd.SetArgs([]string{"perfumes", "--api", srv.URL})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error from a 503 upstream")
	}
}

func TestUnknownSubcommand(t *testing.T) {
	cmd := newRootCmd(slog.New(slog.NewTextHandler(io.Discard, nil)), io.Discard)
	cmd.SetArgs([]string{"colours"})
	if err := cmd.Execute(); err == nil {
		t.Error("unknown subcommand accepted")
	}
}
