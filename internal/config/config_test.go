package config

import (
	"strings"
	"testing"
	"time"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(env(map[string]string{"MONGO_URI": "mongodb://localhost:27017"}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.MongoDBName != "harumnesia" {
		t.Errorf("MongoDBName = %q", cfg.MongoDBName)
	}
	if cfg.MLServiceURL != "http://localhost:5001" {
		t.Errorf("MLServiceURL = %q", cfg.MLServiceURL)
	}
	if cfg.MLSimilarityTimeout != 10*time.Second || cfg.MLPreferenceTimeout != 15*time.Second {
		t.Errorf("timeouts = %v / %v", cfg.MLSimilarityTimeout, cfg.MLPreferenceTimeout)
	}
	if cfg.AppEnv != "development" || cfg.IsProduction() {
		t.Errorf("AppEnv = %q", cfg.AppEnv)
	}
	if cfg.UploadsDir != "uploads" {
		t.Errorf("UploadsDir = %q", cfg.UploadsDir)
	}
	if len(cfg.FrontendURLs) != 0 {
		t.Errorf("FrontendURLs = %v, want empty", cfg.FrontendURLs)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(env(map[string]string{
		"MONGO_URI":                "mongodb://db:27017",
		"MONGO_DB_NAME":            "perfumes",
		"PORT":                     "8080",
		"ML_SERVICE_URL":           "http://ml:5001/",
		"NODE_ENV":                 "production",
		"FRONTEND_URL":             "https://harumnesia.id/, http://localhost:3000",
		"ML_SIMILARITY_TIMEOUT_MS": "2500",
		"TRACE_STDOUT":             "true",
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" || cfg.MongoDBName != "perfumes" {
		t.Errorf("got port %q db %q", cfg.Port, cfg.MongoDBName)
	}
	if cfg.MLServiceURL != "http://ml:5001" {
		t.Errorf("MLServiceURL = %q, trailing slash should be trimmed", cfg.MLServiceURL)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction = false")
	}
	if cfg.MLSimilarityTimeout != 2500*time.Millisecond {
		t.Errorf("MLSimilarityTimeout = %v", cfg.MLSimilarityTimeout)
	}
	if !cfg.TraceStdout {
		t.Error("TraceStdout = false")
	}
	want := []string{"https://harumnesia.id", "http://localhost:3000"}
	if strings.Join(cfg.FrontendURLs, "|") != strings.Join(want, "|") {
		t.Errorf("FrontendURLs = %v, want %v", cfg.FrontendURLs, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing mongo uri", map[string]string{}, "MONGO_URI"},
		{"invalid port", map[string]string{"MONGO_URI": "mongodb://x", "PORT": "http"}, "PORT"},
		{"invalid timeout", map[string]string{"MONGO_URI": "mongodb://x", "ML_PREFERENCE_TIMEOUT_MS": "-1"}, "ML_PREFERENCE_TIMEOUT_MS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(env(tt.env))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %s", err, tt.want)
			}
		})
	}
}

func TestSafeConfigHidesMongoURI(t *testing.T) {
	cfg := &Config{MongoURI: "mongodb://user:secret@db:27017", AppName: "api"}
	for _, a := range StructAttrs("data", cfg.ToSafeConfig()) {
		if strings.Contains(a.Value.String(), "secret") {
			t.Fatalf("attribute %s leaks the mongo credentials", a.Key)
		}
	}
}

func TestStructAttrsKeys(t *testing.T) {
	attrs := StructAttrs("data", SafeConfig{AppName: "api", MLSimilarityTimeoutMs: 10})
	keys := map[string]string{}
	for _, a := range attrs {
		keys[a.Key] = a.Value.String()
	}
	if keys["data.app_name"] != "api" {
		t.Errorf("data.app_name = %q", keys["data.app_name"])
	}
	if keys["data.ml_similarity_timeout_ms"] != "10" {
		t.Errorf("data.ml_similarity_timeout_ms = %q", keys["data.ml_similarity_timeout_ms"])
	}
}
