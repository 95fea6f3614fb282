package config

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"harumnesia/internal/logger"

	"github.com/joho/godotenv"
)

const (
	defaultAppName     = "harumnesia-api"
	defaultPort        = "5000"
	defaultDBName      = "harumnesia"
	defaultMLService   = "http://localhost:5001"
	defaultUploadsDir  = "uploads"
	defaultEnvironment = "development"
)

type Config struct {
	AppName                string
	AppEnv                 string
	Port                   string
	MongoURI               string
	MongoDBName            string
	FrontendURLs           []string
	MLServiceURL           string
	MLSimilarityTimeout    time.Duration
	MLPreferenceTimeout    time.Duration
	UploadsDir             string
	RemoteLogHttpURI       string
	RemoteTraceRpcURI      string
	RemoteProfilingHttpURI string
	TraceStdout            bool
}

// SafeConfig is what gets logged: no credentials.
type SafeConfig struct {
	AppName                string `json:"app_name"`
	AppEnv                 string `json:"app_env"`
	Port                   string `json:"port"`
	MongoDBName            string `json:"mongo_db_name"`
	FrontendURLs           string `json:"frontend_urls"`
	MLServiceURL           string `json:"ml_service_url"`
	MLSimilarityTimeoutMs  int64  `json:"ml_similarity_timeout_ms"`
	MLPreferenceTimeoutMs  int64  `json:"ml_preference_timeout_ms"`
	UploadsDir             string `json:"uploads_dir"`
	RemoteLogHttpURI       string `json:"remote_log_http_uri"`
	RemoteTraceRpcURI      string `json:"remote_trace_rpc_uri"`
	RemoteProfilingHttpURI string `json:"remote_profiling_http_uri"`
	TraceStdout            bool   `json:"trace_stdout"`
}

func (c *Config) ToSafeConfig() SafeConfig {
	return SafeConfig{
		AppName:                c.AppName,
		AppEnv:                 c.AppEnv,
		Port:                   c.Port,
		MongoDBName:            c.MongoDBName,
		FrontendURLs:           strings.Join(c.FrontendURLs, ","),
		MLServiceURL:           c.MLServiceURL,
		MLSimilarityTimeoutMs:  c.MLSimilarityTimeout.Milliseconds(),
		MLPreferenceTimeoutMs:  c.MLPreferenceTimeout.Milliseconds(),
		UploadsDir:             c.UploadsDir,
		RemoteLogHttpURI:       c.RemoteLogHttpURI,
		RemoteTraceRpcURI:      c.RemoteTraceRpcURI,
		RemoteProfilingHttpURI: c.RemoteProfilingHttpURI,
		TraceStdout:            c.TraceStdout,
	}
}

// IsProduction reports whether NODE_ENV selects production behaviour.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func toSnake(s string) string {
	var out strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && s[i-1] != '_' {
				out.WriteRune('_')
			}
			out.WriteRune(unicode.ToLower(r))
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}

// StructAttrs("data", cfg) ➜ []slog.Attr{ slog.String("data.port", "5000"), ... }
func StructAttrs(prefix string, s any) []slog.Attr {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	t := v.Type()

	attrs := make([]slog.Attr, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := prefix + "." + jsonKey(f)

		switch v.Field(i).Kind() {
		case reflect.String:
			attrs = append(attrs, slog.String(key, v.Field(i).String()))
		case reflect.Int, reflect.Int64, reflect.Int32:
			attrs = append(attrs, slog.Int64(key, v.Field(i).Int()))
		default:
			attrs = append(attrs, slog.Any(key, v.Field(i).Interface()))
		}
	}
	return attrs
}

func jsonKey(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		return strings.Split(tag, ",")[0]
	}
	return toSnake(f.Name)
}

func getOr(getenv func(string) string, key, fallback string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationMs(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	val := strings.TrimSpace(getenv(key))
	if val == "" {
		return fallback, nil
	}
	num, err := strconv.ParseInt(val, 10, 64)
	if err != nil || num <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive number of milliseconds", key, val)
	}
	return time.Duration(num) * time.Millisecond, nil
}

// SplitOrigins parses the comma-separated FRONTEND_URL allowlist.
func SplitOrigins(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		origin := strings.TrimRight(strings.TrimSpace(part), "/")
		if origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

// Load builds a Config from the given environment lookup.
func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		AppName:                getOr(getenv, "APP_NAME", defaultAppName),
		AppEnv:                 getOr(getenv, "NODE_ENV", defaultEnvironment),
		Port:                   getOr(getenv, "PORT", defaultPort),
		MongoURI:               strings.TrimSpace(getenv("MONGO_URI")),
		MongoDBName:            getOr(getenv, "MONGO_DB_NAME", defaultDBName),
		FrontendURLs:           SplitOrigins(getenv("FRONTEND_URL")),
		MLServiceURL:           strings.TrimRight(getOr(getenv, "ML_SERVICE_URL", defaultMLService), "/"),
		UploadsDir:             getOr(getenv, "UPLOADS_DIR", defaultUploadsDir),
		RemoteLogHttpURI:       strings.TrimSpace(getenv("REMOTE_LOG_HTTP_URI")),
		RemoteTraceRpcURI:      strings.TrimSpace(getenv("REMOTE_TRACE_RPC_URI")),
		RemoteProfilingHttpURI: strings.TrimSpace(getenv("REMOTE_PROFILING_HTTP_URI")),
	}
	cfg.TraceStdout, _ = strconv.ParseBool(getenv("TRACE_STDOUT"))

	var err error
	if cfg.MLSimilarityTimeout, err = durationMs(getenv, "ML_SIMILARITY_TIMEOUT_MS", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.MLPreferenceTimeout, err = durationMs(getenv, "ML_PREFERENCE_TIMEOUT_MS", 15*time.Second); err != nil {
		return nil, err
	}

	var missing []string
	if cfg.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if _, perr := strconv.Atoi(cfg.Port); perr != nil {
		return nil, fmt.Errorf("invalid PORT %q", cfg.Port)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

var (
	configInstance *Config
	configOnce     sync.Once
)

func Instance() *Config {
	configOnce.Do(func() {
		log := logger.Instance()

		// Load .env file (optional)
		if err := godotenv.Load(); err != nil {
			log.Warn("No .env file found, using system environment variables")
		}

		cfg, err := Load(os.Getenv)
		if err != nil {
			log.Error("Invalid configuration", slog.String("error", err.Error()))
			os.Exit(1)
		}

		if cfg.RemoteLogHttpURI == "" {
			log.Warn("Missing REMOTE_LOG_HTTP_URI will skip sending log")
		}
		if cfg.RemoteTraceRpcURI == "" {
			log.Warn("Missing REMOTE_TRACE_RPC_URI will skip sending trace")
		}
		if cfg.RemoteProfilingHttpURI == "" {
			log.Warn("Missing REMOTE_PROFILING_HTTP_URI will skip sending profiling")
		}
		if len(cfg.FrontendURLs) == 0 {
			log.Warn("FRONTEND_URL is empty; CORS will only allow localhost origins")
		}

		log.Info("Configuration loaded successfully", logger.Args(StructAttrs("data", cfg.ToSafeConfig()))...)
		configInstance = cfg
	})

	return configInstance
}
