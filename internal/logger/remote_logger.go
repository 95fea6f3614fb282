package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"
)

var (
	httpClient = &http.Client{Timeout: 5 * time.Second}
	remoteURI  atomic.Value
)

// ConfigureRemote sets the Loki push endpoint. An empty uri disables shipping.
func ConfigureRemote(uri string) {
	remoteURI.Store(uri)
}

func remoteTarget() string {
	if v, ok := remoteURI.Load().(string); ok {
		return v
	}
	return ""
}

// sendLog ships one entry in the background; failures only reach stderr.
func sendLog(level, message string, attrs []slog.Attr) {
	uri := remoteTarget()
	if uri == "" {
		return
	}

	go func() {
		jsonData, err := json.Marshal(buildLogEntry(level, message, attrs))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal remote log entry: %v\n", err)
			return
		}

		req, err := http.NewRequest(http.MethodPost, uri, bytes.NewReader(jsonData))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create request for remote log: %v\n", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := httpClient.Do(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to send to remote log: %v\n", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			fmt.Fprintf(os.Stderr, "Remote log returned error status: %d\n", resp.StatusCode)
		}
	}()
}
