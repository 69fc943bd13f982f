package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"capcorpus/internal/config"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	server     *httptest.Server
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("YOUTUBE_API_KEY", "")

	server := httptest.NewServer(fakeYouTube(t))
	t.Cleanup(server.Close)

	configPath := filepath.Join(base, "capcorpus.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[youtube]
api_key = "test-key"
api_endpoint = %q
channel_name = "Test Channel"
timedtext_base_url = %q
save_interval = 1

[labeling]
workers = 2

[logging]
level = "error"
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		server.URL,
		server.URL+"/timedtext",
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{baseDir: base, configPath: configPath, server: server}
}

func (e *cliTestEnv) config(t *testing.T) *config.Config {
	t.Helper()
	cfg, _, _, err := config.Load(e.configPath)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

const (
	autogenJSON3 = `{"events":[
		{"tStartMs":0,"dDurationMs":2000,"segs":[{"utf8":"hello world"}]},
		{"tStartMs":2000,"dDurationMs":2000,"segs":[{"utf8":"this is a test"}]}]}`
	manualJSON3 = `{"events":[
		{"tStartMs":0,"dDurationMs":2000,"segs":[{"utf8":"Hello world,"}]},
		{"tStartMs":2000,"dDurationMs":2000,"segs":[{"utf8":"this is a test."}]}]}`
)

// fakeYouTube serves one channel with one playlist of two videos. Only vid1
// has both caption tracks.
func fakeYouTube(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case strings.HasSuffix(r.URL.Path, "/search"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"items":[{"id":{"kind":"youtube#channel","channelId":"UC1"},"snippet":{"title":"Test Channel"}}]}`))
		case strings.HasSuffix(r.URL.Path, "/playlists"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"pageInfo":{"totalResults":1},"items":[{"id":"PL1","snippet":{"title":"Lessons"}}]}`))
		case strings.HasSuffix(r.URL.Path, "/playlistItems"):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"pageInfo":{"totalResults":2},"items":[
				{"snippet":{"title":"Lesson 1","resourceId":{"kind":"youtube#video","videoId":"vid1"}}},
				{"snippet":{"title":"Lesson 2","resourceId":{"kind":"youtube#video","videoId":"vid2"}}}]}`))
		case strings.HasSuffix(r.URL.Path, "/timedtext") && q.Get("type") == "list":
			tracks := `<track id="0" name="" lang_code="en" kind="asr"/>`
			if q.Get("v") == "vid1" {
				tracks += `<track id="1" name="" lang_code="en" lang_default="true"/>`
			}
			_, _ = w.Write([]byte(`<transcript_list docid="1">` + tracks + `</transcript_list>`))
		case strings.HasSuffix(r.URL.Path, "/timedtext"):
			if q.Get("kind") == "asr" {
				_, _ = w.Write([]byte(autogenJSON3))
				return
			}
			_, _ = w.Write([]byte(manualJSON3))
		default:
			t.Errorf("unexpected request %s", r.URL.String())
			http.NotFound(w, r)
		}
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
