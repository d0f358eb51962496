package main

import (
	"bytes"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Blanks every variable run reads from the environment. Empty values are
// ignored by the loaders, so only the defaults and flags apply.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"MAILREPORT_CONFIG",
		"WHM_HOST",
		"WHM_PORT",
		"WHM_USER",
		"WHM_TOKEN",
		"WHM_VERIFY_SSL",
		"WHM_TIMEOUT",
		"WHM_DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestRun_UsageExitCodes(t *testing.T) {
	tests := []struct {
		name       string
		argv       []string
		want       int
		wantStdout string
		wantStderr string
	}{
		{name: "help", argv: []string{"--help"}, want: 0, wantStdout: "Usage: mailreport"},
		{name: "version", argv: []string{"--version"}, want: 0, wantStdout: "mailreport dev"},
		{name: "unknown flag", argv: []string{"--bogus"}, want: 2, wantStderr: "error:"},
		{name: "top is not a number", argv: []string{"--top", "many"}, want: 2, wantStderr: "error:"},
		{name: "negative top", argv: []string{"--top=-1"}, want: 2, wantStderr: "--top must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			var stdout, stderr bytes.Buffer

			got := run(tt.argv, &stdout, &stderr)
			if got != tt.want {
				t.Fatalf("Expected exit code %d, got %d\nstdout: %s\nstderr: %s", tt.want, got, stdout.String(), stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("Expected stdout to contain %q, got %q", tt.wantStdout, stdout.String())
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("Expected stderr to contain %q, got %q", tt.wantStderr, stderr.String())
			}
		})
	}
}

func TestRun_MissingConfiguration(t *testing.T) {
	clearEnv(t)
	var stdout, stderr bytes.Buffer

	if got := run([]string{"--no-color"}, &stdout, &stderr); got != 1 {
		t.Fatalf("Expected exit code 1, got %d", got)
	}
	if !strings.Contains(stderr.String(), "error: host is not configured") {
		t.Errorf("Expected a configuration error, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected no report, got %q", stdout.String())
	}
}

func TestRun_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	var stdout, stderr bytes.Buffer

	path := filepath.Join(t.TempDir(), "missing.yaml")
	if got := run([]string{"--no-color", "-c", path}, &stdout, &stderr); got != 1 {
		t.Fatalf("Expected exit code 1, got %d", got)
	}
	if !strings.Contains(stderr.String(), "error:") {
		t.Errorf("Expected an error line, got %q", stderr.String())
	}
}

func TestRun_NetworkFailure(t *testing.T) {
	clearEnv(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	t.Setenv("WHM_HOST", "127.0.0.1")
	t.Setenv("WHM_PORT", strconv.Itoa(port))
	t.Setenv("WHM_TOKEN", "test-token")
	t.Setenv("WHM_TIMEOUT", "2s")

	var stdout, stderr bytes.Buffer
	if got := run([]string{"--no-color"}, &stdout, &stderr); got != 1 {
		t.Fatalf("Expected exit code 1, got %d", got)
	}
	if !strings.Contains(stderr.String(), "error: could not list accounts") {
		t.Errorf("Expected the listing error, got %q", stderr.String())
	}
}

func TestRun_Report(t *testing.T) {
	clearEnv(t)

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/json-api/listaccts":
			w.Write([]byte(`{"data":{"acct":[{"user":"bob"}]}}`))
		case "/json-api/cpanel":
			w.Write([]byte(`{"result":{"data":[
				{"email":"small@example.com","domain":"example.com","_diskused":"500"},
				{"email":"big@example.com","domain":"example.com","_diskused":2097152}
			]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	parsed, _ := url.Parse(server.URL)
	host, port, _ := net.SplitHostPort(parsed.Host)

	config := filepath.Join(t.TempDir(), "whm.yaml")
	content := "host: " + host + "\nport: " + port + "\ntoken: test-token\nverify_ssl: false\n"
	if err := os.WriteFile(config, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	output := filepath.Join(t.TempDir(), "report.csv")

	var stdout, stderr bytes.Buffer
	got := run([]string{"--no-color", "-c", config, "-o", output}, &stdout, &stderr)
	if got != 0 {
		t.Fatalf("Expected exit code 0, got %d\nstderr: %s", got, stderr.String())
	}

	for _, want := range []string{
		"-------- Account: bob (Total: 2.00 MB) --------",
		"Server: " + host,
		"Total Mailboxes Processed: 2",
	} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("Expected report to contain %q\n%s", want, stdout.String())
		}
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "cPanel_User,Email,Domain,Size_Bytes,Size_Human\nbob,small@example.com") {
		t.Errorf("Unexpected export\n%s", data)
	}
}
