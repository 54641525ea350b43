package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"casedesk/internal/bridge"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// isolate keeps tests away from ~/.casedesk and any real API key.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CASEDESK_CONFIG_DIR", dir)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("CASEDESK_SEED", "")
	t.Setenv("CASEDESK_FORMAT", "")
	t.Setenv("CASEDESK_LOG_FILE", "")
	return dir
}

func mustRunJSON(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: casedesk %v\nerr: %v\nstderr:\n%s", args, err, string(stderr))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout: %v\nstdout:\n%s", err, string(stdout))
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected data key; got %v", env)
	}
	return env
}

func TestTree_DefaultSeed(t *testing.T) {
	isolate(t)
	env := mustRunJSON(t, "tree")
	nodes, _ := env["data"].([]any)
	if len(nodes) != 3 {
		t.Fatalf("expected 3 top-level items, got %d", len(nodes))
	}
	first, _ := nodes[0].(map[string]any)
	if first["name"] != "Project Alpha Case" || first["type"] != "SMART_FOLDER" {
		t.Fatalf("unexpected first node %v", first)
	}
	c, _ := first["case"].(map[string]any)
	if c["confidenceScore"] != float64(65) {
		t.Fatalf("expected seeded confidence, got %v", c)
	}
	notes, _ := nodes[1].(map[string]any)
	children, _ := notes["children"].([]any)
	if len(children) != 1 {
		t.Fatalf("expected nested note under Personal Notes, got %v", notes["children"])
	}
}

func TestTree_EmptyDesktop(t *testing.T) {
	isolate(t)
	env := mustRunJSON(t, "--empty", "tree")
	if nodes, _ := env["data"].([]any); len(nodes) != 0 {
		t.Fatalf("expected no items, got %v", env["data"])
	}
}

func TestTree_SeedFileAsYAML(t *testing.T) {
	dir := isolate(t)
	seed := filepath.Join(dir, "desk.yaml")
	body := `items:
  - name: Evidence
    type: FOLDER
    children:
      - name: Receipt.txt
        type: FILE
        content: paid in cash
`
	if err := os.WriteFile(seed, []byte(body), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	stdout, stderr, err := runCLI(t, []string{"--seed", seed, "--format", "yaml", "tree"})
	if err != nil {
		t.Fatalf("tree failed: %v\n%s", err, stderr)
	}
	out := string(stdout)
	if !strings.Contains(out, "name: Evidence") || !strings.Contains(out, "name: Receipt.txt") {
		t.Fatalf("unexpected yaml output:\n%s", out)
	}
}

func TestTree_MissingSeedFails(t *testing.T) {
	dir := isolate(t)
	_, stderr, err := runCLI(t, []string{"--seed", filepath.Join(dir, "nope.yaml"), "tree"})
	if err == nil {
		t.Fatalf("expected error for missing seed")
	}
	if !strings.Contains(string(stderr), "load seed") {
		t.Fatalf("expected seed error on stderr, got %q", stderr)
	}
}

func TestUnknownFormatFails(t *testing.T) {
	isolate(t)
	if _, _, err := runCLI(t, []string{"--format", "edn", "tree"}); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestAnalyze_IntoNewCaseOffline(t *testing.T) {
	dir := isolate(t)
	a := filepath.Join(dir, "ledger.csv")
	b := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(a, []byte("date,amount\n2024-01-01,900\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	if err := os.WriteFile(b, png, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	env := mustRunJSON(t, "analyze", "--case", "Heist", a, b)
	items, _ := env["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 analyzed items, got %v", env["data"])
	}
	var parent string
	for i, raw := range items {
		it, _ := raw.(map[string]any)
		if it["analysisStatus"] != "COMPLETED" || it["aiSummary"] != bridge.AnalysisMissingKey {
			t.Fatalf("unexpected analysis for item %d: %v", i, it)
		}
		p, _ := it["parentId"].(string)
		if p == "" {
			t.Fatalf("expected item %d filed under the case", i)
		}
		if parent != "" && p != parent {
			t.Fatalf("expected items in the same case")
		}
		parent = p
	}
	img, _ := items[1].(map[string]any)
	if content, _ := img["content"].(string); !strings.HasPrefix(content, "data:image/png;base64,") {
		t.Fatalf("expected png data uri, got %q", content)
	}
}

func TestAnalyze_MissingFileFails(t *testing.T) {
	dir := isolate(t)
	if _, _, err := runCLI(t, []string{"analyze", filepath.Join(dir, "missing.txt")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestConfig_PathInitShow(t *testing.T) {
	dir := isolate(t)

	env := mustRunJSON(t, "config", "path")
	data, _ := env["data"].(map[string]any)
	if data["path"] != filepath.Join(dir, "config.json") {
		t.Fatalf("unexpected config path %v", data["path"])
	}

	mustRunJSON(t, "config", "init")
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("expected config written: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "init"}); err == nil {
		t.Fatalf("expected second init to refuse overwriting")
	}

	t.Setenv("GEMINI_API_KEY", "k")
	env = mustRunJSON(t, "config", "show")
	data, _ = env["data"].(map[string]any)
	if data["apiKeySet"] != true {
		t.Fatalf("expected api key detected, got %v", data)
	}
	ai, _ := data["ai"].(map[string]any)
	if ai["apiKeyEnv"] != "GEMINI_API_KEY" {
		t.Fatalf("unexpected ai settings %v", ai)
	}
}

func TestLogFileReceivesJSON(t *testing.T) {
	dir := isolate(t)
	logPath := filepath.Join(dir, "logs", "casedesk.log")
	mustRunJSON(t, "--log-file", logPath, "--log-level", "debug", "--empty", "tree")
	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("expected log file created: %v", err)
	}
}
