package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the CLI the way main does, with stdout and the
// usage/error stream captured. Tests that call it must not run in
// parallel because stdout is a package variable.
func execute(t *testing.T, args ...string) (out, errOut string, err error) {
	t.Helper()
	clearEnv(t)

	var outBuf, errBuf bytes.Buffer
	old := stdout
	stdout = &outBuf
	defer func() { stdout = old }()

	root := newRootCmd()
	root.SetOut(&errBuf)
	root.SetErr(&errBuf)
	root.SetArgs(rewriteHelpShorthand(args))
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DOCDEX_OUT", "DOCDEX_VERBOSE", "DOCDEX_WORKERS", "DOCDEX_EXCLUDE",
		"DOCDEX_ADDR", "DOCDEX_API_KEY", "DOCDEX_WATCH", "DOCDEX_DEBOUNCE",
		"DOCDEX_STATS_WINDOW",
	} {
		t.Setenv(key, "")
	}
}

func seedCmdTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"meta/template.md":      "# Design Template\n",
		"accepted/2020/cbor.md": "# CBOR\n\n**Owner**: alice\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRootRequiresDirectory(t *testing.T) {
	_, _, err := execute(t)
	if err == nil {
		t.Fatal("expected an error without arguments")
	}
	if err.Error() != "must specify a directory" {
		t.Errorf("error = %q, want %q", err.Error(), "must specify a directory")
	}
}

func TestRootMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, _, err := execute(t, missing)
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
	if !strings.Contains(err.Error(), "does not exist") || !strings.Contains(err.Error(), missing) {
		t.Errorf("error = %q, want mention of missing directory", err.Error())
	}
}

func TestRootRejectsFileArgument(t *testing.T) {
	file := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(file, []byte("# X\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := execute(t, file)
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("error = %v, want does-not-exist for non-directory", err)
	}
}

func TestRootUnrecognizedArguments(t *testing.T) {
	dir := seedCmdTree(t)
	_, errOut, err := execute(t, dir, "alpha", "beta")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(errOut, "error: unrecognized argument alpha") {
		t.Errorf("stderr missing first extra argument:\n%s", errOut)
	}
	if !strings.Contains(errOut, "error: unrecognized argument beta") {
		t.Errorf("stderr missing second extra argument:\n%s", errOut)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "INDEX.md")); !os.IsNotExist(statErr) {
		t.Error("index must not be written when arguments are rejected")
	}
}

func TestRootGeneratesIndex(t *testing.T) {
	dir := seedCmdTree(t)
	_, _, err := execute(t, dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "INDEX.md"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	for _, want := range []string{
		"# Design Index",
		"[Design Template](meta/template.md)",
		"[CBOR](accepted/2020/cbor.md)",
		"alice",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("index missing %q:\n%s", want, data)
		}
	}
}

func TestRootOutFlag(t *testing.T) {
	dir := seedCmdTree(t)
	out := filepath.Join(t.TempDir(), "generated", "INDEX.md")

	_, _, err := execute(t, dir, "--out", out)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("custom output not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "INDEX.md")); !os.IsNotExist(err) {
		t.Error("default output must not be written when --out is set")
	}
}

func TestRootHelpOnErrStream(t *testing.T) {
	out, errOut, err := execute(t, "-?")
	if err != nil {
		t.Fatalf("help must not fail: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should stay clean, got %q", out)
	}
	for _, want := range []string{"docdex <directory>", "--out", "--exclude"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("usage missing %q:\n%s", want, errOut)
		}
	}
}

func TestRootConfigFileApplied(t *testing.T) {
	dir := seedCmdTree(t)
	yml := "out: generated/IDX.md\n"
	if err := os.WriteFile(filepath.Join(dir, "docdex.yml"), []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "generated", "IDX.md")); err != nil {
		t.Errorf("config file output path not honored: %v", err)
	}
}

func TestRootFlagOverridesConfigFile(t *testing.T) {
	dir := seedCmdTree(t)
	yml := "out: generated/IDX.md\n"
	if err := os.WriteFile(filepath.Join(dir, "docdex.yml"), []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "flag.md")

	_, _, err := execute(t, dir, "--out", out)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("flag output not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "generated", "IDX.md")); !os.IsNotExist(err) {
		t.Error("config file output must lose to the flag")
	}
}

func TestCheckReportsProblems(t *testing.T) {
	dir := seedCmdTree(t)
	path := filepath.Join(dir, "accepted", "2021", "untitled.md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("**Owner**: bob\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "check", dir)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported for error findings", err)
	}
	if !strings.Contains(out, "no title heading") {
		t.Errorf("findings missing title diagnostic:\n%s", out)
	}
	if !strings.Contains(out, "checked 3 files") {
		t.Errorf("summary missing or wrong:\n%s", out)
	}
}

func TestCheckCleanTreeExitsZero(t *testing.T) {
	dir := seedCmdTree(t)
	out, _, err := execute(t, "check", dir)
	if err != nil {
		t.Fatalf("clean tree must pass: %v", err)
	}
	if !strings.Contains(out, "checked 2 files: 2 indexed, 0 findings") {
		t.Errorf("summary = %q", out)
	}
}

func TestCheckJSONOutput(t *testing.T) {
	dir := seedCmdTree(t)
	out, _, err := execute(t, "check", "--json", dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var payload struct {
		Scanned int `json:"scanned"`
		Indexed int `json:"indexed"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if payload.Scanned != 2 || payload.Indexed != 2 {
		t.Errorf("scanned/indexed = %d/%d, want 2/2", payload.Scanned, payload.Indexed)
	}
}

func TestServeRequiresDirectory(t *testing.T) {
	_, _, err := execute(t, "serve")
	if err == nil || err.Error() != "must specify a directory" {
		t.Errorf("err = %v, want missing-directory error", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "docdex dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestRewriteHelpShorthand(t *testing.T) {
	got := rewriteHelpShorthand([]string{"-?", "docs", "-?", "--out"})
	want := []string{"--help", "docs", "--help", "--out"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, got[i], want[i])
		}
	}
}
