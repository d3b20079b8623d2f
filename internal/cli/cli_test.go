package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yamlembed/yamlembed/internal/config"
)

// setupProject creates a directory holding lots.yaml and an empty src/.
func setupProject(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "lots.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = execute(args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// --- root (embed) ---

func TestRoot_DefaultsReproduceGenerator(t *testing.T) {
	dir := setupProject(t, "a: \"b\"\nc: 1\n")

	stdout, stderr, err := run(t, "-C", dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stdout != "Embedded lots.yaml into src/lots.h\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if stderr != "" {
		t.Errorf("expected quiet stderr at default level, got %q", stderr)
	}

	got := readFile(t, filepath.Join(dir, "src", "lots.h"))
	want := "const char* LOTS_YAML = \"a: \\\"b\\\"\\nc: 1\";\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRoot_MissingInput(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "src"), 0o755)

	stdout, _, err := run(t, "-C", dir)
	if err == nil {
		t.Fatal("expected error for missing lots.yaml")
	}
	if !strings.Contains(err.Error(), "lots.yaml") {
		t.Errorf("error should name the input file: %v", err)
	}
	if stdout != "" {
		t.Errorf("no confirmation expected on failure, got %q", stdout)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "src", "lots.h")); !os.IsNotExist(statErr) {
		t.Error("output file should not be created")
	}
}

func TestRoot_MissingOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "lots.yaml"), []byte("k: v\n"), 0o644)

	_, _, err := run(t, "-C", dir)
	if err == nil {
		t.Fatal("expected error when src/ does not exist")
	}
	if !strings.Contains(err.Error(), "write output") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRoot_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "include"), 0o755)
	os.WriteFile(filepath.Join(dir, "app.yaml"), []byte("name: \"app\"\n"), 0o644)
	os.WriteFile(filepath.Join(dir, "yamlembed.toml"), []byte(
		"input = \"app.yaml\"\noutput = \"include/app.h\"\nidentifier = \"APP_YAML\"\n"), 0o644)

	stdout, _, err := run(t, "-C", dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stdout != "Embedded app.yaml into include/app.h\n" {
		t.Errorf("stdout = %q", stdout)
	}
	got := readFile(t, filepath.Join(dir, "include", "app.h"))
	if got != "const char* APP_YAML = \"name: \\\"app\\\"\";\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRoot_FlagsOverrideConfig(t *testing.T) {
	dir := setupProject(t, "k: v\n")
	os.WriteFile(filepath.Join(dir, "yamlembed.yaml"), []byte("identifier: FROM_CONFIG\n"), 0o644)

	if _, _, err := run(t, "-C", dir, "--name", "FROM_FLAG"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := readFile(t, filepath.Join(dir, "src", "lots.h"))
	if !strings.HasPrefix(got, "const char* FROM_FLAG = ") {
		t.Errorf("flag should win over config, got %q", got)
	}
}

func TestRoot_ExplicitConfigRelativePaths(t *testing.T) {
	dir := t.TempDir()
	build := filepath.Join(dir, "build")
	os.MkdirAll(filepath.Join(build, "gen"), 0o755)
	os.WriteFile(filepath.Join(build, "data.yaml"), []byte("x: 1\n"), 0o644)
	os.WriteFile(filepath.Join(build, "embed.toml"), []byte(
		"input = \"data.yaml\"\noutput = \"gen/data.h\"\n"), 0o644)

	if _, _, err := run(t, "-C", dir, "--config", filepath.Join("build", "embed.toml")); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := readFile(t, filepath.Join(build, "gen", "data.h"))
	if got != "const char* LOTS_YAML = \"x: 1\";\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRoot_FlagPathsResolveAgainstWorkingDir(t *testing.T) {
	dir := t.TempDir()
	build := filepath.Join(dir, "build")
	os.MkdirAll(filepath.Join(build, "gen"), 0o755)
	os.MkdirAll(filepath.Join(dir, "out"), 0o755)
	os.WriteFile(filepath.Join(dir, "mine.yaml"), []byte("from: cwd\n"), 0o644)
	os.WriteFile(filepath.Join(build, "mine.yaml"), []byte("from: config dir\n"), 0o644)
	os.WriteFile(filepath.Join(build, "embed.toml"), []byte(
		"input = \"data.yaml\"\noutput = \"gen/data.h\"\n"), 0o644)

	stdout, _, err := run(t, "-C", dir, "--config", filepath.Join("build", "embed.toml"), "--input", "mine.yaml")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stdout != "Embedded mine.yaml into gen/data.h\n" {
		t.Errorf("stdout = %q", stdout)
	}
	got := readFile(t, filepath.Join(build, "gen", "data.h"))
	if got != "const char* LOTS_YAML = \"from: cwd\";\n" {
		t.Errorf("--input should resolve against the working directory, got %q", got)
	}

	if _, _, err := run(t, "-C", dir, "--config", filepath.Join("build", "embed.toml"),
		"--input", "mine.yaml", "--output", filepath.Join("out", "mine.h")); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got = readFile(t, filepath.Join(dir, "out", "mine.h"))
	if got != "const char* LOTS_YAML = \"from: cwd\";\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRoot_GoLanguageBackslashes(t *testing.T) {
	dir := setupProject(t, "pattern: \"\\d+\"\n")

	_, _, err := run(t, "-C", dir, "--lang", "go", "--name", "LotsYAML", "--output", filepath.Join("src", "lots_gen.go"))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := readFile(t, filepath.Join(dir, "src", "lots_gen.go"))
	if !strings.Contains(got, "const LotsYAML = \"pattern: \\\"\\\\d+\\\"\"\n") {
		t.Errorf("backslash should be escaped in the Go literal:\n%s", got)
	}
}

func TestRoot_ExplicitConfigMissing(t *testing.T) {
	dir := setupProject(t, "k: v\n")

	_, _, err := run(t, "-C", dir, "--config", "nope.toml")
	if !errors.Is(err, config.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRoot_InvalidLanguage(t *testing.T) {
	dir := setupProject(t, "k: v\n")

	_, _, err := run(t, "-C", dir, "--lang", "cobol")
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestRoot_RejectsPositionalArgs(t *testing.T) {
	dir := setupProject(t, "k: v\n")
	if _, _, err := run(t, "-C", dir, "extra.yaml"); err == nil {
		t.Error("expected error for positional argument")
	}
}

func TestRoot_GoLanguage(t *testing.T) {
	dir := setupProject(t, "k: \"v\"\n")

	_, _, err := run(t, "-C", dir, "--lang", "go", "--output", "src/lots_gen.go", "--name", "LotsYAML", "--package", "lots")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := readFile(t, filepath.Join(dir, "src", "lots_gen.go"))
	for _, want := range []string{
		"// Code generated by yamlembed from lots.yaml. DO NOT EDIT.",
		"package lots",
		`const LotsYAML = "k: \"v\""`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("go output missing %q:\n%s", want, got)
		}
	}
}

func TestRoot_EscapeBackslashesFlag(t *testing.T) {
	dir := setupProject(t, "p: a\\b\n")

	if _, _, err := run(t, "-C", dir, "--escape-backslashes"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := readFile(t, filepath.Join(dir, "src", "lots.h"))
	if got != "const char* LOTS_YAML = \"p: a\\\\b\";\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	dir := setupProject(t, "k: v\n")

	stdout, stderr, err := run(t, "-C", dir, "-v")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stderr, "Embedded file") {
		t.Errorf("expected log line on stderr, got %q", stderr)
	}
	if strings.Contains(stdout, "DEBUG") || strings.Contains(stdout, "INFO") {
		t.Errorf("logs leaked to stdout: %q", stdout)
	}
}

func TestRoot_LogFile(t *testing.T) {
	dir := setupProject(t, "k: v\n")
	os.WriteFile(filepath.Join(dir, "yamlembed.toml"), []byte("[log]\nlevel = \"info\"\nfile = \"yamlembed.log\"\n"), 0o644)

	if _, _, err := run(t, "-C", dir); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "yamlembed.log")); !strings.Contains(got, `"msg":"Embedded file"`) {
		t.Errorf("log file missing embed entry: %q", got)
	}
}

// --- check ---

func TestCheck_UpToDateThenStale(t *testing.T) {
	dir := setupProject(t, "k: v\n")

	if _, _, err := run(t, "-C", dir); err != nil {
		t.Fatalf("embed: %v", err)
	}

	stdout, _, err := run(t, "check", "-C", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if stdout != "src/lots.h is up to date\n" {
		t.Errorf("stdout = %q", stdout)
	}

	os.WriteFile(filepath.Join(dir, "lots.yaml"), []byte("k: other\n"), 0o644)
	_, _, err = run(t, "check", "-C", dir)
	if err == nil || !strings.Contains(err.Error(), "stale") {
		t.Errorf("expected stale error, got %v", err)
	}
}

func TestCheck_MissingOutput(t *testing.T) {
	dir := setupProject(t, "k: v\n")

	_, _, err := run(t, "check", "-C", dir)
	if err == nil {
		t.Fatal("expected error when output was never generated")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "src", "lots.h")); !os.IsNotExist(statErr) {
		t.Error("check must not write the output")
	}
}

// --- init ---

func TestInit_WritesDefaultConfig(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := run(t, "init", "-C", dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if stdout != "Wrote yamlembed.toml\n" {
		t.Errorf("stdout = %q", stdout)
	}

	cfg, err := config.Load(filepath.Join(dir, "yamlembed.toml"))
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestInit_AppliesFlagsAndYAMLFormat(t *testing.T) {
	dir := t.TempDir()

	_, _, err := run(t, "init", "-C", dir, "--format", "yaml", "--lang", "go", "--name", "Data")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := config.Load(filepath.Join(dir, "yamlembed.yaml"))
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.Language != "go" || cfg.Identifier != "Data" {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "yamlembed.toml"), []byte("input = \"keep.yaml\"\n"), 0o644)

	if _, _, err := run(t, "init", "-C", dir); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
	if got := readFile(t, filepath.Join(dir, "yamlembed.toml")); got != "input = \"keep.yaml\"\n" {
		t.Errorf("existing config modified: %q", got)
	}

	if _, _, err := run(t, "init", "-C", dir, "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	cfg, _ := config.Load(filepath.Join(dir, "yamlembed.toml"))
	if cfg.Input != "lots.yaml" {
		t.Errorf("expected overwritten config, got input %q", cfg.Input)
	}
}

func TestInit_UnknownFormat(t *testing.T) {
	if _, _, err := run(t, "init", "-C", t.TempDir(), "--format", "json"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestInit_Gitignore(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := run(t, "init", "-C", dir, "--gitignore")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(stdout, "Added src/lots.h to .gitignore") {
		t.Errorf("stdout = %q", stdout)
	}
	if got := readFile(t, filepath.Join(dir, ".gitignore")); got != "/src/lots.h\n" {
		t.Errorf(".gitignore = %q", got)
	}

	os.Remove(filepath.Join(dir, "yamlembed.toml"))
	stdout, _, err = run(t, "init", "-C", dir, "--gitignore")
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if !strings.Contains(stdout, "already ignored") {
		t.Errorf("stdout = %q", stdout)
	}
}

// --- langs / version ---

func TestLangs(t *testing.T) {
	stdout, _, err := run(t, "langs")
	if err != nil {
		t.Fatalf("langs: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 languages, got %d:\n%s", len(lines), stdout)
	}
	if !strings.HasPrefix(lines[0], "* c ") {
		t.Errorf("default language should be marked first, got %q", lines[0])
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(stdout, "yamlembed dev (commit unknown") {
		t.Errorf("stdout = %q", stdout)
	}
}
