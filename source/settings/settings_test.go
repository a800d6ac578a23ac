package settings

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
prompt: "lisp> "
max_depth: 500
show_eval: true
log_level: info
history:
  driver: postgres
  dsn: postgres://localhost/transcripts
  session: work
`), "test")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "lisp> " || cfg.MaxDepth != 500 || !cfg.ShowEval || cfg.ShowLexer {
		t.Fatalf("wrong config: %+v", cfg)
	}
	if cfg.History.Driver != "postgres" || cfg.History.DSN != "postgres://localhost/transcripts" || cfg.History.Session != "work" {
		t.Fatalf("wrong history config: %+v", cfg.History)
	}
}

func TestDecodeDefaults(t *testing.T) {
	for _, input := range []string{"", "max_depth: 0\n"} {
		cfg, err := Decode(strings.NewReader(input), "test")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.MaxDepth != DEFAULT_MAX_DEPTH || cfg.History.Driver != DEFAULT_DRIVER || cfg.History.DSN != "" {
			t.Fatalf("wanted defaults, got %+v", cfg)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, input := range []string{
		"colour: blue\n",
		"history:\n  drvier: sqlite\n",
		"log_level: chatty\n",
		"max_depth: lots\n",
	} {
		if _, err := Decode(strings.NewReader(input), "test"); err == nil {
			t.Fatalf("expected an error decoding %q", input)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("max_depth: 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxDepth != 42 {
		t.Fatalf("wanted max_depth 42, got %d", cfg.MaxDepth)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("a missing file given explicitly should be an error")
	}
}

func TestApply(t *testing.T) {
	defer func() { SHOW_LEXER, SHOW_PARSER, SHOW_EVAL = false, false, false }()
	var buf bytes.Buffer
	cfg := Default()
	cfg.ShowParser = true
	logger := cfg.Apply(&buf)
	if !SHOW_PARSER || SHOW_LEXER || SHOW_EVAL {
		t.Fatalf("flags not applied")
	}
	logger.Debug("hello", "n", 1)
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Fatalf("debug output should be on when a SHOW_ flag is: %q", buf.String())
	}
}
