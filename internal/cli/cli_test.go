package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/anchorage/pkg/anchor"
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/observability"
	"github.com/matzehuels/anchorage/pkg/scenario"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	want := []string{"resolve", "watch", "init", "serve", "demo", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestInitWritesLoadableFile(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "menus"+ext)
			if _, err := execute(t, "init", path); err != nil {
				t.Fatal(err)
			}
			got, err := scenario.Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 1 || got[0].Corner != anchor.UpperLeft {
				t.Errorf("loaded %+v", got)
			}
		})
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menus.toml")
	if err := os.WriteFile(path, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "init", path)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "keep" {
		t.Error("existing file was modified")
	}

	if _, err := execute(t, "init", "--force", path); err != nil {
		t.Fatalf("--force: %v", err)
	}
}

func TestInitStdout(t *testing.T) {
	out, err := execute(t, "init")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "[[scenario]]") {
		t.Errorf("stdout is not a TOML scenario file:\n%s", out)
	}
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "anchorage") {
		t.Error("bash completion should mention the command name")
	}
}

func TestEnableTrace(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	c := New(&buf, LogDebug)
	c.EnableTrace()

	if _, ok := observability.Resolver().(*observability.LogHooks); !ok {
		t.Errorf("resolver hooks = %T, want *LogHooks", observability.Resolver())
	}
	if _, ok := observability.HTTP().(*observability.LogHooks); !ok {
		t.Errorf("http hooks = %T, want *LogHooks", observability.HTTP())
	}
}
