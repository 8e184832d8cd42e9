package mupdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"testing"

	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/convert"
)

// fakeCommand reroutes the mutool invocation to this test binary so the
// helper process below can play the tool.
func fakeCommand(t *testing.T, mode string) {
	t.Helper()
	orig := commandContext
	commandContext = func(ctx context.Context, _ string, args ...string) *exec.Cmd {
		cmdArgs := append([]string{"-test.run=TestHelperProcess", "--"}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cmdArgs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() { commandContext = orig })
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("HELPER_MODE") {
	case "ok":
		fmt.Print("Extracted page text\n")
		os.Exit(0)
	case "empty":
		os.Exit(0)
	default:
		fmt.Fprint(os.Stderr, "cannot open document\n")
		os.Exit(1)
	}
}

func TestCLI_Extract(t *testing.T) {
	fakeCommand(t, "ok")
	cli := NewCLI()

	text, err := cli.Extract(context.Background(), "paper.pdf", convert.DefaultExtractOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Extracted page text") {
		t.Errorf("unexpected output %q", text)
	}
}

func TestCLI_ExtractArgs(t *testing.T) {
	var got []string
	orig := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		got = append([]string{name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "HELPER_MODE=ok")
		return cmd
	}
	t.Cleanup(func() { commandContext = orig })

	cli := NewCLI(WithBinary("/opt/mupdf/mutool"))
	_, err := cli.Extract(context.Background(), "paper.pdf", convert.DefaultExtractOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got[0] != "/opt/mupdf/mutool" {
		t.Errorf("binary override not applied: %s", got[0])
	}
	if got[1] != "convert" || !slices.Contains(got, "paper.pdf") {
		t.Errorf("unexpected args %v", got)
	}
	for _, a := range got {
		if strings.Contains(a, "preserve-images") {
			t.Errorf("images must be skipped by default, args %v", got)
		}
	}
}

func TestCLI_ExtractFailure(t *testing.T) {
	fakeCommand(t, "fail")
	cli := NewCLI()

	_, err := cli.Extract(context.Background(), "broken.pdf", convert.DefaultExtractOptions())
	if err == nil {
		t.Fatal("expected error from failing tool")
	}
	if !strings.Contains(err.Error(), "cannot open document") {
		t.Errorf("expected stderr detail in error, got %v", err)
	}
}

func TestCLI_ExtractEmptyOutput(t *testing.T) {
	fakeCommand(t, "empty")
	cli := NewCLI()

	if _, err := cli.Extract(context.Background(), "blank.pdf", convert.DefaultExtractOptions()); err == nil {
		t.Fatal("expected error for empty extraction")
	}
}

func TestCLI_ExtractEmptyPath(t *testing.T) {
	cli := NewCLI()
	if _, err := cli.Extract(context.Background(), "", convert.DefaultExtractOptions()); err == nil {
		t.Fatal("expected error for empty path")
	}
}
