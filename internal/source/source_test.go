package source

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gzhole/web3threat/internal/threatmodel"
)

func TestLocal_Profiles(t *testing.T) {
	src := NewLocal(threatmodel.Default())
	got, err := src.Profiles(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "aztec,soundness,zama" {
		t.Errorf("unexpected profiles %v", got)
	}
}

func TestLocal_FetchMatchesRenderer(t *testing.T) {
	src := NewLocal(threatmodel.Default())
	m, _ := threatmodel.Default().Get("aztec")

	full, err := src.Fetch(context.Background(), "aztec", "")
	if err != nil {
		t.Fatal(err)
	}
	var want bytes.Buffer
	_ = threatmodel.RenderFull(&want, m)
	if full != want.String() {
		t.Error("full fetch differs from RenderFull")
	}

	section, err := src.Fetch(context.Background(), "aztec", "assets")
	if err != nil {
		t.Fatal(err)
	}
	want.Reset()
	_ = threatmodel.RenderProfile(&want, m, threatmodel.SectionAssets)
	if section != want.String() {
		t.Error("section fetch differs from RenderProfile")
	}
}

func TestLocal_FetchErrors(t *testing.T) {
	src := NewLocal(threatmodel.Default())
	if _, err := src.Fetch(context.Background(), "starknet", ""); !errors.Is(err, threatmodel.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
	if _, err := src.Fetch(context.Background(), "zama", "bridges"); !errors.Is(err, threatmodel.ErrUnknownSection) {
		t.Errorf("expected ErrUnknownSection, got %v", err)
	}
}

func TestNewExec_Missing(t *testing.T) {
	_, err := NewExec(filepath.Join(t.TempDir(), "nope"), nil)
	if !errors.Is(err, ErrAppNotFound) {
		t.Errorf("expected ErrAppNotFound, got %v", err)
	}

	_, err = NewExec(t.TempDir()+string(filepath.Separator), nil)
	if !errors.Is(err, ErrAppNotFound) {
		t.Errorf("directory: expected ErrAppNotFound, got %v", err)
	}
}

// writeFakeApp writes a shell script that mimics the listing and profile
// output of web3-threatmodel, failing for the "broken" profile.
func writeFakeApp(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script helper requires a POSIX shell")
	}

	script := `#!/bin/sh
if [ "$1" = "--list-profiles" ]; then
  echo "Available profiles related to Web3 privacy and soundness:"
  echo "- alpha: Alpha profile"
  echo "- broken: Broken profile"
  echo ""
  echo "Use --profile with one of these keys to print a threat model."
  exit 0
fi
if [ "$2" = "broken" ]; then
  echo "boom" >&2
  exit 3
fi
echo "profile $2 section $4"
`
	path := filepath.Join(t.TempDir(), "fake-threatmodel")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake app: %v", err)
	}
	return path
}

func TestExec_ProfilesAndFetch(t *testing.T) {
	src, err := NewExec(writeFakeApp(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	profiles, err := src.Profiles(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(profiles, ",") != "alpha,broken" {
		t.Errorf("unexpected profiles %v", profiles)
	}

	out, err := src.Fetch(ctx, "alpha", "assets")
	if err != nil {
		t.Fatal(err)
	}
	if out != "profile alpha section assets\n" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewExec_BareNameInWorkingDir(t *testing.T) {
	app := writeFakeApp(t)
	dir := filepath.Dir(app)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("PATH", filepath.Join(t.TempDir(), "empty"))

	src, err := NewExec(filepath.Base(app), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(src.Path()) {
		t.Errorf("expected an absolute path, got %q", src.Path())
	}

	profiles, err := src.Profiles(context.Background())
	if err != nil {
		t.Fatalf("bare name in working dir should run: %v", err)
	}
	if strings.Join(profiles, ",") != "alpha,broken" {
		t.Errorf("unexpected profiles %v", profiles)
	}
}

func TestExec_FetchFailure(t *testing.T) {
	src, err := NewExec(writeFakeApp(t), nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = src.Fetch(context.Background(), "broken", "")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if cmdErr.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", cmdErr.ExitCode)
	}
	if !strings.Contains(cmdErr.Error(), "boom") {
		t.Errorf("error should carry stderr, got %q", cmdErr.Error())
	}
}
