//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binaryName = "mdoutline"
	binaryPath = "bin/" + binaryName
	mainPkg    = "./cmd/" + binaryName
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":     Build,
	"t":     Test.Default,
	"l":     Lint.Default,
	"c":     Check,
	"i":     Install,
	"fmt":   Lint.Fmt,
	"bench": Bench.Default,
	"fuzz":  Bench.Fuzz,
	"smoke": Smoke,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// benchPackages hold the Benchmark functions.
var benchPackages = []string{"./pkg/outline", "./pkg/convert", "./pkg/langdetect"}

// releasePlatforms are the GOOS/GOARCH pairs built by CI.Cross.
var releasePlatforms = []string{
	"linux/amd64", "linux/arm64",
	"darwin/amd64", "darwin/arm64",
	"windows/amd64", "windows/arm64",
	"freebsd/amd64",
}

// Build compiles the mdoutline binary with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binaryPath, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binaryPath, "is up to date")
		return nil
	}
	fmt.Println("Building", binaryName+"...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binaryPath, mainPkg)
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Smoke converts a small document with the built binary and compares the outline.
func Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "mdoutline-smoke")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	doc := filepath.Join(dir, "smoke.md")
	src := "# Title\n\nIntro text.\n\n- one\n- two\n\n| A | B |\n| - | - |\n| 1 | 2 |\n"
	if err := os.WriteFile(doc, []byte(src), 0o600); err != nil {
		return err
	}

	got, err := sh.Output(binaryPath, "convert", "--line-ending", "lf", doc)
	if err != nil {
		return fmt.Errorf("run %s: %w", binaryName, err)
	}
	got = strings.TrimRight(got, "\n")
	want := "- # Title\n- Intro text.\n- one\n- two\n- | A | B |\n  | --- | --- |\n  | 1 | 2 |"
	if got != want {
		return fmt.Errorf("unexpected outline:\n%s\nwant:\n%s", got, want)
	}
	fmt.Println("✓ Smoke conversion OK")
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install installs mdoutline to $GOBIN or $GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Uninstall removes mdoutline from $GOBIN or $GOPATH/bin.
func Uninstall() error {
	binPath, err := installedBinary()
	if err != nil {
		return err
	}
	err = os.Remove(binPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Println(binaryName, "is not installed")
	case err != nil:
		return fmt.Errorf("remove binary: %w", err)
	default:
		fmt.Println("Removed", binPath)
	}
	return nil
}

// Coverage runs the tests and renders coverage.html.
func Coverage() error {
	st.Deps(Test.Default)
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	fmt.Println("Coverage report written to coverage.html")
	return nil
}

// Default runs all tests with race detection and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	return gotestsum("standard-verbose")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every CI check in order.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		Smoke,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("✓ CI gate passed")
	return nil
}

// ModTidy fails when 'go mod tidy' would change go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if !bytes.Equal(before, after) {
		return errors.New("go.mod or go.sum changed after 'go mod tidy'; commit the result")
	}
	return nil
}

// Cross builds the binary for every release platform.
func (CI) Cross() error {
	for _, platform := range releasePlatforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Println("  Building", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs the renderer, converter and language detection benchmarks.
// BENCHTIME overrides the per-benchmark duration.
func (Bench) Default() error {
	args := []string{"test", "-run", "^$", "-bench", ".", "-benchmem",
		"-benchtime", cmp.Or(os.Getenv("BENCHTIME"), "1s")}
	return sh.RunV("go", append(args, benchPackages...)...)
}

// Fuzz runs the parse-and-render fuzz target for a bounded time.
// FUZZTIME overrides the default duration.
func (Bench) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "30s")
	fmt.Printf("Fuzzing parser and renderer for %s...\n", fuzzTime)
	return sh.RunV("go", "test",
		"-run", "^$",
		"-fuzz", "^FuzzParseRender$",
		"-fuzztime", fuzzTime,
		"./pkg/parser/goldmark",
	)
}

func gotestsum(format string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum", "-f", format, "--",
		"-race", "-p", nCores, "-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out", "-covermode=atomic",
	)
}

func readModFiles() ([]byte, error) {
	var buf bytes.Buffer
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}

func installedBinary() (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, binaryName), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", binaryName), nil
}
