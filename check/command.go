package check

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// CommandChecker shells out to the real tck-syntax/tck-reach/tck-compare
// binaries, when present on $PATH, using os/exec under a context
// deadline — the same external-tool-invocation pattern as
// cmd/vartan/compile.go's readGrammar, which opens and wraps a file
// error with "%w" rather than swallowing it.
type CommandChecker struct {
	SyntaxBin  string
	ReachBin   string
	CompareBin string
	Timeout    time.Duration
}

// NewCommandChecker returns a CommandChecker wired to TChecker's
// standard binary names with a generous default timeout.
func NewCommandChecker() *CommandChecker {
	return &CommandChecker{
		SyntaxBin:  "tck-syntax",
		ReachBin:   "tck-reach",
		CompareBin: "tck-compare",
		Timeout:    30 * time.Second,
	}
}

func (c *CommandChecker) CheckSyntax(ta string) bool {
	path, cleanup, err := writeTemp(ta)
	if err != nil {
		return false
	}
	defer cleanup()

	_, err = c.run(c.SyntaxBin, path)
	return err == nil
}

func (c *CommandChecker) CheckReachability(ta string) (bool, error) {
	path, cleanup, err := writeTemp(ta)
	if err != nil {
		return false, err
	}
	defer cleanup()

	stderr, err := c.run(c.ReachBin, path)
	if err != nil {
		return false, fmt.Errorf("reachability check failed: %w: %s", err, stderr)
	}
	return true, nil
}

func (c *CommandChecker) CheckBisimilarity(first, second string) bool {
	p1, cleanup1, err := writeTemp(first)
	if err != nil {
		return false
	}
	defer cleanup1()
	p2, cleanup2, err := writeTemp(second)
	if err != nil {
		return false
	}
	defer cleanup2()

	_, err = c.run(c.CompareBin, p1, p2)
	return err == nil
}

func (c *CommandChecker) run(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func writeTemp(ta string) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", "tamut-check-*.tck")
	if err != nil {
		return "", nil, err
	}
	if _, err := f.WriteString(ta); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, err
	}
	return f.Name(), func() { os.Remove(f.Name()) }, nil
}
