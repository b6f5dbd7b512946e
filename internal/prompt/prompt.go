package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel terminates the interactive collection loop.
const Sentinel = "done"

// Rejection explains why a candidate path was not accepted.
type Rejection struct {
	Path   string
	Reason string
}

func (r Rejection) String() string { return fmt.Sprintf("%s: %s", r.Path, r.Reason) }

// Validate filters candidate paths against existence and the accepted
// extension list. It accepts everything it can and returns a structured
// rejection per path it cannot, so a batch caller can isolate failures.
func Validate(paths []string, exts []string) (accepted []string, rejected []Rejection) {
	for _, p := range paths {
		if reason := check(p, exts); reason != "" {
			rejected = append(rejected, Rejection{Path: p, Reason: reason})
			continue
		}
		accepted = append(accepted, p)
	}
	return accepted, rejected
}

func check(path string, exts []string) string {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "file does not exist"
		}
		return err.Error()
	}
	if info.IsDir() {
		return "is a directory"
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return ""
		}
	}
	return fmt.Sprintf("unsupported extension %q (accepted: %s)", ext, strings.Join(exts, ", "))
}

// Collect runs the interactive filename loop: it prompts on out, reads
// candidate paths from in one per line, re-prompts with the reason on an
// invalid entry, and stops at the sentinel word or EOF. The validation
// itself is Validate; this is only the console adapter around it.
func Collect(in io.Reader, out io.Writer, exts []string) ([]string, error) {
	scanner := bufio.NewScanner(in)
	var files []string
	for {
		fmt.Fprintf(out, "spreadsheet path (%q to finish): ", Sentinel)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, Sentinel) {
			break
		}
		accepted, rejected := Validate([]string{line}, exts)
		if len(rejected) > 0 {
			fmt.Fprintf(out, "rejected %s\n", rejected[0])
			continue
		}
		files = append(files, accepted[0])
		fmt.Fprintf(out, "added %s\n", accepted[0])
	}
	if err := scanner.Err(); err != nil {
		return files, fmt.Errorf("read input: %w", err)
	}
	return files, nil
}
