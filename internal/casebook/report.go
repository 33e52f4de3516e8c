package casebook

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// FormatReport renders r as stable text: a header, one line per case and
// the expected/actual pair for each failure.
func FormatReport(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "casebook: %s\n", r.Name)
	fmt.Fprintf(&b, "run: %s\n", r.RunID)

	for _, res := range r.Results {
		mark := "PASS"
		if !res.Pass {
			mark = "FAIL"
		}
		fmt.Fprintf(&b, "%s %-8s %s\n", mark, res.Kind, res.Name)
		if !res.Pass {
			fmt.Fprintf(&b, "    expect: %s\n", res.Expect)
			fmt.Fprintf(&b, "    got:    %s\n", res.Got)
		}
	}

	fmt.Fprintf(&b, "passed: %d, failed: %d\n", r.Passed, r.Failed)
	return b.String()
}

// AssertGolden compares the formatted report against
// testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/casebook -update
func AssertGolden(t *testing.T, name string, r *Report) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(FormatReport(r)))
}
