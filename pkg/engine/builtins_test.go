package engine

import (
	"strings"
	"testing"
)

func TestPreprocessKeywords(t *testing.T) {
	got := preprocessSource(`(sculpture :levels [8 4] :min-dist 0.05)`)
	if !strings.Contains(got, `"__kw_levels"`) {
		t.Errorf("levels keyword not converted: %s", got)
	}
	if !strings.Contains(got, `"__kw_min-dist"`) {
		t.Errorf("hyphenated keyword not converted: %s", got)
	}
}

func TestPreprocessPreservesStrings(t *testing.T) {
	got := preprocessSource(`(def s ":levels ; not a comment")`)
	if !strings.Contains(got, `":levels ; not a comment"`) {
		t.Errorf("string literal mangled: %s", got)
	}
}

func TestPreprocessComments(t *testing.T) {
	got := preprocessSource(";; header\n(sculpture :seed 1) ; trailing")
	if !strings.Contains(got, "// header") {
		t.Errorf("leading comment not converted: %s", got)
	}
	if !strings.Contains(got, "// trailing") {
		t.Errorf("trailing comment not converted: %s", got)
	}
	if strings.Contains(got, ";") {
		t.Errorf("semicolon survived preprocessing: %s", got)
	}
}

func TestPreprocessPreservesAssignment(t *testing.T) {
	got := preprocessSource(`(x := 5)`)
	if !strings.Contains(got, ":=") {
		t.Errorf("assignment operator mangled: %s", got)
	}
}

func TestParseArgsSplitsKeywordsAndPositional(t *testing.T) {
	eng := NewEngine()

	// Positional arguments to sculpture are tolerated and ignored; the
	// keyword pairs still apply.
	r, evalErrs, err := eng.Evaluate(`(sculpture 1 2 :seed 9)`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if r.Seed != 9 {
		t.Errorf("seed = %d, want 9", r.Seed)
	}
}
