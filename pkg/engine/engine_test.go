package engine

import (
	"testing"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine()

	r, evalErrs, err := eng.Evaluate("")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if r == nil {
		t.Fatal("expected non-nil recipe")
	}
	if len(r.Levels) != 3 || r.Levels[0].Count != 8 {
		t.Errorf("expected default levels, got %+v", r.Levels)
	}
}

func TestEvaluateWhitespaceOnly(t *testing.T) {
	eng := NewEngine()

	r, evalErrs, err := eng.Evaluate("   \n\t  \n  ")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if r == nil {
		t.Fatal("expected non-nil recipe")
	}
}

func TestEvaluateFullRecipe(t *testing.T) {
	eng := NewEngine()

	source := `
; a two-level asymmetric sculpture
(sculpture :levels [6 2]
           :shell-radii [1.0 0.5]
           :blob-radii [0.5 0.25]
           :grid 24
           :min-dist 0.1
           :symmetric false
           :seed 42
           :background (rgb 0.1 0.1 0.1)
           :object-color (rgb 0.9 0.8 0.7))
`
	r, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if len(r.Levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(r.Levels))
	}
	if r.Levels[0].Count != 6 || r.Levels[0].ShellRadius != 1.0 || r.Levels[0].BlobRadius != 0.5 {
		t.Errorf("level 0 = %+v", r.Levels[0])
	}
	if r.Levels[1].Count != 2 || r.Levels[1].ShellRadius != 0.5 || r.Levels[1].BlobRadius != 0.25 {
		t.Errorf("level 1 = %+v", r.Levels[1])
	}
	if r.GridRes != 24 {
		t.Errorf("grid = %d, want 24", r.GridRes)
	}
	if r.MinDist != 0.1 {
		t.Errorf("min-dist = %g, want 0.1", r.MinDist)
	}
	if r.Symmetric {
		t.Error("symmetric should be false")
	}
	if r.Seed != 42 {
		t.Errorf("seed = %d, want 42", r.Seed)
	}
	if r.Background.R != 0.1 {
		t.Errorf("background = %+v", r.Background)
	}
	if r.Object.B != 0.7 {
		t.Errorf("object color = %+v", r.Object)
	}
}

func TestEvaluatePartialRecipeKeepsDefaults(t *testing.T) {
	eng := NewEngine()

	r, evalErrs, err := eng.Evaluate(`(sculpture :symmetric false :seed 7)`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if r.Symmetric {
		t.Error("symmetric should be false")
	}
	if len(r.Levels) != 3 || r.GridRes != 20 || r.MinDist != 0.05 {
		t.Errorf("defaults not preserved: %+v", r)
	}
}

func TestEvaluateIncompleteLevelsError(t *testing.T) {
	eng := NewEngine()

	_, evalErrs, err := eng.Evaluate(`(sculpture :levels [8 4])`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for levels without radii")
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine()

	_, evalErrs, err := eng.Evaluate(`(sculpture :levels`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for unbalanced parens")
	}
}

func TestEvaluateBadColorError(t *testing.T) {
	eng := NewEngine()

	_, evalErrs, err := eng.Evaluate(`(sculpture :background (rgb 2 0 0))`)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for out-of-range channel")
	}
}
