package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/umbel/pkg/scene"
	"github.com/chazu/umbel/pkg/sculpt"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms recipe Lisp source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Comment conversion: ; line comments become // comments, which is
//     what zygomys expects.
//
// Both transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpRGB wraps a scene.RGB so colors can be passed between builtins.
type sexpRGB struct {
	color scene.RGB
}

func (c *sexpRGB) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(rgb %.3f %.3f %.3f)", c.color.R, c.color.G, c.color.B)
}
func (c *sexpRGB) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value — treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a SexpBool.
func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toRGB extracts a scene.RGB from a sexpRGB.
func toRGB(s zygo.Sexp) (scene.RGB, error) {
	if c, ok := s.(*sexpRGB); ok {
		return c.color, nil
	}
	return scene.RGB{}, fmt.Errorf("expected (rgb r g b), got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toFloatSlice extracts a []float64 from a Lisp list or array.
func toFloatSlice(s zygo.Sexp) ([]float64, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(items))
	for i, it := range items {
		f, err := toFloat64(it)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// toIntSlice extracts a []int from a Lisp list or array.
func toIntSlice(s zygo.Sexp) ([]int, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(items))
	for i, it := range items {
		n, err := toInt(it)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the recipe DSL builtins into a zygomys
// environment. The builtins mutate the provided recipe during evaluation;
// keys not mentioned in the source keep their defaults.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, r *scene.Recipe) {

	// -----------------------------------------------------------------------
	// (rgb 0.05 0.05 0.05)
	// -----------------------------------------------------------------------
	env.AddFunction("rgb", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("rgb requires exactly three channels")
		}
		var ch [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rgb: channel %d: %w", i, err)
			}
			if f < 0 || f > 1 {
				return zygo.SexpNull, fmt.Errorf("rgb: channel %d out of [0,1]", i)
			}
			ch[i] = f
		}
		return &sexpRGB{color: scene.RGB{R: ch[0], G: ch[1], B: ch[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (sculpture :levels [8 4 2] :shell-radii [1.2 .8 .4] :blob-radii [.6 .4 .2]
	//            :grid 20 :min-dist 0.05 :symmetric true :seed 7
	//            :background (rgb .05 .05 .05) :object-color (rgb 1 1 1))
	// -----------------------------------------------------------------------
	env.AddFunction("sculpture", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		_, hasCounts := pa.kw["levels"]
		_, hasShells := pa.kw["shell-radii"]
		_, hasBlobs := pa.kw["blob-radii"]
		if hasCounts || hasShells || hasBlobs {
			if !(hasCounts && hasShells && hasBlobs) {
				return zygo.SexpNull, fmt.Errorf("sculpture: levels, shell-radii and blob-radii must be given together")
			}
			counts, err := toIntSlice(pa.kw["levels"])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sculpture: levels: %w", err)
			}
			shells, err := toFloatSlice(pa.kw["shell-radii"])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sculpture: shell-radii: %w", err)
			}
			blobs, err := toFloatSlice(pa.kw["blob-radii"])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sculpture: blob-radii: %w", err)
			}
			if len(counts) == 0 || len(counts) != len(shells) || len(counts) != len(blobs) {
				return zygo.SexpNull, fmt.Errorf("sculpture: levels, shell-radii and blob-radii must be non-empty and the same length")
			}
			levels := make([]sculpt.Level, len(counts))
			for i := range counts {
				levels[i] = sculpt.Level{
					Count:       counts[i],
					ShellRadius: shells[i],
					BlobRadius:  blobs[i],
				}
			}
			r.Levels = levels
		}

		if v, ok := pa.kw["grid"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sculpture: grid: %w", err)
			}
			r.GridRes = n
		}
		if v, ok := pa.kw["min-dist"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sculpture: min-dist: %w", err)
			}
			r.MinDist = f
		}
		if v, ok := pa.kw["symmetric"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sculpture: symmetric: %w", err)
			}
			r.Symmetric = b
		}
		if v, ok := pa.kw["seed"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sculpture: seed: %w", err)
			}
			r.Seed = int64(n)
		}
		if v, ok := pa.kw["background"]; ok {
			c, err := toRGB(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sculpture: background: %w", err)
			}
			r.Background = c
		}
		if v, ok := pa.kw["object-color"]; ok {
			c, err := toRGB(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sculpture: object-color: %w", err)
			}
			r.Object = c
		}

		return zygo.SexpNull, nil
	})
}
