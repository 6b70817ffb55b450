package filter

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression. It is safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expression
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expression
}

// Match runs the filter against one environment built by RepoEnv,
// CommitEnv, OwnerEnv or any map with the same shape.
func (f *Filter) Match(env map[string]any) (bool, error) {
	runEnv := make(map[string]any, len(env)+len(helperFuncs))
	maps.Copy(runEnv, helperFuncs)
	maps.Copy(runEnv, env)

	result, err := expr.Run(f.program, runEnv)
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, Record: label(env), Err: err}
	}
	// AsBool at compile time guarantees the type.
	return result.(bool), nil
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache[string, *Filter](size)
		}
	}
}

// WithFunctions adds custom helper functions
func WithFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.funcs, funcs)
	}
}

// Compiler compiles filter expressions, optionally caching the programs.
type Compiler struct {
	funcs map[string]any
	cache *lruCache[string, *Filter]
}

// NewCompiler creates a new expr-based filter compiler
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{funcs: maps.Clone(helperFuncs)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles an expression into an executable filter
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.funcs),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{expression: expression, program: program}
	if c.cache != nil {
		c.cache.Put(expression, f)
	}
	return f, nil
}

// Clear removes all cached filters
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

var helperFuncs = map[string]any{
	"daysSince": func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	},
	"daysAgo": func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	},
	"monthsAgo": func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	},
	"parseDate": func(s string) (time.Time, error) {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("parseDate: %w", err)
		}
		return t, nil
	},
	"contains": func(s, substr string) bool {
		return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
	},
	"startsWith": func(s, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
	},
	"endsWith": func(s, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix))
	},
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"now":   time.Now,
	"pct": func(part, total int) float64 {
		if total == 0 {
			return 0
		}
		return float64(part) * 100 / float64(total)
	},
}

func label(env map[string]any) string {
	for _, key := range []string{"Name", "SHA", "Username"} {
		if s, ok := env[key].(string); ok && s != "" {
			return s
		}
	}
	return "record"
}
