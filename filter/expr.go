package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) Compiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	// Check cache if enabled
	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Compile with static environment for validation
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(), // Allow item properties
		expr.AsBool(),                  // Ensure boolean result
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
	}

	// Cache if enabled
	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate evaluates the filter against an item
func (f *exprFilter) Evaluate(item Item) bool {
	env := createRuntimeEnvironment(item)

	result, err := expr.Run(f.program, env)
	if err != nil {
		// Items that cause runtime errors are treated as non-matching
		return false
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the static helper functions used during compilation
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	return funcs
}

// addHelperFunctions adds all helper functions to the provided map
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	// Current time
	env["now"] = time.Now
}

// createRuntimeEnvironment creates the runtime environment for filter evaluation
func createRuntimeEnvironment(item Item) map[string]any {
	env := make(map[string]any, 48)

	// Add helper functions
	addHelperFunctions(env)

	// Add item data
	env["Item"] = item

	// Add item-specific helper functions using closures
	env["hasGenre"] = createListMatchFunc(item.Genres)
	env["hasLanguage"] = createListMatchFunc(item.Languages)
	env["fromCountry"] = createListMatchFunc(item.Country)
	env["isType"] = createIsTypeFunc(item.Type)
	env["airedAfter"] = createAiredAfterFunc(item.Released)
	env["airedBefore"] = createAiredBeforeFunc(item.Released)

	// Direct item properties for convenience
	env["Title"] = item.Title
	env["Name"] = item.Name
	env["Type"] = item.Type
	env["Year"] = item.Year
	env["StartYear"] = item.StartYear
	env["EndYear"] = item.EndYear
	env["TotalSeasons"] = item.TotalSeasons
	env["Season"] = item.Season
	env["Episode"] = item.Episode
	env["SeriesID"] = item.SeriesID
	env["ImdbID"] = item.ImdbID
	env["Rating"] = item.Rating
	env["Votes"] = item.Votes
	env["Genres"] = item.Genres
	env["Languages"] = item.Languages
	env["Country"] = item.Country
	env["Runtime"] = item.Runtime
	env["Rated"] = item.Rated
	env["Released"] = item.Released
	env["Poster"] = item.Poster

	return env
}

// Helper factory functions using closures

// createListMatchFunc matches one entry of a comma-separated list
// case-insensitively, e.g. hasGenre("comedy") against "Action, Comedy".
func createListMatchFunc(listing string) func(string) bool {
	parts := strings.Split(listing, ",")
	entries := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			entries = append(entries, strings.ToLower(part))
		}
	}
	return func(want string) bool {
		return slices.Contains(entries, strings.ToLower(strings.TrimSpace(want)))
	}
}

func createIsTypeFunc(itemType string) func(string) bool {
	return func(want string) bool {
		return strings.EqualFold(itemType, want)
	}
}

func createAiredAfterFunc(released time.Time) func(time.Time) bool {
	return func(date time.Time) bool {
		return !released.IsZero() && released.After(date)
	}
}

func createAiredBeforeFunc(released time.Time) func(time.Time) bool {
	return func(date time.Time) bool {
		return !released.IsZero() && released.Before(date)
	}
}
