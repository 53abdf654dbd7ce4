package filter

import (
	"context"
)

// Filter defines the basic interface for record filters
type Filter interface {
	// Evaluate checks if an item matches the filter criteria
	Evaluate(item Item) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Evaluator evaluates a filter against a list of items
type Evaluator interface {
	// Evaluate returns the items matching the filter, in input order
	Evaluate(ctx context.Context, filter CompiledFilter, items []Item) ([]Item, error)
}

// BatchEvaluator evaluates multiple filters concurrently
type BatchEvaluator interface {
	// EvaluateBatch evaluates multiple filters against items concurrently
	EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, items []Item) (map[string][]Item, error)
}
