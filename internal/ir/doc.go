// Package ir provides the descriptor types produced by the schema
// parser and consumed by the stub emitter.
//
// This package contains type definitions only. All other internal
// packages import ir; ir imports nothing internal. This keeps the
// descriptor model the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Descriptors are immutable after the parser returns them
//   - Argument order is positional wire order and must never change
//   - Resolved argument names are assigned at parse time, exactly once
package ir
