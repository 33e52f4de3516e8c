// Package ir provides the shared value types for sqlfrag.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Operand is a sealed variant: callers build an ObjectReference or a
//     ScalarLiteral up front, nothing downstream inspects ambient state
//   - SemanticType is a closed enumeration; Quoted() is the single source of
//     the quoting rule
//   - All values are transient, built and discarded within one call
package ir
