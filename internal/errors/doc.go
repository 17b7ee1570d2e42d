// Package errors provides coded, actionable errors for widgetdom.
//
// Every failure the tree can produce has a stable code that maps to a short
// message, a suggestion and a documentation URL.
//
// # Error Categories
//
//   - config: registration mistakes, fatal to the calling operation
//     (duplicate tag, unknown tag, sealed registry)
//   - integration: a widget adapter is incomplete; reported and degraded to
//     a no-op on the native side
//   - runtime: unsupported requests such as capture-phase listeners
//   - cli: config file and devtools problems surfaced by the command line
//
// # Usage
//
//	err := errors.New("W002").WithDetailf("tag %q", tag)
//	if stderrors.Is(err, errors.New("W002")) { ... }
//
//	fmt.Println(err.Format())
package errors
