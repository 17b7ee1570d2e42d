// Package dom maintains a virtual node tree and projects its structural
// mutations onto native widgets.
//
// A declarative UI layer drives the tree through a DOM-like API
// (CreateElement, AppendChild, InsertBefore, RemoveChild, SetAttribute).
// The tree keeps its own parent/child linkage and, for every mutation that
// involves an element, asks the dispatcher to apply the matching native
// operation.
//
// # Node Kinds
//
//	Document  factory entry point; holds children but no widget
//	Element   owns exactly one native widget, built once at creation
//	Text      virtual only; its content is folded into the parent's text
//	Comment   virtual only; never reaches the native side
//	Root      a stable mount handle pointing at one top-level element
//
// # Dispatch
//
// Only elements exist in the native hierarchy, so InsertBefore computes a
// "true index" that counts element siblings alone. Native insertion then
// picks one strategy, in this order:
//
//  1. child flagged registry.FlagSkipNative: nothing to do
//  2. parent flagged registry.FlagNoChildren: nothing to do
//  3. parent registered with NodeOps: the override owns the mutation
//  4. child has a nodeRole: reflect into the parent property of that name
//  5. otherwise: report an integration gap (W010)
//
// Integration gaps are logged and passed to the Observer. The virtual tree
// keeps the mutation even when the native side did not change, so later
// corrective mutations can still succeed.
//
// # Concurrency
//
// A Document and its nodes are not safe for concurrent use. One owner, the
// reconciliation pass, performs every mutation synchronously.
package dom
