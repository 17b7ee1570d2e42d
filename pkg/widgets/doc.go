// Package widgets is a small in-memory widget toolkit used by the demo
// command and by integration tests.
//
// Each widget type exercises one way the dom package reflects children
// into native widgets:
//
//	view      explicit NodeOps over an ordered child list
//	window    single-value slots ("content", "menuBar") filled by nodeRole
//	menu      an "items" collection filled by nodeRole
//	text      text API, children are text nodes
//	button    text API plus a "tap" event
//	menuItem  text API plus read-only ios/android property bags
//	image     rejects children
//	template  never reaches the native side
//
// Install registers all of them:
//
//	r := registry.New()
//	if err := widgets.Install(r); err != nil {
//	    return err
//	}
//	r.Seal()
package widgets
