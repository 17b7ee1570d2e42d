// Package registry maps element tag names to native widget factories.
//
// Tag names are normalized before every registration and lookup, so the
// spelling variants a template may use ("menu-bar", "menuBar", "MenuBar")
// resolve to one entry. A registry is populated at startup and then
// sealed; after Seal it is read-only and safe to share.
//
// Each entry carries Meta describing how its widget accepts children. The
// child-insertion strategy is resolved once, at registration time, into a
// ChildStrategy:
//
//	ChildrenRejected   the widget never hosts children (FlagNoChildren)
//	ChildrenOverride   Meta.NodeOps owns every native insert and remove
//	ChildrenByRole     children are reflected into the property named by
//	                   the child's nodeRole
//
// # Usage
//
//	reg := registry.New()
//	reg.MustRegister("window", newWindow)
//	reg.MustRegister("image", newImage, registry.Meta{ViewFlags: registry.FlagNoChildren})
//	reg.Seal()
package registry
