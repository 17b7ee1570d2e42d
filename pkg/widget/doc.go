// Package widget defines the capability surface widgetdom requires of a
// native toolkit object.
//
// The tree never depends on a concrete toolkit. A widget only has to be
// constructible through a Factory and expose named-property get/set. Text
// content, class defaults and events are optional capabilities discovered
// with type assertions:
//
//	Widget       Class, Get, Set          (required)
//	TextWidget   Text, SetText            (text children, "text" attribute)
//	Defaulter    DefaultValue             (role removal, attribute removal)
//	EventWidget  Add/RemoveEventListener  (event forwarding)
//
// Base is a map-backed implementation with per-class defaults and
// read-only names that toolkit adapters can embed.
package widget
