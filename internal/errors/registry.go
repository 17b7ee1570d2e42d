package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
	DocURL     string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (W001-W009)
	// ============================================

	"W001": {
		Category:   CategoryConfig,
		Message:    "Element already registered",
		Suggestion: "Tag names are compared after case and separator folding; pick a distinct name",
		DocURL:     "https://vango.dev/docs/widgetdom/errors/W001",
	},
	"W002": {
		Category:   CategoryConfig,
		Message:    "No known widget for element",
		Suggestion: "Register the element before rendering any template that uses it",
		DocURL:     "https://vango.dev/docs/widgetdom/errors/W002",
	},
	"W003": {
		Category:   CategoryConfig,
		Message:    "Element registry is sealed",
		Suggestion: "Register all elements during startup, before the first document is built",
		DocURL:     "https://vango.dev/docs/widgetdom/errors/W003",
	},
	"W004": {
		Category:   CategoryConfig,
		Message:    "Incomplete nodeOps",
		Suggestion: "nodeOps must provide both Insert and Remove",
		DocURL:     "https://vango.dev/docs/widgetdom/errors/W004",
	},
	"W005": {
		Category:   CategoryConfig,
		Message:    "Invalid widget factory result",
		Suggestion: "Factories must return a non-nil, comparable widget (usually a pointer)",
		DocURL:     "https://vango.dev/docs/widgetdom/errors/W005",
	},

	// ============================================
	// Integration Gaps (W010-W019)
	// ============================================

	"W010": {
		Category:   CategoryIntegration,
		Message:    "Cannot reflect child into parent widget",
		Suggestion: "Give the parent widget nodeOps, or set a nodeRole on the child",
		DocURL:     "https://vango.dev/docs/widgetdom/errors/W010",
	},
	"W011": {
		Category:   CategoryIntegration,
		Message:    "Widget does not implement a text API",
		Suggestion: "Only place text children in widgets that expose Text/SetText",
		DocURL:     "https://vango.dev/docs/widgetdom/errors/W011",
	},
	"W012": {
		Category:   CategoryIntegration,
		Message:    "Unsupported nodeRole value shape",
		Suggestion: "Explicitly implement nodeOps for the parent widget",
		DocURL:     "https://vango.dev/docs/widgetdom/errors/W012",
	},
	"W013": {
		Category:   CategoryIntegration,
		Message:    "Failed to reset nodeRole slot",
		Suggestion: "Explicitly implement nodeOps.Remove for the parent widget",
		DocURL:     "https://vango.dev/docs/widgetdom/errors/W013",
	},
	"W014": {
		Category: CategoryIntegration,
		Message:  "Parent widget does not accept children",
		DocURL:   "https://vango.dev/docs/widgetdom/errors/W014",
	},
	"W015": {
		Category: CategoryIntegration,
		Message:  "nodeOps override failed",
		DocURL:   "https://vango.dev/docs/widgetdom/errors/W015",
	},
	"W016": {
		Category: CategoryIntegration,
		Message:  "Attribute write failed",
		DocURL:   "https://vango.dev/docs/widgetdom/errors/W016",
	},
	"W017": {
		Category:   CategoryIntegration,
		Message:    "Attribute cannot be removed",
		Suggestion: "Declare a class default for the property, or set an explicit value instead",
		DocURL:     "https://vango.dev/docs/widgetdom/errors/W017",
	},
	"W018": {
		Category: CategoryIntegration,
		Message:  "Widget does not emit events",
		DocURL:   "https://vango.dev/docs/widgetdom/errors/W018",
	},

	// ============================================
	// Runtime Errors (W020-W029)
	// ============================================

	"W020": {
		Category: CategoryRuntime,
		Message:  "Capture-phase listeners are not supported",
		DocURL:   "https://vango.dev/docs/widgetdom/errors/W020",
	},
	"W021": {
		Category:   CategoryRuntime,
		Message:    "Node cannot contain itself",
		Suggestion: "A node cannot be inserted into itself or one of its descendants",
		DocURL:     "https://vango.dev/docs/widgetdom/errors/W021",
	},

	// ============================================
	// CLI and Config File Errors (W030-W039)
	// ============================================

	"W030": {
		Category:   CategoryCLI,
		Message:    "Config file error",
		Suggestion: "Check that widgetdom.json or widgetdom.yaml is readable and well-formed",
		DocURL:     "https://vango.dev/docs/widgetdom/errors/W030",
	},
	"W031": {
		Category: CategoryCLI,
		Message:  "Invalid configuration",
		DocURL:   "https://vango.dev/docs/widgetdom/errors/W031",
	},
	"W032": {
		Category: CategoryCLI,
		Message:  "Devtools server failed",
		DocURL:   "https://vango.dev/docs/widgetdom/errors/W032",
	},
	"W033": {
		Category: CategoryCLI,
		Message:  "Command failed",
		DocURL:   "https://vango.dev/docs/widgetdom/errors/W033",
	},
}
