package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/widgetdom/pkg/devtools"
	"github.com/vango-dev/widgetdom/pkg/dom"
	"github.com/vango-dev/widgetdom/pkg/metrics"
	"github.com/vango-dev/widgetdom/pkg/tracing"
	"github.com/vango-dev/widgetdom/pkg/widget"
	"github.com/vango-dev/widgetdom/pkg/widgets"
)

func demoCmd(g *globals) *cobra.Command {
	var showMutations bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Build the demo tree and print it",
		Long: `Build a small window with the bundled widget set, press its
button once, and print the resulting virtual tree.

Examples:
  widgetdom demo
  widgetdom demo --mutations`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hub := devtools.NewHub(g.cfg.Devtools.History)
			doc, err := g.newDocument(prometheus.NewRegistry(), hub)
			if err != nil {
				return err
			}
			root, err := buildDemo(doc)
			if err != nil {
				return err
			}
			pressDemoButton(root)

			out := cmd.OutOrStdout()
			if showMutations {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(hub.History())
			}

			fmt.Fprint(out, dom.Dump(root))
			gaps := 0
			for _, rec := range hub.History() {
				if rec.Code != "" {
					gaps++
				}
			}
			success(out, "%d records, %d integration gaps", len(hub.History()), gaps)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMutations, "mutations", false, "Print the mutation records as JSON instead of the tree")

	return cmd
}

// newDocument builds a document wired to the configured observers.
// Metrics register on reg.
func (g *globals) newDocument(reg prometheus.Registerer, extra ...dom.Observer) (*dom.Document, error) {
	widgetReg, err := newRegistry()
	if err != nil {
		return nil, err
	}

	observers := extra
	if g.cfg.Metrics.Enabled {
		observers = append(observers, metrics.New(
			metrics.WithRegistry(reg),
			metrics.WithNamespace(g.cfg.Metrics.Namespace),
		))
	}
	if g.cfg.Tracing.Enabled {
		observers = append(observers, tracing.New(tracing.WithTracerName(g.cfg.Tracing.TracerName)))
	}

	return dom.NewDocument(
		dom.WithRegistry(widgetReg),
		dom.WithLogger(g.logger),
		dom.WithWarnNoChildren(g.cfg.DOM.WarnNoChildren),
		dom.WithObserver(observers...),
	), nil
}

// buildDemo mounts a window using every child strategy of the bundled
// widget set.
func buildDemo(doc *dom.Document) (*dom.Root, error) {
	create := func(tag string, attrs map[string]any) (*dom.Element, error) {
		el, err := doc.CreateElement(tag)
		if err != nil {
			return nil, err
		}
		for name, value := range attrs {
			if err := el.SetAttribute(name, value); err != nil {
				return nil, err
			}
		}
		return el, nil
	}

	win, err := create(widgets.TagWindow, map[string]any{widgets.PropTitle: "widgetdom demo"})
	if err != nil {
		return nil, err
	}

	menu, err := create(widgets.TagMenu, map[string]any{dom.AttrNodeRole: widgets.PropMenuBar})
	if err != nil {
		return nil, err
	}
	for _, label := range []string{"Open", "Quit"} {
		item, err := create(widgets.TagMenuItem, map[string]any{
			dom.AttrNodeRole: widgets.PropItems,
			dom.SkinIOS:      map[string]any{"position": "right"},
		})
		if err != nil {
			return nil, err
		}
		item.AppendChild(doc.CreateTextNode(label))
		menu.AppendChild(item)
	}
	win.AppendChild(menu)

	content, err := create(widgets.TagView, map[string]any{dom.AttrNodeRole: widgets.PropContent})
	if err != nil {
		return nil, err
	}
	greeting, err := create(widgets.TagText, nil)
	if err != nil {
		return nil, err
	}
	greeting.AppendChild(doc.CreateTextNode("Hello, "))
	greeting.AppendChild(doc.CreateTextNode("widgets"))

	button, err := create(widgets.TagButton, map[string]any{dom.AttrText: "Press me"})
	if err != nil {
		return nil, err
	}
	logger := doc.Logger()
	button.AddEventListener(widgets.EventTap, widget.NewListener(func(ev widget.Event) any {
		logger.Info("button tapped", slog.String("event", ev.Type))
		return nil
	}))

	logo, err := create(widgets.TagImage, map[string]any{widgets.PropSource: "logo.png"})
	if err != nil {
		return nil, err
	}
	tmpl, err := create(widgets.TagTemplate, nil)
	if err != nil {
		return nil, err
	}
	tmpl.AppendChild(doc.CreateComment("row template"))

	content.AppendChild(greeting)
	content.AppendChild(doc.CreateComment("actions"))
	content.AppendChild(button)
	content.InsertBefore(logo, button)
	content.AppendChild(tmpl)
	win.AppendChild(content)

	root := dom.NewRoot()
	root.SetBaseRef(win)
	return root, nil
}

// pressDemoButton finds the first button below root and presses it.
func pressDemoButton(root *dom.Root) {
	el := findElement(root, func(el *dom.Element) bool {
		_, ok := el.Widget().(*widgets.Button)
		return ok
	})
	if el != nil {
		el.Widget().(*widgets.Button).Press()
	}
}

// demoGreeting returns the last text node of the demo's text element.
func demoGreeting(root *dom.Root) *dom.Text {
	el := findElement(root, func(el *dom.Element) bool {
		return el.TagName() == widgets.TagText
	})
	if el == nil {
		return nil
	}
	t, _ := el.LastChild().(*dom.Text)
	return t
}

// findElement walks the tree below root depth first and returns the first
// element match accepts.
func findElement(root *dom.Root, match func(*dom.Element) bool) *dom.Element {
	var walk func(n dom.Node) *dom.Element
	walk = func(n dom.Node) *dom.Element {
		if el, ok := n.(*dom.Element); ok && match(el) {
			return el
		}
		for _, c := range n.Children() {
			if found := walk(c); found != nil {
				return found
			}
		}
		return nil
	}
	if base := root.BaseRef(); base != nil {
		return walk(base)
	}
	return nil
}
