package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/widgetdom/pkg/devtools"
	"github.com/vango-dev/widgetdom/pkg/dom"
	"github.com/vango-dev/widgetdom/pkg/domtest"
	"github.com/vango-dev/widgetdom/pkg/widget"
	"github.com/vango-dev/widgetdom/pkg/widgets"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--config", t.TempDir(), "--no-color"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionShort(t *testing.T) {
	out, _, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestTags(t *testing.T) {
	out, _, err := run(t, "tags")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.Contains(t, lines[0], "CHILDREN")
	assert.Contains(t, out, "skip-native")
	assert.Contains(t, out, "no-children")
	assert.Contains(t, out, "menuItem")
}

func TestDemoPrintsTree(t *testing.T) {
	out, _, err := run(t, "demo")
	require.NoError(t, err)

	assert.Contains(t, out, "Root:Element:window")
	assert.Contains(t, out, "<Menu> role=menuBar")
	assert.Contains(t, out, "<View> role=content")
	assert.Contains(t, out, "0 integration gaps")
}

func TestDemoMutationsJSON(t *testing.T) {
	out, _, err := run(t, "demo", "--mutations")
	require.NoError(t, err)

	var records []devtools.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.NotEmpty(t, records)
	assert.Equal(t, "create", records[0].Op)
	for _, rec := range records {
		assert.Empty(t, rec.Code, "unexpected gap %+v", rec)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "widgetdom.yaml"), []byte("log:\n  format: xml\n"), 0644))

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{"--config", dir, "tags"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "W031")
}

func TestLogLevelOverride(t *testing.T) {
	_, _, err := run(t, "--log-level", "loud", "tags")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "W031")
}

func TestErrorsFollowLogFormat(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "widgetdom.yaml"), []byte("log:\n  format: json\n"), 0644))

	var stdout, stderr bytes.Buffer
	code := execute([]string{"--config", dir, "--log-level", "loud", "tags"}, &stdout, &stderr)
	require.Equal(t, 1, code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &got), stderr.String())
	assert.Equal(t, "W031", got["code"])
	assert.Contains(t, got["detail"], "log")

	stderr.Reset()
	code = execute([]string{"--config", t.TempDir(), "--no-color", "--log-level", "loud", "tags"}, &stdout, &stderr)
	require.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "ERROR W031: Invalid configuration")
}

func TestBuildDemoStructure(t *testing.T) {
	doc, rec := domtest.NewDocument(t)
	root, err := buildDemo(doc)
	require.NoError(t, err)
	require.Empty(t, rec.Codes())

	win := root.BaseRef().Widget().(*widgets.Window)
	menu := win.MenuBar().(*widgets.Menu)
	require.Len(t, menu.Items(), 2)
	assert.Equal(t, "Open", menu.Items()[0].(*widgets.MenuItem).Text())

	view := win.Content().(*widgets.View)
	children := view.Children()
	require.Len(t, children, 3, "template stays out of the native tree")
	assert.Equal(t, "Hello, widgets", children[0].(*widgets.Text).Text())
	assert.IsType(t, &widgets.Image{}, children[1])
	assert.IsType(t, &widgets.Button{}, children[2])

	taps := 0
	el, ok := doc.ElementFor(children[2])
	require.True(t, ok)
	el.AddEventListener(widgets.EventTap, countingListener(&taps))
	pressDemoButton(root)
	assert.Equal(t, 1, taps)

	assert.NotEmpty(t, rec.Mutations(dom.OpSetAttribute))
}

func TestTickDemoRewritesGreeting(t *testing.T) {
	doc, rec := domtest.NewDocument(t)
	root, err := buildDemo(doc)
	require.NoError(t, err)
	rec.Reset()

	greeting := demoGreeting(root)
	require.NotNil(t, greeting)
	label := greeting.Parent().(*dom.Element).Widget().(*widgets.Text)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		tickDemo(ctx, root, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return len(rec.Mutations(dom.OpSetAttribute)) >= 2
	}, time.Second, time.Millisecond)
	cancel()
	<-done

	assert.Regexp(t, `^Hello, widgets #\d+$`, label.Text())
	assert.Empty(t, rec.Codes())
}

func countingListener(n *int) *widget.Listener {
	return widget.NewListener(func(widget.Event) any { *n++; return nil })
}
