package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "W001",
			wantMsg: "Element already registered",
			wantCat: CategoryConfig,
		},
		{
			name:    "integration gap",
			code:    "W011",
			wantMsg: "Widget does not implement a text API",
			wantCat: CategoryIntegration,
		},
		{
			name:    "runtime error",
			code:    "W020",
			wantMsg: "Capture-phase listeners are not supported",
			wantCat: CategoryRuntime,
		},
		{
			name:    "unknown error code",
			code:    "W999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryRuntime, "node %d not found", 7)
	if err.Message != "node 7 not found" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if err.Error() != "node 7 not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestErrorString(t *testing.T) {
	err := New("W002").WithDetail(`tag "slider"`)
	want := `W002: No known widget for element (tag "slider")`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("createElement: %w", New("W002").WithDetail("x"))

	if !stderrors.Is(err, New("W002")) {
		t.Error("expected errors.Is to match by code through wrapping")
	}
	if stderrors.Is(err, New("W001")) {
		t.Error("errors.Is matched a different code")
	}
	if stderrors.Is(New("W002"), Newf(CategoryConfig, "no code")) {
		t.Error("codeless target must not match")
	}
}

func TestWrapAndFromError(t *testing.T) {
	cause := stderrors.New("boom")
	err := FromError(cause, "W015")
	if err.Code != "W015" {
		t.Errorf("Code = %q", err.Code)
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable through Unwrap")
	}

	existing := New("W016")
	if FromError(existing, "W015") != existing {
		t.Error("FromError should return an existing *Error unchanged")
	}
	if FromError(nil, "W015") != nil {
		t.Error("FromError(nil) should be nil")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(fmt.Errorf("wrap: %w", New("W012"))); got != "W012" {
		t.Errorf("CodeOf = %q, want W012", got)
	}
	if got := CodeOf(stderrors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("W010").
		WithDetail("parent window has no nodeOps and child button has no nodeRole").
		Wrap(stderrors.New("inner"))

	out := err.Format()
	for _, want := range []string{
		"WARN W010: Cannot reflect child into parent widget",
		"parent window has no nodeOps",
		"Caused by: inner",
		"Hint: Give the parent widget nodeOps",
		"Learn more: https://vango.dev/docs/widgetdom/errors/W010",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q\n%s", want, out)
		}
	}

	if out := New("W001").Format(); !strings.Contains(out, "ERROR W001") {
		t.Errorf("config errors should render as ERROR, got %q", out)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New("W017").
		WithDetail("property \"pad\tding\x01\"").
		Wrap(stderrors.New("inner"))

	js := err.FormatJSON()
	var got map[string]string
	if jerr := json.Unmarshal([]byte(js), &got); jerr != nil {
		t.Fatalf("FormatJSON() is not valid JSON: %v\n%s", jerr, js)
	}
	want := map[string]string{
		"code":     "W017",
		"category": "integration",
		"message":  "Attribute cannot be removed",
		"detail":   "property \"pad\tding\x01\"",
		"cause":    "inner",
		"docUrl":   "https://vango.dev/docs/widgetdom/errors/W017",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
	if _, ok := got["suggestion"]; !ok {
		t.Errorf("suggestion missing: %s", js)
	}
	if js := New("W020").FormatJSON(); strings.Contains(js, "suggestion") {
		t.Errorf("empty suggestion should be omitted: %s", js)
	}
}

func TestPrintErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	PrintErrorJSON(&buf, stderrors.New("unknown flag: --bogus"), "W033")

	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("PrintErrorJSON wrote invalid JSON: %v\n%s", err, buf.String())
	}
	if got["code"] != "W033" || got["cause"] != "unknown flag: --bogus" {
		t.Errorf("PrintErrorJSON(plain) = %s", buf.String())
	}

	buf.Reset()
	PrintErrorJSON(&buf, fmt.Errorf("load: %w", New("W031").WithDetail("log: bad")), "W033")
	if !strings.Contains(buf.String(), `"code":"W031"`) {
		t.Errorf("coded errors keep their code, got %s", buf.String())
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("PrintError(plain) = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, New("W003"))
	if !strings.Contains(buf.String(), "W003: Element registry is sealed") {
		t.Errorf("PrintError(coded) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six seven", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six seven" {
		t.Errorf("wrapText lost words: %v", lines)
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}

func TestAllCodesHaveTemplates(t *testing.T) {
	for code, tpl := range registry {
		if tpl.Message == "" || tpl.Category == "" {
			t.Errorf("code %s has incomplete template", code)
		}
		if !strings.HasSuffix(tpl.DocURL, code) {
			t.Errorf("code %s DocURL %q does not end with code", code, tpl.DocURL)
		}
	}
}
