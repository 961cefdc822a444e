package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/nexusdoc/internal/dialect"
)

const sampleDoc = `<document><header><report_title title="Cold Chain"/></header>` +
	`<executive_summary>Ports near capacity.</executive_summary></document>`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if err != nil {
		return 1
	}
	return 0
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantCode int
		wantOut  string
	}{
		{"complete nidl", []string{"render", "-d", "nidl"}, sampleDoc, 0, "Ports near capacity."},
		{"truncated nidl", []string{"render", "-d", "nidl", "-"}, "<document><header>", 2, "Report Incomplete"},
		{"malformed nidl", []string{"render", "-d", "nidl"}, "<document><x></document>", 2, "Error Parsing Report Data"},
		{"markdown", []string{"render", "-d", "markdown"}, "## Summary\nText", 0, "<h2>Summary</h2>"},
		{"unknown dialect", []string{"render", "-d", "pdf"}, "x", 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.stdin, tt.args...)
			if got := exitCode(err); got != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (err %v)", got, tt.wantCode, err)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output missing %q: %s", tt.wantOut, out)
			}
		})
	}
}

func TestReplayCommand(t *testing.T) {
	out, err := execute(t, sampleDoc, "replay", "-d", "nidl", "--chunk-size", "40", "--html=false")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// 4 chunk lines and the final line.
	if len(lines) != 5 {
		t.Fatalf("expected 5 trace lines, got %d:\n%s", len(lines), out)
	}
	for _, l := range lines[:3] {
		if !strings.HasSuffix(l, "mode pending") {
			t.Errorf("expected pending before the closing tag: %q", l)
		}
	}
	if !strings.HasSuffix(lines[3], "mode complete") || lines[4] != "final\tbytes 131\tmode complete" {
		t.Errorf("expected complete once the document closes:\n%s", out)
	}
}

func TestReplayCommand_Truncated(t *testing.T) {
	out, err := execute(t, "<document><header>", "replay", "-d", "nidl", "--chunk-size", "8", "--html")
	if exitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %v", err)
	}
	if !strings.Contains(out, "final\tbytes 18\tmode error") || !strings.Contains(out, "Report Incomplete") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestGeneratePrompt(t *testing.T) {
	defer func() { generateTopic, generateContent, generateParams = "", "", "" }()

	generateTopic, generateContent = "Port congestion", "Da Nang is at 92% capacity."
	name, prompt, err := generatePrompt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != dialect.NADL || !strings.Contains(prompt.User, "Port congestion") {
		t.Errorf("unexpected analysis prompt: %s %+v", name, prompt)
	}

	generateTopic, generateContent = "", ""
	if _, _, err := generatePrompt(); err == nil {
		t.Error("expected error without params or topic")
	}
}
