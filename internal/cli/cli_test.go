// Copyright (c) 2025 InsightPaper Labs
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"testing"
)

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{
		"what", "is", "this",
		"--file", "/tmp/paper.pdf",
		"--chat=42",
		"--json",
	})

	if got := p.Rest(); got != "what is this" {
		t.Errorf("Rest = %q", got)
	}
	if got := p.Flag("file"); got != "/tmp/paper.pdf" {
		t.Errorf("file = %q", got)
	}
	if got := p.Flag("chat"); got != "42" {
		t.Errorf("chat = %q", got)
	}
	if !p.BoolFlag("json") {
		t.Error("json flag not set")
	}
	if p.BoolFlag("missing") {
		t.Error("missing flag reported as set")
	}
}

func TestArgParserShortFlag(t *testing.T) {
	p := NewArgParser([]string{"-f", "doc.docx", "summarize"})
	if got := p.Flag("f"); got != "doc.docx" {
		t.Errorf("f = %q", got)
	}
	if got := p.Rest(); got != "summarize" {
		t.Errorf("Rest = %q", got)
	}
}

func TestArgParserFlagOr(t *testing.T) {
	p := NewArgParser([]string{"--username", "rivera"})
	if got := p.FlagOr("username", "x"); got != "rivera" {
		t.Errorf("FlagOr = %q", got)
	}
	if got := p.FlagOr("absent", "fallback"); got != "fallback" {
		t.Errorf("FlagOr fallback = %q", got)
	}
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		args []string
		want Command
	}{
		{[]string{"insight-tui"}, CmdTUI},
		{[]string{"insight-tui", "login"}, CmdLogin},
		{[]string{"insight-tui", "logout"}, CmdLogout},
		{[]string{"insight-tui", "status"}, CmdStatus},
		{[]string{"insight-tui", "chats"}, CmdChats},
		{[]string{"insight-tui", "ask", "hello"}, CmdAsk},
		{[]string{"insight-tui", "version"}, CmdVersion},
		{[]string{"insight-tui", "--version"}, CmdVersion},
		{[]string{"insight-tui", "help"}, CmdHelp},
		{[]string{"insight-tui", "--some-flag"}, CmdTUI},
	}

	orig := os.Args
	defer func() { os.Args = orig }()

	for _, tt := range tests {
		os.Args = tt.args
		cmd, _ := Parse()
		if cmd != tt.want {
			t.Errorf("Parse(%v) = %d, want %d", tt.args, cmd, tt.want)
		}
	}
}

func TestParseAskArgsPassedThrough(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()

	os.Args = []string{"insight-tui", "ask", "what", "--file", "a.pdf"}
	cmd, rest := Parse()
	if cmd != CmdAsk {
		t.Fatalf("cmd = %d", cmd)
	}
	p := NewArgParser(rest)
	if p.Rest() != "what" || p.Flag("file") != "a.pdf" {
		t.Errorf("rest parsed wrong: %q %q", p.Rest(), p.Flag("file"))
	}
}
