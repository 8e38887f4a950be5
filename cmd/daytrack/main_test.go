package main

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestCommandHelp(t *testing.T) {
	parser, err := kong.New(&CLI, parserOptions()...)
	if err != nil {
		t.Fatalf("kong.New failed: %v", err)
	}

	tests := []struct {
		command string
		want    []string
	}{
		{"export", []string{"JSON", "YAML"}},
		{"import", []string{"JSON", "YAML"}},
	}
	for _, tt := range tests {
		var node *kong.Node
		for _, child := range parser.Model.Children {
			if child.Name == tt.command {
				node = child
			}
		}
		if node == nil {
			t.Fatalf("command %q not registered", tt.command)
		}
		for _, w := range tt.want {
			if !strings.Contains(node.Help, w) {
				t.Errorf("%s help %q does not mention %s", tt.command, node.Help, w)
			}
		}
	}
}

func TestParseCommands(t *testing.T) {
	parser, err := kong.New(&CLI, parserOptions()...)
	if err != nil {
		t.Fatalf("kong.New failed: %v", err)
	}

	tests := []struct {
		args    []string
		command string
	}{
		{[]string{"export", "--format", "yaml"}, "export"},
		{[]string{"task", "add", "Stretch", "--daily"}, "task add <title>"},
		{[]string{"day", "2024-03-05"}, "day <date>"},
	}
	for _, tt := range tests {
		ctx, err := parser.Parse(tt.args)
		if err != nil {
			t.Fatalf("Parse(%v) failed: %v", tt.args, err)
		}
		if got := ctx.Command(); got != tt.command {
			t.Errorf("Parse(%v) command = %q, want %q", tt.args, got, tt.command)
		}
	}
}
