package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	templates := []string{"mutual-nda"}

	tests := []struct {
		shell Shell
		want  []string
	}{
		{ShellBash, []string{
			"complete -F _ndagen ndagen",
			"-o|--output)",
			"compgen -f -X '!*.docx'",
			`-t|--template)`,
			`compgen -W "mutual-nda"`,
			`--date-format)`,
			`"european iso long stamp us"`,
		}},
		{ShellZsh, []string{
			"#compdef ndagen",
			"'generate:Generate the agreement'",
			`'(-o --output)'{-o,--output}`,
			`:file:_files -g "*.docx"'`,
			"'--json[print the summary as JSON]'",
			"'1:argument:(bash zsh fish)'",
		}},
		{ShellFish, []string{
			"complete -c ndagen -f",
			"complete -c ndagen -n __fish_use_subcommand -a verify",
			"complete -c ndagen -n '__fish_use_subcommand; or __fish_seen_subcommand_from generate' -l output -s o -rF",
			"-l template -s t -xa 'mutual-nda'",
			"complete -c ndagen -n '__fish_seen_subcommand_from verify' -F",
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.shell), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, templates); err != nil {
				t.Fatalf("GenerateCompletion() error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := GenerateCompletion(&buf, Shell("powershell"), nil)
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("error = %v, want ErrUnsupportedShell", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for unsupported shell", buf.Len())
	}
}

func TestGetCommands_FlagsMatchParsers(t *testing.T) {
	t.Parallel()

	for _, c := range getCommands(nil) {
		for _, f := range c.Flags {
			if f.Long == "" {
				t.Errorf("%s: flag without long name", c.Name)
			}
			if f.Desc == "" {
				t.Errorf("%s --%s: empty description", c.Name, f.Long)
			}
		}
	}

	gen := getCommands(nil)[0]
	var longs []string
	for _, f := range gen.Flags {
		longs = append(longs, f.Long)
	}
	if got := strings.Join(longs, ","); got != "output,template,quiet,verbose" {
		t.Errorf("generate flags = %s", got)
	}
}

func TestRunCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		want     string
	}{
		{"usage", []string{"completion"}, ExitSuccess, "Usage: ndagen completion <shell>"},
		{"bash", []string{"completion", "bash"}, ExitSuccess, "complete -F _ndagen ndagen"},
		{"unsupported", []string{"completion", "tcsh"}, ExitUsage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			if code := runMain(tt.args, env); code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d; stderr: %s", tt.args, code, tt.wantCode, stderr)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.want)
			}
		})
	}
}
