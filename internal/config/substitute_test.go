package config

import (
	"errors"
	"strings"
	"testing"
)

func TestSubstitute(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"HOME":  "/home/alice",
		"STACK": "prod",
	}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{name: "no references", template: "/var/log/squadconv", want: "/var/log/squadconv"},
		{name: "braced", template: "${HOME}/logs", want: "/home/alice/logs"},
		{name: "bare", template: "$HOME/logs", want: "/home/alice/logs"},
		{name: "several", template: "${HOME}/logs/${STACK}", want: "/home/alice/logs/prod"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Substitute(tc.template, env)
			if err != nil {
				t.Fatalf("Substitute returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Substitute(%q) = %q, want %q", tc.template, got, tc.want)
			}
		})
	}
}

func TestSubstituteUndefinedVariable(t *testing.T) {
	t.Parallel()

	_, err := Substitute("${NOPE}/${ALSO_NOPE}/${NOPE}", map[string]string{})
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected ErrUndefinedVariable, got %v", err)
	}
	if !strings.Contains(err.Error(), "ALSO_NOPE, NOPE") {
		t.Fatalf("expected sorted unique names in error, got %q", err.Error())
	}
}

func TestSubstituteEmptyValueIsDefined(t *testing.T) {
	t.Parallel()

	got, err := Substitute("logs${SUFFIX}", map[string]string{"SUFFIX": ""})
	if err != nil {
		t.Fatalf("Substitute returned error: %v", err)
	}
	if got != "logs" {
		t.Fatalf("expected logs, got %q", got)
	}
}

func TestEnvMap(t *testing.T) {
	t.Parallel()

	env := EnvMap([]string{"A=1", "B=x=y", "EMPTY=", "junk", "=nokey", "A=2"})

	if env["A"] != "2" {
		t.Fatalf("expected later duplicate to win, got %q", env["A"])
	}
	if env["B"] != "x=y" {
		t.Fatalf("expected value split on first '=', got %q", env["B"])
	}
	if v, ok := env["EMPTY"]; !ok || v != "" {
		t.Fatalf("expected EMPTY to be defined and empty")
	}
	if _, ok := env["junk"]; ok {
		t.Fatalf("entries without '=' must be skipped")
	}
	if len(env) != 3 {
		t.Fatalf("unexpected env map: %v", env)
	}
}

func TestResolveLogDir(t *testing.T) {
	t.Parallel()

	l := Logging{LogDir: "${HOME}/.squadconv/logs", Verbosity: "info"}

	dir, err := l.ResolveLogDir(map[string]string{"HOME": "/root"})
	if err != nil {
		t.Fatalf("ResolveLogDir returned error: %v", err)
	}
	if dir != "/root/.squadconv/logs" {
		t.Fatalf("unexpected dir: %s", dir)
	}

	if _, err := l.ResolveLogDir(nil); !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected ErrUndefinedVariable, got %v", err)
	}
}
