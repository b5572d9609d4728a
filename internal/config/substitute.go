package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/drone/envsubst"
)

// ErrUndefinedVariable indicates a template references a variable missing from the environment.
var ErrUndefinedVariable = errors.New("undefined environment variable")

// Substitute expands $VAR and ${VAR} references in template using env.
// Every referenced variable must be defined in env.
func Substitute(template string, env map[string]string) (string, error) {
	var missing []string
	out, err := envsubst.Eval(template, func(name string) string {
		value, ok := env[name]
		if !ok {
			missing = append(missing, name)
		}
		return value
	})
	if err != nil {
		return "", fmt.Errorf("substitute %q: %w", template, err)
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		missing = slices.Compact(missing)
		return "", fmt.Errorf("substitute %q: %w: %s", template, ErrUndefinedVariable, strings.Join(missing, ", "))
	}
	return out, nil
}

// EnvMap converts KEY=VALUE pairs, as returned by os.Environ, into a map.
// Entries without '=' are skipped; later duplicates win.
func EnvMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// ResolveLogDir returns LogDir with environment references expanded.
func (l Logging) ResolveLogDir(env map[string]string) (string, error) {
	dir, err := Substitute(l.LogDir, env)
	if err != nil {
		return "", fmt.Errorf("resolve log dir: %w", err)
	}
	return dir, nil
}
