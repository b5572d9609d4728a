package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/squadconv/internal/config"
	"github.com/eugenenazirov/squadconv/internal/logging"
	"github.com/eugenenazirov/squadconv/internal/model"
	"github.com/eugenenazirov/squadconv/internal/stack"
	"github.com/eugenenazirov/squadconv/internal/transcoder"
)

const (
	settingsDir = "../../settings"
	exampleJSON = "../../examples/squad.json"
)

func TestShippedSettings(t *testing.T) {
	defaults, err := config.Load(settingsDir, nil)
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if defaults.Logging.Verbosity != "info" {
		t.Fatalf("unexpected default verbosity %q", defaults.Logging.Verbosity)
	}

	for _, s := range stack.All() {
		s := s
		settings, err := config.Load(settingsDir, &s)
		if err != nil {
			t.Fatalf("load %s settings: %v", s, err)
		}
		if settings.Logging.LogDir != defaults.Logging.LogDir {
			t.Fatalf("%s: expected log dir inherited from defaults, got %q", s, settings.Logging.LogDir)
		}
		if _, err := logging.ParseLevel(settings.Logging.Verbosity); err != nil {
			t.Fatalf("%s: verbosity %q is not a log level: %v", s, settings.Logging.Verbosity, err)
		}
	}
}

func TestIntegrationFlow(t *testing.T) {
	home := t.TempDir()
	tag := stack.Test

	settings, err := config.Load(settingsDir, &tag)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	logDir, err := settings.Logging.ResolveLogDir(map[string]string{"HOME": home})
	if err != nil {
		t.Fatalf("resolve log dir: %v", err)
	}

	logger, err := logging.New(logging.Options{Dir: logDir, Level: settings.Logging.Verbosity, Console: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(func() { _ = logger.Close() })

	yamlOut := filepath.Join(t.TempDir(), "squad.yaml")
	toYAML, err := transcoder.New(logger.Logger)
	if err != nil {
		t.Fatalf("new transcoder: %v", err)
	}
	if err := toYAML.Transcode(exampleJSON, yamlOut); err != nil {
		t.Fatalf("json to yaml: %v", err)
	}

	var stdout bytes.Buffer
	toJSON, err := transcoder.New(zaptest.NewLogger(t), transcoder.WithFormats(transcoder.YAML, transcoder.JSON), transcoder.WithStdout(&stdout))
	if err != nil {
		t.Fatalf("new transcoder: %v", err)
	}
	if err := toJSON.Transcode(yamlOut, ""); err != nil {
		t.Fatalf("yaml to json: %v", err)
	}

	original, err := toYAML.Read(exampleJSON)
	if err != nil {
		t.Fatalf("read example: %v", err)
	}

	var back model.Squad
	codec, err := transcoder.CodecFor(transcoder.JSON)
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	if err := codec.Decode(bytes.TrimSpace(stdout.Bytes()), &back); err != nil {
		t.Fatalf("decode final JSON: %v", err)
	}
	if !back.Equal(original) {
		t.Fatalf("round trip changed the squad:\n%+v\n%+v", back, original)
	}
	if len(back.Members) != 3 || back.Members[2].Age != 1000000 {
		t.Fatalf("unexpected members: %+v", back.Members)
	}

	yamlData, err := os.ReadFile(yamlOut)
	if err != nil {
		t.Fatalf("read yaml output: %v", err)
	}
	var generic map[string]any
	if err := yaml.Unmarshal(yamlData, &generic); err != nil {
		t.Fatalf("yaml output is not valid YAML: %v", err)
	}
	if generic["squadName"] != "Super hero squad" {
		t.Fatalf("expected camelCase squadName key, got %v", generic)
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("close logger: %v", err)
	}
	entries, err := os.ReadDir(logDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one log file in %s, got %v (%v)", logDir, entries, err)
	}
}
