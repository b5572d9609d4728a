// Package transcoder converts a Squad document from one serialization format
// to another, writing the result to a file or to standard output.
package transcoder

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/eugenenazirov/squadconv/internal/model"
)

var (
	// ErrReadInput is returned when the input file cannot be read.
	ErrReadInput = errors.New("cannot read input")
	// ErrMalformedInput is returned when the input does not decode into a squad.
	ErrMalformedInput = errors.New("malformed input")
	// ErrEncodeOutput is returned when the squad cannot be serialized.
	ErrEncodeOutput = errors.New("cannot encode output")
	// ErrWriteOutput is returned when the output cannot be created or written.
	ErrWriteOutput = errors.New("cannot write output")
	// ErrUnknownFormat is returned for a format name outside json and yaml.
	ErrUnknownFormat = errors.New("unknown format")
)

// Option configures a Transcoder.
type Option func(*Transcoder)

// WithFormats sets the source and target formats.
func WithFormats(from, to Format) Option {
	return func(t *Transcoder) {
		t.from = from
		t.to = to
	}
}

// WithStdout overrides the writer used when no output path is given.
func WithStdout(w io.Writer) Option {
	return func(t *Transcoder) {
		t.stdout = w
	}
}

// Transcoder reads a squad in one format and writes it in another.
type Transcoder struct {
	from, to Format
	decoder  Codec
	encoder  Codec
	stdout   io.Writer
	logger   *zap.Logger
}

// New creates a Transcoder. The defaults convert JSON into YAML on os.Stdout.
func New(logger *zap.Logger, opts ...Option) (*Transcoder, error) {
	t := &Transcoder{
		from:   JSON,
		to:     YAML,
		stdout: os.Stdout,
		logger: logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = zap.NewNop()
	}

	var err error
	if t.decoder, err = CodecFor(t.from); err != nil {
		return nil, fmt.Errorf("source format: %w", err)
	}
	if t.encoder, err = CodecFor(t.to); err != nil {
		return nil, fmt.Errorf("target format: %w", err)
	}
	return t, nil
}

// Transcode reads inputPath, decodes it as a squad and writes the encoded
// result to outputPath, or to stdout followed by a newline when outputPath
// is empty. Nothing is written unless decoding and encoding succeed.
func (t *Transcoder) Transcode(inputPath, outputPath string) error {
	squad, err := t.Read(inputPath)
	if err != nil {
		return err
	}
	t.logger.Info("input squad decoded",
		zap.String("squad", squad.SquadName),
		zap.Int("members", len(squad.Members)),
	)
	t.logger.Debug("input squad", zap.Any("squad", squad))

	return t.Write(squad, outputPath)
}

// Read decodes the squad stored at path in the source format.
func (t *Transcoder) Read(path string) (model.Squad, error) {
	t.logger.Info("reading input", zap.String("path", path), zap.String("format", string(t.from)))

	data, err := os.ReadFile(path)
	if err != nil {
		return model.Squad{}, fmt.Errorf("%w %q: %w", ErrReadInput, path, err)
	}

	var squad model.Squad
	if err := t.decoder.Decode(data, &squad); err != nil {
		return model.Squad{}, fmt.Errorf("%w %q: %w", ErrMalformedInput, path, err)
	}
	return squad, nil
}

// Write encodes squad in the target format to path, or to stdout when path is empty.
func (t *Transcoder) Write(squad model.Squad, path string) error {
	out, err := t.encoder.Encode(squad)
	if err != nil {
		return fmt.Errorf("%w as %s: %w", ErrEncodeOutput, t.to, err)
	}

	if path == "" {
		t.logger.Info("writing output to stdout", zap.String("format", string(t.to)))
		if _, err := t.stdout.Write(append(out, '\n')); err != nil {
			return fmt.Errorf("%w to stdout: %w", ErrWriteOutput, err)
		}
		return nil
	}

	t.logger.Info("writing output", zap.String("path", path), zap.String("format", string(t.to)))
	if err := writeFileAtomic(path, out); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteOutput, path, err)
	}
	return nil
}
