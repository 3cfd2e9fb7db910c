package format

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"

	"github.com/anchore/bomcodec/bomcodec"
	"github.com/anchore/bomcodec/bomcodec/bom"
	"github.com/anchore/bomcodec/bomcodec/format"
	"github.com/anchore/bomcodec/internal/log"
)

// DocumentWriter writes a document to one or more destinations.
type DocumentWriter interface {
	Write(doc *bom.Document) error
	Close() error
}

var _ DocumentWriter = (*documentMultiWriter)(nil)

var _ interface {
	io.Closer
	DocumentWriter
} = (*documentStreamWriter)(nil)

// EncodingConfig holds the encoder options shared by every destination.
type EncodingConfig struct {
	Options []bomcodec.Option
}

// MakeDocumentWriter creates a DocumentWriter for the given output options ("<format>" or "<format>=<file>").
// Either a valid writer or an error is returned, never both; when there is no error DocumentWriter.Close()
// should be called.
func MakeDocumentWriter(outputs []string, defaultFile string, stdout io.Writer, cfg EncodingConfig) (DocumentWriter, error) {
	outputOptions, err := parseOutputFlags(outputs, defaultFile, cfg)
	if err != nil {
		return nil, err
	}

	writer, err := newMultiWriter(stdout, outputOptions...)
	if err != nil {
		return nil, err
	}

	return writer, nil
}

// parseOutputFlags parses command-line output options, applying the default format and file
func parseOutputFlags(outputs []string, defaultFile string, cfg EncodingConfig) (out []documentWriterDescription, errs error) {
	if len(outputs) == 0 {
		outputs = append(outputs, format.JSONFormat.String())
	}

	for _, name := range outputs {
		name = strings.TrimSpace(name)

		// split to at most two parts for <format>=<file>
		parts := strings.SplitN(name, "=", 2)

		name = parts[0]

		// default to the --file or empty string if not specified
		file := defaultFile

		if len(parts) > 1 {
			file = parts[1]
		}

		f := format.Parse(name)

		if f == format.UnknownFormat {
			errs = multierror.Append(errs, fmt.Errorf(`unsupported output format "%s", supported formats are: %+v`, name, format.AvailableFormats))
			continue
		}

		out = append(out, newWriterDescription(f, file, cfg))
	}
	return out, errs
}

// documentWriterDescription is the format and path used to create a destination writer
type documentWriterDescription struct {
	Format format.Format
	Path   string
	Cfg    EncodingConfig
}

func newWriterDescription(f format.Format, p string, cfg EncodingConfig) documentWriterDescription {
	expandedPath, err := homedir.Expand(p)
	if err != nil {
		log.Warnf("could not expand given writer output path=%q: %+v", p, err)
		// ignore errors
		expandedPath = p
	}
	return documentWriterDescription{
		Format: f,
		Path:   expandedPath,
		Cfg:    cfg,
	}
}

// documentMultiWriter applies every Write and Close to a list of child writers
type documentMultiWriter struct {
	writers []DocumentWriter
}

// newMultiWriter creates a writer per output option; options without a file write to stdout
func newMultiWriter(stdout io.Writer, options ...documentWriterDescription) (_ *documentMultiWriter, err error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("no output options provided")
	}

	out := &documentMultiWriter{}
	defer func() {
		if err != nil {
			// close any files opened before the failure
			_ = out.Close()
		}
	}()

	for _, option := range options {
		switch len(option.Path) {
		case 0:
			out.writers = append(out.writers, &documentStreamWriter{
				format: option.Format,
				out:    nopCloser{Writer: stdout},
				cfg:    option.Cfg,
			})
		default:
			// create any missing subdirectories
			dir := filepath.Dir(option.Path)
			if dir != "" {
				s, err := os.Stat(dir)
				if err != nil {
					err = os.MkdirAll(dir, 0755)
					if err != nil {
						return nil, err
					}
				} else if !s.IsDir() {
					return nil, fmt.Errorf("output path does not contain a valid directory: %s", option.Path)
				}
			}
			fileOut, err := os.OpenFile(option.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
			if err != nil {
				return nil, fmt.Errorf("unable to create document file: %w", err)
			}
			out.writers = append(out.writers, &documentStreamWriter{
				format: option.Format,
				out:    fileOut,
				cfg:    option.Cfg,
			})
		}
	}

	return out, nil
}

// Write writes the document to all writers
func (m *documentMultiWriter) Write(doc *bom.Document) (errs error) {
	for _, w := range m.writers {
		err := w.Write(doc)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("unable to write document: %w", err))
		}
	}
	return errs
}

// Close closes all writers
func (m *documentMultiWriter) Close() (errs error) {
	for _, w := range m.writers {
		err := w.Close()
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("unable to close writer: %w", err))
		}
	}
	return errs
}

// documentStreamWriter implements DocumentWriter for a given format and io.WriteCloser
type documentStreamWriter struct {
	format format.Format
	cfg    EncodingConfig
	out    io.WriteCloser
}

// Write the provided document to the data stream
func (w *documentStreamWriter) Write(doc *bom.Document) error {
	if err := bomcodec.Encode(w.out, doc, w.format, w.cfg.Options...); err != nil {
		return fmt.Errorf("unable to encode document as %s: %w", w.format, err)
	}
	return nil
}

// Close any resources, such as open files
func (w *documentStreamWriter) Close() error {
	return w.out.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
