package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"github.com/dcf21/star-charter/internal/domain/model"
	"github.com/dcf21/star-charter/pkg/metrics"
)

// Output file names, before any compression suffix.
const (
	TextFile = "star_charter_stars.dat"
	JSONFile = "all_stars.json"
)

const (
	dirPermission  = 0o755
	filePermission = 0o644
	gzipSuffix     = ".gz"
	partialSuffix  = ".partial"
)

// file is an output written under a temporary name and renamed on commit.
type file struct {
	path string
	f    *os.File
	zw   *gzip.Writer
	bw   *bufio.Writer
}

func createFile(path string, compress bool) (*file, error) {
	f, err := os.OpenFile(path+partialSuffix, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateOutput, err)
	}
	out := &file{path: path, f: f}
	var w io.Writer = f
	if compress {
		out.zw = gzip.NewWriter(f)
		w = out.zw
	}
	out.bw = bufio.NewWriter(w)
	return out, nil
}

// finish flushes and closes the partial file.
func (o *file) finish() error {
	if err := o.bw.Flush(); err != nil {
		_ = o.f.Close()
		return err
	}
	if o.zw != nil {
		if err := o.zw.Close(); err != nil {
			_ = o.f.Close()
			return err
		}
	}
	return o.f.Close()
}

func (o *file) rename() error {
	return os.Rename(o.path+partialSuffix, o.path)
}

func (o *file) discard() {
	_ = o.f.Close()
	_ = os.Remove(o.path + partialSuffix)
}

// Writer writes both output files. Records must be passed in emission order.
type Writer struct {
	compress  bool
	textLimit float64
	text      *file
	json      *file
	textCount int
	jsonCount int
	closed    bool
}

// Create opens both output files in dir, creating it when needed. The files
// only appear under their final names once Close succeeds.
func Create(dir string, opts ...Option) (*Writer, error) {
	w := &Writer{compress: true, textLimit: defaultTextMagnitudeLimit}
	for _, opt := range opts {
		opt(w)
	}
	if err := os.MkdirAll(dir, dirPermission); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateOutput, err)
	}

	suffix := ""
	if w.compress {
		suffix = gzipSuffix
	}
	text, err := createFile(filepath.Join(dir, TextFile+suffix), w.compress)
	if err != nil {
		return nil, err
	}
	js, err := createFile(filepath.Join(dir, JSONFile+suffix), w.compress)
	if err != nil {
		text.discard()
		return nil, err
	}
	w.text, w.json = text, js
	return w, nil
}

// Write adds one record. It goes to the JSON file always and to the text file
// when its reference magnitude is below the text limit.
func (w *Writer) Write(s *model.Star, refMag float64) error {
	if w.closed {
		return ErrWriterClosed
	}
	if refMag < w.textLimit {
		if _, err := w.text.bw.WriteString(TextLine(s, refMag)); err != nil {
			return fmt.Errorf("write %s: %w", w.text.path, err)
		}
		w.textCount++
	}
	line, err := JSONLine(s)
	if err != nil {
		return err
	}
	if _, err := w.json.bw.Write(line); err != nil {
		return fmt.Errorf("write %s: %w", w.json.path, err)
	}
	w.jsonCount++
	return nil
}

// Counts returns the number of records written to the text and JSON files.
func (w *Writer) Counts() (text, json int) { return w.textCount, w.jsonCount }

// Paths returns the final names of the text and JSON files.
func (w *Writer) Paths() (text, json string) { return w.text.path, w.json.path }

// Close flushes both files and moves them to their final names. On error
// neither file is left under its final name and no partial file remains.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	for _, o := range []*file{w.text, w.json} {
		if err := o.finish(); err != nil {
			w.text.discard()
			w.json.discard()
			return fmt.Errorf("close %s: %w", o.path, err)
		}
	}
	if err := w.text.rename(); err != nil {
		w.text.discard()
		w.json.discard()
		return fmt.Errorf("close %s: %w", w.text.path, err)
	}
	if err := w.json.rename(); err != nil {
		_ = os.Remove(w.text.path)
		w.json.discard()
		return fmt.Errorf("close %s: %w", w.json.path, err)
	}
	metrics.RecordOutputRecords("text", w.textCount)
	metrics.RecordOutputRecords("json", w.jsonCount)
	return nil
}

// Abort removes both partial files.
func (w *Writer) Abort() {
	if w.closed {
		return
	}
	w.closed = true
	w.text.discard()
	w.json.discard()
}
