package output

const defaultTextMagnitudeLimit = 12

// Option configures a Writer.
type Option func(*Writer)

// WithCompression gzips both files and adds a ".gz" suffix.
func WithCompression(enabled bool) Option {
	return func(w *Writer) {
		w.compress = enabled
	}
}

// WithTextMagnitudeLimit sets the reference magnitude below which records go
// into the text file.
func WithTextMagnitudeLimit(limit float64) Option {
	return func(w *Writer) {
		w.textLimit = limit
	}
}
