package testcatalogs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// File names of the source tree, relative to the data directory.
const (
	BrightStarsFile  = "brightStars/catalog.gz"
	HipparcosFile    = "tycho1/hip_main.dat.gz"
	Tycho1File       = "tycho1/tyc_main.dat"
	Tycho2File       = "tycho2/tyc2.dat.00.gz"
	HipparcosNewFile = "hipparcosNewReduction/hip2.dat.gz"
	GaiaDR1File      = "gaiaDR1/tgas.dat.gz"
	GaiaDR2File      = "gaiaDR2/GaiaSource_000-000-000.csv.gz"
	CrossIndexFile   = "bayerAndFlamsteed/catalog.dat"
	IAUNamesFile     = "brightStars/starNames_iau.txt"
)

const (
	dirPermission  = 0o755
	filePermission = 0o644
)

// Tree is the content of a complete source tree.
type Tree struct {
	BrightStars  []BrightStar
	Hipparcos    []Hipparcos
	Tycho1       []Tycho1
	Tycho2       []Tycho2
	HipparcosNew []HipparcosNew
	GaiaDR1      []GaiaDR1
	GaiaDR2      []GaiaDR2
	CrossIndex   []CrossIndex
	IAUNames     []IAUName
	// Extra lines appended verbatim to a file, keyed by file name.
	Extra map[string][]string
}

type liner interface{ Line() string }

func lines[T liner](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Line()
	}
	return out
}

// Files returns every file of the tree and its lines.
func (t Tree) Files() map[string][]string {
	files := map[string][]string{
		BrightStarsFile:  lines(t.BrightStars),
		HipparcosFile:    lines(t.Hipparcos),
		Tycho1File:       lines(t.Tycho1),
		Tycho2File:       lines(t.Tycho2),
		HipparcosNewFile: lines(t.HipparcosNew),
		GaiaDR1File:      lines(t.GaiaDR1),
		GaiaDR2File:      append([]string{GaiaDR2Header}, lines(t.GaiaDR2)...),
		CrossIndexFile:   lines(t.CrossIndex),
		IAUNamesFile:     append([]string{"# IAU Catalog of Star Names"}, lines(t.IAUNames)...),
	}
	for name, extra := range t.Extra {
		files[name] = append(files[name], extra...)
	}
	return files
}

// Write creates the tree under dir. Files ending in ".gz" are compressed.
func (t Tree) Write(dir string) error {
	for name, content := range t.Files() {
		if err := WriteFile(filepath.Join(dir, filepath.FromSlash(name)), content); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes lines to path, creating parent directories.
func WriteFile(path string, content []string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPermission); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var w io.Writer = f
	var zw *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		zw = gzip.NewWriter(f)
		w = zw
	}
	bw := bufio.NewWriter(w)
	for _, line := range content {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("compress %s: %w", path, err)
		}
	}
	return nil
}

// ReadFile returns the lines of path, decompressing ".gz" files.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}
