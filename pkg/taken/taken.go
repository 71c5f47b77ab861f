package taken

import (
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// Source describes where a date-taken timestamp was derived from.
//
// The priority order is:
//  1. metadata
//  2. filename
//  3. mtime (only when enabled)
//  4. unknown
type Source string

const (
	SourceMetadata Source = "metadata"
	SourceFilename Source = "filename"
	SourceMtime    Source = "mtime"
	SourceUnknown  Source = "unknown"
)

// Result contains a best-effort date-taken timestamp and its source.
type Result struct {
	TakenAt time.Time
	Source  Source
}

// MetadataExtractor extracts an embedded date-taken timestamp from a media stream.
//
// Implementations should return (t, true, nil) when a timestamp is found.
// If no timestamp exists, return (time.Time{}, false, nil).
// Errors are treated as best-effort failures by Determine.
type MetadataExtractor interface {
	DateTaken(path string, r io.Reader) (time.Time, bool, error)
}

// Options configures Determine.
type Options struct {
	// Location is used for timestamps parsed from filenames, which contain
	// no timezone. If nil, time.Local is used.
	Location *time.Location

	// Metadata optionally extracts embedded timestamps.
	//
	// If nil, a default EXIF-based extractor is used.
	Metadata MetadataExtractor

	// UseMtime enables the filesystem-mtime fallback. Callers enable this
	// for videos, which have no embedded date-taken tag.
	UseMtime bool
}

// Determine returns the best-effort date-taken timestamp for a path.
func Determine(fsys fs.FS, path string, opts Options) (Result, error) {
	path = filepath.Clean(path)

	info, err := fs.Stat(fsys, path)
	if err != nil {
		return Result{}, err
	}
	if info.IsDir() {
		return Result{}, fs.ErrInvalid
	}

	metadata := opts.Metadata
	if metadata == nil {
		metadata = exifExtractor{}
	}

	f, openErr := fsys.Open(path)
	if openErr != nil {
		return Result{}, openErr
	}
	takenAt, ok, metaErr := metadata.DateTaken(path, f)
	_ = f.Close()
	if metaErr == nil && ok && !takenAt.IsZero() {
		return Result{TakenAt: takenAt, Source: SourceMetadata}, nil
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	if takenAt, ok := parseFromFilename(filepath.Base(path), loc); ok {
		return Result{TakenAt: takenAt, Source: SourceFilename}, nil
	}

	if opts.UseMtime {
		if mtime := info.ModTime(); !mtime.IsZero() {
			return Result{TakenAt: mtime, Source: SourceMtime}, nil
		}
	}

	return Result{Source: SourceUnknown}, nil
}

// Filenames this tool itself produces encode the date taken; recognizing them
// keeps repeat runs from touching already-renamed files.
var reImgVidDateTime = regexp.MustCompile(`(?i)^(?:IMG|VID)_(\d{8})_(\d{6})`)

func parseFromFilename(filename string, loc *time.Location) (time.Time, bool) {
	m := reImgVidDateTime.FindStringSubmatch(filename)
	if m == nil {
		return time.Time{}, false
	}

	y, ok := atoi(m[1][0:4])
	if !ok {
		return time.Time{}, false
	}
	mo, ok := atoi(m[1][4:6])
	if !ok {
		return time.Time{}, false
	}
	d, ok := atoi(m[1][6:8])
	if !ok {
		return time.Time{}, false
	}
	h, ok := atoi(m[2][0:2])
	if !ok {
		return time.Time{}, false
	}
	mi, ok := atoi(m[2][2:4])
	if !ok {
		return time.Time{}, false
	}
	s, ok := atoi(m[2][4:6])
	if !ok {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(mo), d, h, mi, s, 0, loc), true
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
