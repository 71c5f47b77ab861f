package taken_test

import (
	"errors"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/quidome/media-renamer-go/pkg/taken"
)

func TestDetermine_Priorities(t *testing.T) {
	loc := time.FixedZone("TEST", 2*60*60)

	metadataTime := time.Date(2018, 4, 1, 17, 54, 17, 0, time.UTC)
	mtime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		path          string
		modTime       time.Time
		metadataTime  time.Time
		metadataFound bool
		metadataErr   error
		useMtime      bool
		wantTime      time.Time
		wantSource    taken.Source
	}{
		{
			name:          "metadata beats filename and mtime",
			path:          "root/IMG_20240102_030405.jpg",
			modTime:       mtime,
			metadataTime:  metadataTime,
			metadataFound: true,
			useMtime:      true,
			wantTime:      metadataTime,
			wantSource:    taken.SourceMetadata,
		},
		{
			name:          "filename used when metadata missing",
			path:          "root/IMG_20240102_030405.jpg",
			modTime:       mtime,
			metadataFound: false,
			wantTime:      time.Date(2024, 1, 2, 3, 4, 5, 0, loc),
			wantSource:    taken.SourceFilename,
		},
		{
			name:          "metadata error falls back to filename",
			path:          "root/VID_20240102_030405.mp4",
			modTime:       mtime,
			metadataFound: false,
			metadataErr:   errors.New("boom"),
			useMtime:      true,
			wantTime:      time.Date(2024, 1, 2, 3, 4, 5, 0, loc),
			wantSource:    taken.SourceFilename,
		},
		{
			name:          "mtime used for videos without other sources",
			path:          "root/holiday.mp4",
			modTime:       mtime,
			metadataFound: false,
			useMtime:      true,
			wantTime:      mtime,
			wantSource:    taken.SourceMtime,
		},
		{
			name:          "photos never fall back to mtime",
			path:          "root/holiday.jpg",
			modTime:       mtime,
			metadataFound: false,
			useMtime:      false,
			wantTime:      time.Time{},
			wantSource:    taken.SourceUnknown,
		},
		{
			name:          "unknown when nothing is available",
			path:          "root/holiday.mp4",
			modTime:       time.Time{},
			metadataFound: false,
			useMtime:      true,
			wantTime:      time.Time{},
			wantSource:    taken.SourceUnknown,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				tc.path: &fstest.MapFile{Data: []byte("x"), ModTime: tc.modTime},
			}

			metadata := &fakeMetadataExtractor{
				takenAt: tc.metadataTime,
				found:   tc.metadataFound,
				err:     tc.metadataErr,
			}

			res, err := taken.Determine(fsys, tc.path, taken.Options{
				Location: loc,
				Metadata: metadata,
				UseMtime: tc.useMtime,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.TakenAt.Equal(tc.wantTime) {
				t.Fatalf("unexpected TakenAt\n got: %v\nwant: %v", res.TakenAt, tc.wantTime)
			}
			if res.Source != tc.wantSource {
				t.Fatalf("unexpected Source\n got: %q\nwant: %q", res.Source, tc.wantSource)
			}
		})
	}
}

func TestDetermine_FilenamePatterns(t *testing.T) {
	loc := time.FixedZone("TEST", -7*60*60)
	mtime := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		path       string
		wantTime   time.Time
		wantSource taken.Source
	}{
		{
			name:       "IMG_YYYYMMDD_HHMMSS",
			path:       "root/IMG_20250102_030405.jpg",
			wantTime:   time.Date(2025, 1, 2, 3, 4, 5, 0, loc),
			wantSource: taken.SourceFilename,
		},
		{
			name:       "VID_YYYYMMDD_HHMMSS",
			path:       "root/VID_20250102_030405.mp4",
			wantTime:   time.Date(2025, 1, 2, 3, 4, 5, 0, loc),
			wantSource: taken.SourceFilename,
		},
		{
			name:       "suffixed collision name still parses",
			path:       "root/IMG_20250102_030405_1.jpg",
			wantTime:   time.Date(2025, 1, 2, 3, 4, 5, 0, loc),
			wantSource: taken.SourceFilename,
		},
		{
			name:       "lowercase prefix accepted",
			path:       "root/img_20250102_030405.jpg",
			wantTime:   time.Date(2025, 1, 2, 3, 4, 5, 0, loc),
			wantSource: taken.SourceFilename,
		},
		{
			name:       "unrelated name has no filename date",
			path:       "root/Photo Apr 01, 5 54 17 PM.jpg",
			wantSource: taken.SourceUnknown,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				tc.path: &fstest.MapFile{Data: []byte("x"), ModTime: mtime},
			}

			metadata := &fakeMetadataExtractor{found: false}

			res, err := taken.Determine(fsys, tc.path, taken.Options{Location: loc, Metadata: metadata})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Source != tc.wantSource {
				t.Fatalf("unexpected Source\n got: %q\nwant: %q", res.Source, tc.wantSource)
			}
			if !res.TakenAt.Equal(tc.wantTime) {
				t.Fatalf("unexpected TakenAt\n got: %v\nwant: %v", res.TakenAt, tc.wantTime)
			}
		})
	}
}

func TestDetermine_MissingFileReturnsError(t *testing.T) {
	fsys := fstest.MapFS{}

	_, err := taken.Determine(fsys, "root/missing.jpg", taken.Options{})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestDetermine_DirectoryReturnsError(t *testing.T) {
	fsys := fstest.MapFS{
		"root": &fstest.MapFile{Mode: fs.ModeDir},
	}

	_, err := taken.Determine(fsys, "root", taken.Options{})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

type fakeMetadataExtractor struct {
	takenAt time.Time
	found   bool
	err     error

	calls int
}

func (f *fakeMetadataExtractor) DateTaken(path string, r io.Reader) (time.Time, bool, error) {
	f.calls++
	_, _ = io.ReadAll(r)
	return f.takenAt, f.found, f.err
}
