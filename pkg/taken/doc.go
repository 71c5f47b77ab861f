// Package taken attributes a "date taken" timestamp to a media file.
//
// The attribution follows a priority order: embedded metadata (EXIF), then a
// timestamp encoded in the filename, then optionally the filesystem mtime.
// Photos rely on metadata; the mtime fallback exists for videos, which carry
// no EXIF.
package taken
