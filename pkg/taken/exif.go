package taken

import (
	"io"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Tag priority follows the EXIF spec intent: when the file was captured,
// then when it was digitized, then the generic modification timestamp.
var dateTakenTags = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

type exifExtractor struct{}

func (e exifExtractor) DateTaken(path string, r io.Reader) (time.Time, bool, error) {
	x, err := exif.Decode(r)
	if err != nil {
		// Best-effort: undecodable or EXIF-less files simply have no
		// date taken.
		return time.Time{}, false, nil
	}

	for _, tag := range dateTakenTags {
		f, err := x.Get(tag)
		if err != nil {
			continue
		}

		s, err := f.StringVal()
		if err != nil {
			continue
		}

		// EXIF DateTime format: "2006:01:02 15:04:05".
		// It carries no timezone; interpret as the device-local wall
		// clock.
		tm, err := time.ParseInLocation("2006:01:02 15:04:05", s, time.Local)
		if err != nil {
			continue
		}

		return tm, true, nil
	}

	return time.Time{}, false, nil
}
