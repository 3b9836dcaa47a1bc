package loader

import (
	"path/filepath"
	"strings"
)

// Format is the input kind of a matched file.
type Format int

const (
	FormatText Format = iota
	FormatRecords
	FormatArchive
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatRecords:
		return "records"
	case FormatArchive:
		return "archive"
	default:
		return "unknown"
	}
}

var archiveSuffixes = []string{".zip", ".tar", ".tgz", ".tar.gz"}

// Classify maps a path to its format purely from the file name suffix.
func Classify(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	for _, s := range archiveSuffixes {
		if strings.HasSuffix(name, s) {
			return FormatArchive
		}
	}
	if strings.HasSuffix(name, ".jsonl") {
		return FormatRecords
	}
	return FormatText
}
