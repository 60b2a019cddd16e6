package tui

import (
	"fmt"
	"io/fs"

	"github.com/docker/go-units"

	"github.com/vvka-141/lfm/internal/dirindex"
	"github.com/vvka-141/lfm/internal/sizecache"
)

// TimeLayout is used for modification times in the detail pane and reports.
const TimeLayout = "2006-01-02 15:04:05"

// FormatBytes renders n in binary units, e.g. "1.5MiB".
func FormatBytes(n uint64) string {
	return units.BytesSize(float64(n))
}

// FormatSize renders a measurement, e.g. "1.5MiB (1572864 bytes)". A size
// that could not be determined renders as zero.
func FormatSize(r sizecache.Result) string {
	return fmt.Sprintf("%s (%d bytes)", FormatBytes(r.Bytes), r.Bytes)
}

// KindOf describes the type of a file mode.
func KindOf(mode fs.FileMode) string {
	switch {
	case mode&fs.ModeSymlink != 0:
		return "symlink"
	case mode.IsDir():
		return "directory"
	case mode.IsRegular():
		return "file"
	case mode&fs.ModeNamedPipe != 0:
		return "pipe"
	case mode&fs.ModeSocket != 0:
		return "socket"
	case mode&fs.ModeDevice != 0:
		return "device"
	}
	return "special"
}

// EntryLabel renders the name of an entry with a type suffix:
// "/" for directories and "@ → target" for symlinks.
func EntryLabel(e dirindex.Entry) string {
	switch {
	case e.IsParent:
		return e.Name
	case e.LinkTarget != "":
		suffix := ""
		if e.IsDir {
			suffix = "/"
		}
		return fmt.Sprintf("%s@ %s %s%s", e.Name, SymbolArrow, e.LinkTarget, suffix)
	case e.IsDir:
		return e.Name + "/"
	}
	return e.Name
}
