package mimetype

import (
	"strings"
)

const (
	Tar   = "application/x-tar"
	TarGz = "application/x-gtar"
	Zip   = "application/zip"
	Gzip  = "application/gzip"
)

// IsArchive reports the archive or compression type implied by filename's
// extension. Matching ignores case.
func IsArchive(filename string) (string, bool) {
	name := strings.ToLower(filename)

	if strings.HasSuffix(name, ".tar.gz") ||
		strings.HasSuffix(name, ".tgz") {
		return TarGz, true
	} else if strings.HasSuffix(name, ".tar") {
		return Tar, true
	} else if strings.HasSuffix(name, ".zip") {
		return Zip, true
	} else if strings.HasSuffix(name, ".gz") {
		return Gzip, true
	} else {
		return "", false
	}
}

// IsExtractable reports whether mime names a multi-file archive that can be
// unpacked into a directory.
func IsExtractable(mime string) bool {
	return mime == TarGz || mime == Zip
}
