package breach_test

import (
	"io"
	"strings"
)

func toLower(s string) string {
	return strings.ToLower(s)
}

func stringReader(s string) io.Reader {
	return strings.NewReader(s)
}
