package denylist

import (
	_ "embed"
	"strings"
)

// VeryCommonCount is reported as the breach count for passwords on the
// built-in list; the real figure is unknown but enormous.
const VeryCommonCount = 1000000

//go:embed common_passwords.txt
var commonPasswordsRaw string

var commonPasswords = parseList(commonPasswordsRaw)

func parseList(raw string) map[string]struct{} {
	lines := strings.Split(raw, "\n")
	set := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		pw := strings.TrimSpace(line)
		if pw == "" {
			continue
		}
		set[pw] = struct{}{}
	}
	return set
}

// IsCommon reports whether password, as given or lowercased, is one of the
// well-known passwords shipped with pwaudit.
func IsCommon(password string) bool {
	if _, found := commonPasswords[password]; found {
		return true
	}
	_, found := commonPasswords[strings.ToLower(password)]
	return found
}
