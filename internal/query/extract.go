package query

import (
	"regexp"
	"strings"
)

// releasePattern matches the query tool's announcement of a new release.
// The release name may not contain a single quote.
var releasePattern = regexp.MustCompile(`New release '([^']*)' available\.`)

// ExtractRelease returns the first release announced in output
func ExtractRelease(output string) (string, bool) {
	match := releasePattern.FindStringSubmatch(output)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// FormatNotice renders the message shown when release is available
func FormatNotice(release string) string {
	return strings.Join([]string{
		"Release available",
		"=================",
		"A new release of Ubuntu is available: Ubuntu " + release,
		"To know more, run do-release-upgrade",
		"To disable or change the frequency of these alerts,",
		"read and modify file /etc/update-manager/release-upgrades",
	}, "\n")
}
