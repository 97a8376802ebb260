package httpclient

import (
	"regexp"
	"strconv"
)

// statusLinePattern matches an HTTP/1.x or HTTP/2.0 style status line and
// captures the numeric status code.
var statusLinePattern = regexp.MustCompile(`^HTTP/\d\.\d\s+(\d+)`)

// ParseStatusLine extracts the numeric status code from a raw status line
// such as "HTTP/1.1 404 Not Found". It returns 0 when the line does not
// match the expected shape.
func ParseStatusLine(line string) int {
	m := statusLinePattern.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return code
}
