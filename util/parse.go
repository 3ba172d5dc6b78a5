package util

import (
	"strconv"
)

// ParseId parses a positive integer path parameter. Malformed ids are reported as a missing page
func ParseId(val string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil || id < 1 {
		return 0, &MalformedIdHTTPErr
	}
	return id, nil
}
