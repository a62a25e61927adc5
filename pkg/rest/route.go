package rest

import "fmt"

// Route is one REST call target. Bucket is the rate-limit key: method plus
// the path template with only the major parameter (channel, guild or webhook
// ID) substituted, so e.g. every message in one channel shares a bucket while
// two channels do not.
type Route struct {
	Method string
	Path   string
	Bucket string
}

// NewRoute formats a route from a path template and its arguments. The first
// argument is treated as the major parameter.
func NewRoute(method, template string, args ...any) Route {
	path := fmt.Sprintf(template, args...)

	bucketArgs := make([]any, len(args))
	for i, a := range args {
		if i == 0 {
			bucketArgs[i] = a
		} else {
			bucketArgs[i] = "*"
		}
	}
	return Route{
		Method: method,
		Path:   path,
		Bucket: method + " " + fmt.Sprintf(template, bucketArgs...),
	}
}
