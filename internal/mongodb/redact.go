package mongodb

import "strings"

// redactURI masks any credentials embedded in a connection string so the
// URI can be logged safely.
func redactURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at < 0 {
		return uri
	}
	scheme := strings.Index(uri, "://")
	if scheme < 0 || scheme+3 > at {
		return uri
	}
	return uri[:scheme+3] + "***@" + uri[at+1:]
}
