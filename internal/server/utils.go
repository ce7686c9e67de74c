package server

import (
	"encoding/hex"
	"strings"

	"github.com/zeebo/blake3"
)

// liveReloadPath is only routed when live reload is enabled.
const liveReloadPath = "/__reload"

const liveReloadScript = `<script>new EventSource("` + liveReloadPath + `").onmessage=function(e){if(e.data==="reload")location.reload()}</script>`

// contentETag returns a strong ETag derived from the content hash.
func contentETag(data []byte) string {
	sum := blake3.Sum256(data)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

// etagMatches reports whether an If-None-Match header names etag.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	if strings.TrimSpace(header) == "*" {
		return true
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == etag {
			return true
		}
	}
	return false
}

// injectReloadScript adds the live reload client before the closing body tag,
// or at the end when the page has none.
func injectReloadScript(page string) string {
	if i := strings.LastIndex(page, "</body>"); i >= 0 {
		return page[:i] + liveReloadScript + page[i:]
	}
	return page + liveReloadScript
}
