package internal

// ContentTypes maps the short names accepted by SetContentType.
var ContentTypes = map[string]string{
	"plain":      "text/plain",
	"html":       "text/html",
	"xml":        "application/xml",
	"csv":        "text/csv",
	"css":        "text/css",
	"javascript": "application/javascript",
	"json":       "application/json",
	"jsonp":      "application/javascript",
}

const defaultCharset = "utf-8"

func contentType(typ string, charset ...string) string {
	if mime, ok := ContentTypes[typ]; ok {
		typ = mime
	}
	cs := defaultCharset
	if len(charset) > 0 && charset[0] != "" {
		cs = charset[0]
	}
	return typ + "; charset=" + cs
}
