package ml_parser

// Void elements cannot have content and never take a closing tag.
// https://html.spec.whatwg.org/multipage/syntax.html#void-elements
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement reports whether tagName is a void element
func IsVoidElement(tagName string) bool {
	return voidElements[tagName]
}

// Whitespace inside these tags is significant and is never trimmed.
var skipWsTrimTags = map[string]bool{
	"pre":      true,
	"template": true,
	"textarea": true,
	"script":   true,
	"style":    true,
}

// PreservesWhitespace reports whether whitespace inside tagName is significant
func PreservesWhitespace(tagName string) bool {
	return skipWsTrimTags[tagName]
}
