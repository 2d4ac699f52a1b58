package domain

import "strings"

// A response beginning with the marker token encodes a rendering directive
// instead of plain text.
const (
	directiveMarker = "[Example]"
	buttonDelimiter = "(buttonurl:"
	linkDelimiter   = "]("
)

// Directive is the rendering instruction decoded from a stored response.
type Directive struct {
	Kind  DirectiveKind
	Text  string // plain responses only
	Label string // button label or link display text
	URL   string
}

// ParseDirective inspects a stored response string and decodes how it should
// be rendered. The second return value is false when the response carries the
// directive marker but its expected delimiter is missing; such malformed
// directives produce no reply at all.
func ParseDirective(response string) (Directive, bool) {
	if !strings.HasPrefix(response, directiveMarker) {
		return Directive{Kind: DirectiveKindPlain, Text: response}, true
	}

	if strings.Contains(response, buttonDelimiter) {
		parts := strings.Split(response, buttonDelimiter)
		label := strings.TrimSuffix(strings.TrimPrefix(parts[0], "["), "]")
		return Directive{
			Kind:  DirectiveKindButton,
			Label: label,
			URL:   strings.TrimSuffix(parts[1], ")"),
		}, true
	}

	parts := strings.Split(response, linkDelimiter)
	if len(parts) != 2 {
		return Directive{}, false
	}
	return Directive{
		Kind:  DirectiveKindLink,
		Label: strings.TrimPrefix(parts[0], "["),
		URL:   strings.TrimSuffix(parts[1], ")"),
	}, true
}
