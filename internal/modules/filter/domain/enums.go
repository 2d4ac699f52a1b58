//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// DirectiveKind represents how a stored response is rendered
// ENUM(plain,button,link)
type DirectiveKind string
