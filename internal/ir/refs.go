package ir

// TokenKind categorizes a command token.
type TokenKind int

const (
	TokenOther       TokenKind = iota
	TokenWord                  // keyword or bare argument
	TokenNamespaced            // sql:date, host:time
	TokenMarker                // => splits left and right pass arguments
	TokenPlaceholder           // standalone _
	TokenComma
	TokenString // 'quoted'
	TokenNumber
	TokenOperator
	TokenHelp // ?
)

// Token is one unit of a command string. Order is significant.
type Token struct {
	Kind TokenKind `json:"kind"`
	Text string    `json:"text"`
}

// PassMarker is the token that separates left and right pass arguments.
const PassMarker = "=>"

// HelpToken requests documentation instead of a rendered value.
const HelpToken = "?"

// Texts returns the text of every token, in order.
func Texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}
