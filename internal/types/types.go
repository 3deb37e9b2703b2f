package types

import "fmt"

// Token is a placeholder found in template text.
//
// Start and End are byte offsets into the text the token was scanned from.
// Tokens only live for the duration of a single scan.
type Token struct {
	Text         string
	ResourcePath string
	Query        string
	Start        int
	End          int
}

func (t Token) String() string {
	return fmt.Sprintf("{%s#%s}", t.ResourcePath, t.Query)
}

// Substitution records one token replaced during an expansion.
type Substitution struct {
	Resolver string
	Token    Token
	Value    string
}
