package parse

type (
	tokenType string
	// LineInfo tracks where a token was found so parse errors can point at it.
	LineInfo struct {
		Line   int
		Column int
	}
	token struct {
		LineInfo
		Kind      tokenType
		StringVal string
		FloatVal  float64
		IntVal    int64
	}
)

const (
	tokenPipe         tokenType = "|"
	tokenComma        tokenType = ","
	tokenColon        tokenType = ":"
	tokenMinus        tokenType = "-"
	tokenOpenParen    tokenType = "("
	tokenCloseParen   tokenType = ")"
	tokenOpenBracket  tokenType = "["
	tokenCloseBracket tokenType = "]"
	tokenIdentifier   tokenType = "<identifier>"
	tokenString       tokenType = "<string>"
	tokenInteger      tokenType = "<integer>"
	tokenFloat        tokenType = "<float>"
	tokenEOS          tokenType = "<eos>"
)
