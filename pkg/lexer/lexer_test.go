package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBank25/golox/pkg/lexer"
)

func scanAll(t *testing.T, source string) []lexer.Token {
	t.Helper()
	l := lexer.New(source)
	var tokens []lexer.Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Type == lexer.TokenEOF {
			return tokens
		}
	}
}

func TestPunctuationAndOperators(t *testing.T) {
	tokens := scanAll(t, "(){};,.+-*!= == <= >= != <>/")
	types := make([]lexer.TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	want := []lexer.TokenType{
		lexer.TokenLeftParen, lexer.TokenRightParen, lexer.TokenLeftBrace, lexer.TokenRightBrace,
		lexer.TokenSemicolon, lexer.TokenComma, lexer.TokenDot, lexer.TokenPlus, lexer.TokenMinus,
		lexer.TokenStar, lexer.TokenBangEqual, lexer.TokenEqualEqual, lexer.TokenLessEqual,
		lexer.TokenGreaterEqual, lexer.TokenBangEqual, lexer.TokenLess, lexer.TokenGreater,
		lexer.TokenSlash, lexer.TokenEOF,
	}
	require.Equal(t, want, types)
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tokens := scanAll(t, "var x = nil and foo or true")
	require.Len(t, tokens, 9)
	assert.Equal(t, lexer.TokenVar, tokens[0].Type)
	assert.Equal(t, lexer.TokenIdentifier, tokens[1].Type)
	assert.Equal(t, "x", tokens[1].Lexeme)
	assert.Equal(t, lexer.TokenEqual, tokens[2].Type)
	assert.Equal(t, lexer.TokenNil, tokens[3].Type)
	assert.Equal(t, lexer.TokenAnd, tokens[4].Type)
	assert.Equal(t, lexer.TokenIdentifier, tokens[5].Type)
	assert.Equal(t, lexer.TokenOr, tokens[6].Type)
	assert.Equal(t, lexer.TokenTrue, tokens[7].Type)
}

func TestNumbers(t *testing.T) {
	tokens := scanAll(t, "123 45.67 8.")
	require.GreaterOrEqual(t, len(tokens), 3)
	assert.Equal(t, "123", tokens[0].Lexeme)
	assert.Equal(t, "45.67", tokens[1].Lexeme)
	// trailing '.' with no following digit is not part of the number
	assert.Equal(t, "8", tokens[2].Lexeme)
	assert.Equal(t, lexer.TokenDot, tokens[3].Type)
}

func TestStrings(t *testing.T) {
	tokens := scanAll(t, `"hello world"`)
	require.GreaterOrEqual(t, len(tokens), 1)
	assert.Equal(t, lexer.TokenString, tokens[0].Type)
	assert.Equal(t, `"hello world"`, tokens[0].Lexeme)
}

func TestUnterminatedString(t *testing.T) {
	tokens := scanAll(t, `"hello`)
	require.GreaterOrEqual(t, len(tokens), 1)
	assert.Equal(t, lexer.TokenError, tokens[0].Type)
	assert.Equal(t, "Unterminated string.", tokens[0].Lexeme)
}

func TestMultilineStringAdvancesLine(t *testing.T) {
	l := lexer.New("\"a\nb\" 1")
	str := l.Next()
	require.Equal(t, lexer.TokenString, str.Type)
	num := l.Next()
	assert.Equal(t, 2, num.Line)
}

func TestLineCommentsAreSkipped(t *testing.T) {
	tokens := scanAll(t, "1 // this is a comment\n2")
	require.GreaterOrEqual(t, len(tokens), 2)
	assert.Equal(t, "1", tokens[0].Lexeme)
	assert.Equal(t, "2", tokens[1].Lexeme)
	assert.Equal(t, 2, tokens[1].Line)
}

func TestUnexpectedCharacter(t *testing.T) {
	tokens := scanAll(t, "@")
	require.GreaterOrEqual(t, len(tokens), 1)
	assert.Equal(t, lexer.TokenError, tokens[0].Type)
	assert.Equal(t, "Unexpected character.", tokens[0].Lexeme)
}
