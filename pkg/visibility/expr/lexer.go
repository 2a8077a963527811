package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokNumber
	tokBool
	tokNull
	tokEq
	tokNeq
	tokLt
	tokLte
	tokGt
	tokGte
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDelimiter(ch byte) bool {
	return isSpace(ch) || strings.IndexByte("()!=&|<>", ch) >= 0
}

// scan splits a rule into tokens. Identifiers may contain dots and spaces are
// not allowed inside them; quote model names that need spaces.
func scan(input string) ([]token, error) {
	var tokens []token
	emit := func(kind tokenKind, text string, pos int) {
		tokens = append(tokens, token{kind: kind, text: text, pos: pos})
	}

	for i := 0; i < len(input); {
		ch := input[i]
		switch {
		case isSpace(ch):
			i++
		case ch == '(':
			emit(tokLParen, "(", i)
			i++
		case ch == ')':
			emit(tokRParen, ")", i)
			i++
		case ch == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				emit(tokNeq, "!=", i)
				i += 2
				continue
			}
			emit(tokNot, "!", i)
			i++
		case ch == '=':
			if i+1 >= len(input) || input[i+1] != '=' {
				return nil, fmt.Errorf("expr: unexpected '=' at %d; use '=='", i)
			}
			emit(tokEq, "==", i)
			i += 2
		case ch == '<' || ch == '>':
			kind, text := tokLt, "<"
			if ch == '>' {
				kind, text = tokGt, ">"
			}
			if i+1 < len(input) && input[i+1] == '=' {
				kind++
				text += "="
				emit(kind, text, i)
				i += 2
				continue
			}
			emit(kind, text, i)
			i++
		case ch == '&' || ch == '|':
			if i+1 >= len(input) || input[i+1] != ch {
				return nil, fmt.Errorf("expr: unexpected %q at %d; use %q", ch, i, string([]byte{ch, ch}))
			}
			if ch == '&' {
				emit(tokAnd, "&&", i)
			} else {
				emit(tokOr, "||", i)
			}
			i += 2
		case ch == '"' || ch == '\'':
			text, next, err := scanString(input, i)
			if err != nil {
				return nil, err
			}
			emit(tokString, text, i)
			i = next
		default:
			start := i
			for i < len(input) && !isDelimiter(input[i]) {
				i++
			}
			word := input[start:i]
			switch strings.ToLower(word) {
			case "true", "false":
				emit(tokBool, strings.ToLower(word), start)
			case "null", "nil", "none":
				emit(tokNull, "null", start)
			default:
				if _, err := strconv.ParseFloat(word, 64); err == nil {
					emit(tokNumber, word, start)
				} else {
					emit(tokIdent, word, start)
				}
			}
		}
	}
	return tokens, nil
}

func scanString(input string, start int) (string, int, error) {
	quote := input[start]
	escaped := false
	for i := start + 1; i < len(input); i++ {
		ch := input[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == quote:
			body := input[start+1 : i]
			if quote == '\'' {
				body = strings.ReplaceAll(body, `\'`, `'`)
				body = strings.ReplaceAll(body, `"`, `\"`)
			}
			value, err := strconv.Unquote(`"` + body + `"`)
			if err != nil {
				return "", 0, fmt.Errorf("expr: invalid string literal at %d: %w", start, err)
			}
			return value, i + 1, nil
		}
	}
	return "", 0, errors.New("expr: unterminated string literal")
}
