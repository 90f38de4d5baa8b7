package parse

import (
	"fmt"
	"strconv"
	"unicode"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNumber
	tokSymbol // single punctuation: ( ) { } [ ] , : . =
	tokOp     // binary operator: + - * / % << >> & | ^ > < >= <= == !=
)

type token struct {
	kind tokenKind
	text string
	num  int
}

func (t token) String() string { return t.text }

// lexLine splits one source line into tokens. Comments run from # to
// the end of the line.
func lexLine(line string) ([]token, error) {
	var toks []token
	runes := []rune(line)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == '#':
			return toks, nil
		case unicode.IsSpace(c):
			i++
		case unicode.IsLetter(c) || c == '_':
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: string(runes[i:j])})
			i = j
		case unicode.IsDigit(c):
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			text := string(runes[i:j])
			n, err := strconv.Atoi(text)
			if err != nil {
				return nil, fmt.Errorf("bad number %q: %w", text, err)
			}
			toks = append(toks, token{kind: tokNumber, text: text, num: n})
			i = j
		case c == '(' || c == ')' || c == '{' || c == '}' ||
			c == '[' || c == ']' || c == ',' || c == ':' || c == '.':
			toks = append(toks, token{kind: tokSymbol, text: string(c)})
			i++
		case c == '<' || c == '>' || c == '=' || c == '!':
			if i+1 < len(runes) {
				two := string(runes[i : i+2])
				switch two {
				case "<<", ">>", "<=", ">=", "==", "!=":
					toks = append(toks, token{kind: tokOp, text: two})
					i += 2
					continue
				}
			}
			switch c {
			case '<', '>':
				toks = append(toks, token{kind: tokOp, text: string(c)})
			case '=':
				toks = append(toks, token{kind: tokSymbol, text: "="})
			default:
				return nil, fmt.Errorf("stray %q", string(c))
			}
			i++
		case c == '+' || c == '-' || c == '*' || c == '/' || c == '%' ||
			c == '&' || c == '|' || c == '^':
			toks = append(toks, token{kind: tokOp, text: string(c)})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q", string(c))
		}
	}
	return toks, nil
}
