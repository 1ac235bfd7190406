package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dop251/goja"
)

// ErrNoExport возвращается, если в JS-файле нет module.exports / export default
var ErrNoExport = errors.New("no module.exports or export default found")

// evalTimeout ограничивает вычисление литерала
const evalTimeout = 5 * time.Second

type tokenKind int

const (
	tokPunct tokenKind = iota
	tokString
	tokIdent
)

type token struct {
	kind tokenKind
	text string
	line int
	off  int
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

// jsToJSON вытаскивает экспортируемый объектный литерал из модуля конфигурации
// (module.exports = {...}, export default {...}, export default defineConfig({...})),
// вычисляет его в goja и возвращает JSON.
func jsToJSON(src []byte) ([]byte, error) {
	s := string(src)
	toks, err := lexJS(s)
	if err != nil {
		return nil, err
	}

	start, err := findExport(toks)
	if err != nil {
		return nil, err
	}
	if start >= len(toks) || !toks[start].is(tokPunct, "{") {
		line := toks[len(toks)-1].line
		if start < len(toks) {
			line = toks[start].line
		}
		return nil, fmt.Errorf("line %d: exported value must be an object literal", line)
	}

	end, err := matchBrace(toks, start)
	if err != nil {
		return nil, err
	}

	open := toks[start]
	literal := s[open.off : toks[end].off+1]
	// номера строк в ошибках goja совпадают с исходным файлом
	script := strings.Repeat("\n", open.line-1) + "(" + literal + ")"

	v, err := evalLiteral(script)
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("exported object is not plain data: %w", err)
	}
	return out, nil
}

func evalLiteral(script string) (any, error) {
	vm := goja.New()
	timer := time.AfterFunc(evalTimeout, func() {
		vm.Interrupt("evaluation timed out")
	})
	defer timer.Stop()

	v, err := vm.RunScript("config.js", script)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate config: %w", err)
	}
	return v.Export(), nil
}

func findExport(toks []token) (int, error) {
	for i := range toks {
		var start int
		switch {
		case toks[i].is(tokIdent, "module") && i+3 < len(toks) &&
			toks[i+1].is(tokPunct, ".") &&
			toks[i+2].is(tokIdent, "exports") &&
			toks[i+3].is(tokPunct, "="):
			start = i + 4
		case toks[i].is(tokIdent, "export") && i+1 < len(toks) &&
			toks[i+1].is(tokIdent, "default"):
			start = i + 2
		default:
			continue
		}

		// defineConfig({...})
		if start+1 < len(toks) && toks[start].kind == tokIdent && toks[start+1].is(tokPunct, "(") {
			start += 2
		}
		return start, nil
	}
	return 0, ErrNoExport
}

// matchBrace возвращает индекс закрывающей скобки для toks[open]
func matchBrace(toks []token, open int) (int, error) {
	depth := 0
	for i := open; i < len(toks); i++ {
		if toks[i].kind != tokPunct {
			continue
		}
		switch toks[i].text {
		case "{", "[", "(":
			depth++
		case "}", "]", ")":
			depth--
			if depth == 0 {
				if toks[i].text != "}" {
					return 0, fmt.Errorf("line %d: unbalanced %q in exported object", toks[i].line, toks[i].text)
				}
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("line %d: exported object is not closed before end of file", toks[open].line)
}

// lexJS разбивает исходник на токены ровно настолько, чтобы найти экспорт
// и границы литерала: строки и комментарии пропускаются целиком.
func lexJS(src string) ([]token, error) {
	var toks []token
	line := 1

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\n':
			line++
			i++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			i++
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return nil, fmt.Errorf("line %d: unterminated block comment", line)
			}
			line += strings.Count(src[i:i+2+end], "\n")
			i += end + 4
		case c == '\'' || c == '"' || c == '`':
			n, err := skipString(src[i:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			toks = append(toks, token{kind: tokString, text: src[i : i+n], line: line, off: i})
			line += strings.Count(src[i:i+n], "\n")
			i += n
		case isIdentPart(c):
			j := i + 1
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: src[i:j], line: line, off: i})
			i = j
		default:
			_, size := utf8.DecodeRuneInString(src[i:])
			toks = append(toks, token{kind: tokPunct, text: src[i : i+size], line: line, off: i})
			i += size
		}
	}
	return toks, nil
}

// skipString возвращает длину строкового литерала в начале s.
// Экранирование разбирает goja, здесь важна только граница.
func skipString(s string) (int, error) {
	quote := s[0]
	for i := 1; i < len(s); i++ {
		switch c := s[i]; {
		case c == quote:
			return i + 1, nil
		case (c == '\n' || c == '\r') && quote != '`':
			return 0, errors.New("unterminated string literal")
		case c == '\\':
			i++
			// \ + CRLF
			if i+1 < len(s) && s[i] == '\r' && s[i+1] == '\n' {
				i++
			}
		}
	}
	return 0, errors.New("unterminated string literal")
}

func isIdentPart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
