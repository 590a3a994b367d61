package formula

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Grammar, lowest to highest precedence:
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := ('-' | '+')* primary
//	primary := NUMBER | IDENT | IDENT '(' expr (',' expr)* ')' | '(' expr ')'

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOp    // + - * /
	tokParen // ( )
	tokComma
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// node is an AST node of a parsed formula.
type node interface {
	eval(vars map[string]float64, funcs map[string]Func) (float64, error)
}

type numberNode struct{ value float64 }

type varNode struct{ name string }

type unaryNode struct {
	op    byte
	child node
}

type binaryNode struct {
	op          byte
	left, right node
}

type callNode struct {
	name string
	args []node
}

func (n numberNode) eval(map[string]float64, map[string]Func) (float64, error) {
	return n.value, nil
}

func (n varNode) eval(vars map[string]float64, _ map[string]Func) (float64, error) {
	switch strings.ToLower(n.name) {
	case "pi":
		return math.Pi, nil
	case "e":
		return math.E, nil
	}
	if v, ok := vars[n.name]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("unknown variable %q", n.name)
}

func (n unaryNode) eval(vars map[string]float64, funcs map[string]Func) (float64, error) {
	v, err := n.child.eval(vars, funcs)
	if err != nil {
		return 0, err
	}
	if n.op == '-' {
		return -v, nil
	}
	return v, nil
}

func (n binaryNode) eval(vars map[string]float64, funcs map[string]Func) (float64, error) {
	l, err := n.left.eval(vars, funcs)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(vars, funcs)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	default:
		// IEEE semantics: x/0 is ±Inf, 0/0 is NaN. The caller's dry-run
		// diagnostic flags these; live scoring passes them through.
		return l / r, nil
	}
}

func (n callNode) eval(vars map[string]float64, funcs map[string]Func) (float64, error) {
	args := make([]float64, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(vars, funcs)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	name := strings.ToLower(n.name)
	if fn, ok := lookupFunc(funcs, n.name); ok {
		if len(args) != 1 {
			return 0, fmt.Errorf("%s expects 1 argument, got %d", n.name, len(args))
		}
		return fn(args[0]), nil
	}
	return evalBuiltin(name, args)
}

// lookupFunc resolves a user function, tolerating case drift in the f-name.
func lookupFunc(funcs map[string]Func, name string) (Func, bool) {
	if fn, ok := funcs[name]; ok {
		return fn, true
	}
	if fn, ok := funcs[strings.ToLower(name)]; ok {
		return fn, true
	}
	return nil, false
}

func evalBuiltin(name string, args []float64) (float64, error) {
	oneArg := func() (float64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		return args[0], nil
	}

	switch name {
	case "min", "max":
		if len(args) == 0 {
			return 0, fmt.Errorf("%s expects at least 1 argument", name)
		}
		best := args[0]
		for _, v := range args[1:] {
			if (name == "min" && v < best) || (name == "max" && v > best) {
				best = v
			}
		}
		return best, nil
	case "pow":
		if len(args) != 2 {
			return 0, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
		}
		return math.Pow(args[0], args[1]), nil
	case "floor":
		v, err := oneArg()
		return math.Floor(v), err
	case "ceil":
		v, err := oneArg()
		return math.Ceil(v), err
	case "round":
		v, err := oneArg()
		return math.Round(v), err
	case "abs":
		v, err := oneArg()
		return math.Abs(v), err
	case "sqrt":
		v, err := oneArg()
		return math.Sqrt(v), err
	case "sin":
		v, err := oneArg()
		return math.Sin(v), err
	case "cos":
		v, err := oneArg()
		return math.Cos(v), err
	case "tan":
		v, err := oneArg()
		return math.Tan(v), err
	case "log":
		v, err := oneArg()
		return math.Log(v), err
	default:
		return 0, fmt.Errorf("unknown function %q", name)
	}
}

// --- Lexer ---

type lexer struct {
	input  string
	pos    int
	tokens []token
}

func tokenize(input string) ([]token, error) {
	lx := &lexer{input: input}
	for lx.pos < len(lx.input) {
		ch := lx.input[lx.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.pos++
		case ch >= '0' && ch <= '9' || ch == '.':
			if err := lx.lexNumber(); err != nil {
				return nil, err
			}
		case isIdentStart(rune(ch)):
			lx.lexIdent()
		case ch == '+' || ch == '-' || ch == '*' || ch == '/':
			lx.tokens = append(lx.tokens, token{tokOp, string(ch), lx.pos})
			lx.pos++
		case ch == '(' || ch == ')':
			lx.tokens = append(lx.tokens, token{tokParen, string(ch), lx.pos})
			lx.pos++
		case ch == ',':
			lx.tokens = append(lx.tokens, token{tokComma, ",", lx.pos})
			lx.pos++
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", ch, lx.pos)
		}
	}
	lx.tokens = append(lx.tokens, token{tokEOF, "", lx.pos})
	return lx.tokens, nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) && r < 128
}

func (lx *lexer) lexNumber() error {
	start := lx.pos
	seenDot := false
	for lx.pos < len(lx.input) {
		ch := lx.input[lx.pos]
		if ch == '.' {
			if seenDot {
				break
			}
			seenDot = true
			lx.pos++
			continue
		}
		if ch < '0' || ch > '9' {
			break
		}
		lx.pos++
	}
	text := lx.input[start:lx.pos]
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return fmt.Errorf("malformed number %q at position %d", text, start)
	}
	lx.tokens = append(lx.tokens, token{tokNumber, text, start})
	return nil
}

func (lx *lexer) lexIdent() {
	start := lx.pos
	for lx.pos < len(lx.input) {
		ch := rune(lx.input[lx.pos])
		if !isIdentStart(ch) && (ch < '0' || ch > '9') {
			break
		}
		lx.pos++
	}
	lx.tokens = append(lx.tokens, token{tokIdent, lx.input[start:lx.pos], start})
}

// --- Parser ---

type parser struct {
	tokens []token
	pos    int
}

func parse(input string) (node, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos)
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokOp || (tok.text != "+" && tok.text != "-") {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: tok.text[0], left: left, right: right}
	}
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokOp || (tok.text != "*" && tok.text != "/") {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: tok.text[0], left: left, right: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	tok := p.peek()
	if tok.kind == tokOp && (tok.text == "-" || tok.text == "+") {
		p.next()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: tok.text[0], child: child}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		v, _ := strconv.ParseFloat(tok.text, 64)
		return numberNode{value: v}, nil

	case tokIdent:
		if p.peek().kind == tokParen && p.peek().text == "(" {
			return p.parseCall(tok.text)
		}
		return varNode{name: tok.text}, nil

	case tokParen:
		if tok.text != "(" {
			return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos)
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if close := p.next(); close.kind != tokParen || close.text != ")" {
			return nil, fmt.Errorf("missing closing parenthesis at position %d", close.pos)
		}
		return inner, nil

	default:
		return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos)
	}
}

func (p *parser) parseCall(name string) (node, error) {
	p.next() // consume '('

	call := callNode{name: name}
	if p.peek().kind == tokParen && p.peek().text == ")" {
		p.next()
		return call, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.args = append(call.args, arg)

		tok := p.next()
		if tok.kind == tokComma {
			continue
		}
		if tok.kind == tokParen && tok.text == ")" {
			return call, nil
		}
		return nil, fmt.Errorf("unexpected %q in %s() arguments at position %d", tok.text, name, tok.pos)
	}
}
