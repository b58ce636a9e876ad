package litmus

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
)

// ParseFinal reads the `final` field's S-expression text into a Prop
// tree. Grammar (spec.md §4.4 step 7, ground truth
// isla-lib/src/litmus.rs Loc::from_sexp/Prop::from_sexp):
//
//	final   := "(" "and" final+ ")" | "(" "or" final+ ")"
//	         | "(" "not" final ")"  | "(" "=>" final final ")" | equal
//	equal   := "(" "=" loc value ")"
//	loc     := "(" "register" name thread_id ")" | "*" addrname
//	thread_id := digits
//	value   := "#x" hexdigits | digits
func ParseFinal(src string) (*Prop, error) {
	var sc scanner.Scanner
	sc.Init(strings.NewReader(src))
	sc.Mode = scanner.ScanIdents | scanner.ScanInts
	p := &sexprParser{sc: &sc}
	p.advance()
	prop, err := p.parseProp()
	if err != nil {
		return nil, err
	}
	if p.tok != scanner.EOF {
		return nil, fmt.Errorf("litmus: trailing input after final assertion: %q", p.text)
	}
	return prop, nil
}

type sexprParser struct {
	sc   *scanner.Scanner
	tok  rune
	text string
}

func (p *sexprParser) advance() {
	p.tok = p.sc.Scan()
	p.text = p.sc.TokenText()
}

func (p *sexprParser) expect(text string) error {
	if p.text != text {
		return fmt.Errorf("litmus: expected %q, got %q", text, p.text)
	}
	p.advance()
	return nil
}

func (p *sexprParser) parseProp() (*Prop, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	head := p.text
	p.advance()
	var prop *Prop
	var err error
	switch head {
	case "and":
		prop, err = p.parseConnective(AndProp)
	case "or":
		prop, err = p.parseConnective(OrProp)
	case "not":
		child, cerr := p.parseProp()
		if cerr != nil {
			return nil, cerr
		}
		prop = NotProp(child)
	case "=":
		if p.text == ">" {
			p.advance()
			left, lerr := p.parseProp()
			if lerr != nil {
				return nil, lerr
			}
			right, rerr := p.parseProp()
			if rerr != nil {
				return nil, rerr
			}
			prop = ImpliesProp(left, right)
		} else {
			prop, err = p.parseEqual()
		}
	default:
		return nil, fmt.Errorf("litmus: unknown final-assertion operator %q", head)
	}
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return prop, nil
}

func (p *sexprParser) parseConnective(build func(...*Prop) *Prop) (*Prop, error) {
	var children []*Prop
	for p.text != ")" {
		child, err := p.parseProp()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return build(children...), nil
}

func (p *sexprParser) parseEqual() (*Prop, error) {
	loc, err := p.parseLoc()
	if err != nil {
		return nil, err
	}
	value, err := p.parseValueToken()
	if err != nil {
		return nil, err
	}
	return EqualProp(loc, value), nil
}

// parseLoc parses the spec's `(register name thread_id)` schema, plus
// the `*addrname` last-write-to shorthand this front end also accepts.
func (p *sexprParser) parseLoc() (Loc, error) {
	if p.text == "*" {
		p.advance()
		name := p.text
		p.advance()
		return Loc{Kind: LocLastWriteTo, Address: name}, nil
	}
	if err := p.expect("("); err != nil {
		return Loc{}, fmt.Errorf("litmus: expected location, got %q", p.text)
	}
	if p.text != "register" {
		return Loc{}, fmt.Errorf("litmus: expected %q, got %q", "register", p.text)
	}
	p.advance()
	reg := p.text
	p.advance()
	threadText := p.text
	thread, err := strconv.Atoi(threadText)
	if err != nil {
		return Loc{}, fmt.Errorf("litmus: expected thread number in location, got %q", threadText)
	}
	p.advance()
	if err := p.expect(")"); err != nil {
		return Loc{}, err
	}
	return Loc{Kind: LocRegister, Thread: thread, Register: reg}, nil
}

// parseValueToken reads a final-assertion value literal: either a
// `#x`-prefixed hex literal (spec.md §8 scenario 6's `#x1`) or a bare
// decimal integer. Returned in the `0x...`/decimal form ParseValueLiteral
// expects.
func (p *sexprParser) parseValueToken() (string, error) {
	if p.text == "#" {
		p.advance()
		digits := p.text
		if !strings.HasPrefix(digits, "x") {
			return "", fmt.Errorf("litmus: expected #x-prefixed hex literal, got %q", "#"+digits)
		}
		p.advance()
		return "0" + digits, nil
	}
	value := p.text
	p.advance()
	return value, nil
}
