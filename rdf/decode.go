package rdf

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Decode parses a Turtle document into a graph. N-Triples input is
// accepted as well since Turtle is a superset. Prefix declarations in the
// document are recorded as graph bindings.
func Decode(r io.Reader) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	p := &parser{
		input:    string(data),
		graph:    NewGraph(),
		bnodes:   make(map[string]BlankNode),
		prefixes: make(map[string]string),
	}
	if err := p.parseDocument(); err != nil {
		return nil, err
	}
	return p.graph, nil
}

// ParseError reports a syntax error with its position in the document.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d col %d: %s", e.Line, e.Col, e.Msg)
}

// parser is a single-pass recursive-descent Turtle parser.
type parser struct {
	input     string
	pos       int
	line      int
	lineStart int
	graph     *Graph
	base      string
	prefixes  map[string]string
	// bnodes maps document labels to in-memory blank nodes so repeated
	// _:label references resolve to the same node.
	bnodes map[string]BlankNode
}

func (p *parser) errf(format string, args ...any) error {
	return &ParseError{Line: p.line + 1, Col: p.pos - p.lineStart + 1, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseDocument() error {
	for {
		p.skipWhitespace()
		if p.eof() {
			return nil
		}
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
}

func (p *parser) parseStatement() error {
	switch {
	case p.hasKeyword("@prefix"):
		p.pos += len("@prefix")
		return p.parsePrefix(true)
	case p.hasKeyword("@base"):
		p.pos += len("@base")
		return p.parseBase(true)
	case p.hasKeywordFold("PREFIX"):
		p.pos += len("PREFIX")
		return p.parsePrefix(false)
	case p.hasKeywordFold("BASE"):
		p.pos += len("BASE")
		return p.parseBase(false)
	}

	subject, err := p.parseSubject()
	if err != nil {
		return err
	}
	p.skipWhitespace()
	// A bare blank-node property list may stand alone as a statement.
	if p.peek() == '.' {
		p.pos++
		return nil
	}
	if err := p.parsePredicateObjectList(subject); err != nil {
		return err
	}
	p.skipWhitespace()
	if p.peek() != '.' {
		return p.errf("expected '.' after statement")
	}
	p.pos++
	return nil
}

func (p *parser) parsePrefix(requireDot bool) error {
	p.skipWhitespace()
	name, err := p.readPrefixName()
	if err != nil {
		return err
	}
	p.skipWhitespace()
	iri, err := p.readIRIRef()
	if err != nil {
		return err
	}
	p.prefixes[name] = iri
	p.graph.Bind(name, iri)
	if requireDot {
		p.skipWhitespace()
		if p.peek() != '.' {
			return p.errf("expected '.' after @prefix directive")
		}
		p.pos++
	}
	return nil
}

func (p *parser) parseBase(requireDot bool) error {
	p.skipWhitespace()
	iri, err := p.readIRIRef()
	if err != nil {
		return err
	}
	p.base = iri
	if requireDot {
		p.skipWhitespace()
		if p.peek() != '.' {
			return p.errf("expected '.' after @base directive")
		}
		p.pos++
	}
	return nil
}

func (p *parser) parseSubject() (Term, error) {
	p.skipWhitespace()
	switch p.peek() {
	case '[':
		return p.parseBlankNodePropertyList()
	case '(':
		return p.parseCollection()
	}
	return p.parseIRIOrBlank()
}

func (p *parser) parsePredicateObjectList(subject Term) error {
	for {
		p.skipWhitespace()
		predicate, err := p.parsePredicate()
		if err != nil {
			return err
		}
		for {
			p.skipWhitespace()
			object, err := p.parseObject()
			if err != nil {
				return err
			}
			p.graph.Add(subject, predicate, object)
			p.skipWhitespace()
			if p.peek() != ',' {
				break
			}
			p.pos++
		}
		p.skipWhitespace()
		if p.peek() != ';' {
			return nil
		}
		// Consume any run of semicolons; a trailing one ends the list.
		for p.peek() == ';' {
			p.pos++
			p.skipWhitespace()
		}
		if c := p.peek(); c == '.' || c == ']' || c == 0 {
			return nil
		}
	}
}

func (p *parser) parsePredicate() (IRI, error) {
	if p.hasKeyword("a") && p.delimiterFollows(1) {
		p.pos++
		return NewIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"), nil
	}
	term, err := p.parseIRIOrBlank()
	if err != nil {
		return IRI{}, err
	}
	iri, ok := term.(IRI)
	if !ok {
		return IRI{}, p.errf("predicate must be an IRI")
	}
	return iri, nil
}

func (p *parser) parseObject() (Term, error) {
	switch c := p.peek(); {
	case c == '[':
		return p.parseBlankNodePropertyList()
	case c == '(':
		return p.parseCollection()
	case c == '"' || c == '\'':
		return p.parseLiteral()
	case c == '+' || c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case p.hasKeyword("true") && p.delimiterFollows(4):
		p.pos += 4
		return NewTypedLiteral("true", "http://www.w3.org/2001/XMLSchema#boolean"), nil
	case p.hasKeyword("false") && p.delimiterFollows(5):
		p.pos += 5
		return NewTypedLiteral("false", "http://www.w3.org/2001/XMLSchema#boolean"), nil
	}
	return p.parseIRIOrBlank()
}

func (p *parser) parseBlankNodePropertyList() (Term, error) {
	p.pos++ // consume '['
	node := NewBlankNode()
	p.skipWhitespace()
	if p.peek() == ']' {
		p.pos++
		return node, nil
	}
	if err := p.parsePredicateObjectList(node); err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.peek() != ']' {
		return nil, p.errf("expected ']' closing blank node property list")
	}
	p.pos++
	return node, nil
}

func (p *parser) parseCollection() (Term, error) {
	p.pos++ // consume '('
	var items []Term
	for {
		p.skipWhitespace()
		if p.peek() == ')' {
			p.pos++
			return p.graph.NewList(items), nil
		}
		if p.eof() {
			return nil, p.errf("unterminated collection")
		}
		item, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (p *parser) parseIRIOrBlank() (Term, error) {
	switch {
	case p.peek() == '<':
		iri, err := p.readIRIRef()
		if err != nil {
			return nil, err
		}
		return NewIRI(iri), nil
	case strings.HasPrefix(p.input[p.pos:], "_:"):
		p.pos += 2
		label := p.readLocalName()
		if label == "" {
			return nil, p.errf("empty blank node label")
		}
		if node, ok := p.bnodes[label]; ok {
			return node, nil
		}
		node := NewBlankNode()
		p.bnodes[label] = node
		return node, nil
	}
	return p.parsePrefixedName()
}

func (p *parser) parsePrefixedName() (Term, error) {
	start := p.pos
	prefix := p.readPrefixLabel()
	if p.peek() != ':' {
		p.pos = start
		return nil, p.errf("expected IRI, prefixed name, or blank node")
	}
	p.pos++ // consume ':'
	local := p.readLocalName()
	ns, ok := p.prefixes[prefix]
	if !ok {
		return nil, p.errf("undefined prefix %q", prefix)
	}
	return NewIRI(ns + local), nil
}

func (p *parser) parseLiteral() (Term, error) {
	value, err := p.readQuotedString()
	if err != nil {
		return nil, err
	}
	switch {
	case p.peek() == '@':
		p.pos++
		lang := p.readWhile(func(r rune) bool {
			return r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		})
		if lang == "" {
			return nil, p.errf("empty language tag")
		}
		return NewLangLiteral(value, lang), nil
	case strings.HasPrefix(p.input[p.pos:], "^^"):
		p.pos += 2
		dt, err := p.parseIRIOrBlank()
		if err != nil {
			return nil, err
		}
		dtIRI, ok := dt.(IRI)
		if !ok {
			return nil, p.errf("literal datatype must be an IRI")
		}
		return NewTypedLiteral(value, dtIRI.Value), nil
	}
	return NewLiteral(value), nil
}

func (p *parser) parseNumber() (Term, error) {
	start := p.pos
	if c := p.peek(); c == '+' || c == '-' {
		p.pos++
	}
	digits := func(r rune) bool { return r >= '0' && r <= '9' }
	p.readWhile(digits)
	isDecimal, isDouble := false, false
	if p.peek() == '.' && p.pos+1 < len(p.input) && p.input[p.pos+1] >= '0' && p.input[p.pos+1] <= '9' {
		isDecimal = true
		p.pos++
		p.readWhile(digits)
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		isDouble = true
		p.pos++
		if c := p.peek(); c == '+' || c == '-' {
			p.pos++
		}
		p.readWhile(digits)
	}
	text := p.input[start:p.pos]
	if text == "" || text == "+" || text == "-" {
		return nil, p.errf("malformed numeric literal")
	}
	switch {
	case isDouble:
		return NewTypedLiteral(text, "http://www.w3.org/2001/XMLSchema#double"), nil
	case isDecimal:
		return NewTypedLiteral(text, "http://www.w3.org/2001/XMLSchema#decimal"), nil
	}
	return NewTypedLiteral(text, "http://www.w3.org/2001/XMLSchema#integer"), nil
}

// readQuotedString reads a short or long quoted string, handling escapes.
func (p *parser) readQuotedString() (string, error) {
	quote := p.peek()
	long := false
	if strings.HasPrefix(p.input[p.pos:], strings.Repeat(string(quote), 3)) {
		long = true
		p.pos += 3
	} else {
		p.pos++
	}
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errf("unterminated string literal")
		}
		c := p.input[p.pos]
		if c == quote {
			if !long {
				p.pos++
				return sb.String(), nil
			}
			if strings.HasPrefix(p.input[p.pos:], strings.Repeat(string(quote), 3)) {
				p.pos += 3
				return sb.String(), nil
			}
			sb.WriteByte(c)
			p.pos++
			continue
		}
		if c == '\\' {
			unescaped, err := p.readEscape()
			if err != nil {
				return "", err
			}
			sb.WriteRune(unescaped)
			continue
		}
		if !long && (c == '\n' || c == '\r') {
			return "", p.errf("newline in string literal")
		}
		sb.WriteByte(c)
		if c == '\n' {
			p.line++
			p.lineStart = p.pos + 1
		}
		p.pos++
	}
}

func (p *parser) readEscape() (rune, error) {
	p.pos++ // consume '\'
	if p.eof() {
		return 0, p.errf("unterminated escape sequence")
	}
	c := p.input[p.pos]
	p.pos++
	switch c {
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case '"', '\'', '\\':
		return rune(c), nil
	case 'u':
		return p.readHexEscape(4)
	case 'U':
		return p.readHexEscape(8)
	}
	return 0, p.errf("unknown escape sequence \\%c", c)
}

func (p *parser) readHexEscape(width int) (rune, error) {
	if p.pos+width > len(p.input) {
		return 0, p.errf("truncated unicode escape")
	}
	var code rune
	for i := 0; i < width; i++ {
		c := p.input[p.pos+i]
		var v rune
		switch {
		case c >= '0' && c <= '9':
			v = rune(c - '0')
		case c >= 'a' && c <= 'f':
			v = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v = rune(c-'A') + 10
		default:
			return 0, p.errf("invalid unicode escape digit %q", c)
		}
		code = code<<4 | v
	}
	p.pos += width
	return code, nil
}

func (p *parser) readIRIRef() (string, error) {
	if p.peek() != '<' {
		return "", p.errf("expected '<' starting IRI")
	}
	p.pos++
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errf("unterminated IRI")
		}
		c := p.input[p.pos]
		switch c {
		case '>':
			p.pos++
			return p.resolveIRI(sb.String())
		case '\\':
			r, err := p.readEscape()
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
		case '\n', '\r', ' ', '"', '{', '}', '|', '^', '`':
			return "", p.errf("invalid character %q in IRI", c)
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
}

// resolveIRI resolves a possibly relative IRI against the document base.
func (p *parser) resolveIRI(iri string) (string, error) {
	if p.base == "" || strings.Contains(iri, "://") || strings.HasPrefix(iri, "urn:") || strings.HasPrefix(iri, "mailto:") {
		return iri, nil
	}
	base, err := url.Parse(p.base)
	if err != nil {
		return iri, nil
	}
	rel, err := url.Parse(iri)
	if err != nil {
		return iri, nil
	}
	return base.ResolveReference(rel).String(), nil
}

func (p *parser) readPrefixName() (string, error) {
	name := p.readPrefixLabel()
	if p.peek() != ':' {
		return "", p.errf("expected ':' after prefix name")
	}
	p.pos++
	return name, nil
}

func (p *parser) readPrefixLabel() string {
	return p.readWhile(func(r rune) bool {
		return r == '_' || r == '-' || r == '.' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r > 127
	})
}

func (p *parser) readLocalName() string {
	name := p.readWhile(func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == '%' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r > 127
	})
	// A trailing dot belongs to the enclosing statement, not the name.
	for strings.HasSuffix(name, ".") {
		name = name[:len(name)-1]
		p.pos--
	}
	return name
}

func (p *parser) readWhile(pred func(rune) bool) string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !pred(r) {
			break
		}
		p.pos += size
	}
	return p.input[start:p.pos]
}

func (p *parser) skipWhitespace() {
	for !p.eof() {
		c := p.input[p.pos]
		switch c {
		case ' ', '\t', '\r':
			p.pos++
		case '\n':
			p.pos++
			p.line++
			p.lineStart = p.pos
		case '#':
			for !p.eof() && p.input[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) hasKeyword(kw string) bool {
	return strings.HasPrefix(p.input[p.pos:], kw)
}

func (p *parser) hasKeywordFold(kw string) bool {
	if p.pos+len(kw) > len(p.input) {
		return false
	}
	return strings.EqualFold(p.input[p.pos:p.pos+len(kw)], kw) && p.delimiterFollows(len(kw))
}

// delimiterFollows reports whether the character after the next n bytes
// terminates a keyword token.
func (p *parser) delimiterFollows(n int) bool {
	if p.pos+n >= len(p.input) {
		return true
	}
	c := p.input[p.pos+n]
	switch c {
	case ' ', '\t', '\n', '\r', '<', '"', '\'', '[', '(', '#', ';', ',', '.':
		return true
	}
	return false
}
