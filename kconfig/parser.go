// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 The kconfig.sh Authors. All rights reserved.

package kconfig

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// blockCtx is one level of the open-block stack: the menu/choice/if node
// whose children are currently being appended, and the last child appended
// so far (so the next one can be chained via Next in O(1), over the
// parent/list/next shape instead of a children slice).
type blockCtx struct {
	node      *MenuNode
	lastChild *MenuNode
}

// parser drives construction of a Config's menu tree from one or more
// Kconfig source files, pulling logical lines from a stack of lineReaders
// (one per nested "source" directive) and dispatching on each line's
// leading keyword.
type parser struct {
	cfg     *Config
	readers []*lineReader
	blocks  []*blockCtx
}

func newParser(cfg *Config) *parser {
	return &parser{cfg: cfg}
}

func (p *parser) cur() *lineReader {
	return p.readers[len(p.readers)-1]
}

func (p *parser) block() *blockCtx {
	return p.blocks[len(p.blocks)-1]
}

// parseFile is the entry point: it opens filename (resolving relative paths
// against cfg.srctree when the direct path fails), parses it as the root of
// the tree, and returns the populated top-level MenuNode.
func (p *parser) parseFile(filename string) (*MenuNode, error) {
	top := &MenuNode{IsMenu: true}
	p.blocks = []*blockCtx{{node: top}}

	if err := p.pushSource(filename); err != nil {
		return nil, err
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return top, nil
}

func (p *parser) openFile(name string) (io.ReadCloser, string, error) {
	if f, err := os.Open(name); err == nil {
		return f, name, nil
	}
	if p.cfg.srctree != "" {
		joined := filepath.Join(p.cfg.srctree, name)
		if f, err := os.Open(joined); err == nil {
			return f, joined, nil
		}
	}
	return nil, "", &IOError{Path: name, Op: "open", Err: os.ErrNotExist}
}

func (p *parser) pushSource(name string) error {
	f, resolved, err := p.openFile(name)
	if err != nil {
		return err
	}
	p.readers = append(p.readers, newLineReader(f, resolved))
	return nil
}

func (p *parser) popSource() error {
	lr := p.cur()
	p.readers = p.readers[:len(p.readers)-1]
	return lr.close()
}

func (p *parser) failf(format string, args ...interface{}) error {
	lr := p.cur()
	return &SyntaxError{File: lr.filename, Line: lr.lineNo, Msg: errors.Errorf(format, args...).Error()}
}

// run is the main parse loop: it pulls logical lines across the reader
// stack (popping back to the enclosing file at EOF) until the stack is
// empty, dispatching each non-blank, non-comment line by its leading
// keyword.
func (p *parser) run() error {
	for len(p.readers) > 0 {
		line, err := p.cur().next()
		if err == io.EOF {
			if err := p.popSource(); err != nil {
				return errors.Wrap(err, "closing source")
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		toks := lexLine(trimmed)
		if len(toks) == 0 {
			continue
		}
		if toks[0].kind != tokIdent && toks[0].kind != tokKeyword {
			return p.failf("unexpected token %q", toks[0].text)
		}
		kw := toks[0].text
		if !keywords[kw] {
			return p.failf("unknown construct %q", kw)
		}

		if err := p.dispatch(kw, toks[1:], indentOf(line)); err != nil {
			return err
		}
	}

	if len(p.blocks) != 1 {
		return p.failf("unterminated menu/choice/if block")
	}
	return nil
}

func (p *parser) dispatch(kw string, rest []token, indent int) error {
	switch kw {
	case "mainmenu":
		if len(rest) == 0 || rest[0].kind != tokString {
			return p.failf("mainmenu requires a quoted string")
		}
		p.cfg.mainmenuText = rest[0].text
		return nil

	case "source":
		if len(rest) == 0 || rest[0].kind != tokString {
			return p.failf("source requires a quoted string")
		}
		return p.pushSource(rest[0].text)

	case "config", "menuconfig":
		return p.parseConfig(rest, indent, kw == "menuconfig")

	case "choice":
		return p.parseChoice(rest, indent)

	case "endchoice":
		return p.endBlock("choice")

	case "menu":
		return p.parseMenu(rest, indent)

	case "endmenu":
		return p.endBlock("menu")

	case "if":
		return p.parseIf(rest, indent)

	case "endif":
		return p.endBlock("if")

	case "comment":
		return p.parseComment(rest, indent)

	default:
		return p.failf("%q is not valid at the top level of a block", kw)
	}
}

func (p *parser) endBlock(kind string) error {
	if len(p.blocks) <= 1 {
		return p.failf("end%s without matching %s", kind, kind)
	}
	p.blocks = p.blocks[:len(p.blocks)-1]
	return nil
}

// addNode appends n as the next sibling in the current block, sets its
// Parent, and pushes it as the new lastChild.
func (p *parser) addNode(n *MenuNode) {
	b := p.block()
	n.Parent = b.node
	if b.lastChild == nil {
		b.node.List = n
	} else {
		b.lastChild.Next = n
	}
	b.lastChild = n
}

// pushBlock adds n to the current block and makes it the new current block,
// so subsequently parsed statements become its List children.
func (p *parser) pushBlock(n *MenuNode) {
	p.addNode(n)
	p.blocks = append(p.blocks, &blockCtx{node: n})
}

func (p *parser) lookupSymbol(name string) *Symbol {
	return p.cfg.symbolRef(name)
}

// enclosingChoice returns the nearest open choice block in p.blocks, looking
// outward from the innermost block so a config nested inside an "if" block
// that is itself inside a choice is still recognized as a member (the if
// wrapper is transient and disappears during finalize).
func (p *parser) enclosingChoice() *Choice {
	for i := len(p.blocks) - 1; i >= 0; i-- {
		if c, ok := p.blocks[i].node.Item.(*Choice); ok {
			return c
		}
		if !p.blocks[i].node.IsIfBlock {
			return nil
		}
	}
	return nil
}

func (p *parser) parseConfig(rest []token, indent int, isMenuconfig bool) error {
	if len(rest) == 0 || rest[0].kind != tokIdent {
		return p.failf("config requires a symbol name")
	}
	name := rest[0].text
	sym := p.lookupSymbol(name)

	n := &MenuNode{Item: sym, IsMenuconfig: isMenuconfig, Filename: p.cur().filename, Linenr: p.cur().lineNo}
	sym.Nodes = append(sym.Nodes, n)
	p.cfg.noteDefined(sym)
	p.addNode(n)

	if c := p.enclosingChoice(); c != nil && sym.Choice == nil {
		sym.Choice = c
		c.Syms = append(c.Syms, sym)
		if sym.Type == TypeUnknown {
			sym.Type = c.Type
		}
	}

	return p.parseNodeBody(n, indent, symbolPropertyParser{sym: sym, n: n, p: p})
}

func (p *parser) parseChoice(rest []token, indent int) error {
	c := &Choice{cfg: p.cfg}
	if len(rest) > 0 && rest[0].kind == tokIdent {
		c.Name = rest[0].text
	}
	p.cfg.choices = append(p.cfg.choices, c)

	n := &MenuNode{Item: c, IsChoice: true, Filename: p.cur().filename, Linenr: p.cur().lineNo}
	c.Nodes = append(c.Nodes, n)
	p.pushBlock(n)

	return p.parseNodeBody(n, indent, choicePropertyParser{c: c, n: n, p: p})
}

func (p *parser) parseMenu(rest []token, indent int) error {
	if len(rest) == 0 || rest[0].kind != tokString {
		return p.failf("menu requires a quoted string")
	}
	n := &MenuNode{IsMenu: true, PromptText: rest[0].text, Filename: p.cur().filename, Linenr: p.cur().lineNo}
	p.pushBlock(n)
	return p.parseNodeBody(n, indent, menuPropertyParser{n: n, p: p})
}

func (p *parser) parseIf(rest []token, indent int) error {
	cond, err := p.parseExprTokens(rest)
	if err != nil {
		return err
	}
	n := &MenuNode{IsIfBlock: true, Dep: cond, Filename: p.cur().filename, Linenr: p.cur().lineNo}
	p.pushBlock(n)
	return nil
}

func (p *parser) parseComment(rest []token, indent int) error {
	if len(rest) == 0 || rest[0].kind != tokString {
		return p.failf("comment requires a quoted string")
	}
	n := &MenuNode{PromptText: rest[0].text, Filename: p.cur().filename, Linenr: p.cur().lineNo}
	p.addNode(n)
	return p.parseNodeBody(n, indent, commentPropertyParser{n: n, p: p})
}

// propertyParser is implemented by each construct (config/menuconfig,
// choice, menu, comment) to interpret the property lines nested under it;
// the shared structure (indentation-delimited body, optional "help" block)
// lives in parseNodeBody, and each construct only needs to say what a given
// keyword means for it.
type propertyParser interface {
	// handle processes one property line's keyword and remaining tokens.
	// It returns (handled=false) for a line it does not recognize, which
	// parseNodeBody treats as "this line belongs to an enclosing block",
	// pushing it back for the outer parse loop to re-dispatch.
	handle(kw string, rest []token, indent int) (bool, error)
}

// parseNodeBody consumes the lines following a construct's header whatever
// their indentation (nesting is keyword-based, as in real Kconfig, and
// baseIndent is not consulted) and hands each to pp.handle, stopping at the
// first line pp does not recognize.
func (p *parser) parseNodeBody(n *MenuNode, baseIndent int, pp propertyParser) error {
	_ = baseIndent
	for {
		line, err := p.cur().next()
		if err == io.EOF {
			return nil
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		toks := lexLine(trimmed)
		if len(toks) == 0 {
			continue
		}
		kw := toks[0].text
		if !keywords[kw] {
			return p.failf("unknown construct %q", kw)
		}

		if kw == "help" {
			n.Help = p.parseHelp(indentOf(line))
			continue
		}

		handled, err := pp.handle(kw, toks[1:], indentOf(line))
		if err != nil {
			return err
		}
		if !handled {
			p.cur().pushBack(line)
			return nil
		}
	}
}

// parseHelp reads an indented help-text block: every subsequent line more
// indented than headerIndent, dedented by the block's own minimum indent.
func (p *parser) parseHelp(headerIndent int) string {
	var lines []string
	minIndent := -1

	for {
		line, err := p.cur().next()
		if err == io.EOF {
			break
		}
		if strings.TrimSpace(line) == "" {
			lines = append(lines, "")
			continue
		}
		ind := indentOf(line)
		if ind <= headerIndent {
			p.cur().pushBack(line)
			break
		}
		if minIndent == -1 || ind < minIndent {
			minIndent = ind
		}
		// Store the leading whitespace tab-expanded, so minIndent (a column
		// count) can be sliced off as a byte count below.
		lines = append(lines, strings.Repeat(" ", ind)+strings.TrimLeft(line, " \t"))
	}

	if minIndent <= 0 {
		minIndent = 0
	}
	for i, l := range lines {
		if len(l) >= minIndent {
			lines[i] = l[minIndent:]
		}
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// parseExprTokens parses a full boolean/relational expression from a
// pre-lexed token slice using operator-precedence recursive descent:
// "||" binds loosest, then "&&", then the unary "!", then the six
// relational operators, then parenthesized/primary terms.
func (p *parser) parseExprTokens(toks []token) (*expr, error) {
	ep := &exprParser{p: p, toks: toks}
	e, err := ep.parseOr()
	if err != nil {
		return nil, err
	}
	if ep.pos != len(ep.toks) {
		return nil, p.failf("unexpected trailing tokens in expression")
	}
	return e, nil
}

type exprParser struct {
	p    *parser
	toks []token
	pos  int
}

func (ep *exprParser) peek() (token, bool) {
	if ep.pos >= len(ep.toks) {
		return token{}, false
	}
	return ep.toks[ep.pos], true
}

func (ep *exprParser) next() (token, bool) {
	t, ok := ep.peek()
	if ok {
		ep.pos++
	}
	return t, ok
}

func (ep *exprParser) parseOr() (*expr, error) {
	left, err := ep.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := ep.peek()
		if !ok || t.kind != tokOr {
			return left, nil
		}
		ep.pos++
		right, err := ep.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &expr{tag: exprOr, x: left, y: right}
	}
}

func (ep *exprParser) parseAnd() (*expr, error) {
	left, err := ep.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		t, ok := ep.peek()
		if !ok || t.kind != tokAnd {
			return left, nil
		}
		ep.pos++
		right, err := ep.parseNot()
		if err != nil {
			return nil, err
		}
		left = &expr{tag: exprAnd, x: left, y: right}
	}
}

func (ep *exprParser) parseNot() (*expr, error) {
	if t, ok := ep.peek(); ok && t.kind == tokNot {
		ep.pos++
		inner, err := ep.parseNot()
		if err != nil {
			return nil, err
		}
		return &expr{tag: exprNot, x: inner}, nil
	}
	return ep.parseRelation()
}

var relTagByTok = map[tokenKind]exprTag{
	tokEqual: exprEqual, tokUnequal: exprUnequal,
	tokLess: exprLess, tokLessEqual: exprLessEqual,
	tokGreater: exprGreater, tokGreaterEqual: exprGreaterEqual,
}

func (ep *exprParser) parseRelation() (*expr, error) {
	left, err := ep.parsePrimary()
	if err != nil {
		return nil, err
	}
	if t, ok := ep.peek(); ok {
		if tag, isRel := relTagByTok[t.kind]; isRel {
			ep.pos++
			right, err := ep.parsePrimary()
			if err != nil {
				return nil, err
			}
			return &expr{tag: tag, x: left, y: right}, nil
		}
	}
	return left, nil
}

func (ep *exprParser) parsePrimary() (*expr, error) {
	t, ok := ep.next()
	if !ok {
		return nil, ep.p.failf("expected an expression")
	}
	switch t.kind {
	case tokLParen:
		inner, err := ep.parseOr()
		if err != nil {
			return nil, err
		}
		closer, ok := ep.next()
		if !ok || closer.kind != tokRParen {
			return nil, ep.p.failf("missing closing parenthesis")
		}
		return inner, nil
	case tokConst:
		return constExpr(t.text), nil
	case tokString:
		return constExpr(t.text), nil
	case tokIdent:
		return symExpr(ep.p.lookupSymbol(t.text)), nil
	default:
		return nil, ep.p.failf("unexpected token %q in expression", t.text)
	}
}
