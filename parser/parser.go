// Package parser classifies the raw token stream produced by package
// reader into typed script.Item kinds, in the order defined by the
// grammar: LoadPlugin, ConstantMacro, VariableMacro, Command, IfGoTo,
// Label. The first matching pattern wins.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/scriptrt/scriptrt/macro"
	"github.com/scriptrt/scriptrt/script"
)

var (
	reLoadPlugin = regexp.MustCompile(
		`^LOAD_PLUGIN\s+([A-Z0-9_]+)(?:\s*(<=|<|>=|>|==|!=)\s*(v\d+(?:\.\d+){1,3}))?$`)

	reConstantMacro = regexp.MustCompile(
		`^([A-Za-z_][A-Za-z0-9_]*)\s*:=\s*(.+)$`)

	reVariableMacro = regexp.MustCompile(
		`^([A-Za-z_][A-Za-z0-9_]*)\s*\?=\s*([A-Z0-9_]+)\.([A-Z][A-Z0-9_]*)(?:\s+(.*))?$`)

	reCommand = regexp.MustCompile(
		`^([A-Z0-9_]+)\.([A-Z][A-Z0-9_]*)(?:\s+(.*))?$`)

	reIfGoTo = regexp.MustCompile(
		`^(?:IF\s+(.*?)\s+)?GOTO\s+([A-Za-z0-9_]+)\s*$`)

	reLabel = regexp.MustCompile(
		`^LABEL\s+([A-Za-z0-9_]+)$`)
)

// ErrInvalidStatement reports a line that matched none of the grammar's
// statement patterns.
type ErrInvalidStatement struct {
	Line string
}

func (e *ErrInvalidStatement) Error() string {
	return fmt.Sprintf("invalid statement: %q", e.Line)
}

// Parser classifies tokens while tracking the parse-time constant
// macro table, which is consulted (longest-key-first) before every
// classification attempt — so constants may only be used forward of
// their declaration.
type Parser struct {
	Constants script.MacroTable
}

// New returns a Parser with an empty constant table.
func New() *Parser {
	return &Parser{Constants: script.MacroTable{}}
}

// Parse classifies every item in place. On success every item's Kind is
// non-None and its Line has been cleared. On the first InvalidStatement
// the remaining items are left unclassified and the error is returned.
func (p *Parser) Parse(items []*script.Item) error {
	for _, it := range items {
		expanded, _ := macro.Substitute(it.Line, p.Constants)
		if err := p.classify(it, expanded); err != nil {
			return err
		}
		it.ClearLine()
	}
	return nil
}

func (p *Parser) classify(it *script.Item, line string) error {
	if m := reLoadPlugin.FindStringSubmatch(line); m != nil {
		it.Kind = script.KindLoadPlugin
		it.Plugin = m[1]
		it.Rule = m[2]
		it.Version = m[3]
		return nil
	}

	if m := reConstantMacro.FindStringSubmatch(line); m != nil {
		name := strings.TrimSpace(m[1])
		value := strings.TrimSpace(m[2])
		it.Kind = script.KindConstantMacro
		it.Name = name
		it.Value = value
		p.Constants.Set(name, value)
		return nil
	}

	if m := reVariableMacro.FindStringSubmatch(line); m != nil {
		it.Kind = script.KindVariableMacro
		it.VMacro = m[1]
		it.Plugin = m[2]
		it.Command = m[3]
		it.Args = m[4]
		return nil
	}

	if m := reCommand.FindStringSubmatch(line); m != nil {
		it.Kind = script.KindCommand
		it.Plugin = m[1]
		it.Command = m[2]
		it.Args = m[3]
		return nil
	}

	if m := reIfGoTo.FindStringSubmatch(line); m != nil {
		it.Kind = script.KindIfGoTo
		it.Condition = m[1]
		it.Label = m[2]
		return nil
	}

	if m := reLabel.FindStringSubmatch(line); m != nil {
		it.Kind = script.KindLabel
		it.Label = m[1]
		return nil
	}

	return &ErrInvalidStatement{Line: line}
}
