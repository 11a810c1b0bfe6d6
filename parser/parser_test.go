package parser

import (
	"testing"

	"github.com/scriptrt/scriptrt/script"
)

func items(lines ...string) []*script.Item {
	out := make([]*script.Item, len(lines))
	for i, l := range lines {
		out[i] = &script.Item{Line: l, Kind: script.KindNone}
	}
	return out
}

func TestParseLoadPlugin(t *testing.T) {
	its := items("LOAD_PLUGIN UTILS")
	if err := New().Parse(its); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it := its[0]
	if it.Kind != script.KindLoadPlugin || it.Plugin != "UTILS" {
		t.Fatalf("got %+v", it)
	}
	if it.Rule != "" || it.Version != "" {
		t.Fatalf("expected no version constraint, got rule=%q version=%q", it.Rule, it.Version)
	}
}

func TestParseLoadPluginWithVersionConstraint(t *testing.T) {
	its := items("LOAD_PLUGIN UTILS >= v1.2.0")
	if err := New().Parse(its); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it := its[0]
	if it.Rule != ">=" || it.Version != "v1.2.0" {
		t.Fatalf("got rule=%q version=%q", it.Rule, it.Version)
	}
}

func TestParseConstantMacro(t *testing.T) {
	its := items("GREETING := hello")
	if err := New().Parse(its); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it := its[0]
	if it.Kind != script.KindConstantMacro || it.Name != "GREETING" || it.Value != "hello" {
		t.Fatalf("got %+v", it)
	}
}

func TestParseConstantMacroAppliesToLaterLines(t *testing.T) {
	its := items(
		"GREETING := hello",
		"LOAD_PLUGIN UTILS",
		"UTILS.UECHO $GREETING",
	)
	if err := New().Parse(its); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmd := its[2]
	if cmd.Kind != script.KindCommand || cmd.Args != "hello" {
		t.Fatalf("expected constant substituted into command args, got %+v", cmd)
	}
}

func TestParseConstantMacroDoesNotApplyBeforeDeclaration(t *testing.T) {
	its := items(
		"LOAD_PLUGIN UTILS",
		"UTILS.UECHO $GREETING",
		"GREETING := hello",
	)
	if err := New().Parse(its); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmd := its[1]
	if cmd.Kind != script.KindCommand || cmd.Args != "$GREETING" {
		t.Fatalf("expected literal token before declaration, got %+v", cmd)
	}
}

func TestParseVariableMacro(t *testing.T) {
	its := items("RESULT ?= UTILS.UECHO hi there")
	if err := New().Parse(its); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it := its[0]
	if it.Kind != script.KindVariableMacro || it.VMacro != "RESULT" || it.Plugin != "UTILS" ||
		it.Command != "UECHO" || it.Args != "hi there" {
		t.Fatalf("got %+v", it)
	}
}

func TestParseVariableMacroNoArgs(t *testing.T) {
	its := items("RESULT ?= UTILS.UECHO")
	if err := New().Parse(its); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it := its[0]
	if it.Kind != script.KindVariableMacro || it.Args != "" {
		t.Fatalf("got %+v", it)
	}
}

func TestParseCommand(t *testing.T) {
	its := items("UTILS.UECHO hi there")
	if err := New().Parse(its); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it := its[0]
	if it.Kind != script.KindCommand || it.Plugin != "UTILS" || it.Command != "UECHO" || it.Args != "hi there" {
		t.Fatalf("got %+v", it)
	}
}

func TestParseCommandNeverMistakenForVariableMacro(t *testing.T) {
	// No "?=" present, so this must classify as Command even though it
	// shares the PLUGIN.COMMAND shape with VariableMacro.
	its := items("UTILS.UECHO hi")
	if err := New().Parse(its); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if its[0].Kind != script.KindCommand {
		t.Fatalf("expected Command, got %s", its[0].Kind)
	}
}

func TestParseIfGoToWithCondition(t *testing.T) {
	its := items("IF $DONE GOTO END")
	if err := New().Parse(its); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it := its[0]
	if it.Kind != script.KindIfGoTo || it.Condition != "$DONE" || it.Label != "END" {
		t.Fatalf("got %+v", it)
	}
}

func TestParseGoToWithoutCondition(t *testing.T) {
	its := items("GOTO END")
	if err := New().Parse(its); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it := its[0]
	if it.Kind != script.KindIfGoTo || it.Condition != "" || it.Label != "END" {
		t.Fatalf("got %+v", it)
	}
}

func TestParseLabel(t *testing.T) {
	its := items("LABEL END")
	if err := New().Parse(its); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if its[0].Kind != script.KindLabel || its[0].Label != "END" {
		t.Fatalf("got %+v", its[0])
	}
}

func TestParseInvalidStatementHaltsClassification(t *testing.T) {
	its := items("LOAD_PLUGIN UTILS", "this is not valid syntax &&&")
	err := New().Parse(its)
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*ErrInvalidStatement); !ok {
		t.Fatalf("expected *ErrInvalidStatement, got %T: %v", err, err)
	}
	if its[0].Kind != script.KindLoadPlugin {
		t.Fatalf("expected the first line to have classified before the failure, got %+v", its[0])
	}
	if its[1].Kind != script.KindNone {
		t.Fatalf("expected the failing line to remain unclassified, got %+v", its[1])
	}
}

func TestParseClearsLineAfterClassification(t *testing.T) {
	its := items("LABEL END")
	if err := New().Parse(its); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if its[0].Line != "" {
		t.Fatalf("expected Line to be cleared after classification, got %q", its[0].Line)
	}
}
