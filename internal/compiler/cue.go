package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/sortflow/internal/ir"
)

// CompileSource compiles a CUE document held in memory.
// filename is only used for error positions.
func CompileSource(src []byte, filename string) (*Document, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	return CompileDocument(v)
}

// CompileDocument parses a CUE value into a Document.
//
// The value is expected to look like:
//
//	entry: "in"
//	workflow: {
//		in: [{attr: "s", op: "<", value: 1351, to: "px"}, {to: "qqz"}]
//		px: [{attr: "a", op: "<", value: 2006, to: "qkq"}, {to: "rfg"}]
//	}
//	part: [{x: 787, m: 2655, a: 1222, s: 2876}]
//
// entry and part are optional; workflow is required.
func CompileDocument(v cue.Value) (*Document, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	g, err := CompileGraph(v)
	if err != nil {
		return nil, err
	}

	doc := &Document{Graph: g}

	partsVal := v.LookupPath(cue.ParsePath("part"))
	if partsVal.Exists() {
		iter, err := partsVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			p, err := compilePart(iter.Value())
			if err != nil {
				return nil, err
			}
			doc.Parts = append(doc.Parts, p)
		}
	}

	return doc, nil
}

// CompileGraph extracts the entry label and workflows from a CUE value.
func CompileGraph(v cue.Value) (ir.Graph, error) {
	g := ir.Graph{Entry: ir.DefaultEntry, Workflows: make(map[string]ir.Workflow)}

	entryVal := v.LookupPath(cue.ParsePath("entry"))
	if entryVal.Exists() {
		entry, err := entryVal.String()
		if err != nil {
			return ir.Graph{}, formatCUEError(err)
		}
		g.Entry = entry
	}

	wfVal := v.LookupPath(cue.ParsePath("workflow"))
	if !wfVal.Exists() {
		return ir.Graph{}, &CompileError{
			Field:   "workflow",
			Message: "workflow is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := wfVal.Fields()
	if err != nil {
		return ir.Graph{}, formatCUEError(err)
	}
	for iter.Next() {
		wf, err := compileWorkflow(iter.Selector().Unquoted(), iter.Value())
		if err != nil {
			return ir.Graph{}, err
		}
		g.Workflows[wf.Name] = wf
	}

	if len(g.Workflows) == 0 {
		return ir.Graph{}, &CompileError{
			Field:   "workflow",
			Message: "at least one workflow is required",
			Pos:     wfVal.Pos(),
		}
	}
	return g, nil
}

// compileWorkflow parses the rule list of one workflow.
func compileWorkflow(name string, v cue.Value) (ir.Workflow, error) {
	wf := ir.Workflow{Name: name}

	iter, err := v.List()
	if err != nil {
		return wf, &CompileError{
			Field:   "workflow." + name,
			Message: "must be a list of rules",
			Pos:     v.Pos(),
		}
	}

	for i := 0; iter.Next(); i++ {
		rule, err := compileRule(fmt.Sprintf("workflow.%s[%d]", name, i), iter.Value())
		if err != nil {
			return wf, err
		}
		wf.Rules = append(wf.Rules, rule)
	}
	return wf, nil
}

// compileRule parses {to: "..."} or {attr: "a", op: "<", value: 10, to: "..."}.
// A conditional rule must carry all of attr, op and value.
func compileRule(field string, v cue.Value) (ir.Rule, error) {
	toVal := v.LookupPath(cue.ParsePath("to"))
	if !toVal.Exists() {
		return nil, &CompileError{Field: field + ".to", Message: "destination is required", Pos: v.Pos()}
	}
	dest, err := toVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	attrVal := v.LookupPath(cue.ParsePath("attr"))
	opVal := v.LookupPath(cue.ParsePath("op"))
	valueVal := v.LookupPath(cue.ParsePath("value"))

	present := 0
	for _, fv := range []cue.Value{attrVal, opVal, valueVal} {
		if fv.Exists() {
			present++
		}
	}
	switch present {
	case 0:
		return ir.Unconditional{Destination: dest}, nil
	case 3:
	default:
		return nil, &CompileError{
			Field:   field,
			Message: "conditional rule needs attr, op and value",
			Pos:     v.Pos(),
		}
	}

	attr, err := attrVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	axis, err := ir.ParseAxis(attr)
	if err != nil {
		return nil, &CompileError{Field: field + ".attr", Message: err.Error(), Pos: attrVal.Pos()}
	}

	opStr, err := opVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	op, err := ir.ParseComparator(opStr)
	if err != nil {
		return nil, &CompileError{Field: field + ".op", Message: err.Error(), Pos: opVal.Pos()}
	}

	threshold, err := valueVal.Int64()
	if err != nil {
		return nil, &CompileError{Field: field + ".value", Message: "value must be an integer", Pos: valueVal.Pos()}
	}

	return ir.Conditional{Axis: axis, Op: op, Threshold: threshold, Destination: dest}, nil
}

// compilePart parses {x: 1, m: 2, a: 3, s: 4}. All four attributes are
// required and no others are allowed.
func compilePart(v cue.Value) (ir.Part, error) {
	var p ir.Part
	var seen [ir.NumAxes]bool

	iter, err := v.Fields()
	if err != nil {
		return p, formatCUEError(err)
	}
	for iter.Next() {
		label := iter.Selector().Unquoted()
		axis, err := ir.ParseAxis(label)
		if err != nil {
			return p, &CompileError{Field: "part.attribute", Message: err.Error(), Pos: iter.Value().Pos()}
		}
		n, err := iter.Value().Int64()
		if err != nil {
			return p, &CompileError{Field: "part." + label, Message: "value must be an integer", Pos: iter.Value().Pos()}
		}
		p[axis] = n
		seen[axis] = true
	}

	for _, a := range ir.Axes {
		if !seen[a] {
			return p, &CompileError{Field: "part.attribute", Message: fmt.Sprintf("missing attribute %q", a), Pos: v.Pos()}
		}
	}
	return p, nil
}
