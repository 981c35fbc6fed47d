package compiler

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/roach88/sortflow/internal/ir"
)

// Document is everything a source file declares: the workflow graph and
// the parts to classify.
type Document struct {
	Graph ir.Graph
	Parts []ir.Part
}

var (
	rulePattern     = regexp.MustCompile(`^([A-Za-z]+)([<>])(-?\d+):([A-Za-z0-9_]+)$`)
	workflowPattern = regexp.MustCompile(`^([A-Za-z0-9_]+)\{(.*)\}$`)
	labelPattern    = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// ParseRule parses one rule in text form: "a<2006:qkq" or "rfg".
func ParseRule(s string) (ir.Rule, error) {
	s = strings.TrimSpace(s)

	if m := rulePattern.FindStringSubmatch(s); m != nil {
		axis, err := ir.ParseAxis(m[1])
		if err != nil {
			return nil, &CompileError{Field: "rule.attribute", Message: fmt.Sprintf("%q: %v", s, err)}
		}
		op, err := ir.ParseComparator(m[2])
		if err != nil {
			return nil, &CompileError{Field: "rule.comparator", Message: fmt.Sprintf("%q: %v", s, err)}
		}
		threshold, err := strconv.ParseInt(m[3], 10, 64)
		if err != nil {
			return nil, &CompileError{Field: "rule.threshold", Message: fmt.Sprintf("%q: %v", s, err)}
		}
		return ir.Conditional{Axis: axis, Op: op, Threshold: threshold, Destination: m[4]}, nil
	}

	if !labelPattern.MatchString(s) {
		return nil, &CompileError{Field: "rule", Message: fmt.Sprintf("malformed rule %q", s)}
	}
	return ir.Unconditional{Destination: s}, nil
}

// ParseWorkflow parses one workflow line: "px{a<2006:qkq,m>2090:A,rfg}".
func ParseWorkflow(s string) (ir.Workflow, error) {
	s = strings.TrimSpace(s)

	m := workflowPattern.FindStringSubmatch(s)
	if m == nil {
		return ir.Workflow{}, &CompileError{Field: "workflow", Message: fmt.Sprintf("malformed workflow %q", s)}
	}

	wf := ir.Workflow{Name: m[1]}
	if strings.TrimSpace(m[2]) == "" {
		return wf, nil
	}
	for _, raw := range strings.Split(m[2], ",") {
		rule, err := ParseRule(raw)
		if err != nil {
			return ir.Workflow{}, err
		}
		wf.Rules = append(wf.Rules, rule)
	}
	return wf, nil
}

// ParsePart parses one part line: "{x=787,m=2655,a=1222,s=2876}".
// Every axis must appear exactly once.
func ParsePart(s string) (ir.Part, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return ir.Part{}, &CompileError{Field: "part", Message: fmt.Sprintf("malformed part %q", s)}
	}

	var p ir.Part
	var seen [ir.NumAxes]bool
	for _, kv := range strings.Split(strings.Trim(s, "{}"), ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(kv), "=")
		if !ok {
			return ir.Part{}, &CompileError{Field: "part", Message: fmt.Sprintf("malformed attribute %q", kv)}
		}
		axis, err := ir.ParseAxis(strings.TrimSpace(key))
		if err != nil {
			return ir.Part{}, &CompileError{Field: "part.attribute", Message: err.Error()}
		}
		if seen[axis] {
			return ir.Part{}, &CompileError{Field: "part.attribute", Message: fmt.Sprintf("duplicate attribute %q", key)}
		}
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return ir.Part{}, &CompileError{Field: "part.value", Message: fmt.Sprintf("%s: %v", key, err)}
		}
		p[axis] = n
		seen[axis] = true
	}

	for _, a := range ir.Axes {
		if !seen[a] {
			return ir.Part{}, &CompileError{Field: "part.attribute", Message: fmt.Sprintf("missing attribute %q", a)}
		}
	}
	return p, nil
}

// ParseDocument reads the text format: workflow lines, a blank line, then
// part lines. The part section is optional.
func ParseDocument(r io.Reader) (*Document, error) {
	doc := &Document{Graph: ir.Graph{Entry: ir.DefaultEntry, Workflows: make(map[string]ir.Workflow)}}

	scanner := bufio.NewScanner(r)
	section := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(doc.Graph.Workflows) > 0 {
				section = 1
			}
			continue
		}

		// A part line may appear without a separating blank line.
		if section == 0 && strings.HasPrefix(line, "{") {
			section = 1
		}

		if section == 0 {
			wf, err := ParseWorkflow(line)
			if err != nil {
				return nil, withLine(err, lineNo)
			}
			if _, dup := doc.Graph.Workflows[wf.Name]; dup {
				return nil, &CompileError{Field: "workflow", Message: fmt.Sprintf("duplicate workflow %q", wf.Name), Line: lineNo}
			}
			doc.Graph.Workflows[wf.Name] = wf
			continue
		}

		part, err := ParsePart(line)
		if err != nil {
			return nil, withLine(err, lineNo)
		}
		doc.Parts = append(doc.Parts, part)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	if len(doc.Graph.Workflows) == 0 {
		return nil, &CompileError{Field: "workflow", Message: "no workflows declared"}
	}
	return doc, nil
}

// ParseDocumentString is ParseDocument over an in-memory string.
func ParseDocumentString(s string) (*Document, error) {
	return ParseDocument(strings.NewReader(s))
}

func withLine(err error, line int) error {
	if ce, ok := err.(*CompileError); ok {
		ce.Line = line
		return ce
	}
	return err
}
