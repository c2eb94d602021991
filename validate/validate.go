/*
Package validate runs the static analysis pass spec.md §4.2 describes
between parsing and execution: every node id is resolved, Start/End
are confirmed present and well-formed, fan-out is checked per node
kind, and exit-code labels are confirmed to only ever reach End. A
flowchart that survives Validate is compiled into a program.Program —
dense, index-addressed, ready for the interpreter to walk without a
single map lookup.

New package: go-mix has no analogous static phase (it resolves
scope and type errors lazily during eval), but the "run an ordered list
of independent checks, stop at the first failure" shape mirrors how
parser.Parser halts on its first syntax error (see DESIGN.md).
*/
package validate

import (
	"fmt"

	"github.com/merx-lang/merx/diag"
	"github.com/merx-lang/merx/parser"
	"github.com/merx-lang/merx/program"
)

// Validate runs the full analysis pipeline and, on success, compiles
// fc into a program.Program. It halts and returns the first
// diag.AnalysisError encountered, the same single-error-halt
// discipline the parser uses.
func Validate(fc *parser.Flowchart) (*program.Program, error) {
	resolved, order, err := resolveNodes(fc)
	if err != nil {
		return nil, err
	}
	order, err = checkReferences(fc, resolved, order)
	if err != nil {
		return nil, err
	}
	if err := checkStartEnd(resolved); err != nil {
		return nil, err
	}
	if err := checkEdgeFromEnd(fc, resolved); err != nil {
		return nil, err
	}
	if err := checkFanOut(fc, resolved); err != nil {
		return nil, err
	}
	branches, err := checkConditionBranches(fc, resolved)
	if err != nil {
		return nil, err
	}
	if err := checkExitPlacement(fc, resolved); err != nil {
		return nil, err
	}
	return build(fc, resolved, order, branches)
}

// resolveNodes collects every explicit node_def occurrence — a shaped
// reference (spec.md's "Shape annotation on edge endpoints" grammar
// extension, see DESIGN.md) or a standalone bare-identifier line — and
// rejects a second definition of the same id (spec.md §4.2 step 1).
func resolveNodes(fc *parser.Flowchart) (map[string]*parser.NodeDecl, []string, error) {
	byID := make(map[string]*parser.NodeDecl)
	var order []string

	for _, n := range fc.Nodes {
		if _, ok := byID[n.ID]; ok {
			return nil, nil, diag.NewAnalysisError(diag.DuplicateNode, n.ID,
				"node %q is defined more than once", n.ID)
		}
		byID[n.ID] = n
		order = append(order, n.ID)
	}
	return byID, order, nil
}

// checkReferences implements spec.md §4.2 step 2: every edge endpoint
// must resolve to a defined node. Start and End are the sole exception
// — referencing either without a preceding node_def implicitly defines
// it (spec.md §4.2 step 1, last sentence).
func checkReferences(fc *parser.Flowchart, byID map[string]*parser.NodeDecl, order []string) ([]string, error) {
	for _, e := range fc.Edges {
		for _, id := range [2]string{e.From, e.To} {
			if _, ok := byID[id]; ok {
				continue
			}
			switch id {
			case "Start":
				byID[id] = &parser.NodeDecl{ID: id, Kind: parser.StartNode, P: e.P}
			case "End":
				byID[id] = &parser.NodeDecl{ID: id, Kind: parser.EndNode, P: e.P}
			default:
				return nil, diag.NewAnalysisError(diag.UndefinedNode, id, "node %q is referenced but never defined", id)
			}
			order = append(order, id)
		}
	}
	return order, nil
}

func checkStartEnd(byID map[string]*parser.NodeDecl) error {
	start, ok := byID["Start"]
	if !ok || start.Kind != parser.StartNode {
		return diag.NewAnalysisError(diag.MissingStart, "", "the flowchart has no Start node")
	}
	end, ok := byID["End"]
	if !ok || end.Kind != parser.EndNode {
		return diag.NewAnalysisError(diag.MissingEnd, "", "the flowchart has no End node")
	}
	return nil
}

func checkEdgeFromEnd(fc *parser.Flowchart, byID map[string]*parser.NodeDecl) error {
	for _, e := range fc.Edges {
		if n, ok := byID[e.From]; ok && n.Kind == parser.EndNode {
			return diag.NewAnalysisError(diag.EdgeFromEnd, e.From, "End may not have outgoing edges")
		}
	}
	return nil
}

// checkFanOut enforces at most one outgoing edge for every Start or
// Process node. Condition fan-out is checked separately, in
// checkConditionBranches, since its rule is "exactly Yes and No", not
// a simple count.
func checkFanOut(fc *parser.Flowchart, byID map[string]*parser.NodeDecl) error {
	out := make(map[string]int)
	for _, e := range fc.Edges {
		out[e.From]++
	}
	for id, n := range byID {
		if n.Kind != parser.StartNode && n.Kind != parser.ProcessNode {
			continue
		}
		if out[id] > 1 {
			return diag.NewAnalysisError(diag.MultipleSuccessors, id,
				"%s has %d outgoing edges, at most one is allowed", n.Kind, out[id])
		}
	}
	return nil
}

type branchPair struct {
	yes, no *parser.EdgeDecl
}

// checkConditionBranches enforces spec.md §4.2's condition fan-out
// rule: every Condition node must have exactly one Yes-labeled and
// exactly one No-labeled outgoing edge (the Yes/No may themselves
// carry an exit code), and no other outgoing edges.
func checkConditionBranches(fc *parser.Flowchart, byID map[string]*parser.NodeDecl) (map[string]branchPair, error) {
	grouped := make(map[string][]*parser.EdgeDecl)
	for i := range fc.Edges {
		e := fc.Edges[i]
		if n, ok := byID[e.From]; ok && n.Kind == parser.ConditionNode {
			grouped[e.From] = append(grouped[e.From], e)
		}
	}
	result := make(map[string]branchPair)
	for id, n := range byID {
		if n.Kind != parser.ConditionNode {
			continue
		}
		edges := grouped[id]
		var pair branchPair
		for _, e := range edges {
			switch e.Label.Kind {
			case parser.LabelYes, parser.LabelYesExit:
				if pair.yes != nil {
					return nil, diag.NewAnalysisError(diag.BadConditionBranches, id, "more than one Yes branch")
				}
				pair.yes = e
			case parser.LabelNo, parser.LabelNoExit:
				if pair.no != nil {
					return nil, diag.NewAnalysisError(diag.BadConditionBranches, id, "more than one No branch")
				}
				pair.no = e
			default:
				return nil, diag.NewAnalysisError(diag.BadConditionBranches, id,
					"every outgoing edge of a condition must be labeled Yes or No")
			}
		}
		if pair.yes == nil || pair.no == nil {
			return nil, diag.NewAnalysisError(diag.BadConditionBranches, id, "condition must have both a Yes and a No branch")
		}
		result[id] = pair
	}
	return result, nil
}

// checkExitPlacement enforces that an exit-code label only ever sits
// on an edge whose destination is End.
func checkExitPlacement(fc *parser.Flowchart, byID map[string]*parser.NodeDecl) error {
	for _, e := range fc.Edges {
		if !carriesExitCode(e.Label.Kind) {
			continue
		}
		dst, ok := byID[e.To]
		if !ok || dst.Kind != parser.EndNode {
			return diag.NewAnalysisError(diag.ExitOnNonEndEdge, fmt.Sprintf("%s->%s", e.From, e.To),
				"an exit-code label may only appear on an edge into End")
		}
	}
	return nil
}

func carriesExitCode(k parser.EdgeLabelKind) bool {
	return k == parser.LabelExitOnly || k == parser.LabelYesExit || k == parser.LabelNoExit
}

// build compiles the validated flowchart into a dense program.Program:
// every id becomes its index in order, and every edge is resolved to
// the Edge the interpreter walks without a further lookup.
func build(fc *parser.Flowchart, byID map[string]*parser.NodeDecl, order []string, branches map[string]branchPair) (*program.Program, error) {
	indexOf := make(map[string]int, len(order))
	for i, id := range order {
		indexOf[id] = i
	}

	outFrom := make(map[string]*parser.EdgeDecl) // single outgoing edge of Start/Process nodes
	for i := range fc.Edges {
		e := fc.Edges[i]
		if n := byID[e.From]; n.Kind == parser.StartNode || n.Kind == parser.ProcessNode {
			outFrom[e.From] = e
		}
	}

	nodes := make([]program.Node, len(order))
	for i, id := range order {
		decl := byID[id]
		n := program.Node{ID: id, Kind: decl.Kind, Statements: decl.Statements, Condition: decl.Condition}

		switch decl.Kind {
		case parser.StartNode, parser.ProcessNode:
			if e, ok := outFrom[id]; ok {
				n.HasOut = true
				n.Out = resolveEdge(e, indexOf)
			}
		case parser.ConditionNode:
			pair := branches[id]
			n.Yes = resolveEdge(pair.yes, indexOf)
			n.No = resolveEdge(pair.no, indexOf)
		}
		nodes[i] = n
	}

	return program.New(fc.Direction, nodes, indexOf["Start"], indexOf), nil
}

func resolveEdge(e *parser.EdgeDecl, indexOf map[string]int) program.Edge {
	edge := program.Edge{To: indexOf[e.To]}
	switch e.Label.Kind {
	case parser.LabelExitOnly, parser.LabelYesExit, parser.LabelNoExit:
		edge.HasExit = true
		edge.ExitCode = e.Label.Code
	}
	return edge
}
