/*
Package program holds the post-validation, dense-index representation
of a flowchart: string node ids resolved to array indices and every
edge pre-resolved to the index it targets, so the interpreter never
does a map lookup per step of the walk. Grounded on spec.md §4.2's
closing note that validation's output should be this kind of compiled
form, not on go-mix's own code — it walks its AST directly and has no
analogous compile step.
*/
package program

import "github.com/merx-lang/merx/parser"

// Edge is a pre-resolved transition out of a node: the index of the
// node it leads to, and — only when that destination is End — the
// process exit code the transition carries, if any.
type Edge struct {
	To       int
	HasExit  bool
	ExitCode int
}

// Node is one compiled flowchart node. Out is populated for Start and
// Process nodes; Yes/No are populated for Condition nodes; End nodes
// use neither.
type Node struct {
	ID         string
	Kind       parser.NodeKind
	Statements []parser.Stmt
	Condition  parser.Expr

	HasOut bool
	Out    Edge

	Yes Edge
	No  Edge
}

// Program is a validated flowchart ready to execute.
type Program struct {
	Direction parser.Direction
	Nodes     []Node
	StartIdx  int
	indexOf   map[string]int
}

// IndexOf returns the node index for id, if any. Exposed for tooling
// that wants to cross-reference by name.
func (p *Program) IndexOf(id string) (int, bool) {
	idx, ok := p.indexOf[id]
	return idx, ok
}

// New assembles a Program from the validator's resolved node list. It
// is the only constructor; callers outside package validate have no
// reason to build one directly.
func New(direction parser.Direction, nodes []Node, startIdx int, indexOf map[string]int) *Program {
	return &Program{Direction: direction, Nodes: nodes, StartIdx: startIdx, indexOf: indexOf}
}
