package ast

// TreeIndex is a read-only side table over a finished tree. The tree itself
// holds no back-links.
type TreeIndex struct {
	parent map[Node]Node
	nodes  int
}

// NewIndex walks prog once and records the parent of every node.
func NewIndex(prog *Program) *TreeIndex {
	idx := &TreeIndex{parent: make(map[Node]Node, 256)}
	var stack []Node
	Walk(funcVisitor{
		enter: func(n Node) bool {
			if len(stack) > 0 {
				idx.parent[n] = stack[len(stack)-1]
			}
			stack = append(stack, n)
			idx.nodes++
			return true
		},
		leave: func(Node) {
			stack = stack[:len(stack)-1]
		},
	}, prog)
	return idx
}

type funcVisitor struct {
	enter func(Node) bool
	leave func(Node)
}

func (v funcVisitor) Enter(n Node) bool { return v.enter(n) }
func (v funcVisitor) Leave(n Node)      { v.leave(n) }

// Len returns the number of indexed nodes, the root included.
func (idx *TreeIndex) Len() int { return idx.nodes }

// Parent returns the direct parent of n, or nil for the root and unknown nodes.
func (idx *TreeIndex) Parent(n Node) Node {
	return idx.parent[n]
}

// EnclosingDecl returns the nearest function, method, closure, arrow function
// or class-like declaration strictly containing n, or nil at top level.
func (idx *TreeIndex) EnclosingDecl(n Node) Node {
	for p := idx.parent[n]; p != nil; p = idx.parent[p] {
		if IsScope(p) {
			return p
		}
	}
	return nil
}

// IsScope reports whether n opens a declaration scope.
func IsScope(n Node) bool {
	switch n.(type) {
	case *FunctionDecl, *MethodDecl, *Closure, *ArrowFunction, *PropertyHook,
		*ClassDecl, *InterfaceDecl, *TraitDecl, *EnumDecl, *AnonymousClass:
		return true
	}
	return false
}
