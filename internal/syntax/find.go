package syntax

// Path is the ancestor chain of a node, root first. It replaces parent
// pointers: nodes are shared between tree versions and cannot know their
// parent, so the chain is captured while descending.
type Path []Node

// Node returns the last element, or nil for an empty path.
func (p Path) Node() Node {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// Root returns the first element, or nil for an empty path.
func (p Path) Root() Node {
	if len(p) == 0 {
		return nil
	}
	return p[0]
}

// Parent returns the immediate container of Node, or nil at the root.
func (p Path) Parent() Node {
	if len(p) < 2 {
		return nil
	}
	return p[len(p)-2]
}

// EnclosingType returns the nearest type declaration strictly above Node
// and the path that ends at it.
func (p Path) EnclosingType() (*TypeDecl, Path) {
	for i := len(p) - 2; i >= 0; i-- {
		if t, ok := p[i].(*TypeDecl); ok {
			return t, p[:i+1]
		}
	}
	return nil, nil
}

// Child extends the path by n.
func (p Path) Child(n Node) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, n)
}

// Walk visits root and its descendants in source order. Returning false
// from fn skips the children of the visited node.
func Walk(root Node, fn func(Path) bool) {
	walk(Path{root}, fn)
}

func walk(p Path, fn func(Path) bool) {
	if !fn(p) {
		return
	}
	for _, c := range Children(p.Node()) {
		walk(p.Child(c), fn)
	}
}

// PathTo finds target in root by identity.
func PathTo(root, target Node) (Path, bool) {
	var found Path
	Walk(root, func(p Path) bool {
		if found != nil {
			return false
		}
		if p.Node() == target {
			found = p
			return false
		}
		return true
	})
	return found, found != nil
}

// Types returns the paths of every type declaration under root.
func Types(root Node) []Path {
	var out []Path
	Walk(root, func(p Path) bool {
		if _, ok := p.Node().(*TypeDecl); ok {
			out = append(out, p)
		}
		return true
	})
	return out
}

// FindNode returns the path to the deepest node whose span, trivia
// excluded, covers the selection.
func FindNode(root Node, sel Span) Path {
	p := Path{root}
	start := 0
	for {
		c, ok := p.Node().(container)
		if !ok {
			return p
		}
		off := start + c.childOffset()
		var next Node
		for _, k := range c.children() {
			sp := SpanAt(k, off)
			if sel.Start >= sp.Start && sel.End() <= sp.End() {
				next = k
				break
			}
			off += k.FullWidth()
		}
		if next == nil {
			return p
		}
		p = p.Child(next)
		start = off
	}
}

// Offset returns the start of target in the printed root, trivia included.
func Offset(root, target Node) (int, bool) {
	path, ok := PathTo(root, target)
	if !ok {
		return 0, false
	}
	start := 0
	for i := 1; i < len(path); i++ {
		c := path[i-1].(container)
		start += c.childOffset()
		for _, k := range c.children() {
			if k == path[i] {
				break
			}
			start += k.FullWidth()
		}
	}
	return start, true
}
