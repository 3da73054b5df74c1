package syntax

import (
	"errors"
	"fmt"
)

// ErrNodeNotFound is returned when an edit names a node that is not part of
// the tree being edited.
var ErrNodeNotFound = errors.New("node not found in tree")

// Replace returns a copy of root in which target is replaced by the given
// nodes, in order. With no replacements target is removed. Nodes are matched
// by identity, so target must come from root itself.
func Replace(root, target Node, replacements ...Node) (Node, error) {
	if root == target {
		if len(replacements) != 1 {
			return nil, fmt.Errorf("replace root with %d nodes: %w", len(replacements), ErrNodeNotFound)
		}
		return replacements[0], nil
	}
	found := false
	out := rewrite(root, func(n Node) ([]Node, bool) {
		if n != target {
			return nil, false
		}
		found = true
		return replacements, true
	})
	if !found {
		return root, fmt.Errorf("replace %s: %w", target.Kind(), ErrNodeNotFound)
	}
	return out, nil
}

// InsertAfter returns a copy of root with nodes placed right after anchor.
func InsertAfter(root, anchor Node, nodes ...Node) (Node, error) {
	seq := make([]Node, 0, len(nodes)+1)
	seq = append(seq, anchor)
	seq = append(seq, nodes...)
	out, err := Replace(root, anchor, seq...)
	if err != nil {
		return root, fmt.Errorf("insert after: %w", err)
	}
	return out, nil
}

// Remove returns a copy of root without targets. Removed nodes take their
// leading and trailing trivia with them. Targets that are not in root are
// ignored.
func Remove(root Node, targets ...Node) Node {
	if len(targets) == 0 {
		return root
	}
	drop := make(map[Node]bool, len(targets))
	for _, t := range targets {
		drop[t] = true
	}
	return rewrite(root, func(n Node) ([]Node, bool) {
		if drop[n] {
			return nil, true
		}
		return nil, false
	})
}

// rewrite rebuilds the containers of n bottom-up. visit is offered every
// descendant; when it reports true the returned nodes take the child's place
// and the child is not descended into. Untouched subtrees are shared.
func rewrite(n Node, visit func(Node) ([]Node, bool)) Node {
	c, ok := n.(container)
	if !ok {
		return n
	}
	kids := c.children()
	out := make([]Node, 0, len(kids))
	changed := false
	for _, k := range kids {
		if repl, handled := visit(k); handled {
			out = append(out, repl...)
			changed = true
			continue
		}
		nk := rewrite(k, visit)
		if nk != k {
			changed = true
		}
		out = append(out, nk)
	}
	if !changed {
		return n
	}
	return c.withChildren(out)
}
