package tagtree

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Validate checks the structural invariants of the tree: children are
// nested in their parent, sorted and pairwise disjoint, contiguous siblings
// never share a tag, and only the root is untagged.
func (r *Tree[K, T]) Validate() error {
	if r.root.tagged {
		return errors.Newf("tree %s: root carries tag %v", r.name, r.root.tag)
	}
	return r.root.validate(r.name)
}

func (n *node[K, T]) validate(name string) error {
	for i, child := range n.children {
		if !child.span.IsValid() {
			return errors.Newf("tree %s: empty node %s under %s", name, child.span, n.span)
		}
		if !child.tagged {
			return errors.Newf("tree %s: untagged node %s under %s", name, child.span, n.span)
		}
		if !child.span.CoveredBy(n.span) {
			return errors.Newf("tree %s: node %s escapes parent %s", name, child.span, n.span)
		}
		if i > 0 {
			prev := n.children[i-1]
			if prev.span.End > child.span.Start {
				return errors.Newf("tree %s: siblings %s and %s overlap or are unsorted", name, prev.span, child.span)
			}
			if prev.sameTag(child) && prev.span.End == child.span.Start {
				return errors.Newf("tree %s: contiguous siblings %s and %s both carry %v", name, prev.span, child.span, child.tag)
			}
		}
		if err := child.validate(name); err != nil {
			return err
		}
	}
	return nil
}

// String returns an indented dump of the tree, one node per line.
func (r *Tree[K, T]) String() string {
	var sb strings.Builder
	r.root.write(&sb, 0)
	return sb.String()
}

func (n *node[K, T]) write(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	fmt.Fprintf(sb, "[%v, %v)", n.span.Start, n.span.End)
	if n.tagged {
		fmt.Fprintf(sb, " %v", n.tag)
	}
	sb.WriteByte('\n')
	for _, child := range n.children {
		child.write(sb, indent+1)
	}
}
