package builder

import "github.com/katalvlaran/setexpr/core"

// Compile folds b into a fresh core.Expression.
func Compile[T comparable](b *Builder[T]) *core.Expression[T] {
	expr := core.New[T]()
	CompileInto(b, expr)
	return expr
}

// CompileInto folds b's staged roots into expr, appending whatever new
// nodes are needed and registering their compiled ids as new roots of
// expr. expr may already hold unrelated content; b's handles never
// collide with expr's existing ids since they live in entirely separate
// namespaces until this call translates one into the other.
//
// Translation is an iterative post-order walk with an explicit on-stack
// set: a handle that is still being expanded when it is reached again (a
// cycle the caller wired up, accidentally or not) is simply not pushed
// again, and that reference resolves through core.Empty rather than
// recursing forever. A child handle this builder never allocated also
// resolves to core.Empty.
func CompileInto[T comparable](b *Builder[T], expr *core.Expression[T]) {
	if len(b.nodes) == 0 {
		return
	}

	resolved := make([]bool, len(b.nodes))
	ids := make([]core.Id, len(b.nodes))
	onStack := make([]bool, len(b.nodes))

	type entry struct {
		handle   Handle
		expanded bool
	}
	var stack []entry

	resolve := func(h Handle) core.Id {
		if int(h) < len(resolved) && resolved[h] {
			return ids[h]
		}
		return core.Empty
	}

	for _, root := range b.roots {
		if resolved[root] {
			expr.AddRoot(ids[root])
			continue
		}

		stack = stack[:0]
		stack = append(stack, entry{root, false})

		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if resolved[top.handle] {
				onStack[top.handle] = false
				continue
			}

			if top.expanded {
				onStack[top.handle] = false
				n := b.nodes[top.handle]

				var id core.Id
				switch n.kind {
				case kindEmpty:
					id = core.Empty
				case kindUniversal:
					id = core.Universal
				case kindSet:
					id = expr.Set(n.value)
				case kindNot:
					id = expr.Complement(resolve(n.children[0]))
				case kindUnion:
					kids := make([]core.Id, len(n.children))
					for i, c := range n.children {
						kids[i] = resolve(c)
					}
					id = expr.Union(kids...)
				case kindIntersection:
					kids := make([]core.Id, len(n.children))
					for i, c := range n.children {
						kids[i] = resolve(c)
					}
					id = expr.Intersection(kids...)
				}

				resolved[top.handle] = true
				ids[top.handle] = id
				continue
			}

			onStack[top.handle] = true
			stack = append(stack, entry{top.handle, true})

			n := b.nodes[top.handle]
			for i := len(n.children) - 1; i >= 0; i-- {
				k := n.children[i]
				if int(k) >= len(b.nodes) || resolved[k] || onStack[k] {
					continue
				}
				stack = append(stack, entry{k, false})
			}
		}

		expr.AddRoot(resolve(root))
	}
}
