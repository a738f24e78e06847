package param

// Node is an element of a parameter tree: a *Parameter or a *Group
type Node interface {
	node()
}

// Group is an ordered collection of parameters and nested groups. The order
// in which children are added is the order the host sees after flattening.
type Group struct {
	Name     string
	children []Node
}

// NewGroup creates a group holding children in the given order
func NewGroup(name string, children ...Node) *Group {
	g := &Group{Name: name}
	return g.Add(children...)
}

// Add appends children in host order
func (g *Group) Add(children ...Node) *Group {
	for _, c := range children {
		if c != nil {
			g.children = append(g.children, c)
		}
	}
	return g
}

// Children returns a copy of the direct children
func (g *Group) Children() []Node {
	out := make([]Node, len(g.children))
	copy(out, g.children)
	return out
}

// Len returns the number of parameters in the group, nested groups included
func (g *Group) Len() int {
	n := 0
	for _, c := range g.children {
		switch c := c.(type) {
		case *Parameter:
			n++
		case *Group:
			n += c.Len()
		}
	}
	return n
}

// Flatten returns every parameter depth-first in insertion order, with
// nested groups spliced in at the position they were added.
func (g *Group) Flatten() []*Parameter {
	out := make([]*Parameter, 0, g.Len())
	g.Walk(func(_ []string, p *Parameter) {
		out = append(out, p)
	})
	return out
}

// Walk calls fn for every parameter in flatten order. path holds the names of
// the nested groups enclosing p, not including g itself; it is reused between
// calls and must be copied if retained.
func (g *Group) Walk(fn func(path []string, p *Parameter)) {
	g.walk(nil, fn)
}

func (g *Group) walk(path []string, fn func([]string, *Parameter)) {
	for _, c := range g.children {
		switch c := c.(type) {
		case *Parameter:
			fn(path, c)
		case *Group:
			c.walk(append(path, c.Name), fn)
		}
	}
}

func (*Group) node() {}
