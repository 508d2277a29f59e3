package render

import "strings"

// Node is anything that can draw itself into the terminal.
// Nodes are compared by identity, so implementations should be pointers.
type Node interface {
	View() string
}

// Surface mounts, swaps and unmounts nodes.
type Surface interface {
	Render(n Node)
	Replace(newNode, oldNode Node)
	Remove(n Node)
	Contains(n Node) bool
}

// Container is an ordered Surface drawn top to bottom.
type Container struct {
	nodes []Node
	sep   string
}

func NewContainer() *Container {
	return &Container{sep: "\n"}
}

// Render appends n. Mounting a node twice is a no-op.
func (c *Container) Render(n Node) {
	if n == nil || c.Contains(n) {
		return
	}
	c.nodes = append(c.nodes, n)
}

// Replace puts newNode where oldNode was. Nothing happens if oldNode is
// not mounted.
func (c *Container) Replace(newNode, oldNode Node) {
	i := c.Index(oldNode)
	if i < 0 || newNode == nil {
		return
	}
	c.nodes[i] = newNode
}

// Remove unmounts n; unknown nodes are ignored.
func (c *Container) Remove(n Node) {
	i := c.Index(n)
	if i < 0 {
		return
	}
	c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)
}

func (c *Container) Contains(n Node) bool { return c.Index(n) >= 0 }

func (c *Container) Index(n Node) int {
	if n == nil {
		return -1
	}
	for i, x := range c.nodes {
		if x == n {
			return i
		}
	}
	return -1
}

func (c *Container) Len() int { return len(c.nodes) }

// At returns the node at i, or nil when out of range.
func (c *Container) At(i int) Node {
	if i < 0 || i >= len(c.nodes) {
		return nil
	}
	return c.nodes[i]
}

// Nodes returns a snapshot of the mounted nodes.
func (c *Container) Nodes() []Node {
	out := make([]Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Clear unmounts everything.
func (c *Container) Clear() { c.nodes = nil }

func (c *Container) View() string {
	parts := make([]string, 0, len(c.nodes))
	for _, n := range c.nodes {
		parts = append(parts, n.View())
	}
	return strings.Join(parts, c.sep)
}
