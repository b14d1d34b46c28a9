// Package tree builds the sorted folder/file hierarchy shown for a
// registered directory of markdown files.
package tree

import "encoding/json"

// NodeType distinguishes folders from files in a scanned tree.
type NodeType string

const (
	NodeFile   NodeType = "file"
	NodeFolder NodeType = "folder"
)

// Node is a single entry of a scanned tree. Path is relative to the scan
// root and always slash separated; it is the stable identifier for a file
// within its directory.
type Node struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Type     NodeType `json:"type"`
	Children []*Node  `json:"children,omitempty"`
}

// IsFolder reports whether the node is a folder.
func (n *Node) IsFolder() bool {
	return n != nil && n.Type == NodeFolder
}

// MarshalJSON omits children for files and always emits them (possibly as
// an empty list) for folders.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.Type != NodeFolder {
		return json.Marshal(struct {
			Name string   `json:"name"`
			Path string   `json:"path"`
			Type NodeType `json:"type"`
		}{n.Name, n.Path, n.Type})
	}
	children := n.Children
	if children == nil {
		children = []*Node{}
	}
	return json.Marshal(struct {
		Name     string   `json:"name"`
		Path     string   `json:"path"`
		Type     NodeType `json:"type"`
		Children []*Node  `json:"children"`
	}{n.Name, n.Path, n.Type, children})
}

// Walk visits every node depth-first in tree order. Returning false from fn
// skips the node's children.
func Walk(nodes []*Node, fn func(*Node) bool) {
	stack := make([]*Node, 0, len(nodes))
	for i := len(nodes) - 1; i >= 0; i-- {
		stack = append(stack, nodes[i])
	}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == nil || !fn(node) {
			continue
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
}

// FindByPath returns the node with the given relative path, or nil.
func FindByPath(nodes []*Node, path string) *Node {
	var found *Node
	Walk(nodes, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Path == path {
			found = n
			return false
		}
		return true
	})
	return found
}

// Counts returns the number of folder and file nodes in the tree.
func Counts(nodes []*Node) (folders, files int) {
	Walk(nodes, func(n *Node) bool {
		if n.IsFolder() {
			folders++
		} else {
			files++
		}
		return true
	})
	return folders, files
}

// FilePaths lists the relative paths of every file node in tree order.
func FilePaths(nodes []*Node) []string {
	var paths []string
	Walk(nodes, func(n *Node) bool {
		if !n.IsFolder() {
			paths = append(paths, n.Path)
		}
		return true
	})
	return paths
}
