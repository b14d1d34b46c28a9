package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/goliatone/go-mdshelf"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderTree draws nodes with box drawing branches, folders first as the
// scanner already ordered them.
func renderTree(w io.Writer, nodes []*mdshelf.Node) {
	renderBranch(w, nodes, "")
}

func renderBranch(w io.Writer, nodes []*mdshelf.Node, prefix string) {
	for i, node := range nodes {
		last := i == len(nodes)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		label := FileStyle.Render(node.Name)
		if node.IsFolder() {
			label = FolderStyle.Render(node.Name + "/")
		}
		fmt.Fprintln(w, MutedStyle.Render(prefix+branch)+label)
		if node.IsFolder() {
			renderBranch(w, node.Children, prefix+indent)
		}
	}
}

// renderFrontMatter prints the metadata keys in sorted order.
func renderFrontMatter(w io.Writer, meta map[string]any) {
	if len(meta) == 0 {
		return
	}
	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(w, "%s %v\n", KeyStyle.Render(key+":"), meta[key])
	}
	fmt.Fprintln(w, MutedStyle.Render(strings.Repeat("─", 40)))
}
