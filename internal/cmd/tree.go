package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/xlab/treeprint"

	"github.com/Alia5/lspgen/internal/codegen/meta"
	"github.com/Alia5/lspgen/internal/codegen/model"
	"github.com/Alia5/lspgen/internal/codegen/resolver"
)

type Tree struct {
	Source `embed:""`
	Name   string `help:"Only print the ancestry of this structure"`

	out io.Writer `kong:"-"`
}

// Run is called by Kong when the tree command is executed.
func (t *Tree) Run(logger *slog.Logger) error {
	doc, opts, err := t.load(logger)
	if err != nil {
		return err
	}
	md := resolver.New(opts.Resolver, logger).Process(doc)

	tree, err := AncestryTree(md, t.Name)
	if err != nil {
		return err
	}
	out := t.out
	if out == nil {
		out = os.Stdout
	}
	_, err = io.WriteString(out, tree.String())
	return err
}

// AncestryTree renders each structure with its bases below it. Bases that
// are not structures of md are marked external.
func AncestryTree(md *meta.Metadata, name string) (treeprint.Tree, error) {
	structs := md.Structures
	label := "structures"
	if md.Version != "" {
		label += " (" + md.Version + ")"
	}
	if name != "" {
		s := md.Structure(name)
		if s == nil {
			return nil, fmt.Errorf("no structure named %q", name)
		}
		structs = []*model.Structure{s}
	}

	root := treeprint.NewWithRoot(label)
	for _, s := range structs {
		addAncestors(root, s, map[*model.Structure]bool{})
	}
	return root, nil
}

func addAncestors(parent treeprint.Tree, s *model.Structure, path map[*model.Structure]bool) {
	extends := s.UniqueExtends()
	if len(extends) == 0 {
		parent.AddNode(s.Name)
		return
	}
	node := parent.AddBranch(s.Name)
	path[s] = true
	defer delete(path, s)

	linked := make(map[string]*model.Structure, len(s.Bases))
	for _, b := range s.Bases {
		linked[b.Name] = b
	}
	for _, ext := range extends {
		base, ok := linked[ext.Name]
		switch {
		case ext.Name == s.Name || (ok && path[base]):
			node.AddNode(ext.Name + " (cycle)")
		case !ok:
			node.AddNode(ext.Name + " (external)")
		default:
			addAncestors(node, base, path)
		}
	}
}
