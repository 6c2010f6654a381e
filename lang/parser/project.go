package parser

import (
	"sort"

	"github.com/twoentartian/tydi-lang-2-sub000/lang/ast"
)

// ParseProject parses a whole compilation unit: files maps a file tag
// (typically a path) to its .tydi source text. Several files may declare
// the same `package NAME;` header — their bodies are parsed directly into
// one shared *ast.Package.Scope, in file-tag sorted order, so every
// scope-relation edge added while parsing a later file targets the same
// scope object the earlier file's declarations live in. Parsing each file
// into its own throwaway scope and merging declarations afterward would
// orphan any edge added during that file's parsing.
func ParseProject(files map[string]string) (*ast.Project, error) {
	tags := make([]string, 0, len(files))
	for tag := range files {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	proj := ast.NewProject("")
	for _, tag := range tags {
		src := files[tag]
		p := newParser(tag, src)

		name, err := p.parsePackageHeader()
		if err != nil {
			return nil, err
		}

		pkg, ok := proj.Package(name)
		if !ok {
			pkg = ast.NewPackage(name, tag, src)
			if err := proj.AddPackage(pkg); err != nil {
				return nil, err
			}
		} else {
			pkg.SourceText += "\n" + src
			pkg.FileTag += "," + tag
		}

		if err := p.parseTopLevel(pkg.Scope); err != nil {
			return nil, err
		}
	}
	return proj, nil
}
