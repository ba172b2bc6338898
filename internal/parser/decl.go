package parser

import (
	"context"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Decl is a directly declared export (`export const x`, `export function f`,
// ...) found in a leaf implementation file. Declarations are only consulted
// when a namespace re-export is flattened into named exports; they are not
// re-export entries themselves.
type Decl struct {
	// Name is the declared identifier.
	Name string
	// Form is the declaration form: function, class, variable, interface,
	// type, or enum.
	Form string
	// Line is the 1-based line of the declaration.
	Line int
}

// TypeOnly reports whether the declaration exists only at the type level.
// Interfaces and type aliases have no runtime value; enums and everything
// else do.
func (d Decl) TypeOnly() bool {
	return d.Form == "interface" || d.Form == "type"
}

// declForms maps tree-sitter declaration node types to declaration forms.
var declForms = map[string]string{
	"function_declaration":           "function",
	"generator_function_declaration": "function",
	"class_declaration":              "class",
	"abstract_class_declaration":     "class",
	"interface_declaration":          "interface",
	"type_alias_declaration":         "type",
	"enum_declaration":               "enum",
}

// ScanDeclarations extracts the names a file exports through direct
// declarations. Default exports are excluded: `export * from` does not
// forward them. The scan is tree-sitter backed with a line-regex fallback,
// and never fails; unparseable input yields whatever could be recovered.
func ScanDeclarations(source string) []Decl {
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(typescript.GetLanguage())

	src := []byte(source)
	tree, err := p.ParseCtx(context.Background(), nil, src)
	if err != nil || tree == nil {
		return scanDeclarationsFallback(source)
	}
	defer tree.Close()

	var decls []Decl
	root := tree.RootNode()
	for i := 0; i < int(root.ChildCount()); i++ {
		stmt := root.Child(i)
		if stmt.Type() != "export_statement" {
			continue
		}
		decls = append(decls, exportedDecls(stmt, src)...)
	}
	return decls
}

// ScanTypeDeclarations extracts only type-level declaration names:
// `export type`, `export interface`, and `export enum`. Used to recover
// type-declaration barrels that carry no re-export statements at all.
func ScanTypeDeclarations(source string) []Decl {
	var decls []Decl
	for _, d := range ScanDeclarations(source) {
		switch d.Form {
		case "type", "interface", "enum":
			decls = append(decls, d)
		}
	}
	return decls
}

// exportedDecls extracts declarations from a single export_statement node.
func exportedDecls(stmt *sitter.Node, src []byte) []Decl {
	// A `default` child means `export default ...`, which a namespace
	// re-export does not forward.
	for i := 0; i < int(stmt.ChildCount()); i++ {
		if stmt.Child(i).Type() == "default" {
			return nil
		}
	}

	var decls []Decl
	for i := 0; i < int(stmt.ChildCount()); i++ {
		child := stmt.Child(i)
		switch child.Type() {
		case "lexical_declaration", "variable_declaration":
			decls = append(decls, declaredVariables(child, src)...)
		default:
			form, ok := declForms[child.Type()]
			if !ok {
				continue
			}
			name := child.ChildByFieldName("name")
			if name == nil {
				continue
			}
			decls = append(decls, Decl{
				Name: name.Content(src),
				Form: form,
				Line: int(child.StartPoint().Row) + 1,
			})
		}
	}
	return decls
}

// declaredVariables extracts the identifiers bound by a const/let/var
// declaration. Destructuring patterns are skipped; only plain identifier
// declarators contribute names.
func declaredVariables(node *sitter.Node, src []byte) []Decl {
	var decls []Decl
	for i := 0; i < int(node.ChildCount()); i++ {
		declarator := node.Child(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		name := declarator.ChildByFieldName("name")
		if name == nil || name.Type() != "identifier" {
			continue
		}
		decls = append(decls, Decl{
			Name: name.Content(src),
			Form: "variable",
			Line: int(declarator.StartPoint().Row) + 1,
		})
	}
	return decls
}

// declFallbackRe recognizes single-line declaration exports when the
// tree-sitter parse is unavailable.
var declFallbackRe = regexp.MustCompile(`^export\s+(?:declare\s+)?(?:abstract\s+)?(?:async\s+)?(const|let|var|function|class|interface|type|enum)\s+([A-Za-z_$][A-Za-z0-9_$]*)`)

// scanDeclarationsFallback is the line-based declaration scan.
func scanDeclarationsFallback(source string) []Decl {
	var decls []Decl
	for i, line := range strings.Split(source, "\n") {
		caps := declFallbackRe.FindStringSubmatch(strings.TrimSpace(line))
		if caps == nil {
			continue
		}
		form := caps[1]
		switch form {
		case "const", "let", "var":
			form = "variable"
		}
		decls = append(decls, Decl{Name: caps[2], Form: form, Line: i + 1})
	}
	return decls
}
