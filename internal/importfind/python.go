package importfind

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// PythonImport is the decomposed form of a Python import_statement or
// import_from_statement, matching importlab's ImportStatement fields that
// original_source/.../resolve_import.py builds before handing off to the
// import-search emulator in python_resolver.py.
type PythonImport struct {
	// Name is the dotted path importresolve's Python emulator (its
	// python.go) searches for. For a
	// from-import it's "<module_name>.<imported_symbol>" — the imported
	// symbol's own "as" alias target is discarded and only its original
	// name is appended, because what matters here is having a fully
	// dotted candidate path to fall back from (the last segment may name
	// a symbol, not a module: `from a.b import c` tries both "a/b.py" and
	// "a/b/c.py").
	Name string
	// AsName is the local alias a plain `import a.b.c as x` binds to. For
	// a from-import it holds the imported symbol's original name (the
	// segment appended to Name), not its alias. Unused by the resolution
	// emulator itself (kept for fidelity with the statement's full shape).
	AsName string
	// IsFrom distinguishes `from a import b` from `import a`.
	IsFrom bool
	// IsStar marks `from a import *`.
	IsStar bool
}

// findPythonImports runs the Python import query and decomposes each
// captured import_statement/import_from_statement node into a
// PythonImport, replicating resolve_import.py's field extraction
// (module_name field, aliased_import detection, wildcard_import child).
func (f *Finder) findPythonImports(grammar *sitter.Language, queryStr, filePath string, source []byte, root *sitter.Node) ([]Token, error) {
	q, err := compiledQuery(grammar, queryStr)
	if err != nil {
		return nil, err
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	var out []Token
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, source)
		for _, c := range m.Captures {
			if q.CaptureNameForId(c.Index) != captureName {
				continue
			}
			out = append(out, Token{
				Text:   c.Node.Content(source),
				Anchor: nodeLocation(filePath, c.Node),
				Python: decomposePythonImport(c.Node, source),
			})
		}
	}
	return out, nil
}

func decomposePythonImport(stmt *sitter.Node, source []byte) *PythonImport {
	if stmt.Type() == "import_from_statement" {
		moduleNode := stmt.ChildByFieldName("module_name")
		if moduleNode == nil {
			return &PythonImport{}
		}
		moduleName := moduleNode.Content(source)

		var asName string
		if nameNode := stmt.ChildByFieldName("name"); nameNode != nil {
			if nameNode.Type() == "aliased_import" {
				if inner := nameNode.ChildByFieldName("name"); inner != nil {
					asName = inner.Content(source)
				}
			} else {
				asName = nameNode.Content(source)
			}
		}

		isStar := false
		for i := 0; i < int(stmt.ChildCount()); i++ {
			if stmt.Child(i).Type() == "wildcard_import" {
				isStar = true
				break
			}
		}

		name := moduleName
		if asName != "" {
			name = moduleName + "." + asName
		}
		return &PythonImport{Name: name, AsName: asName, IsFrom: true, IsStar: isStar}
	}

	// import_statement: `import a.b.c` or `import a.b.c as x`.
	var name, asName string
	if nameNode := stmt.ChildByFieldName("name"); nameNode != nil {
		if nameNode.Type() == "aliased_import" {
			if inner := nameNode.ChildByFieldName("name"); inner != nil {
				name = inner.Content(source)
			}
			if alias := nameNode.ChildByFieldName("alias"); alias != nil {
				asName = alias.Content(source)
			}
		} else {
			name = nameNode.Content(source)
		}
	}
	return &PythonImport{Name: name, AsName: asName, IsFrom: false, IsStar: false}
}
