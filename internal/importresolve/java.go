package importresolve

import (
	"strings"

	"github.com/agentic-research/rssg/internal/importfind"
)

// resolveMapLookupStar handles Java and Kotlin: a plain import is a map
// lookup by qualified class name; `import x.y.*` matches every module
// whose package (the name with its last dotted segment removed) equals
// the captured identifier (resolve_import.py's rpartition-based check).
func resolveMapLookupStar(tok importfind.Token, ctx *Context) ([]string, error) {
	if !tok.IsStar {
		return ctx.ModuleMap[tok.Text], nil
	}
	var out []string
	for moduleName, paths := range ctx.ModuleMap {
		packageName := moduleName
		if i := strings.LastIndex(moduleName, "."); i >= 0 {
			packageName = moduleName[:i]
		} else {
			packageName = ""
		}
		if packageName == tok.Text {
			out = append(out, paths...)
		}
	}
	return out, nil
}

// resolveMapLookup handles C#: a using directive is a plain map lookup by
// namespace-qualified name, no star-import form.
func resolveMapLookup(tok importfind.Token, ctx *Context) ([]string, error) {
	return ctx.ModuleMap[tok.Text], nil
}
