package importfind

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/lua"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/swift"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/agentic-research/rssg/internal/langs"
)

// grammars maps every language with a real tree-sitter grammar in this
// module's dependency set to its *sitter.Language getter. R is absent: it
// has no tree-sitter grammar in this parser set at all. Lua has an entry,
// but FindImports routes Lua through the regex fallback before any grammar
// is looked up, so both Lua and R find imports by regex alone (see
// regexfallback.go).
var grammars = map[langs.Language]func() *sitter.Language{
	langs.Python:     python.GetLanguage,
	langs.Java:       java.GetLanguage,
	langs.Kotlin:     kotlin.GetLanguage,
	langs.CSharp:     csharp.GetLanguage,
	langs.TypeScript: typescript.GetLanguage,
	langs.JavaScript: javascript.GetLanguage,
	langs.PHP:        php.GetLanguage,
	langs.Ruby:       ruby.GetLanguage,
	langs.C:          c.GetLanguage,
	langs.CPP:        cpp.GetLanguage,
	langs.Go:         golang.GetLanguage,
	langs.Swift:      swift.GetLanguage,
	langs.Rust:       rust.GetLanguage,
	langs.Lua:        lua.GetLanguage,
	langs.Bash:       bash.GetLanguage,
}

// grammarFor returns the tree-sitter grammar for lang, or nil when none is
// available (R).
func grammarFor(lang langs.Language) *sitter.Language {
	get, ok := grammars[lang]
	if !ok {
		return nil
	}
	return get()
}
