// Package langs holds the closed set of recognised languages and the
// per-language tables (file extensions, module-name convention) shared by
// the import finder and resolver (spec.md §4.F, §6).
package langs

// Language is the closed set of languages the graph generator recognises
// (spec.md §6). New languages are never added dynamically.
type Language string

const (
	Python     Language = "python"
	Java       Language = "java"
	Kotlin     Language = "kotlin"
	CSharp     Language = "c_sharp"
	TypeScript Language = "typescript"
	JavaScript Language = "javascript"
	PHP        Language = "php"
	Ruby       Language = "ruby"
	C          Language = "c"
	CPP        Language = "cpp"
	Go         Language = "go"
	Swift      Language = "swift"
	Rust       Language = "rust"
	Lua        Language = "lua"
	Bash       Language = "bash"
	R          Language = "r"
)

// All lists every recognised language in a fixed order, used to build
// deterministic dispatch tables and to validate the CLI's --lang flag.
var All = []Language{
	Python, Java, Kotlin, CSharp, TypeScript, JavaScript, PHP, Ruby,
	C, CPP, Go, Swift, Rust, Lua, Bash, R,
}

// Extensions is the bit-exact per-language file extension table
// (spec.md §6's worked example: "Python {.py, .pyi}; TypeScript {.ts,
// .tsx}; C++ {.cpp, .hpp, .cc, .hh, .cxx, .hxx, .c, .h}; Go {.go, .mod}").
var Extensions = map[Language][]string{
	Python:     {".py", ".pyi"},
	Java:       {".java"},
	Kotlin:     {".kt", ".kts"},
	CSharp:     {".cs", ".csx"},
	TypeScript: {".ts", ".tsx"},
	JavaScript: {".js", ".jsx"},
	PHP:        {".php"},
	Ruby:       {".rb"},
	C:          {".c", ".h"},
	CPP:        {".cpp", ".hpp", ".cc", ".hh", ".cxx", ".hxx", ".c", ".h"},
	Go:         {".go", ".mod"},
	Swift:      {".swift"},
	Rust:       {".rs"},
	Lua:        {".lua"},
	Bash:       {".sh", ".bash"},
	R:          {".r", ".R"},
}

// ModuleNameConvention identifies which of the handful of "derive a
// module name from a file" rules a language uses (spec.md §4.F). The
// import finder and resolver both key off this instead of switching on
// Language directly, so adding a language to an existing convention is a
// one-line table edit.
type ModuleNameConvention int

const (
	// PackageQualifiedStem: "<package>.<file stem>" (Java, Kotlin).
	PackageQualifiedStem ModuleNameConvention = iota
	// DeclaredNamespace: the package/namespace declaration text (C#, Go).
	DeclaredNamespace
	// FileStem: the file stem with no extension (TypeScript, JavaScript,
	// Python, Ruby, Rust, Lua, R).
	FileStem
	// FileBaseName: the file base name including its extension (PHP, C,
	// C++, Bash).
	FileBaseName
	// ParentDirName: the name of the file's parent directory (Swift).
	ParentDirName
)

// ModuleNameConventions maps each language to its convention (spec.md
// §4.F's table).
var ModuleNameConventions = map[Language]ModuleNameConvention{
	Java:       PackageQualifiedStem,
	Kotlin:     PackageQualifiedStem,
	CSharp:     DeclaredNamespace,
	Go:         DeclaredNamespace,
	TypeScript: FileStem,
	JavaScript: FileStem,
	Python:     FileStem,
	Ruby:       FileStem,
	Rust:       FileStem,
	Lua:        FileStem,
	R:          FileStem,
	PHP:        FileBaseName,
	C:          FileBaseName,
	CPP:        FileBaseName,
	Bash:       FileBaseName,
	Swift:      ParentDirName,
}

// usesRegexFallback is the closed set of languages whose import finder has
// no tree-sitter query and runs on regex matching alone (spec.md §4.F: Lua
// and R). Every other language has a real tree-sitter query; R additionally
// has no tree-sitter grammar available at all in the parser set this
// module links, so it is regex-only with no fallback path, not a
// belt-and-suspenders case.
var usesRegexFallback = map[Language]bool{
	Lua: true,
	R:   true,
}

// UsesRegexFallback reports whether lang's import statements are found by
// regex instead of a tree-sitter query.
func UsesRegexFallback(lang Language) bool {
	return usesRegexFallback[lang]
}

// ForExtension returns the language whose extension table contains ext
// (a leading-dot extension, e.g. ".py"), or false if none matches. When an
// extension is shared (".c" appears in both C and C++), the more specific
// owner — C — wins; callers that already know the language from a
// directory-level hint should not use this lookup.
func ForExtension(ext string) (Language, bool) {
	for _, lang := range All {
		for _, e := range Extensions[lang] {
			if e == ext {
				if lang == CPP && ext == ".c" || lang == CPP && ext == ".h" {
					continue
				}
				return lang, true
			}
		}
	}
	return "", false
}
