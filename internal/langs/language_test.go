package langs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionsAreBitExact(t *testing.T) {
	assert.Equal(t, []string{".py", ".pyi"}, Extensions[Python])
	assert.Equal(t, []string{".ts", ".tsx"}, Extensions[TypeScript])
	assert.Equal(t, []string{".cpp", ".hpp", ".cc", ".hh", ".cxx", ".hxx", ".c", ".h"}, Extensions[CPP])
	assert.Equal(t, []string{".go", ".mod"}, Extensions[Go])
}

func TestOnlyLuaAndRUseRegexFallback(t *testing.T) {
	for _, l := range All {
		want := l == Lua || l == R
		assert.Equal(t, want, UsesRegexFallback(l), "language %s", l)
	}
}

func TestForExtensionPrefersCOverCPPForSharedExtensions(t *testing.T) {
	lang, ok := ForExtension(".c")
	assert.True(t, ok)
	assert.Equal(t, C, lang)
}

func TestEveryLanguageHasAModuleNameConvention(t *testing.T) {
	for _, l := range All {
		_, ok := ModuleNameConventions[l]
		assert.True(t, ok, "language %s missing a module name convention", l)
	}
}
