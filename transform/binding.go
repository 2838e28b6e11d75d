package transform

import (
	"slices"

	"github.com/monolite/setpath/jsast"
)

// ResolveBinding reports whether name, looked up from scope, is bound by a
// module import. Undeclared names and local declarations of any kind shadow
// nothing and resolve to false. With sources given, the import must also
// come from one of them.
func ResolveBinding(resolver jsast.BindingResolver, name string, scope *jsast.Scope, sources ...string) bool {
	if resolver == nil {
		return false
	}
	binding, ok := resolver.ResolveBinding(name, scope)
	if !ok || binding.Kind != jsast.BindingModule {
		return false
	}
	return len(sources) == 0 || slices.Contains(sources, binding.Source)
}
