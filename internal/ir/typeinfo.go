package ir

import (
	language "github.com/hanpama/sdlgen/internal/language"
)

// typeInfoOf unwraps list and non-null wrappers of node. A non-null wrapper
// outside any list clears Nullable; inside a list it clears ItemNullable.
// Nested lists collapse onto a single list level.
func typeInfoOf(node *language.Type) TypeInfo {
	info := TypeInfo{Nullable: true, ItemNullable: true}
	unwrapType(node, &info, false)
	return info
}

func unwrapType(node *language.Type, info *TypeInfo, inList bool) {
	if node == nil {
		return
	}
	if node.NonNull {
		if inList {
			info.ItemNullable = false
		} else {
			info.Nullable = false
		}
	}
	if node.Elem != nil {
		info.IsList = true
		unwrapType(node.Elem, info, true)
		return
	}
	info.Name = node.NamedType
}
