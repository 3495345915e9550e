package proto

import (
	"strings"

	"github.com/hanpama/sdlgen/internal/emitter"
	"github.com/hanpama/sdlgen/internal/ir"
	"github.com/hanpama/sdlgen/internal/naming"
	"google.golang.org/protobuf/reflect/protoreflect"
)

func nameField(schemaName string) protoreflect.Name {
	return protoreflect.Name(naming.SnakeCase(schemaName))
}

func nameEnumValue(enumName string, value string) protoreflect.Name {
	return protoreflect.Name(naming.ScreamingSnakeCase(enumName) + "_" + strings.ToUpper(value))
}

// nameServicePrefix is "Query", "Mutation" or "Subscription" followed by the
// platform suffix of the group, e.g. "MutationAndroid".
func nameServicePrefix(platform ir.Platform, kind ir.OperationKind) string {
	return naming.Capitalize(string(kind)) + emitter.PlatformSuffix(platform)
}

func nameService(prefix string) protoreflect.Name {
	return protoreflect.Name(prefix + "Service")
}

func nameMethod(operation string) protoreflect.Name {
	return protoreflect.Name(naming.Capitalize(operation))
}

func nameRequest(prefix, operation string) protoreflect.Name {
	return protoreflect.Name(prefix + naming.Capitalize(operation) + "Request")
}

func nameResponse(prefix, operation string) protoreflect.Name {
	return protoreflect.Name(prefix + naming.Capitalize(operation) + "Response")
}
