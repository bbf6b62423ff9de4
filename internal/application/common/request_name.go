package common

import (
	"reflect"
	"strings"
)

// RequestName returns the bare type name of a request,
// e.g. "*commands.ProcessRoundCommand" becomes "ProcessRoundCommand"
func RequestName(request Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
