package util

import (
	"fmt"
	"strings"
)

// JoinString joins the String() of every element with sep
func JoinString[A fmt.Stringer](elems []A, sep string) string {
	sb := strings.Builder{}
	for i, elem := range elems {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(elem.String())
	}
	return sb.String()
}

// JoinAny is like JoinString but formats elements with %v,
// for when A is not statically known to be a fmt.Stringer
func JoinAny[A any](elems []A, sep string) string {
	sb := strings.Builder{}
	for i, elem := range elems {
		if i > 0 {
			sb.WriteString(sep)
		}
		_, _ = fmt.Fprintf(&sb, "%v", elem)
	}
	return sb.String()
}
