package path

import (
	"github.com/ohler55/ojg/jp"
)

// resolveJSONPath evaluates a '$'-rooted JSONPath expression and returns the
// first match. No match is an error, unlike a missing map key in the dotted
// grammar, because JSONPath cannot tell "absent" from "filtered out".
func resolveJSONPath(record any, expr string) (any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, &ResolutionError{Path: expr, Reason: "invalid JSONPath expression", Err: err}
	}
	results := x.Get(record)
	if len(results) == 0 {
		return nil, &ResolutionError{Path: expr, Reason: "no value matched"}
	}
	return results[0], nil
}
