package parcelform

import "fmt"

// IssueAt creates an Issue on the given field with provided code, message and
// key/value params. Odd trailing keys are ignored.
func IssueAt(f Field, code, msg string, kv ...any) Issue {
	it := Issue{Field: f, Code: code, Message: msg}
	if len(kv) >= 2 {
		it.Params = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			it.Params[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return it
}
