package highlight

import "strings"

// Result is the outcome of ReplaceAll.
type Result struct {
	Text    string
	Changed bool
}

// ReplaceAll substitutes every literal occurrence of target in text with
// replacement. Regular expression metacharacters in target have no special
// meaning. An empty target is a no-op; callers should reject it before
// calling.
func ReplaceAll(text, target, replacement string) Result {
	if target == "" {
		return Result{Text: text}
	}
	out := strings.Join(strings.Split(text, target), replacement)
	return Result{Text: out, Changed: out != text}
}

