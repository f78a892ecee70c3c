// Package prompt compiles the semantic review prompt for one candidate from
// a placeholder template, a technique document, and scan diagnostics.
package prompt

import (
	"fmt"
	"strings"
)

// Interpolate renders a template whose placeholders look like {name}. Literal
// braces are escaped as {{ and }}. Templates are authored guidance, so any
// defect is surfaced loudly instead of dropping content: an unknown
// placeholder, an unterminated placeholder, or a stray unescaped brace all
// return an error naming the offender and its offset.
func Interpolate(tpl string, vars map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(tpl))

	for i := 0; i < len(tpl); {
		switch tpl[i] {
		case '{':
			if i+1 < len(tpl) && tpl[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(tpl[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("template error: unterminated placeholder at offset %d", i)
			}
			name := tpl[i+1 : i+1+end]
			if !validPlaceholderName(name) {
				return "", fmt.Errorf("template error: malformed placeholder %q at offset %d (escape literal braces as '{{' and '}}')", name, i)
			}
			val, ok := vars[name]
			if !ok {
				return "", fmt.Errorf("template error: unknown placeholder {%s} at offset %d", name, i)
			}
			b.WriteString(val)
			i += end + 2
		case '}':
			if i+1 < len(tpl) && tpl[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return "", fmt.Errorf("template error: unescaped '}' at offset %d (escape literal braces as '{{' and '}}')", i)
		default:
			b.WriteByte(tpl[i])
			i++
		}
	}
	return b.String(), nil
}

func validPlaceholderName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
