package lexer

import "strings"

// Canonicalize rewrites a decoded string literal's bytes into the
// escaped form the code generator can splat directly into a
// `string@...` operand: every byte ≤ 0x20, '#' (0x23) and '\\' (0x5C)
// becomes a three-decimal-digit `\NNN` escape, matching the original's
// process_str byte-classification rule. The backslash must be
// re-escaped too, since it is IFJcode24's own escape introducer.
func Canonicalize(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b <= 0x20 || b == '#' || b == '\\' {
			sb.WriteString(escapeByte(b))
			continue
		}
		sb.WriteByte(b)
	}
	return sb.String()
}

func escapeByte(b byte) string {
	digits := "0123456789"
	return "\\" + string(digits[b/100]) + string(digits[(b/10)%10]) + string(digits[b%10])
}
