package subtitle

import "strings"

const spliceMarker = ",Default"

var resetTags = []string{`{\rH}`, `{\r}`}

// Payload returns the free text of a Dialogue line: the last comma-separated
// field of the whitespace-trimmed line.
func Payload(line string) string {
	trimmed := strings.TrimSpace(line)
	if i := strings.LastIndex(trimmed, ","); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// CleanPayload strips the {\rH} and {\r} reset tags. Removal repeats until
// neither tag is left, so CleanPayload(CleanPayload(s)) == CleanPayload(s).
func CleanPayload(text string) string {
	for {
		cleaned := text
		for _, tag := range resetTags {
			cleaned = strings.ReplaceAll(cleaned, tag, "")
		}
		if cleaned == text {
			return cleaned
		}
		text = cleaned
	}
}

// SplicePrefix returns the part of line before its first ",Default".
func SplicePrefix(line string) (string, bool) {
	i := strings.Index(line, spliceMarker)
	if i < 0 {
		return "", false
	}
	return line[:i], true
}

// StyleFieldPrefix returns the part of line before the comma that opens the
// Style field (Layer, Start and End are kept).
func StyleFieldPrefix(line string) (string, bool) {
	start := strings.Index(line, dialoguePrefix)
	if start < 0 {
		return "", false
	}
	pos := start + len(dialoguePrefix)
	for n := 0; n < 3; n++ {
		i := strings.Index(line[pos:], ",")
		if i < 0 {
			return "", false
		}
		pos += i
		if n < 2 {
			pos++
		}
	}
	return line[:pos], true
}

// NormalizeNewline drops one trailing "\n" or "\r\n" and appends "\n".
func NormalizeNewline(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line + "\n"
}
