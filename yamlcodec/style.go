package yamlcodec

import "bytes"

// Style controls how Encode lays out block YAML.
type Style struct {
	// Indent is the number of spaces per nesting level.
	Indent int
	// IndentSequence indents sequences one level under their mapping key
	// (true) instead of the "indentless" style (false).
	IndentSequence bool
}

// DefaultStyle is two-space indent with indented sequences.
func DefaultStyle() Style {
	return Style{Indent: 2, IndentSequence: true}
}

// SniffStyle recovers the indentation style of an existing document so a
// patched version can be re-encoded to match. With no evidence either way it
// falls back to DefaultStyle.
func SniffStyle(data []byte) Style {
	indent := sniffIndent(data)
	lines := bytes.Split(data, []byte("\n"))
	votes := 0 // >0 prefer indented sequences, <0 prefer indentless

	for i := 0; i < len(lines); i++ {
		ln := lines[i]
		if isBlankOrComment(ln) || !endsWithMappingKey(ln) {
			continue
		}
		keyIndent := leadingSpaces(ln)
		// look ahead to the first non-blank, non-comment line
		for j := i + 1; j < len(lines); j++ {
			nxt := lines[j]
			if isBlankOrComment(nxt) {
				continue
			}
			trimmed := bytes.TrimLeft(nxt, " ")
			if len(trimmed) > 0 && trimmed[0] == '-' {
				switch leadingSpaces(nxt) {
				case keyIndent + indent:
					votes++
				case keyIndent:
					votes--
				}
			}
			break
		}
	}

	return Style{Indent: indent, IndentSequence: votes >= 0}
}

func sniffIndent(b []byte) int {
	indents := []int{}
	for _, ln := range bytes.Split(b, []byte("\n")) {
		if isBlankOrComment(ln) {
			continue
		}
		if n := leadingSpaces(ln); n > 0 {
			indents = append(indents, n)
		}
	}
	if len(indents) == 0 {
		return 2
	}

	// GCD of all observed indents gives the base step.
	result := indents[0]
	for _, n := range indents[1:] {
		result = gcd(result, n)
		if result == 1 {
			break
		}
	}
	if result > 0 && result <= 8 {
		return result
	}
	return 2
}

func isBlankOrComment(ln []byte) bool {
	t := bytes.TrimSpace(ln)
	return len(t) == 0 || t[0] == '#'
}

// endsWithMappingKey returns true for the common block "key:" form, possibly
// followed by spaces and/or a comment.
func endsWithMappingKey(ln []byte) bool {
	idx := bytes.IndexByte(ln, ':')
	if idx < 0 {
		return false
	}
	rest := bytes.TrimSpace(ln[idx+1:])
	return len(rest) == 0 || rest[0] == '#'
}

func leadingSpaces(line []byte) int {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
