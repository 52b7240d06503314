package inifile

// editList accumulates line edits and applies them in a single pass, so
// every untargeted line survives byte-for-byte and in order. Indices
// refer to the original document; inserts at the same anchor keep the
// order they were recorded in.
type editList struct {
	doc          *document
	replacements map[int]string
	inserts      map[int][]string
	prepends     []string
	appends      []string
}

func newEditList(doc *document) *editList {
	return &editList{
		doc:          doc,
		replacements: make(map[int]string),
		inserts:      make(map[int][]string),
	}
}

func (e *editList) replace(index int, line string) {
	e.replacements[index] = line
}

func (e *editList) insertAfter(index int, line string) {
	e.inserts[index+1] = append(e.inserts[index+1], line)
}

func (e *editList) prepend(line string) {
	e.prepends = append(e.prepends, line)
}

func (e *editList) appendLine(line string) {
	e.appends = append(e.appends, line)
}

func (e *editList) empty() bool {
	return len(e.replacements) == 0 && len(e.inserts) == 0 &&
		len(e.prepends) == 0 && len(e.appends) == 0
}

// apply renders the final line slice. Appends land before a trailing
// empty line when one exists, preserving the file's final newline.
func (e *editList) apply() []string {
	result := make([]string, 0, len(e.doc.lines)+len(e.appends)+len(e.prepends)+4)
	result = append(result, e.prepends...)

	for i, line := range e.doc.lines {
		result = append(result, e.inserts[i]...)
		if replacement, ok := e.replacements[i]; ok {
			result = append(result, replacement)
		} else {
			result = append(result, line)
		}
	}
	result = append(result, e.inserts[len(e.doc.lines)]...)

	if len(e.appends) > 0 {
		if n := len(result); n > 0 && result[n-1] == "" {
			tail := result[n-1]
			result = append(result[:n-1], e.appends...)
			result = append(result, tail)
		} else {
			result = append(result, e.appends...)
		}
	}

	return result
}
