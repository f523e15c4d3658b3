package statblock

import "strings"

// Section is an ALL-CAPS header that opens a block of related fields.
type Section string

const (
	SectionDefense          Section = "DEFENSE"
	SectionOffense          Section = "OFFENSE"
	SectionStatistics       Section = "STATISTICS"
	SectionEcology          Section = "ECOLOGY"
	SectionSpecialAbilities Section = "SPECIAL ABILITIES"
)

// sectionBoundaries lists, per section, the headers that end its body. The
// ecology body is open-ended and runs to the end of the text.
var sectionBoundaries = map[Section][]Section{
	SectionDefense:          {SectionOffense, SectionStatistics, SectionEcology, SectionSpecialAbilities},
	SectionOffense:          {SectionDefense, SectionStatistics, SectionEcology, SectionSpecialAbilities},
	SectionStatistics:       {SectionDefense, SectionOffense, SectionEcology, SectionSpecialAbilities},
	SectionEcology:          nil,
	SectionSpecialAbilities: {SectionDefense, SectionOffense, SectionStatistics, SectionEcology},
}

// document is one normalized stat block, shared read-only by every stage of
// a single extraction.
type document struct {
	text  string
	lines []string
}

func newDocument(normalized string) *document {
	return &document{
		text:  normalized,
		lines: splitLines(normalized),
	}
}

func isHeaderLine(line string, s Section) bool {
	return strings.EqualFold(strings.TrimSpace(line), string(s))
}

// section returns the body under the first line that is exactly the header
// s (case-insensitive), up to the next boundary header or end of text.
func (d *document) section(s Section) (string, bool) {
	start := -1
	for i, line := range d.lines {
		if isHeaderLine(line, s) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return "", false
	}

	end := len(d.lines)
	for i := start; i < len(d.lines) && end == len(d.lines); i++ {
		for _, b := range sectionBoundaries[s] {
			if isHeaderLine(d.lines[i], b) {
				end = i
				break
			}
		}
	}
	return strings.Join(d.lines[start:end], "\n"), true
}
