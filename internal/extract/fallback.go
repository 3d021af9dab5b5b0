package extract

// fallbackRows is the coarse re-scan used when the primary pass found no
// rows: every delimited line after a "#" heading becomes a row under that
// heading. Entity names are not consulted.
func fallbackRows(lines []string) []Row {
	rows := make([]Row, 0)
	last := ""
	for _, raw := range lines {
		line := Classify(raw)
		if line.Kind == Heading {
			last = line.Text
			continue
		}
		if last == "" {
			continue
		}
		if parts := splitSegments(StripMarker(raw)); len(parts) >= 2 {
			rows = append(rows, Row{Category: last, ValueA: parts[0], ValueB: parts[1]})
		}
	}
	return rows
}
