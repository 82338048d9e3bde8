package workbook

// Spread is a pair of facing pages. The cover spread has no left page.
type Spread struct {
	Index   int   `json:"index"`
	Left    *Page `json:"left"`
	Right   *Page `json:"right"`
	IsCover bool  `json:"isCover"`
}

// BuildSpreads pairs pages into facing spreads for print preview. Spread 0
// holds page 1 on the right; then (2,3), (4,5), ... A trailing odd page has
// no right partner.
func BuildSpreads(pages []Page) []Spread {
	sorted := sortedPages(pages)
	if len(sorted) == 0 {
		return nil
	}
	spreads := []Spread{{Index: 0, Right: &sorted[0], IsCover: true}}
	for i := 1; i < len(sorted); i += 2 {
		s := Spread{Index: len(spreads), Left: &sorted[i]}
		if i+1 < len(sorted) {
			s.Right = &sorted[i+1]
		}
		spreads = append(spreads, s)
	}
	return spreads
}
