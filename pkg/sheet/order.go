package sheet

import "sort"

// ReadingLineBand is the vertical tolerance within which freeform blocks are
// considered to sit on the same line.
const ReadingLineBand = 24.0

// ComputeReadingOrder ranks blocks top-to-bottom, left-to-right. Placed
// freeform blocks are ordered by page, then by line (tops within
// [ReadingLineBand] of the first block on the line), then by x. Blocks
// without a free position follow in list order.
func ComputeReadingOrder(blocks []Block) map[string]int {
	type entry struct {
		idx int
		b   Block
	}
	var placed, unplaced []entry
	for i, b := range blocks {
		if b.Free != nil {
			placed = append(placed, entry{i, b})
		} else {
			unplaced = append(unplaced, entry{i, b})
		}
	}

	sort.SliceStable(placed, func(i, j int) bool {
		a, b := placed[i].b.Free, placed[j].b.Free
		if a.PageIndex != b.PageIndex {
			return a.PageIndex < b.PageIndex
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	ranks := make(map[string]int, len(blocks))
	next := 0
	for start := 0; start < len(placed); {
		first := placed[start].b.Free
		end := start + 1
		for end < len(placed) {
			f := placed[end].b.Free
			if f.PageIndex != first.PageIndex || f.Y-first.Y > ReadingLineBand {
				break
			}
			end++
		}
		line := placed[start:end]
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].b.Free.X < line[j].b.Free.X
		})
		for _, e := range line {
			ranks[e.b.ID] = next
			next++
		}
		start = end
	}
	for _, e := range unplaced {
		ranks[e.b.ID] = next
		next++
	}
	return ranks
}

// CommitReadingOrder reorders the block list by computed reading order and
// writes the ranks into Order.
func (ws *Worksheet) CommitReadingOrder() {
	ranks := ComputeReadingOrder(ws.Blocks)
	sort.SliceStable(ws.Blocks, func(i, j int) bool {
		return ranks[ws.Blocks[i].ID] < ranks[ws.Blocks[j].ID]
	})
	ws.Normalize()
}
