package lz4

// estimateCosts walks matches backward and rewrites each entry's length so
// the whole block encodes in the fewest bytes. cost[i] is the minimum
// number of encoded bytes from position i to the end of the block; the last
// blockEndLiterals bytes are always literals and never visited.
func (c *Compressor) estimateCosts(blockSize int) {
	cost := c.cost[:blockSize]
	for i := range cost {
		cost[i] = 0
	}
	matches := c.matches

	// Nearest later position already committed to a match; the gap to it
	// is the literal run an encoding at i would extend.
	posLastMatch := blockSize

	for i := blockSize - (1 + blockEndLiterals); i >= 0; i-- {
		numLiterals := posLastMatch - i

		// Baseline: emit a literal. Every 255 literals past the first 14
		// cost one extra length byte.
		minCost := cost[i+1] + 1
		if numLiterals >= 15 && (numLiterals-15)%255 == 0 {
			minCost++
		}
		bestLength := 1

		m := matches[i]
		// Matches must not run into the literal tail.
		if m.isMatch() && i+int(m.length)+blockEndLiterals > blockSize {
			m.length = uint32(blockSize - (i + blockEndLiterals))
		}

		for length := minMatch; length <= int(m.length); length++ {
			// Token byte plus 16-bit offset.
			currentCost := cost[i+length] + 1 + 2
			if length >= 19 {
				currentCost += uint32(1 + (length-19)/255)
			}
			// "<=" prefers the longer match at equal cost: it can break a
			// long literal chain and save the chain's extra length byte.
			if currentCost <= minCost {
				minCost = currentCost
				bestLength = length
			}
			// Very long self-referencing runs: assume the full match is
			// best rather than trying every length.
			if m.distance == 1 && m.length >= maxSameLetter {
				bestLength = int(m.length)
				minCost = cost[i+int(m.length)] + 1 + 2 + uint32(1+(int(m.length)-19)/255)
				break
			}
		}

		if bestLength >= minMatch {
			posLastMatch = i
		}
		cost[i] = minCost
		matches[i].length = uint32(bestLength)
		if bestLength == 1 {
			matches[i].distance = noPrevious
		}
	}
}
