package lz4

import "encoding/binary"

// The finder keeps two chains through the window, both stored as 16-bit
// distance deltas in rings indexed by position mod 64 Ki:
//
//   - previousHash links positions whose 20-bit hash collides. It is cheap
//     to extend but noisy.
//   - previousExact links positions whose first four bytes are identical.
//     It is built by filtering the hash chain and is the only chain the
//     longest-match search walks.
//
// lastHash maps each hash bucket to the most recent absolute offset seen.

// hash4 condenses the four little-endian bytes at the head of a potential
// match into a hashBits-wide key.
func hash4(four uint32) uint32 {
	return four * hashMultiplier >> hashShift & (hashSize - 1)
}

// findMatches fills c.matches[0:blockSize] with the longest match available
// at each position. The scan starts lookback bytes before the block so the
// chains also cover the previous block's unscanned tail (or the prepended
// dictionary); negative positions update the chains but never emit.
func (c *Compressor) findMatches(dataBlock, lastBlock, nextBlock, blockSize, lookback int, uncompressed bool) {
	isGreedy := c.maxChainLength <= shortChainsGreedy
	isLazy := !isGreedy && c.maxChainLength <= shortChainsLazy

	// In greedy mode the next skipMatches positions are not searched; in
	// lazy mode the first of them still is, and the longer match wins.
	skipMatches := 0
	lazyEvaluation := false

	matches := c.matches
	data := c.data

	for i := -lookback; i < blockSize; i++ {
		if i+blockEndNoMatch > blockSize || uncompressed {
			continue
		}

		// A long run at distance 1 lets every following position reuse the
		// predecessor's match, one byte shorter.
		if i > 0 && data[dataBlock+i] == data[dataBlock+i-1] {
			if prev := matches[i-1]; prev.distance == 1 && prev.length > maxSameLetter {
				matches[i] = match{length: prev.length - 1, distance: 1}
				continue
			}
		}

		four := binary.LittleEndian.Uint32(data[dataBlock+i:])
		h := hash4(four)
		last := int(c.lastHash[h])
		c.lastHash[h] = int32(i + lastBlock)

		prevIndex := (i + previousSize) & previousMask
		distance := i + lastBlock - last
		if last == noLastHash || distance > c.window {
			c.previousHash[prevIndex] = noPrevious
			c.previousExact[prevIndex] = noPrevious
			continue
		}
		c.previousHash[prevIndex] = uint16(distance)

		// Walk the hash chain until a true four-byte match is found,
		// dropping collisions and stale entries along the way.
		for distance != noPrevious {
			curFour := binary.LittleEndian.Uint32(data[last-c.dataZero:]) // may be in the previous block
			if curFour == four {
				break
			}
			// A differing hash means the chain entry predates the current
			// bucket owner; stop rather than hop onto the wrong chain.
			if hash4(curFour) != h {
				distance = noPrevious
				break
			}
			next := int(c.previousHash[last&previousMask])
			distance += next
			if distance > c.window {
				c.previousHash[last&previousMask] = noPrevious
				distance = noPrevious
				break
			}
			last -= next
			if next == noPrevious || last < c.dataZero {
				distance = noPrevious
				break
			}
		}
		if distance == noPrevious {
			c.previousExact[prevIndex] = noPrevious
			continue
		}
		c.previousExact[prevIndex] = uint16(distance)

		// Positions before the block only seed the chains.
		if i < 0 {
			continue
		}

		if skipMatches > 0 {
			skipMatches--
			if !lazyEvaluation {
				continue
			}
			lazyEvaluation = false
		}

		longest := c.findLongestMatch(i+lastBlock, nextBlock-blockEndLiterals)
		matches[i] = longest

		if longest.isMatch() && (isLazy || isGreedy) {
			lazyEvaluation = isLazy && skipMatches == 0
			skipMatches = int(longest.length)
		}
	}
}

// findLongestMatch walks the exact chain behind the absolute position pos
// and returns the longest match ending before the absolute offset end. At
// most maxChainLength candidates are examined.
//
// Each candidate is checked in two phases around atLeast, the first byte a
// longer-than-best match must cover: a backward scan from atLeast to the
// current position (four bytes at a time, abort on mismatch), then a
// forward scan from atLeast until the first difference.
func (c *Compressor) findLongestMatch(pos, end int) match {
	result := match{length: 1}
	stepsLeft := c.maxChainLength
	data := c.data

	current := pos - c.dataZero
	stop := current + end - pos

	distance := int(c.previousExact[pos&previousMask])
	totalDistance := 0
	for distance != noPrevious {
		totalDistance += distance
		if totalDistance > c.window {
			break
		}
		distance = int(c.previousExact[(pos-totalDistance)&previousMask])

		if stepsLeft <= 0 {
			break
		}
		stepsLeft--

		atLeast := current + int(result.length) + 1
		if atLeast > stop {
			break
		}

		ok := true
		for compare := atLeast - 4; compare > current; compare -= 4 {
			if binary.LittleEndian.Uint32(data[compare:]) !=
				binary.LittleEndian.Uint32(data[compare-totalDistance:]) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		compare := atLeast
		for compare+4 <= stop && binary.LittleEndian.Uint32(data[compare:]) ==
			binary.LittleEndian.Uint32(data[compare-totalDistance:]) {
			compare += 4
		}
		for compare < stop && data[compare] == data[compare-totalDistance] {
			compare++
		}

		result.distance = uint16(totalDistance)
		result.length = uint32(compare - current)
	}
	return result
}
