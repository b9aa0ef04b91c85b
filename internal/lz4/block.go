package lz4

// emitBlock packs the selected matches and the literals between them into
// LZ4 block tokens, appending to dst. data is the block's first byte.
//
// Each token's high nibble holds min(numLiterals, 15) and its low nibble
// min(matchLength−4, 15); lengths of 15 and above continue in chained 255
// bytes with a final remainder byte (which is emitted even when zero). The
// terminal token carries the block's trailing literals and no match payload.
func emitBlock(dst []byte, matches []match, data []byte) []byte {
	literalsFrom, literalsTo := 0, 0

	for offset := 0; offset < len(matches); {
		m := matches[offset]

		if !m.isMatch() {
			if literalsFrom == literalsTo {
				literalsFrom, literalsTo = offset, offset
			}
			literalsTo++
			m.length = 1
		}
		offset += int(m.length)
		lastToken := offset == len(matches)

		if !m.isMatch() && !lastToken {
			continue
		}

		numLiterals := literalsTo - literalsFrom
		token := numLiterals
		if numLiterals >= 15 {
			token = 15
		}
		token <<= 4

		// A match of 4 encodes as 0; the terminal token has no match.
		matchLength := int(m.length) - minMatch
		if !lastToken {
			if matchLength < 15 {
				token |= matchLength
			} else {
				token |= 15
			}
		}
		dst = append(dst, byte(token))

		if numLiterals >= 15 {
			numLiterals -= 15
			for numLiterals >= 255 {
				dst = append(dst, 255)
				numLiterals -= 255
			}
			dst = append(dst, byte(numLiterals))
		}
		if literalsFrom != literalsTo {
			dst = append(dst, data[literalsFrom:literalsTo]...)
			literalsFrom, literalsTo = 0, 0
		}

		if lastToken {
			break
		}

		dst = append(dst, byte(m.distance), byte(m.distance>>8))
		if matchLength >= 15 {
			matchLength -= 15
			for matchLength >= 255 {
				dst = append(dst, 255)
				matchLength -= 255
			}
			dst = append(dst, byte(matchLength))
		}
	}
	return dst
}
