package text

import "sync"

// coverageMap memoizes "does this font have a glyph for r" with two bits per
// rune (checked, has). Blocks of 256 runes are allocated on first use, which
// keeps sparse CJK and emoji lookups cheap.
//
// coverageMap is safe for concurrent use.
type coverageMap struct {
	mu     sync.RWMutex
	blocks map[uint32]*coverageBlock
}

// coverageBlock holds 256 runes × 2 bits.
type coverageBlock struct {
	bits [8]uint64
}

func newCoverageMap() *coverageMap {
	return &coverageMap{blocks: make(map[uint32]*coverageBlock)}
}

func coverageSlot(r rune) (block uint32, word int, shift uint) {
	idx := uint32(r) & 0xFF
	return uint32(r) >> 8, int(idx / 32), uint(idx%32) * 2
}

// get returns (has, checked).
func (m *coverageMap) get(r rune) (has, checked bool) {
	blk, word, shift := coverageSlot(r)
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blocks[blk]
	if !ok {
		return false, false
	}
	bits := b.bits[word] >> shift
	return bits&2 != 0, bits&1 != 0
}

// set records has for r.
func (m *coverageMap) set(r rune, has bool) {
	blk, word, shift := coverageSlot(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blocks[blk]
	if !ok {
		b = &coverageBlock{}
		m.blocks[blk] = b
	}
	b.bits[word] |= 1 << shift
	if has {
		b.bits[word] |= 2 << shift
	} else {
		b.bits[word] &^= 2 << shift
	}
}
