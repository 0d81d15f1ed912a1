// Package archive implements a tagged-tree binary codec modeled on the
// game's own byaml container format: a small typed-node tree (maps,
// arrays, strings, numbers, booleans) addressed by a fixed magic and
// version header rather than a self-describing format like JSON or
// MessagePack, since that's what the patcher needs to open and edit a
// course's data files in place.
//
// This is a from-scratch, self-consistent implementation of the shape
// the original format uses (magic, version, typed nodes, a shared string
// pool) rather than a byte-for-byte port: the upstream crate's encoder
// and decoder modules were not part of the retrieved source, only its
// node-kind enum and the magic/version constants.
package archive

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// Kind tags the type of a Node, mirroring the original format's node
// kind byte.
type Kind uint8

const (
	KindString  Kind = 0xA0
	KindArray   Kind = 0xC0
	KindMap     Kind = 0xC1
	KindStrings Kind = 0xC2
	KindBoolean Kind = 0xD0
	KindInteger Kind = 0xD1
	KindFloat   Kind = 0xD2
	KindNull    Kind = 0xFF
)

// Magic and Version identify the container. A file missing either is
// rejected by Decode before any node is interpreted.
var Magic = [2]byte{'Y', 'B'}

const Version uint16 = 1

// entry is one key/value pair of a Map node. A map keeps its entries in
// insertion order; Encode writes them sorted by Key, so two encodes of the
// same logical tree always produce identical bytes.
type entry struct {
	Key   string
	Value *Node
}

// Node is one element of the tagged tree. Exactly the fields matching
// Kind are meaningful; the zero value of every other field is ignored.
type Node struct {
	Kind Kind

	Str     string
	Strs    []string
	Arr     []*Node
	entries []entry
	Bool    bool
	Int     int32
	Float   float32
}

// NewMap returns an empty map node; use Set to populate it.
func NewMap() *Node {
	return &Node{Kind: KindMap}
}

// Set inserts or replaces key's value in a map node. Panics if n is not
// a map node — a programming error, not a data error.
func (n *Node) Set(key string, value *Node) {
	if n.Kind != KindMap {
		panic("archive: Set called on a non-map node")
	}
	for i, e := range n.entries {
		if e.Key == key {
			n.entries[i].Value = value
			return
		}
	}
	n.entries = append(n.entries, entry{Key: key, Value: value})
}

// Get looks up key in a map node.
func (n *Node) Get(key string) (*Node, bool) {
	if n.Kind != KindMap {
		return nil, false
	}
	for _, e := range n.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns a map node's keys in sorted order, matching the order
// Encode serializes them in.
func (n *Node) Keys() []string {
	keys := make([]string, len(n.entries))
	for i, e := range n.entries {
		keys[i] = e.Key
	}
	sort.Strings(keys)
	return keys
}

func String(s string) *Node  { return &Node{Kind: KindString, Str: s} }
func Integer(v int32) *Node  { return &Node{Kind: KindInteger, Int: v} }
func Float(v float32) *Node  { return &Node{Kind: KindFloat, Float: v} }
func Boolean(v bool) *Node   { return &Node{Kind: KindBoolean, Bool: v} }
func Null() *Node            { return &Node{Kind: KindNull} }
func Array(items ...*Node) *Node { return &Node{Kind: KindArray, Arr: items} }

// Encode serializes root into the container format: a 16-byte header
// (magic, version, a string-pool offset, a reserved offset, and the
// root node's offset) followed by the node tree, with every string
// de-duplicated into a single pool referenced by index.
func Encode(root *Node) ([]byte, error) {
	e := &encoder{strings: map[string]uint32{}}
	e.writeHeaderPlaceholder()
	rootOffset, err := e.writeNode(root)
	if err != nil {
		return nil, err
	}
	poolOffset := e.writeStringPool()
	e.patchHeader(poolOffset, rootOffset)
	return e.buf, nil
}

type encoder struct {
	buf     []byte
	strings map[string]uint32 // string -> index, in first-seen order
	pool    []string
}

func (e *encoder) writeHeaderPlaceholder() {
	e.buf = make([]byte, 16)
	copy(e.buf[0:2], Magic[:])
	binary.LittleEndian.PutUint16(e.buf[2:4], Version)
}

func (e *encoder) patchHeader(poolOffset, rootOffset uint32) {
	binary.LittleEndian.PutUint32(e.buf[4:8], poolOffset)
	binary.LittleEndian.PutUint32(e.buf[12:16], rootOffset)
}

func (e *encoder) align4() {
	for len(e.buf)%4 != 0 {
		e.buf = append(e.buf, 0)
	}
}

func (e *encoder) internString(s string) uint32 {
	if idx, ok := e.strings[s]; ok {
		return idx
	}
	idx := uint32(len(e.pool))
	e.pool = append(e.pool, s)
	e.strings[s] = idx
	return idx
}

func (e *encoder) writeStringPool() uint32 {
	e.align4()
	offset := uint32(len(e.buf))
	count := uint32(len(e.pool))
	e.buf = append(e.buf, make([]byte, 4)...)
	binary.LittleEndian.PutUint32(e.buf[len(e.buf)-4:], count)
	for _, s := range e.pool {
		e.buf = append(e.buf, []byte(s)...)
		e.buf = append(e.buf, 0) // NUL terminator
	}
	return offset
}

func (e *encoder) writeNode(n *Node) (uint32, error) {
	e.align4()
	offset := uint32(len(e.buf))
	e.buf = append(e.buf, byte(n.Kind))

	switch n.Kind {
	case KindNull:
		e.buf = append(e.buf, 0, 0, 0)
	case KindBoolean:
		var v byte
		if n.Bool {
			v = 1
		}
		e.buf = append(e.buf, v, 0, 0)
	case KindInteger:
		e.buf = append(e.buf, 0, 0, 0)
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], uint32(n.Int))
		e.buf = append(e.buf, tmp[:]...)
	case KindFloat:
		e.buf = append(e.buf, 0, 0, 0)
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], float32bits(n.Float))
		e.buf = append(e.buf, tmp[:]...)
	case KindString:
		idx := e.internString(n.Str)
		e.buf = append(e.buf, 0, 0, 0)
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], idx)
		e.buf = append(e.buf, tmp[:]...)
	case KindStrings:
		e.writeCount(len(n.Strs))
		for _, s := range n.Strs {
			idx := e.internString(s)
			var tmp [4]byte
			binary.LittleEndian.PutUint32(tmp[:], idx)
			e.buf = append(e.buf, tmp[:]...)
		}
	case KindArray:
		e.writeCount(len(n.Arr))
		table := len(e.buf)
		e.buf = append(e.buf, make([]byte, 4*len(n.Arr))...)
		childOffsets := make([]uint32, len(n.Arr))
		for i, child := range n.Arr {
			off, err := e.writeNode(child)
			if err != nil {
				return 0, err
			}
			childOffsets[i] = off
		}
		for i, off := range childOffsets {
			binary.LittleEndian.PutUint32(e.buf[table+4*i:], off)
		}
	case KindMap:
		sorted := append([]entry{}, n.entries...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
		e.writeCount(len(sorted))
		keyIdx := make([]uint32, len(sorted))
		for i, ent := range sorted {
			keyIdx[i] = e.internString(ent.Key)
		}
		table := len(e.buf)
		e.buf = append(e.buf, make([]byte, 8*len(sorted))...)
		childOffsets := make([]uint32, len(sorted))
		for i, ent := range sorted {
			off, err := e.writeNode(ent.Value)
			if err != nil {
				return 0, err
			}
			childOffsets[i] = off
		}
		for i := range sorted {
			binary.LittleEndian.PutUint32(e.buf[table+8*i:], keyIdx[i])
			binary.LittleEndian.PutUint32(e.buf[table+8*i+4:], childOffsets[i])
		}
	default:
		return 0, fmt.Errorf("archive: unknown node kind 0x%X", n.Kind)
	}
	return offset, nil
}

// writeCount appends a node's element count as the 3 bytes that follow
// its kind byte, the layout the original format uses for arrays/maps
// (a single kind byte never leaves room for a full 4-byte count).
func (e *encoder) writeCount(n int) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(n))
	e.buf = append(e.buf, tmp[:3]...)
}

func float32bits(f float32) uint32 {
	return math.Float32bits(f)
}

// Decode parses a container produced by Encode, rejecting anything whose
// magic or version doesn't match.
func Decode(b []byte) (*Node, error) {
	if len(b) < 16 {
		return nil, fmt.Errorf("archive: input too short for a header (%d bytes)", len(b))
	}
	if b[0] != Magic[0] || b[1] != Magic[1] {
		return nil, fmt.Errorf("archive: bad magic %q", b[0:2])
	}
	if v := binary.LittleEndian.Uint16(b[2:4]); v != Version {
		return nil, fmt.Errorf("archive: unsupported version %d", v)
	}
	poolOffset := binary.LittleEndian.Uint32(b[4:8])
	rootOffset := binary.LittleEndian.Uint32(b[12:16])

	pool, err := decodeStringPool(b, poolOffset)
	if err != nil {
		return nil, err
	}
	d := &decoder{buf: b, pool: pool}
	return d.node(rootOffset)
}

func decodeStringPool(b []byte, offset uint32) ([]string, error) {
	if int(offset)+4 > len(b) {
		return nil, fmt.Errorf("archive: string pool offset out of range")
	}
	count := binary.LittleEndian.Uint32(b[offset : offset+4])
	pool := make([]string, 0, count)
	pos := int(offset) + 4
	for i := uint32(0); i < count; i++ {
		end := pos
		for end < len(b) && b[end] != 0 {
			end++
		}
		if end >= len(b) {
			return nil, fmt.Errorf("archive: unterminated string in pool")
		}
		pool = append(pool, string(b[pos:end]))
		pos = end + 1
	}
	return pool, nil
}

type decoder struct {
	buf  []byte
	pool []string
}

func (d *decoder) str(idx uint32) (string, error) {
	if int(idx) >= len(d.pool) {
		return "", fmt.Errorf("archive: string index %d out of range", idx)
	}
	return d.pool[idx], nil
}

func (d *decoder) u32(offset uint32) uint32 {
	return binary.LittleEndian.Uint32(d.buf[offset : offset+4])
}

func (d *decoder) count(nodeOffset uint32) int {
	b := d.buf[nodeOffset+1 : nodeOffset+4]
	return int(b[0]) | int(b[1])<<8 | int(b[2])<<16
}

func (d *decoder) node(offset uint32) (*Node, error) {
	if int(offset) >= len(d.buf) {
		return nil, fmt.Errorf("archive: node offset %d out of range", offset)
	}
	kind := Kind(d.buf[offset])

	switch kind {
	case KindNull:
		return Null(), nil
	case KindBoolean:
		return Boolean(d.buf[offset+1] != 0), nil
	case KindInteger:
		return Integer(int32(d.u32(offset + 4))), nil
	case KindFloat:
		return Float(math.Float32frombits(d.u32(offset + 4))), nil
	case KindString:
		s, err := d.str(d.u32(offset + 4))
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case KindStrings:
		n := d.count(offset)
		strs := make([]string, n)
		base := offset + 4
		for i := 0; i < n; i++ {
			s, err := d.str(d.u32(base + uint32(i)*4))
			if err != nil {
				return nil, err
			}
			strs[i] = s
		}
		return &Node{Kind: KindStrings, Strs: strs}, nil
	case KindArray:
		n := d.count(offset)
		base := offset + 4
		items := make([]*Node, n)
		for i := 0; i < n; i++ {
			child, err := d.node(d.u32(base + uint32(i)*4))
			if err != nil {
				return nil, err
			}
			items[i] = child
		}
		return &Node{Kind: KindArray, Arr: items}, nil
	case KindMap:
		n := d.count(offset)
		base := offset + 4
		m := NewMap()
		for i := 0; i < n; i++ {
			pairOffset := base + uint32(i)*8
			key, err := d.str(d.u32(pairOffset))
			if err != nil {
				return nil, err
			}
			child, err := d.node(d.u32(pairOffset + 4))
			if err != nil {
				return nil, err
			}
			m.Set(key, child)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("archive: unknown node kind 0x%X at offset %d", kind, offset)
	}
}
