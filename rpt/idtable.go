package rpt

import (
	"encoding/binary"
	"io"
)

// ensureIDs materialises the flat ID table on first use. It is
// idempotent: subsequent calls return immediately once r.ids is
// populated. The table holds, in canonical order, every subcatchment
// name, then every node name, then every link name, then every tracked
// pollutant's name — nSub+nNode+nLink+nPollut entries total.
func (r *Reader) ensureIDs() error {
	if r.ids != nil {
		return nil
	}

	n := int(r.nSub + r.nNode + r.nLink + r.nPollut)
	ids := make([]idEntry, n)

	if _, err := r.file.Seek(r.idPos, io.SeekStart); err != nil {
		return ErrNotOpen
	}

	for i := 0; i < n; i++ {
		var length int32
		if err := binary.Read(r.file, binary.LittleEndian, &length); err != nil {
			return ErrNotOpen
		}
		buf := make([]byte, length)
		if length > 0 {
			if _, err := io.ReadFull(r.file, buf); err != nil {
				return ErrNotOpen
			}
		}
		ids[i] = idEntry{name: string(buf)}
	}

	r.ids = ids
	return nil
}

// elementNameIndex maps (kind, index) to a position in the flat ID
// table, or returns ErrOutOfRange/ErrInvalidParameter. For System, the
// "count" is the pollutant count and the returned slot is the pollutant
// name — the system aggregate itself has no stored name.
func (r *Reader) elementNameIndex(kind ElementKind, index int) (int, ErrorCode) {
	switch kind {
	case Subcatch:
		if index < 0 || index >= int(r.nSub) {
			return 0, ErrOutOfRange
		}
		return index, ErrNone
	case Node:
		if index < 0 || index >= int(r.nNode) {
			return 0, ErrOutOfRange
		}
		return int(r.nSub) + index, ErrNone
	case Link:
		if index < 0 || index >= int(r.nLink) {
			return 0, ErrOutOfRange
		}
		return int(r.nSub+r.nNode) + index, ErrNone
	case System:
		if index < 0 || index >= int(r.nPollut) {
			return 0, ErrOutOfRange
		}
		return int(r.nSub+r.nNode+r.nLink) + index, ErrNone
	default:
		return 0, ErrInvalidParameter
	}
}
