package rpt

// kindDescriptor parameterises the offset arithmetic for one entity
// kind, replacing the four near-identical query bodies the original C
// API repeats per kind with one calculation here and thin per-kind
// wrappers in query.go.
type kindDescriptor struct {
	// blockOffset is the count of floats (not bytes) preceding this
	// kind's block within a period, after the 8-byte timestamp.
	blockOffset int64
	// varsPerEntity is the number of reporting variables per entity of
	// this kind (v_sub, v_node, v_link, or v_sys).
	varsPerEntity int64
	// count is the number of entities of this kind (1 for System).
	count int64
}

func (r *Reader) descriptor(kind ElementKind) (kindDescriptor, ErrorCode) {
	nSub, nNode, nLink := int64(r.nSub), int64(r.nNode), int64(r.nLink)
	vSub, vNode, vLink, vSys := int64(r.vSub), int64(r.vNode), int64(r.vLink), int64(r.vSys)

	switch kind {
	case Subcatch:
		return kindDescriptor{blockOffset: 0, varsPerEntity: vSub, count: nSub}, ErrNone
	case Node:
		return kindDescriptor{blockOffset: nSub * vSub, varsPerEntity: vNode, count: nNode}, ErrNone
	case Link:
		return kindDescriptor{blockOffset: nSub*vSub + nNode*vNode, varsPerEntity: vLink, count: nLink}, ErrNone
	case System:
		return kindDescriptor{blockOffset: nSub*vSub + nNode*vNode + nLink*vLink, varsPerEntity: vSys, count: 1}, ErrNone
	default:
		return kindDescriptor{}, ErrInvalidParameter
	}
}

// periodBase returns the absolute byte offset of the start of period p
// (the timestamp slot).
func (r *Reader) periodBase(period int) int64 {
	return r.resultsPos + int64(period)*r.bytesPerPeriod
}

// scalarOffset returns the absolute byte offset of one (entity, variable)
// scalar within period p.
func (r *Reader) scalarOffset(d kindDescriptor, period, entityIndex, attr int) int64 {
	return r.periodBase(period) + dateSize +
		recordSize*(d.blockOffset+int64(entityIndex)*d.varsPerEntity+int64(attr))
}

// rowOffset returns the absolute byte offset of the first of
// d.varsPerEntity contiguous floats for one entity's whole row within
// period p.
func (r *Reader) rowOffset(d kindDescriptor, period, entityIndex int) int64 {
	return r.periodBase(period) + dateSize +
		recordSize*(d.blockOffset+int64(entityIndex)*d.varsPerEntity)
}
