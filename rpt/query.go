package rpt

import (
	"encoding/binary"
	"io"
)

// ProjectSize returns the entity count for the requested kind.
func (r *Reader) ProjectSize(code ElementCount) (int, error) {
	if !r.isOpen() {
		return -1, ErrNotOpen
	}
	switch code {
	case SubcatchCount:
		return int(r.nSub), nil
	case NodeCount:
		return int(r.nNode), nil
	case LinkCount:
		return int(r.nLink), nil
	case PollutantCount:
		return int(r.nPollut), nil
	default:
		return -1, ErrInvalidParameter
	}
}

// Units returns the flow-unit code for FlowRate. Per-pollutant
// concentration units are out of scope for the core reader; any other
// code is ErrInvalidParameter.
func (r *Reader) Units(code UnitCode) (int, error) {
	if !r.isOpen() {
		return -1, ErrNotOpen
	}
	if code != FlowRate {
		return -1, ErrInvalidParameter
	}
	return int(r.flowUnits), nil
}

// StartTime returns the simulation start date, encoded as fractional
// days since 1899-12-30 (see the datetime subpackage).
func (r *Reader) StartTime() (float64, error) {
	if !r.isOpen() {
		return -1, ErrNotOpen
	}
	return r.startDate, nil
}

// Times returns the reporting step in seconds or the period count.
func (r *Reader) Times(code TimeCode) (int, error) {
	if !r.isOpen() {
		return -1, ErrNotOpen
	}
	switch code {
	case ReportStep:
		return int(r.reportStep), nil
	case NumPeriods:
		return int(r.nPeriods), nil
	default:
		return -1, ErrInvalidParameter
	}
}

// ElementName returns the name of entity index within kind, materialising
// the ID table on first use. For System, index selects a pollutant name;
// the system aggregate itself has no stored name.
func (r *Reader) ElementName(kind ElementKind, index int) (string, error) {
	if !r.isOpen() {
		return "", ErrNotOpen
	}
	if err := r.ensureIDs(); err != nil {
		return "", err
	}
	idx, errc := r.elementNameIndex(kind, index)
	if errc != ErrNone {
		return "", errc
	}
	return r.ids[idx].name, nil
}

// series fills out with length consecutive scalars for one entity's
// attribute starting at startPeriod, one independent seek+read per
// sample.
func (r *Reader) series(kind ElementKind, entityIndex, attr, startPeriod int, out []float32) error {
	if !r.isOpen() {
		return ErrNotOpen
	}
	if out == nil {
		return ErrNoOutputBuffer
	}
	d, errc := r.descriptor(kind)
	if errc != ErrNone {
		return errc
	}
	for k := range out {
		v, err := r.readScalar(r.scalarOffset(d, startPeriod+k, entityIndex, attr))
		if err != nil {
			return ErrNotOpen
		}
		out[k] = v
	}
	return nil
}

// attribute fills out with one scalar per entity of kind at period,
// for the given attribute — all entities, one variable.
func (r *Reader) attribute(kind ElementKind, period, attr int, out []float32) error {
	if !r.isOpen() {
		return ErrNotOpen
	}
	if out == nil {
		return ErrNoOutputBuffer
	}
	d, errc := r.descriptor(kind)
	if errc != ErrNone {
		return errc
	}
	for k := range out {
		v, err := r.readScalar(r.scalarOffset(d, period, k, attr))
		if err != nil {
			return ErrNotOpen
		}
		out[k] = v
	}
	return nil
}

// result fills out with every reporting variable for one entity at
// period, as a single contiguous read.
func (r *Reader) result(kind ElementKind, period, entityIndex int, out []float32) error {
	if !r.isOpen() {
		return ErrNotOpen
	}
	if out == nil {
		return ErrNoOutputBuffer
	}
	d, errc := r.descriptor(kind)
	if errc != ErrNone {
		return errc
	}
	if int64(len(out)) != d.varsPerEntity {
		return ErrInvalidParameter
	}
	if _, err := r.file.Seek(r.rowOffset(d, period, entityIndex), io.SeekStart); err != nil {
		return ErrNotOpen
	}
	if err := binary.Read(r.file, binary.LittleEndian, out); err != nil {
		return ErrNotOpen
	}
	return nil
}

func (r *Reader) readScalar(offset int64) (float32, error) {
	if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
		return 0, err
	}
	var v float32
	if err := binary.Read(r.file, binary.LittleEndian, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// --- Subcatchment ---

// GetSubcatchSeries fills out with a time series of attr for one
// subcatchment starting at startPeriod.
func (r *Reader) GetSubcatchSeries(subcatchIndex int, attr SubcatchAttribute, startPeriod int, out []float32) error {
	return r.series(Subcatch, subcatchIndex, int(attr), startPeriod, out)
}

// GetSubcatchAttribute fills out with attr for every subcatchment at period.
func (r *Reader) GetSubcatchAttribute(period int, attr SubcatchAttribute, out []float32) error {
	return r.attribute(Subcatch, period, int(attr), out)
}

// GetSubcatchResult fills out with every reporting variable for one
// subcatchment at period.
func (r *Reader) GetSubcatchResult(period, subcatchIndex int, out []float32) error {
	return r.result(Subcatch, period, subcatchIndex, out)
}

// --- Node ---

func (r *Reader) GetNodeSeries(nodeIndex int, attr NodeAttribute, startPeriod int, out []float32) error {
	return r.series(Node, nodeIndex, int(attr), startPeriod, out)
}

func (r *Reader) GetNodeAttribute(period int, attr NodeAttribute, out []float32) error {
	return r.attribute(Node, period, int(attr), out)
}

func (r *Reader) GetNodeResult(period, nodeIndex int, out []float32) error {
	return r.result(Node, period, nodeIndex, out)
}

// --- Link ---

func (r *Reader) GetLinkSeries(linkIndex int, attr LinkAttribute, startPeriod int, out []float32) error {
	return r.series(Link, linkIndex, int(attr), startPeriod, out)
}

func (r *Reader) GetLinkAttribute(period int, attr LinkAttribute, out []float32) error {
	return r.attribute(Link, period, int(attr), out)
}

func (r *Reader) GetLinkResult(period, linkIndex int, out []float32) error {
	return r.result(Link, period, linkIndex, out)
}

// --- System ---

func (r *Reader) GetSystemSeries(attr SystemAttribute, startPeriod int, out []float32) error {
	return r.series(System, 0, int(attr), startPeriod, out)
}

func (r *Reader) GetSystemAttribute(period int, attr SystemAttribute, out []float32) error {
	return r.attribute(System, period, int(attr), out)
}

// GetSystemResult fills out with every system reporting variable at
// period. The original C implementation drops a brace before this
// function's body, which would skip the open-handle guard; behavior
// here matches the other Get*Result operations with the guard intact.
func (r *Reader) GetSystemResult(period int, out []float32) error {
	return r.result(System, period, 0, out)
}

// NewValueSeries returns a zeroed buffer sized min(seriesLength -
// seriesStart, n_periods). seriesLength is the series' exclusive end,
// not a length, despite its name — the parameter's own meaning
// contradicts it in the source this reader is modeled on; the pitfall
// is preserved here rather than silently "fixed" so that callers
// porting arithmetic from that source get matching results.
func (r *Reader) NewValueSeries(seriesStart, seriesLength int) ([]float32, error) {
	if !r.isOpen() {
		return nil, ErrNotOpen
	}
	size := seriesLength - seriesStart
	if size > int(r.nPeriods) {
		size = int(r.nPeriods)
	}
	if size < 0 {
		size = 0
	}
	return make([]float32, size), nil
}

// NewValueArray returns a zeroed buffer sized by purpose: GetAttribute
// sizes by entity count of kind (1 for System); GetResult sizes by
// variable count of kind.
func (r *Reader) NewValueArray(purpose ArrayPurpose, kind ElementKind) ([]float32, error) {
	if !r.isOpen() {
		return nil, ErrNotOpen
	}
	d, errc := r.descriptor(kind)
	if errc != ErrNone {
		return nil, errc
	}
	switch purpose {
	case GetAttribute:
		return make([]float32, d.count), nil
	case GetResult:
		return make([]float32, d.varsPerEntity), nil
	default:
		return nil, ErrInvalidParameter
	}
}

// Free exists for API parity with the C allocator pair this reader is
// modeled on. Buffers returned by NewValueSeries/NewValueArray are plain
// Go slices collected by the garbage collector, so Free is a no-op.
func Free(_ []float32) {}
