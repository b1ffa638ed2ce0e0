package rpt

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"swmmout/internal/rlog"
)

// Reader is an opaque handle over one open results file. It owns the
// underlying *os.File and, once materialised, the flat ID table. A
// Reader is not safe for concurrent use from multiple goroutines —
// every query seeks the shared file cursor before reading, so callers
// wanting parallel reads must open separate Readers. See Open.
type Reader struct {
	path string
	file *os.File

	nSub, nNode, nLink, nPollut int32
	vSub, vNode, vLink, vSys    int32
	flowUnits                   int32

	startDate   float64
	reportStep  int32
	nPeriods    int32

	idPos, objPropPos, resultsPos int64
	bytesPerPeriod                int64

	ids []idEntry
}

// idEntry is one length-prefixed, non-NUL-terminated name from the ID
// table: all subcatchments, then all nodes, then all links, then all
// tracked pollutants.
type idEntry struct {
	name string
}

// New returns a blank handle, mirroring the C API's SMO_init/SMO_open
// split: Open must be called on it before any query. OpenFile is the
// single-call convenience most callers want.
func New() *Reader {
	return &Reader{}
}

// OpenFile opens path and parses its epilogue and header in one call,
// equivalent to New().Open(path) but matching the C API's combined
// SMO_open(path) -> handle entry point.
func OpenFile(path string) (*Reader, error) {
	r := New()
	if err := r.Open(path); err != nil {
		return nil, err
	}
	return r, nil
}

// Open opens path read-only and parses the file's trailing epilogue and
// leading header. On any failure the file is closed and the handle left
// unopened; Open may be retried with a different path.
func (r *Reader) Open(path string) error {
	if r.file != nil {
		return ErrNotOpen
	}

	f, err := os.Open(path)
	if err != nil {
		rlog.Error("open %s: %v", path, err)
		return ErrFileUnopenable
	}
	r.path = path
	r.file = f

	if err := r.readEpilogue(); err != nil {
		r.closeFile()
		return err
	}
	if err := r.readHeader(); err != nil {
		r.closeFile()
		return err
	}
	if err := r.readVariableCounts(); err != nil {
		r.closeFile()
		return err
	}
	if err := r.readStartDateAndStep(); err != nil {
		r.closeFile()
		return err
	}

	r.bytesPerPeriod = dateSize + recordSize*int64(
		r.nSub*r.vSub+r.nNode*r.vNode+r.nLink*r.vLink+r.vSys)

	rlog.Info("opened %s: sub=%d node=%d link=%d pollut=%d periods=%d step=%ds",
		path, r.nSub, r.nNode, r.nLink, r.nPollut, r.nPeriods, r.reportStep)

	return nil
}

// readEpilogue reads the trailing 24 bytes and validates the magic
// handshake, the terminating-error flag, and the period count.
func (r *Reader) readEpilogue() error {
	if _, err := r.file.Seek(-int64(epilogueSize), io.SeekEnd); err != nil {
		return ErrFileUnopenable
	}

	var idPos, objPropPos, resultsPos, nPeriods, termErr, magicTrailer int32
	fields := []*int32{&idPos, &objPropPos, &resultsPos, &nPeriods, &termErr, &magicTrailer}
	for _, f := range fields {
		if err := binary.Read(r.file, binary.LittleEndian, f); err != nil {
			return ErrFileUnopenable
		}
	}

	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return ErrFileUnopenable
	}
	var magicLeader int32
	if err := binary.Read(r.file, binary.LittleEndian, &magicLeader); err != nil {
		return ErrFileUnopenable
	}

	if magicLeader != magicTrailer {
		return ErrRunTerminatedNoResults
	}
	if termErr != 0 {
		return ErrRunTerminatedNoResults
	}
	if nPeriods <= 0 {
		return ErrNoResults
	}

	r.idPos = int64(idPos)
	r.objPropPos = int64(objPropPos)
	r.resultsPos = int64(resultsPos)
	r.nPeriods = nPeriods
	return nil
}

// readHeader reads the six-field header immediately after the leading
// magic number: version, flow units, and the four entity counts. The
// version itself is not retained; the reader does not need to branch
// on it.
func (r *Reader) readHeader() error {
	var version int32
	fields := []*int32{&version, &r.flowUnits, &r.nSub, &r.nNode, &r.nLink, &r.nPollut}
	for _, f := range fields {
		if err := binary.Read(r.file, binary.LittleEndian, f); err != nil {
			return ErrFileUnopenable
		}
	}
	return nil
}

// readVariableCounts skips the object-properties section's fixed-size
// prefix (subcatchment areas, node types/inverts/max-depths, link
// types/endpoints/geometries) and reads the per-kind reporting-variable
// counts, skipping each kind's attribute-code list in turn.
func (r *Reader) readVariableCounts() error {
	skip := (int64(r.nSub)+2)*recordSize +
		(3*int64(r.nNode)+4)*recordSize +
		(5*int64(r.nLink)+6)*recordSize
	offset := r.objPropPos + skip

	if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
		return ErrFileUnopenable
	}

	read := func(dst *int32) error {
		return binary.Read(r.file, binary.LittleEndian, dst)
	}
	skipN := func(n int32) error {
		_, err := r.file.Seek(int64(n)*recordSize, io.SeekCurrent)
		return err
	}

	if err := read(&r.vSub); err != nil {
		return ErrFileUnopenable
	}
	if err := skipN(r.vSub); err != nil {
		return ErrFileUnopenable
	}
	if err := read(&r.vNode); err != nil {
		return ErrFileUnopenable
	}
	if err := skipN(r.vNode); err != nil {
		return ErrFileUnopenable
	}
	if err := read(&r.vLink); err != nil {
		return ErrFileUnopenable
	}
	if err := skipN(r.vLink); err != nil {
		return ErrFileUnopenable
	}
	if err := read(&r.vSys); err != nil {
		return ErrFileUnopenable
	}

	if r.vSub < fixedSubcatchVars || r.vNode < fixedNodeVars || r.vLink < fixedLinkVars {
		return ErrFileUnopenable
	}
	return nil
}

// readStartDateAndStep reads the simulation start date and reporting
// step stored 12 bytes (8-byte double + 4-byte int) before the results
// section.
func (r *Reader) readStartDateAndStep() error {
	offset := r.resultsPos - dateSize - recordSize
	if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
		return ErrFileUnopenable
	}
	if err := binary.Read(r.file, binary.LittleEndian, &r.startDate); err != nil {
		return ErrFileUnopenable
	}
	if err := binary.Read(r.file, binary.LittleEndian, &r.reportStep); err != nil {
		return ErrFileUnopenable
	}
	return nil
}

// Close releases the ID table and the underlying file handle. Calling
// Close twice returns ErrNotOpen, matching the C API's idempotence
// guard.
func (r *Reader) Close() error {
	if r.file == nil {
		return ErrNotOpen
	}
	r.closeFile()
	r.ids = nil
	return nil
}

func (r *Reader) closeFile() {
	if r.file != nil {
		r.file.Close()
		r.file = nil
	}
}

// isOpen reports whether the handle has a live file descriptor.
func (r *Reader) isOpen() bool {
	return r.file != nil
}

// NumPeriods returns the number of reporting periods, a convenience for
// callers who would otherwise call Times(NumPeriods, ...).
func (r *Reader) NumPeriods() int {
	return int(r.nPeriods)
}

func (r *Reader) String() string {
	return fmt.Sprintf("rpt.Reader{%s}", r.path)
}
