package rpt

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// synthConfig describes the shape of a synthetic results file built by
// buildSyntheticFile.
type synthConfig struct {
	nSub, nNode, nLink, nPollut int32
	nPeriods                    int32
	reportStep                  int32
	startDate                   float64
	flowUnits                   int32
	termErr                     int32
	magicMismatch               bool
}

func defaultSynthConfig() synthConfig {
	return synthConfig{
		nSub: 1, nNode: 1, nLink: 1, nPollut: 1,
		nPeriods:   3,
		reportStep: 300,
		startDate:  45000.25,
		flowUnits:  1,
	}
}

// blockValue is the deterministic fill function used by buildSyntheticFile:
// every (period, block, entity, attr) scalar gets a unique value so that
// any offset-arithmetic error shows up as a mismatch against this formula.
func blockValue(period, block, entity, attr int) float32 {
	return float32(period*100000 + block*10000 + entity*1000 + attr)
}

// buildSyntheticFile writes a minimal but structurally valid results file
// to a temp directory and returns its path.
func buildSyntheticFile(t *testing.T, cfg synthConfig) string {
	t.Helper()

	vSub := int32(fixedSubcatchVars) + cfg.nPollut
	vNode := int32(fixedNodeVars) + cfg.nPollut
	vLink := int32(fixedLinkVars) + cfg.nPollut
	vSys := int32(14)

	var buf bytes.Buffer
	w := func(v interface{}) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	const magic = int32(516114522)
	w(magic) // leading magic

	// header
	w(int32(1)) // version
	w(cfg.flowUnits)
	w(cfg.nSub)
	w(cfg.nNode)
	w(cfg.nLink)
	w(cfg.nPollut)

	objPropPos := int64(buf.Len())

	// object properties section (contents unused by the reader)
	for i := int64(0); i < int64(cfg.nSub)+2; i++ {
		w(int32(0))
	}
	for i := int64(0); i < 3*int64(cfg.nNode)+4; i++ {
		w(int32(0))
	}
	for i := int64(0); i < 5*int64(cfg.nLink)+6; i++ {
		w(int32(0))
	}

	// variable counts section
	w(vSub)
	for i := int32(0); i < vSub; i++ {
		w(int32(0))
	}
	w(vNode)
	for i := int32(0); i < vNode; i++ {
		w(int32(0))
	}
	w(vLink)
	for i := int32(0); i < vLink; i++ {
		w(int32(0))
	}
	w(vSys)

	// start date + report step, immediately preceding the results section
	w(cfg.startDate)
	w(cfg.reportStep)

	resultsPos := int64(buf.Len())

	for p := int32(0); p < cfg.nPeriods; p++ {
		w(float64(p)) // per-period timestamp
		for e := int32(0); e < cfg.nSub; e++ {
			for a := int32(0); a < vSub; a++ {
				w(blockValue(int(p), 0, int(e), int(a)))
			}
		}
		for e := int32(0); e < cfg.nNode; e++ {
			for a := int32(0); a < vNode; a++ {
				w(blockValue(int(p), 1, int(e), int(a)))
			}
		}
		for e := int32(0); e < cfg.nLink; e++ {
			for a := int32(0); a < vLink; a++ {
				w(blockValue(int(p), 2, int(e), int(a)))
			}
		}
		for a := int32(0); a < vSys; a++ {
			w(blockValue(int(p), 3, 0, int(a)))
		}
	}

	idPos := int64(buf.Len())

	writeName := func(name string) {
		w(int32(len(name)))
		buf.WriteString(name)
	}
	for i := int32(0); i < cfg.nSub; i++ {
		writeName("S1")
	}
	for i := int32(0); i < cfg.nNode; i++ {
		writeName("N1")
	}
	for i := int32(0); i < cfg.nLink; i++ {
		writeName("L1")
	}
	for i := int32(0); i < cfg.nPollut; i++ {
		writeName("P1")
	}

	w(int32(idPos))
	w(int32(objPropPos))
	w(int32(resultsPos))
	w(cfg.nPeriods)
	w(cfg.termErr)
	if cfg.magicMismatch {
		w(magic + 1)
	} else {
		w(magic)
	}

	path := filepath.Join(t.TempDir(), "synthetic.out")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func openSynthetic(t *testing.T, cfg synthConfig) *Reader {
	t.Helper()
	path := buildSyntheticFile(t, cfg)
	r, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestOpenReadsHeaderAndEpilogue(t *testing.T) {
	cfg := defaultSynthConfig()
	r := openSynthetic(t, cfg)

	if n, err := r.ProjectSize(SubcatchCount); err != nil || n != int(cfg.nSub) {
		t.Errorf("SubcatchCount = %d, %v; want %d, nil", n, err, cfg.nSub)
	}
	if n, err := r.ProjectSize(NodeCount); err != nil || n != int(cfg.nNode) {
		t.Errorf("NodeCount = %d, %v; want %d, nil", n, err, cfg.nNode)
	}
	if n, err := r.ProjectSize(LinkCount); err != nil || n != int(cfg.nLink) {
		t.Errorf("LinkCount = %d, %v; want %d, nil", n, err, cfg.nLink)
	}
	if n, err := r.ProjectSize(PollutantCount); err != nil || n != int(cfg.nPollut) {
		t.Errorf("PollutantCount = %d, %v; want %d, nil", n, err, cfg.nPollut)
	}
	if u, err := r.Units(FlowRate); err != nil || u != int(cfg.flowUnits) {
		t.Errorf("Units(FlowRate) = %d, %v; want %d, nil", u, err, cfg.flowUnits)
	}
	if st, err := r.StartTime(); err != nil || st != cfg.startDate {
		t.Errorf("StartTime() = %v, %v; want %v, nil", st, err, cfg.startDate)
	}
	if step, err := r.Times(ReportStep); err != nil || step != int(cfg.reportStep) {
		t.Errorf("Times(ReportStep) = %d, %v; want %d, nil", step, err, cfg.reportStep)
	}
	if n, err := r.Times(NumPeriods); err != nil || n != int(cfg.nPeriods) {
		t.Errorf("Times(NumPeriods) = %d, %v; want %d, nil", n, err, cfg.nPeriods)
	}
	if got := r.NumPeriods(); got != int(cfg.nPeriods) {
		t.Errorf("NumPeriods() = %d; want %d", got, cfg.nPeriods)
	}
}

func TestMagicMismatchIsRunTerminated(t *testing.T) {
	cfg := defaultSynthConfig()
	cfg.magicMismatch = true
	path := buildSyntheticFile(t, cfg)

	_, err := OpenFile(path)
	if err != ErrRunTerminatedNoResults {
		t.Fatalf("OpenFile with mismatched magic = %v; want ErrRunTerminatedNoResults", err)
	}
}

func TestTerminatingErrorIsRunTerminated(t *testing.T) {
	cfg := defaultSynthConfig()
	cfg.termErr = 1
	path := buildSyntheticFile(t, cfg)

	_, err := OpenFile(path)
	if err != ErrRunTerminatedNoResults {
		t.Fatalf("OpenFile with termErr set = %v; want ErrRunTerminatedNoResults", err)
	}
}

func TestZeroPeriodsIsNoResults(t *testing.T) {
	cfg := defaultSynthConfig()
	cfg.nPeriods = 0
	path := buildSyntheticFile(t, cfg)

	_, err := OpenFile(path)
	if err != ErrNoResults {
		t.Fatalf("OpenFile with zero periods = %v; want ErrNoResults", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "does-not-exist.out"))
	if err != ErrFileUnopenable {
		t.Fatalf("OpenFile on missing path = %v; want ErrFileUnopenable", err)
	}
}

func TestQueryBeforeOpenReturnsErrNotOpen(t *testing.T) {
	r := New()
	if _, err := r.ProjectSize(SubcatchCount); err != ErrNotOpen {
		t.Errorf("ProjectSize before Open = %v; want ErrNotOpen", err)
	}
	if _, err := r.StartTime(); err != ErrNotOpen {
		t.Errorf("StartTime before Open = %v; want ErrNotOpen", err)
	}
	if _, err := r.ElementName(Subcatch, 0); err != ErrNotOpen {
		t.Errorf("ElementName before Open = %v; want ErrNotOpen", err)
	}
}

func TestElementNameRoundTrip(t *testing.T) {
	r := openSynthetic(t, defaultSynthConfig())

	cases := []struct {
		kind ElementKind
		idx  int
		want string
	}{
		{Subcatch, 0, "S1"},
		{Node, 0, "N1"},
		{Link, 0, "L1"},
		{System, 0, "P1"},
	}
	for _, c := range cases {
		got, err := r.ElementName(c.kind, c.idx)
		if err != nil || got != c.want {
			t.Errorf("ElementName(%v, %d) = %q, %v; want %q, nil", c.kind, c.idx, got, err, c.want)
		}
	}

	if _, err := r.ElementName(Subcatch, 5); err != ErrOutOfRange {
		t.Errorf("ElementName out of range = %v; want ErrOutOfRange", err)
	}
	if _, err := r.ElementName(ElementKind(99), 0); err != ErrInvalidParameter {
		t.Errorf("ElementName bad kind = %v; want ErrInvalidParameter", err)
	}
}

func TestGetResultMatchesBlockLayout(t *testing.T) {
	cfg := defaultSynthConfig()
	r := openSynthetic(t, cfg)

	vSub := fixedSubcatchVars + int(cfg.nPollut)
	out, err := r.NewValueArray(GetResult, Subcatch)
	if err != nil {
		t.Fatalf("NewValueArray: %v", err)
	}
	if len(out) != vSub {
		t.Fatalf("NewValueArray(GetResult, Subcatch) len = %d; want %d", len(out), vSub)
	}
	if err := r.GetSubcatchResult(1, 0, out); err != nil {
		t.Fatalf("GetSubcatchResult: %v", err)
	}
	for a, v := range out {
		want := blockValue(1, 0, 0, a)
		if v != want {
			t.Errorf("GetSubcatchResult[%d] = %v; want %v", a, v, want)
		}
	}

	vSys := 14
	sysOut, err := r.NewValueArray(GetResult, System)
	if err != nil {
		t.Fatalf("NewValueArray(System): %v", err)
	}
	if len(sysOut) != vSys {
		t.Fatalf("NewValueArray(GetResult, System) len = %d; want %d", len(sysOut), vSys)
	}
	if err := r.GetSystemResult(2, sysOut); err != nil {
		t.Fatalf("GetSystemResult: %v", err)
	}
	for a, v := range sysOut {
		want := blockValue(2, 3, 0, a)
		if v != want {
			t.Errorf("GetSystemResult[%d] = %v; want %v", a, v, want)
		}
	}
}

func TestSeriesMatchesResultAcrossPeriods(t *testing.T) {
	cfg := defaultSynthConfig()
	r := openSynthetic(t, cfg)

	series, err := r.NewValueSeries(0, int(cfg.nPeriods))
	if err != nil {
		t.Fatalf("NewValueSeries: %v", err)
	}
	if len(series) != int(cfg.nPeriods) {
		t.Fatalf("NewValueSeries len = %d; want %d", len(series), cfg.nPeriods)
	}
	if err := r.GetLinkSeries(0, FlowRateLink, 0, series); err != nil {
		t.Fatalf("GetLinkSeries: %v", err)
	}
	for p, v := range series {
		want := blockValue(p, 2, 0, int(FlowRateLink))
		if v != want {
			t.Errorf("GetLinkSeries[%d] = %v; want %v", p, v, want)
		}
	}
}

func TestAttributeAcrossEntities(t *testing.T) {
	cfg := defaultSynthConfig()
	r := openSynthetic(t, cfg)

	out, err := r.NewValueArray(GetAttribute, Node)
	if err != nil {
		t.Fatalf("NewValueArray: %v", err)
	}
	if len(out) != int(cfg.nNode) {
		t.Fatalf("NewValueArray(GetAttribute, Node) len = %d; want %d", len(out), cfg.nNode)
	}
	if err := r.GetNodeAttribute(0, InvertDepth, out); err != nil {
		t.Fatalf("GetNodeAttribute: %v", err)
	}
	for e, v := range out {
		want := blockValue(0, 1, e, int(InvertDepth))
		if v != want {
			t.Errorf("GetNodeAttribute[%d] = %v; want %v", e, v, want)
		}
	}
}

func TestNewValueSeriesSizingPitfall(t *testing.T) {
	r := openSynthetic(t, defaultSynthConfig())

	// seriesLength is an exclusive end, not a length: start=1, end=3
	// should size to 2, not 3.
	s, err := r.NewValueSeries(1, 3)
	if err != nil {
		t.Fatalf("NewValueSeries: %v", err)
	}
	if len(s) != 2 {
		t.Fatalf("NewValueSeries(1, 3) len = %d; want 2", len(s))
	}

	// Requesting past the end of the file clamps to NumPeriods.
	s2, err := r.NewValueSeries(0, 1000)
	if err != nil {
		t.Fatalf("NewValueSeries: %v", err)
	}
	if len(s2) != r.NumPeriods() {
		t.Fatalf("NewValueSeries(0, 1000) len = %d; want %d", len(s2), r.NumPeriods())
	}

	// A negative span clamps to zero rather than panicking on make().
	s3, err := r.NewValueSeries(5, 2)
	if err != nil {
		t.Fatalf("NewValueSeries: %v", err)
	}
	if len(s3) != 0 {
		t.Fatalf("NewValueSeries(5, 2) len = %d; want 0", len(s3))
	}
}

func TestErrorMessageTruncation(t *testing.T) {
	full, errc := ErrorMessage(ErrNotOpen, 0)
	if errc != ErrNone {
		t.Fatalf("ErrorMessage(ErrNotOpen, 0) errc = %v; want ErrNone", errc)
	}
	truncated, errc := ErrorMessage(ErrNotOpen, 5)
	if errc != ErrNone || truncated != full[:5] {
		t.Fatalf("ErrorMessage(ErrNotOpen, 5) = %q, %v; want %q, nil", truncated, errc, full[:5])
	}
	if _, errc := ErrorMessage(ErrorCode(999999), 0); errc != ErrInvalidParameter {
		t.Fatalf("ErrorMessage(unknown) errc = %v; want ErrInvalidParameter", errc)
	}
}

func TestDoubleCloseReturnsErrNotOpen(t *testing.T) {
	r := openSynthetic(t, defaultSynthConfig())
	if err := r.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := r.Close(); err != ErrNotOpen {
		t.Fatalf("second Close = %v; want ErrNotOpen", err)
	}
}
