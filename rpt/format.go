// Package rpt implements a random-access reader for the binary
// results file produced by a stormwater hydraulic simulator.
//
// # Format Overview
//
// A results file consists of:
//   - A leading 32-bit magic number
//   - A small fixed header: version, flow-unit code, and the four entity
//     counts (subcatchments, nodes, links, pollutants)
//   - An ID table: length-prefixed entity names in the same canonical
//     order as the results section
//   - An object-properties section the reader skips over without
//     interpreting (areas, inverts, geometries, ...)
//   - A per-kind list of reporting-variable counts
//   - The simulation start date and reporting step
//   - A results section: one fixed-size block per reporting period,
//     containing a timestamp followed by every entity's values for every
//     variable, laid out subcatchments-then-nodes-then-links-then-system
//   - A 24-byte trailing epilogue giving the three section offsets, the
//     period count, the run's error code, and a trailing copy of the
//     magic number
//
// The reader locates the ID table, object properties, and results
// section only through the epilogue's offsets (IDPos < ObjPropPos <
// ResultsPos).
//
// # File Structure
//
//	+------------------+ 0x00
//	|  Leading magic    | 4 B
//	+------------------+
//	|  Header           | 24 B (version, flow units, 4 entity counts)
//	+------------------+ IDPos
//	|  ID table         | variable size
//	+------------------+ ObjPropPos
//	|  Object properties| variable size (skipped)
//	+------------------+
//	|  Variable counts  | variable size
//	+------------------+
//	|  Start date, step | 12 B
//	+------------------+ ResultsPos
//	|  Results section  | n_periods * bytes_per_period
//	+------------------+
//	|  Epilogue         | 24 B (trailing)
//	+------------------+
//
// # Example
//
//	r, err := rpt.OpenFile("model.out")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	flow := make([]float32, r.NumPeriods())
//	if err := r.GetLinkSeries(0, rpt.FlowRateLink, 0, flow); err != nil {
//	    log.Fatal(err)
//	}
package rpt

const (
	// recordSize is the width of every integer and float field (4 bytes,
	// little-endian) except dates, which are 8-byte doubles.
	recordSize = 4

	// dateSize is the width of the simulation start-date field.
	dateSize = 8

	// epilogueSize is the fixed trailing block: 6 int32 fields.
	epilogueSize = 6 * recordSize

	// headerFieldCount is the number of 4-byte fields read immediately
	// after the leading magic number: version, flow units, and the four
	// entity counts.
	headerFieldCount = 6
)

// fixedSubcatchVars, fixedNodeVars, and fixedLinkVars are the non-pollutant
// reporting-variable counts for each kind; the file-reported SubcatchVars/
// NodeVars/LinkVars equal these plus Npollut (one pollutant-concentration
// slot per tracked pollutant).
const (
	fixedSubcatchVars = 8
	fixedNodeVars     = 6
	fixedLinkVars     = 5
)
