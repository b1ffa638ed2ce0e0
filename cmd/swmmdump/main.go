// Command swmmdump opens a results file and writes one link's time
// series as tab-separated text to stdout or a file. It is the Go equivalent of the
// original C driver this project's reader was modeled on, minus the
// hardcoded paths: file, link, and attribute are all flags.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"swmmout/history"
	"swmmout/internal/rlog"
	"swmmout/metrics"
	"swmmout/rpt"
)

// openErrorCode extracts a stable metric label from an rpt.OpenFile
// error, falling back to the error text for anything unexpected.
func openErrorCode(err error) string {
	var code rpt.ErrorCode
	if errors.As(err, &code) {
		return strconv.Itoa(int(code))
	}
	return err.Error()
}

func main() {
	var (
		file       string
		linkName   string
		attr       int
		outFile    string
		startAt    int
		length     int
		auditDBPath string
	)

	flag.StringVar(&file, "file", "", "path to a .out results file (required)")
	flag.StringVar(&linkName, "link", "", "link name to dump (required)")
	flag.IntVar(&attr, "attr", int(rpt.FlowRateLink), "link attribute code (default: flow rate)")
	flag.StringVar(&outFile, "out", "", "output file path (default: stdout)")
	flag.IntVar(&startAt, "start", 0, "first reporting period to dump")
	flag.IntVar(&length, "length", 0, "number of periods to dump (default: all)")
	flag.StringVar(&auditDBPath, "audit-db", "", "optional SQLite path to record this run")
	flag.Parse()

	rlog.Configure()

	if file == "" || linkName == "" {
		fmt.Fprintln(os.Stderr, "usage: swmmdump -file out.out -link LINK_NAME [-attr N] [-out path]")
		os.Exit(1)
	}

	reader, err := rpt.OpenFile(file)
	if err != nil {
		metrics.RecordOpenError(openErrorCode(err))
		log.Fatalf("open %s: %v", file, err)
	}
	metrics.RecordOpen()
	defer reader.Close()

	nLinks, err := reader.ProjectSize(rpt.LinkCount)
	if err != nil {
		log.Fatalf("project size: %v", err)
	}

	linkIndex := -1
	for i := 0; i < nLinks; i++ {
		name, err := reader.ElementName(rpt.Link, i)
		if err != nil {
			log.Fatalf("element name: %v", err)
		}
		if name == linkName {
			linkIndex = i
			break
		}
	}
	if linkIndex < 0 {
		log.Fatalf("no link named %q in %s", linkName, file)
	}

	numPeriods, err := reader.Times(rpt.NumPeriods)
	if err != nil {
		log.Fatalf("times: %v", err)
	}
	if length <= 0 {
		length = numPeriods - startAt
	}

	values, err := reader.NewValueSeries(startAt, startAt+length)
	if err != nil {
		log.Fatalf("allocate series: %v", err)
	}
	if err := reader.GetLinkSeries(linkIndex, rpt.LinkAttribute(attr), startAt, values); err != nil {
		log.Fatalf("get link series: %v", err)
	}

	out := os.Stdout
	if outFile != "" {
		if dir := filepath.Dir(outFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Fatalf("create output directory: %v", err)
			}
		}
		f, err := os.Create(outFile)
		if err != nil {
			log.Fatalf("create %s: %v", outFile, err)
		}
		defer f.Close()
		out = f
	}

	fmt.Fprintf(out, "period\t%s\n", linkName)
	for i, v := range values {
		fmt.Fprintf(out, "%d\t%g\n", startAt+i, v)
	}

	if auditDBPath != "" {
		hist, err := history.Open(auditDBPath)
		if err != nil {
			rlog.Warn("audit log unavailable: %v", err)
		} else {
			defer hist.Close()
			_, err := hist.Record(history.Run{
				FilePath:    file,
				EntityKind:  rpt.Link.String(),
				Attribute:   fmt.Sprintf("%d", attr),
				EntityIndex: linkIndex,
				StartPeriod: startAt,
				EndPeriod:   startAt + len(values),
				RowCount:    len(values),
			})
			if err != nil {
				rlog.Warn("audit log record failed: %v", err)
			}
		}
	}

	rlog.Info("dumped %d periods of link %q (attr %d) from %s", len(values), linkName, attr, file)
}
