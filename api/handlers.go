package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"swmmout/metrics"
	"swmmout/rpt"
)

func parseKind(s string) (rpt.ElementKind, bool) {
	switch s {
	case "subcatch":
		return rpt.Subcatch, true
	case "node":
		return rpt.Node, true
	case "link":
		return rpt.Link, true
	case "system":
		return rpt.System, true
	default:
		return 0, false
	}
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// handleProject reports entity counts, flow units, start time, and the
// reporting step/period count for the open file.
func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	nSub, _ := s.reader.ProjectSize(rpt.SubcatchCount)
	nNode, _ := s.reader.ProjectSize(rpt.NodeCount)
	nLink, _ := s.reader.ProjectSize(rpt.LinkCount)
	nPollut, _ := s.reader.ProjectSize(rpt.PollutantCount)
	flowUnits, _ := s.reader.Units(rpt.FlowRate)
	startTime, _ := s.reader.StartTime()
	reportStep, _ := s.reader.Times(rpt.ReportStep)
	numPeriods, _ := s.reader.Times(rpt.NumPeriods)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"subcatchments": nSub,
		"nodes":         nNode,
		"links":         nLink,
		"pollutants":    nPollut,
		"flow_units":    flowUnits,
		"start_time":    startTime,
		"report_step":   reportStep,
		"num_periods":   numPeriods,
	})
}

// handleElements lists the names of every entity of {kind}.
func (s *Server) handleElements(w http.ResponseWriter, r *http.Request) {
	kindStr := mux.Vars(r)["kind"]
	kind, ok := parseKind(kindStr)
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown kind "+kindStr)
		return
	}

	var count int
	switch kind {
	case rpt.Subcatch:
		count, _ = s.reader.ProjectSize(rpt.SubcatchCount)
	case rpt.Node:
		count, _ = s.reader.ProjectSize(rpt.NodeCount)
	case rpt.Link:
		count, _ = s.reader.ProjectSize(rpt.LinkCount)
	case rpt.System:
		count, _ = s.reader.ProjectSize(rpt.PollutantCount)
	}

	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		name, err := s.reader.ElementName(kind, i)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		names = append(names, name)
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"kind": kindStr, "names": names})
}

// handleSeries returns a time series of one attribute for one entity,
// via ?kind=&index=&attr=&start=&length=.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(r.URL.Query().Get("kind"))
	if !ok {
		respondError(w, http.StatusBadRequest, "missing or unknown kind")
		return
	}
	index, err := queryInt(r, "index", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid index")
		return
	}
	attr, err := queryInt(r, "attr", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid attr")
		return
	}
	start, err := queryInt(r, "start", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid start")
		return
	}
	length, err := queryInt(r, "length", 0)
	if err != nil || length <= 0 {
		respondError(w, http.StatusBadRequest, "invalid length")
		return
	}

	out := make([]float32, length)
	switch kind {
	case rpt.Subcatch:
		err = s.reader.GetSubcatchSeries(index, rpt.SubcatchAttribute(attr), start, out)
	case rpt.Node:
		err = s.reader.GetNodeSeries(index, rpt.NodeAttribute(attr), start, out)
	case rpt.Link:
		err = s.reader.GetLinkSeries(index, rpt.LinkAttribute(attr), start, out)
	case rpt.System:
		err = s.reader.GetSystemSeries(rpt.SystemAttribute(attr), start, out)
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	metrics.AddBytesRead(kind.String(), len(out)*4)
	respondJSON(w, http.StatusOK, map[string]interface{}{"values": out})
}

// handleAttribute returns one attribute across every entity of {kind} at
// one period, via ?kind=&attr=&period=.
func (s *Server) handleAttribute(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(r.URL.Query().Get("kind"))
	if !ok {
		respondError(w, http.StatusBadRequest, "missing or unknown kind")
		return
	}
	attr, err := queryInt(r, "attr", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid attr")
		return
	}
	period, err := queryInt(r, "period", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid period")
		return
	}

	out, err := s.reader.NewValueArray(rpt.GetAttribute, kind)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	switch kind {
	case rpt.Subcatch:
		err = s.reader.GetSubcatchAttribute(period, rpt.SubcatchAttribute(attr), out)
	case rpt.Node:
		err = s.reader.GetNodeAttribute(period, rpt.NodeAttribute(attr), out)
	case rpt.Link:
		err = s.reader.GetLinkAttribute(period, rpt.LinkAttribute(attr), out)
	case rpt.System:
		err = s.reader.GetSystemAttribute(period, rpt.SystemAttribute(attr), out)
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	metrics.AddBytesRead(kind.String(), len(out)*4)
	respondJSON(w, http.StatusOK, map[string]interface{}{"values": out})
}

// handleResult returns every reporting variable for one entity at one
// period, via ?kind=&index=&period=.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(r.URL.Query().Get("kind"))
	if !ok {
		respondError(w, http.StatusBadRequest, "missing or unknown kind")
		return
	}
	index, err := queryInt(r, "index", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid index")
		return
	}
	period, err := queryInt(r, "period", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid period")
		return
	}

	out, err := s.reader.NewValueArray(rpt.GetResult, kind)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	switch kind {
	case rpt.Subcatch:
		err = s.reader.GetSubcatchResult(period, index, out)
	case rpt.Node:
		err = s.reader.GetNodeResult(period, index, out)
	case rpt.Link:
		err = s.reader.GetLinkResult(period, index, out)
	case rpt.System:
		err = s.reader.GetSystemResult(period, out)
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	metrics.AddBytesRead(kind.String(), len(out)*4)
	respondJSON(w, http.StatusOK, map[string]interface{}{"values": out})
}
