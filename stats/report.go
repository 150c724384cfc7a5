package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rv32x/qcpu-sim/isa"
)

// MissRow is one line of the per-instruction miss-rate breakdown, filtered
// to load instructions with a miss rate above 1% and sorted by miss count
// then rate. Stores are excluded: only a read miss stalls the pipeline, so
// the reference log's miss-rate report covers loads only even though store
// miss counts are tracked separately.
type MissRow struct {
	Index    int     `json:"index" yaml:"index"`
	Op       string  `json:"op" yaml:"op"`
	Calls    uint64  `json:"calls" yaml:"calls"`
	Misses   uint64  `json:"misses" yaml:"misses"`
	MissRate float64 `json:"miss_rate" yaml:"miss_rate"`
}

// TimeBreakdown converts cycle totals into wall-clock estimates for a given
// clock frequency, mirroring the reference log's time_optimize_info.
type TimeBreakdown struct {
	ClockMHz          float64 `json:"clock_mhz" yaml:"clock_mhz"`
	TotalMicros       float64 `json:"total_us" yaml:"total_us"`
	HazardMicros      float64 `json:"hazard_us" yaml:"hazard_us"`
	CacheMissReadUs   float64 `json:"cache_miss_read_us" yaml:"cache_miss_read_us"`
	CacheMissWriteUs  float64 `json:"cache_miss_write_us" yaml:"cache_miss_write_us"`
	JalrFlushMicros   float64 `json:"jalr_flush_us" yaml:"jalr_flush_us"`
	BranchFlushMicros float64 `json:"branch_flush_us" yaml:"branch_flush_us"`
}

// DefaultClockMHz is the reference target clock used when a run does not
// override it.
const DefaultClockMHz = 122.0

// TimeBreakdown computes the clock-relative timing estimate for this
// engine's tallied cycle counts.
func (e *Engine) TimeBreakdown(clockMHz float64) TimeBreakdown {
	cacheMissRead := e.MemoryReads - e.ReadHits
	cacheMissWrite := e.MemoryWrites - e.WriteHits

	return TimeBreakdown{
		ClockMHz:          clockMHz,
		TotalMicros:       float64(e.CycleCount) / clockMHz,
		HazardMicros:      float64(e.HazardCount) * cachMissShare(e) * 2.0 / clockMHz,
		CacheMissReadUs:   float64(cacheMissRead) * cacheMissPenalty / clockMHz,
		CacheMissWriteUs:  float64(cacheMissWrite) * cacheMissPenalty / clockMHz,
		JalrFlushMicros:   float64(e.JalrFlushes) * flushPenalty / clockMHz,
		BranchFlushMicros: float64(e.BranchFlushes) * flushPenalty / clockMHz,
	}
}

func cachMissShare(e *Engine) float64 {
	if e.MemoryReads == 0 {
		return 0
	}
	return float64(e.MemoryReads-e.ReadHits) / float64(e.MemoryReads)
}

// MissRows returns the per-instruction miss-rate breakdown, sorted by miss
// count then rate descending.
func (e *Engine) MissRows() []MissRow {
	rows := make([]MissRow, 0, len(e.words))
	for i, w := range e.words {
		if w.Invocations == 0 || w.Misses == 0 {
			continue
		}
		if e.program[i].Type != isa.OpL {
			continue
		}
		rate := float64(w.Misses) / float64(w.Invocations)
		if rate <= 0.01 {
			continue
		}
		rows = append(rows, MissRow{
			Index:    i,
			Op:       e.program[i].Op.String(),
			Calls:    w.Invocations,
			Misses:   w.Misses,
			MissRate: rate,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Misses != rows[j].Misses {
			return rows[i].Misses > rows[j].Misses
		}
		return rows[i].MissRate > rows[j].MissRate
	})
	return rows
}

// Report is the exportable summary of one run's statistics.
type Report struct {
	TotalInstructions uint64  `json:"total_instructions" yaml:"total_instructions"`
	CycleCount        uint64  `json:"cycle_count" yaml:"cycle_count"`
	HazardCount       uint64  `json:"hazard_count" yaml:"hazard_count"`
	MemoryReads       uint64  `json:"memory_reads" yaml:"memory_reads"`
	MemoryWrites      uint64  `json:"memory_writes" yaml:"memory_writes"`
	BytesRead         uint64  `json:"bytes_read" yaml:"bytes_read"`
	BytesWritten      uint64  `json:"bytes_written" yaml:"bytes_written"`
	JalrFlushes       uint64        `json:"jalr_flushes" yaml:"jalr_flushes"`
	BranchFlushes     uint64        `json:"branch_flushes" yaml:"branch_flushes"`
	MissRows          []MissRow     `json:"miss_rows" yaml:"miss_rows"`
	Time              TimeBreakdown `json:"time" yaml:"time"`
}

// Build assembles the exportable Report from the engine's current state.
func (e *Engine) Build(clockMHz float64) Report {
	var total uint64
	for _, w := range e.words {
		total += w.Invocations
	}
	return Report{
		TotalInstructions: total,
		CycleCount:        e.CycleCount,
		HazardCount:       e.HazardCount,
		MemoryReads:       e.MemoryReads,
		MemoryWrites:      e.MemoryWrites,
		BytesRead:         e.BytesRead,
		BytesWritten:      e.BytesWritten,
		JalrFlushes:       e.JalrFlushes,
		BranchFlushes:     e.BranchFlushes,
		MissRows:          e.MissRows(),
		Time:              e.TimeBreakdown(clockMHz),
	}
}

// ExportJSON writes the report as indented JSON.
func (r Report) ExportJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ExportYAML writes the report as YAML.
func (r Report) ExportYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}

// ExportCSV writes the summary metrics followed by the miss-rate breakdown.
func (r Report) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	rows := [][]string{
		{"Metric", "Value"},
		{"Total Instructions", fmt.Sprintf("%d", r.TotalInstructions)},
		{"Cycle Count", fmt.Sprintf("%d", r.CycleCount)},
		{"Hazard Count", fmt.Sprintf("%d", r.HazardCount)},
		{"Memory Reads", fmt.Sprintf("%d", r.MemoryReads)},
		{"Memory Writes", fmt.Sprintf("%d", r.MemoryWrites)},
		{"Bytes Read", fmt.Sprintf("%d", r.BytesRead)},
		{"Bytes Written", fmt.Sprintf("%d", r.BytesWritten)},
		{"JALR Flushes", fmt.Sprintf("%d", r.JalrFlushes)},
		{"Branch Flushes", fmt.Sprintf("%d", r.BranchFlushes)},
		{},
		{"Index", "Op", "Calls", "Misses", "MissRate"},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	for _, m := range r.MissRows {
		if err := cw.Write([]string{
			fmt.Sprintf("%d", m.Index), m.Op,
			fmt.Sprintf("%d", m.Calls), fmt.Sprintf("%d", m.Misses),
			fmt.Sprintf("%.2f%%", m.MissRate*100),
		}); err != nil {
			return err
		}
	}
	return nil
}

var htmlTemplate = template.Must(template.New("stats").Funcs(template.FuncMap{
	"mul": func(a, b float64) float64 { return a * b },
}).Parse(`
<!DOCTYPE html>
<html>
<head>
    <title>Simulation Statistics</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        h1 { color: #333; }
        h2 { color: #666; margin-top: 30px; }
        table { border-collapse: collapse; margin: 10px 0; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #4CAF50; color: white; }
        tr:nth-child(even) { background-color: #f2f2f2; }
        .metric { font-weight: bold; }
    </style>
</head>
<body>
    <h1>Simulation Statistics</h1>

    <h2>Execution Summary</h2>
    <table>
        <tr><td class="metric">Total Instructions</td><td>{{.TotalInstructions}}</td></tr>
        <tr><td class="metric">Cycle Count</td><td>{{.CycleCount}}</td></tr>
        <tr><td class="metric">Hazard Count</td><td>{{.HazardCount}}</td></tr>
    </table>

    <h2>Memory</h2>
    <table>
        <tr><td class="metric">Reads</td><td>{{.MemoryReads}}</td></tr>
        <tr><td class="metric">Writes</td><td>{{.MemoryWrites}}</td></tr>
        <tr><td class="metric">Bytes Read</td><td>{{.BytesRead}}</td></tr>
        <tr><td class="metric">Bytes Written</td><td>{{.BytesWritten}}</td></tr>
    </table>

    <h2>Branch Predictor</h2>
    <table>
        <tr><td class="metric">JALR Flushes</td><td>{{.JalrFlushes}}</td></tr>
        <tr><td class="metric">Branch Flushes</td><td>{{.BranchFlushes}}</td></tr>
    </table>

    <h2>Miss-Rate Breakdown</h2>
    <table>
        <tr><th>Index</th><th>Op</th><th>Calls</th><th>Misses</th><th>Rate</th></tr>
        {{range .MissRows}}
        <tr><td>{{.Index}}</td><td>{{.Op}}</td><td>{{.Calls}}</td><td>{{.Misses}}</td><td>{{printf "%.2f%%" (mul .MissRate 100)}}</td></tr>
        {{end}}
    </table>
</body>
</html>
`))

// ExportHTML renders the report as a standalone HTML page.
func (r Report) ExportHTML(w io.Writer) error {
	return htmlTemplate.Execute(w, r)
}

// String renders a plain-text summary of the report.
func (r Report) String() string {
	var sb strings.Builder
	sb.WriteString("Simulation Statistics\n")
	sb.WriteString("======================\n\n")
	fmt.Fprintf(&sb, "Total Instructions: %d\n", r.TotalInstructions)
	fmt.Fprintf(&sb, "Cycle Count:        %d\n", r.CycleCount)
	fmt.Fprintf(&sb, "Hazard Count:       %d\n\n", r.HazardCount)
	fmt.Fprintf(&sb, "Memory Reads:       %d (%d bytes)\n", r.MemoryReads, r.BytesRead)
	fmt.Fprintf(&sb, "Memory Writes:      %d (%d bytes)\n\n", r.MemoryWrites, r.BytesWritten)
	fmt.Fprintf(&sb, "JALR Flushes:       %d\n", r.JalrFlushes)
	fmt.Fprintf(&sb, "Branch Flushes:     %d\n", r.BranchFlushes)
	return sb.String()
}
