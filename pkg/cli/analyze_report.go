// This file provides command-line interface functionality for runsift.
// This file (analyze_report.go) contains aggregation and rendering of the
// analysis report.
//
// Key responsibilities:
//   - Grouping per-run outcomes into category buckets and rollups
//   - Rendering the console report (banners, nested type 3/4 groups)
//   - Rendering the same aggregate as JSON

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/runsift/runsift/pkg/console"
	"github.com/runsift/runsift/pkg/logger"
	"github.com/runsift/runsift/pkg/sliceutil"
	"github.com/runsift/runsift/pkg/triage"
)

var analyzeReportLog = logger.New("cli:analyze_report")

// RunOutcome pairs a run identifier with its assigned category.
type RunOutcome struct {
	RunID    string          `json:"run_id"`
	Category triage.Category `json:"-"`
	// Note carries the diagnostic for runs routed to the fallback category
	// because their log could not be read. Empty for normally classified runs.
	Note string `json:"note,omitempty"`
}

// CategoryBlock is one leaf category of the report: its count, share of
// total processed runs, and the sorted run identifiers assigned to it.
type CategoryBlock struct {
	Category string   `json:"category"`
	Count    int      `json:"count"`
	Percent  float64  `json:"percent"`
	RunIDs   []string `json:"run_ids"`
}

// Rollup is an aggregate over several leaf categories.
type Rollup struct {
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// ReportData is the complete aggregate derived from one analysis pass.
type ReportData struct {
	TotalProcessed        int             `json:"total_processed"`
	Categories            []CategoryBlock `json:"categories"`
	RepliesObtained       Rollup          `json:"replies_obtained"`
	NoReplyObtained       Rollup          `json:"no_reply_obtained"`
	ReasoningShortcut     Rollup          `json:"reasoning_shortcut"`
	UnexpectedTermination Rollup          `json:"unexpected_termination"`
	Diagnostics           []string        `json:"diagnostics,omitempty"`
}

// buildReportData groups outcomes by category and computes counts,
// percentages, and the meta rollups.
func buildReportData(outcomes []RunOutcome) ReportData {
	analyzeReportLog.Printf("Building report data from %d outcomes", len(outcomes))

	total := len(outcomes)
	buckets := make(map[triage.Category][]string)
	for _, outcome := range outcomes {
		buckets[outcome.Category] = append(buckets[outcome.Category], outcome.RunID)
	}

	blocks := make([]CategoryBlock, 0, len(triage.Categories))
	for _, category := range triage.Categories {
		ids := buckets[category]
		sortRunIDs(ids)
		blocks = append(blocks, CategoryBlock{
			Category: category.String(),
			Count:    len(ids),
			Percent:  percent(len(ids), total),
			RunIDs:   ids,
		})
	}

	correct := len(buckets[triage.TrulyCorrect]) + len(buckets[triage.LogicError])
	shortcut := len(buckets[triage.RefusalToReason]) +
		len(buckets[triage.NoStepSummary]) +
		len(buckets[triage.PlanAsFinalAnswer])
	termination := len(buckets[triage.EmptyReplyAfterToolCall]) +
		len(buckets[triage.ReasonedImpossible]) +
		len(buckets[triage.MissingFunctionCallInfo])
	failed := len(buckets[triage.MalformedCall]) +
		len(buckets[triage.ModelCallFailure]) +
		shortcut + termination

	diagnostics := sliceutil.Map(
		sliceutil.Filter(outcomes, func(o RunOutcome) bool { return o.Note != "" }),
		func(o RunOutcome) string { return fmt.Sprintf("run %s: %s", o.RunID, o.Note) },
	)

	return ReportData{
		TotalProcessed:        total,
		Categories:            blocks,
		RepliesObtained:       Rollup{Count: correct, Percent: percent(correct, total)},
		NoReplyObtained:       Rollup{Count: failed, Percent: percent(failed, total)},
		ReasoningShortcut:     Rollup{Count: shortcut, Percent: percent(shortcut, total)},
		UnexpectedTermination: Rollup{Count: termination, Percent: percent(termination, total)},
		Diagnostics:           diagnostics,
	}
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// categoryLabels maps each leaf category to its emoji-tagged report label.
var categoryLabels = map[string]string{
	triage.TrulyCorrect.String():            "🟢 Final answer correct",
	triage.LogicError.String():              "🟡 Final answer incorrect",
	triage.MalformedCall.String():           "🔴 [Type 1] Malformed tool call returned by the model",
	triage.ModelCallFailure.String():        "🟤 [Type 2] Model invocation failed",
	triage.RefusalToReason.String():         "🙅 [3a] Model refused to reason",
	triage.NoStepSummary.String():           "📄 [3b] Model never summarized its tool steps",
	triage.PlanAsFinalAnswer.String():       "📝 [3c] Plan presented as the final answer",
	triage.EmptyReplyAfterToolCall.String(): "🕳️ [4a] Empty reply after tool call",
	triage.ReasonedImpossible.String():      "🤷 [4b] Reasoned the query was impossible",
	triage.MissingFunctionCallInfo.String(): "🧩 [4c] Reply missing function call info",
}

const reportRule = "=================================================="

// renderReportConsole renders the aggregate as the formatted text report.
// Styling is TTY-gated inside pkg/console, so piped output stays plain.
func renderReportConsole(data ReportData) string {
	analyzeReportLog.Printf("Rendering console report: total=%d", data.TotalProcessed)

	blocks := make(map[string]CategoryBlock, len(data.Categories))
	for _, block := range data.Categories {
		blocks[block.Category] = block
	}

	var b strings.Builder
	b.WriteString(reportRule + "\n")
	b.WriteString(console.FormatSectionHeader("                Run Log Analysis") + "\n")
	b.WriteString(reportRule + "\n")
	b.WriteString(console.FormatCountMessage(fmt.Sprintf("Total subdirectories analyzed: %d", data.TotalProcessed)) + "\n")
	b.WriteString(strings.Repeat("-", len(reportRule)) + "\n")

	b.WriteString(fmt.Sprintf("\n✅ Replies obtained (total: %d, %.2f%%):\n",
		data.RepliesObtained.Count, data.RepliesObtained.Percent))
	writeLeaf(&b, "    ", blocks[triage.TrulyCorrect.String()])
	writeLeaf(&b, "    ", blocks[triage.LogicError.String()])

	b.WriteString(fmt.Sprintf("\n❌ No reply obtained (total: %d, %.2f%%):\n",
		data.NoReplyObtained.Count, data.NoReplyObtained.Percent))
	writeLeaf(&b, "    ", blocks[triage.MalformedCall.String()])
	writeLeaf(&b, "    ", blocks[triage.ModelCallFailure.String()])

	b.WriteString(fmt.Sprintf("    - 🟠 [Type 3] Answered without tool reasoning (total: %d)\n",
		data.ReasoningShortcut.Count))
	writeLeaf(&b, "      ", blocks[triage.RefusalToReason.String()])
	writeLeaf(&b, "      ", blocks[triage.NoStepSummary.String()])
	writeLeaf(&b, "      ", blocks[triage.PlanAsFinalAnswer.String()])

	b.WriteString(fmt.Sprintf("    - ⚪️ [Type 4] Model terminated unexpectedly (total: %d)\n",
		data.UnexpectedTermination.Count))
	writeLeaf(&b, "      ", blocks[triage.EmptyReplyAfterToolCall.String()])
	writeLeaf(&b, "      ", blocks[triage.ReasonedImpossible.String()])
	writeLeaf(&b, "      ", blocks[triage.MissingFunctionCallInfo.String()])

	b.WriteString("\n" + reportRule + "\n")
	return b.String()
}

// writeLeaf writes one leaf category line plus its run identifier list.
func writeLeaf(b *strings.Builder, indent string, block CategoryBlock) {
	label := categoryLabels[block.Category]
	b.WriteString(fmt.Sprintf("%s- %s (%d, %.2f%%)\n", indent, label, block.Count, block.Percent))
	b.WriteString(indent + "  " + console.FormatListItem(strings.Join(block.RunIDs, " ")) + "\n")
}

// renderReportJSON outputs the aggregate as indented JSON to stdout.
func renderReportJSON(data ReportData) error {
	analyzeReportLog.Printf("Rendering JSON report: total=%d", data.TotalProcessed)
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
