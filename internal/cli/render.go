package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/circulens/circulens/internal/equiv"
	"github.com/circulens/circulens/internal/imputation"
	"github.com/circulens/circulens/internal/lca"
)

const kpiBoxWidth = 58

// boxBorderColor returns the lipgloss.Color used for result box borders.
func boxBorderColor() lipgloss.Color { return lipgloss.Color("240") }

// boxTitleColor returns the lipgloss.Color used for box titles.
func boxTitleColor() lipgloss.Color { return lipgloss.Color("42") }

// isWriterTerminal reports whether w is an interactive terminal. Styled
// output is only used on terminals; pipes get plain text.
func isWriterTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// renderSectionTitle styles a section heading when writing to a terminal.
func renderSectionTitle(title string) string {
	upper := strings.ToUpper(title)
	if !isWriterTerminal(os.Stdout) {
		return upper
	}
	return lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor()).Render(upper)
}

// renderResult writes a single calculation's KPIs, stage breakdown, flow
// graph, and optional equivalencies.
func renderResult(w io.Writer, material string, result lca.Result, equivOut *equiv.Output) error {
	var b strings.Builder

	b.WriteString(renderSectionTitle(material + " scenario"))
	b.WriteString("\n\n")

	s := result.Summary
	b.WriteString(fmt.Sprintf("  CO2e footprint      %10.3f kg CO2e/kg\n", s.TotalCO2eKg))
	b.WriteString(fmt.Sprintf("  Energy demand       %10.3f MJ/kg\n", s.TotalEnergyMJ))
	b.WriteString(fmt.Sprintf("  Water use           %10.3f m3/kg\n", s.TotalWaterM3))
	b.WriteString(fmt.Sprintf("  Circularity index   %10d / 100\n\n", s.CircularityIndex))

	b.WriteString("  Breakdown (kg CO2e/kg)\n")
	b.WriteString(fmt.Sprintf("    mining            %10.3f\n", result.Breakdown.CO2e.Mining))
	b.WriteString(fmt.Sprintf("    processing        %10.3f\n", result.Breakdown.CO2e.Processing))
	b.WriteString(fmt.Sprintf("    transport         %10.3f\n", result.Breakdown.CO2e.Transport))
	b.WriteString(fmt.Sprintf("    recycling credit  %10.3f\n\n", result.Breakdown.CO2e.RecyclingCredit))

	b.WriteString("  Material flow\n")
	for _, link := range result.Sankey.Links {
		b.WriteString(fmt.Sprintf("    %-14s -> %-14s %6.1f%%\n",
			result.Sankey.Nodes[link.Source].Name,
			result.Sankey.Nodes[link.Target].Name,
			link.Value*100))
	}

	if equivOut != nil && !equivOut.IsEmpty {
		b.WriteString("\n  " + equivOut.DisplayText + "\n")
	}

	content := b.String()
	if isWriterTerminal(w) {
		box := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(boxBorderColor()).
			Padding(0, 1).
			Width(kpiBoxWidth)
		content = box.Render(content) + "\n"
	}

	_, err := io.WriteString(w, content)
	return err
}

// renderOutcome writes an imputation outcome: what the models filled in,
// then the engine results when the project could be calculated.
func renderOutcome(w io.Writer, outcome imputation.Outcome) error {
	var b strings.Builder

	b.WriteString(renderSectionTitle("imputed project"))
	b.WriteString("\n\n")

	if len(outcome.Meta) == 0 {
		b.WriteString("  nothing to impute\n")
	}
	for _, record := range outcome.Meta {
		b.WriteString(fmt.Sprintf("  %-28s %s (%s, confidence %.2f)\n",
			record.Field, record.Method, record.Source, record.Confidence))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	project := outcome.ProjectImputed
	if project.Results == nil {
		_, err := io.WriteString(w, "\n  project is missing a material; engine skipped\n")
		return err
	}

	var equivOut *equiv.Output
	if project.MassKg != nil && *project.MassKg > 0 {
		if out, err := equiv.ForScenario(project.Results.Summary.TotalCO2eKg, *project.MassKg); err == nil {
			equivOut = &out
		}
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return renderResult(w, labelForProject(project.Name, project.Material), *project.Results, equivOut)
}

// renderRecommendations writes quick-win suggestions below a result. A nil
// slice writes nothing.
func renderRecommendations(w io.Writer, recommendations []lca.Recommendation) error {
	if len(recommendations) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(renderSectionTitle("recommendations"))
	b.WriteString("\n\n")
	for _, rec := range recommendations {
		b.WriteString(fmt.Sprintf("  %-24s -%.1f%% CO2e\n", rec.Title, rec.ProjectedSavings.CO2ePercentReduction))
		b.WriteString(fmt.Sprintf("    %s\n", rec.Description))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// renderComparison writes two summaries side by side with right-minus-left
// deltas.
func renderComparison(w io.Writer, leftLabel string, left lca.Summary, rightLabel string, right lca.Summary, deltas lca.Deltas) error {
	var b strings.Builder

	b.WriteString(renderSectionTitle("comparison"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %-20s %14s %14s %10s\n", "", leftLabel, rightLabel, "delta"))
	b.WriteString(fmt.Sprintf("  %-20s %14.3f %14.3f %+10.3f\n",
		"CO2e (kg/kg)", left.TotalCO2eKg, right.TotalCO2eKg, deltas.CO2eDifferenceKg))
	b.WriteString(fmt.Sprintf("  %-20s %14.3f %14.3f %+10.1f\n",
		"Energy (MJ/kg)", left.TotalEnergyMJ, right.TotalEnergyMJ, right.TotalEnergyMJ-left.TotalEnergyMJ))
	b.WriteString(fmt.Sprintf("  %-20s %14d %14d %+10.1f\n",
		"Circularity index", left.CircularityIndex, right.CircularityIndex, deltas.CircularityDifference))

	_, err := io.WriteString(w, b.String())
	return err
}
