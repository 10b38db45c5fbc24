// Package render 在终端输出分析结果：报告卡片 + 引用列表。
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/engine"
	dm "github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/model"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#0052CC", Dark: "#4C9AFF"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#0052CC", Dark: "#003366"}
	colorWarn    = lipgloss.AdaptiveColor{Light: "#B54708", Dark: "#FFB020"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	subjectStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	warnCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarn).
			Foreground(colorWarn).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginTop(1)

	linkStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// 引用分组标题
const (
	HeadingPapers  = "Academic References"
	HeadingSources = "Recommended Sources"
)

// Heading 工作流对应的标题
func Heading(w engine.Workflow) string {
	if w == engine.WorkflowDocument {
		return "Technical Audit Report"
	}
	return "Gap Analysis"
}

// ReferencesHeading 工作流对应的引用分组标题
func ReferencesHeading(w engine.Workflow) string {
	if w == engine.WorkflowDocument {
		return HeadingPapers
	}
	return HeadingSources
}

// Outcome 把一次结果写到 w
func Outcome(w io.Writer, o engine.Outcome) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(Heading(o.Workflow)))
	b.WriteString("\n")
	if o.Subject != "" {
		b.WriteString(subjectStyle.Render(o.Subject))
		b.WriteString("\n")
	}

	if o.Status() == engine.StatusFailed {
		b.WriteString(warnCardStyle.Render(o.Render()))
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(cardStyle.Render(strings.TrimSpace(o.Render())))
	b.WriteString("\n")

	if refs := o.References; len(refs) > 0 {
		b.WriteString(headingStyle.Render(ReferencesHeading(o.Workflow)))
		b.WriteString("\n")
		for i, r := range refs {
			b.WriteString(reference(i+1, r))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func reference(n int, r dm.Reference) string {
	line := fmt.Sprintf("%2d. %s\n", n, r.Label())
	if r.URL != "" {
		line += "    " + linkStyle.Render(r.URL) + "\n"
	}
	return line
}
