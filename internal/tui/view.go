package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	var b strings.Builder
	headerLines := 0

	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\n")
		headerLines++
	}

	writeLine(titleStyle.Render("dls - directory browser"))

	pathLabel := fmt.Sprintf("Path: %s", truncateMiddle(m.currentPath, max(10, m.width-6)))
	writeLine(breadcrumbStyle.Render(pathLabel))

	writeLine(statusStyle.Render(m.statusLine()))

	if m.filterActive {
		writeLine(filterStyle.Render(fmt.Sprintf("Filter: %s_", m.filter)))
	} else if m.filter != "" {
		writeLine(filterStyle.Render(fmt.Sprintf("Filter: %s", m.filter)))
	}

	if m.total != "" {
		writeLine(headerStyle.Render("total " + m.total))
	}

	// Calculate visible rows
	footerLines := 2
	visibleRows := max(m.height-headerLines-footerLines, 5)

	startIdx := 0
	if m.cursor >= visibleRows {
		startIdx = m.cursor - visibleRows + 1
	}
	endIdx := min(len(m.rows), startIdx+visibleRows)

	for i := startIdx; i < endIdx; i++ {
		line := m.rows[i].line
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	displayedRows := max(endIdx-startIdx, 0)
	for i := displayedRows; i < visibleRows; i++ {
		b.WriteString("\n")
	}

	help := m.helpLine()
	if len(m.rows) > 0 {
		help = fmt.Sprintf("%s [%d/%d]", help, m.cursor+1, len(m.rows))
	}
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

func (m *Model) statusLine() string {
	status := fmt.Sprintf("Items: %s | Size: %s | Sort: %s",
		FormatCount(int64(len(m.rows))),
		FormatSize(m.totalSize),
		m.opts.Sort,
	)
	if m.opts.Reverse {
		status += " (reversed)"
	}
	if m.errCount > 0 {
		status += fmt.Sprintf(" | Errors: %s", FormatCount(int64(m.errCount)))
	}
	if m.cursor < len(m.rows) {
		sel := m.rows[m.cursor]
		status += fmt.Sprintf(" | Sel: %s (%s)", sel.name, FormatSize(sel.size))
	}
	return status
}

func truncateMiddle(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	head := (maxLen - 3) / 2
	tail := maxLen - 3 - head
	return s[:head] + "..." + s[len(s)-tail:]
}
