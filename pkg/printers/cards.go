package printers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/lineup/pkg/present"
	"tableflip.dev/lineup/pkg/timeutil"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(36)
	timeStyle   = lipgloss.NewStyle().Bold(true)
	stageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	badgeStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)

// Cards prints the printable schedule as bordered cards. Cards of a conflict
// block sit side by side under a colored title.
func (pp *PrettyPrint) Cards(doc present.PrintDocument) {
	_, _ = fmt.Fprintln(pp.out(), pp.renderCards(doc))
}

func (pp *PrettyPrint) renderCards(doc present.PrintDocument) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(doc.Header))
	b.WriteString("\n")

	for _, entry := range doc.Entries {
		if !entry.Conflict {
			for _, c := range entry.Cards {
				b.WriteString(cardStyle.Render(cardBody(c)))
				b.WriteString("\n")
			}
			continue
		}

		accent := lipgloss.Color(hex[entry.Color])
		title := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(pp.msg("conflict") + " · " + entry.Start + " · " + timeutil.FormatTimeout(entry.Span))
		cards := make([]string, 0, len(entry.Cards))
		for _, c := range entry.Cards {
			badge := badgeStyle.Background(accent).Render(fmt.Sprint(c.Badge))
			body := lipgloss.JoinVertical(lipgloss.Left, badge, cardBody(c))
			cards = append(cards, cardStyle.BorderForeground(accent).Render(body))
		}
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, cards...)))
		b.WriteString("\n")
	}
	return b.String()
}

func cardBody(c present.Card) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		timeStyle.Render(c.Time)+" "+c.Name,
		stageStyle.Render(c.Stage),
	)
}
