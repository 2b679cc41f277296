package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/notification"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/styles"
)

const (
	defaultWidth  = 100
	titleWidth    = 32
	minMsgWidth   = 10
	fixedRowWidth = 4 + 2 + 2 + titleWidth + 14 + 12
)

// View renders the board.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderRows())
	b.WriteString(m.renderStatus())

	if m.pending != nil {
		b.WriteString("\n")
		b.WriteString(styles.ConfirmStyle.Render(m.pending.Confirm + " [y/N]"))
	}

	if toasts := renderToasts(m.toasts); toasts != "" {
		b.WriteString("\n")
		b.WriteString(toasts)
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(helpKeys{nav: m.keys, actions: m.handler.Bindings()}))

	return b.String()
}

func (m Model) renderHeader() string {
	title := styles.HeaderStyle.Render("Notifications")
	if m.build.Version == "" {
		return title
	}
	return title + " " + styles.MutedStyle.Render(m.build.Version)
}

func (m Model) renderTabs() string {
	counts := m.board.Counts()
	active := m.board.Lane()

	tabs := make([]string, 0, len(notification.Lanes))
	for _, l := range notification.Lanes {
		c := counts[l]
		label := fmt.Sprintf("%s (%d)", l.Label(), c.Entries)
		if c.Unread > 0 {
			label += " " + styles.IconUnread + fmt.Sprint(c.Unread)
		}
		if l == active {
			tabs = append(tabs, styles.TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderRows() string {
	visible := m.board.Visible()
	if len(visible) == 0 {
		if m.loading {
			return styles.MutedStyle.Render("Loading...") + "\n"
		}
		return styles.MutedStyle.Render("No notifications") + "\n"
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	msgWidth := max(width-fixedRowWidth, minMsgWidth)

	now := clock()
	var b strings.Builder
	for i, g := range visible {
		row := m.renderRow(g, msgWidth, now)
		if i == m.cursor {
			b.WriteString(styles.CursorRowStyle.Render(row))
		} else {
			b.WriteString(styles.RowStyle.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(g notification.Group, msgWidth int, now time.Time) string {
	r := g.Representative

	box := styles.IconCheckboxOff
	switch {
	case m.board.IsGroupFullySelected(g):
		box = styles.IconCheckboxOn
	case m.board.IsGroupPartiallySelected(g):
		box = styles.IconCheckboxPartial
	}

	mark := styles.IconRead
	if !r.Read {
		mark = styles.UnreadStyle.Render(styles.IconUnread)
	}

	kind := " "
	switch {
	case g.RecipientCount > 1 || r.IsBroadcast():
		kind = styles.IconBroadcast
	case notification.IsOrderTriggered(r):
		kind = styles.IconOrder
	}

	recipients := ""
	if g.RecipientCount > 1 {
		recipients = styles.CountBadgeStyle.Render(fmt.Sprintf("%d recipients", g.RecipientCount))
	}

	return fmt.Sprintf("%s %s %s %-*s %s %s %s",
		box,
		mark,
		kind,
		titleWidth, truncate(r.Title, titleWidth),
		truncate(singleLine(r.Message), msgWidth),
		recipients,
		styles.TimeStyle.Render(relativeTime(r.CreatedAt, now)),
	)
}

func (m Model) renderStatus() string {
	w := m.board.Window()

	parts := []string{fmt.Sprintf("page %d/%d", w.Page, w.Pages)}
	if n := len(m.board.Selected()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if m.busy {
		parts = append(parts, "working...")
	}
	if m.cfg.Board.PollInterval > 0 {
		parts = append(parts, "refresh every "+m.cfg.Board.PollInterval.String())
	}

	return styles.StatusBarStyle.Render(strings.Join(parts, " · "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func relativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Local().Format("2006-01-02")
	}
}
