package stats

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/crazypanel/lookupbot/internal/application"
	"github.com/crazypanel/lookupbot/internal/domain"
)

type RenderOptions struct {
	Now time.Time
}

var planOrder = []domain.PlanID{
	domain.PlanFree,
	domain.PlanSingle,
	domain.PlanPremium,
	domain.PlanPro,
	domain.PlanLifetime,
}

func renderView(summary application.Summary, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Subscription Overview"),
		s.header.Render(fmt.Sprintf("users: %d · revenue: ₹%d", summary.TotalUsers, summary.TotalRevenue)),
	}

	if summary.TotalUsers == 0 {
		lines = append(lines, s.empty.Render("No subscribers yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.section.Render(renderPlans(summary, s)))

	if len(summary.Recent) > 0 {
		lines = append(lines, s.section.Render(renderRecent(summary.Recent, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPlans(summary application.Summary, s styles) string {
	parts := make([]string, 0, len(planOrder))
	for _, id := range planOrder {
		count, ok := summary.CountByPlan[id]
		if !ok {
			continue
		}

		label := s.planKey.Render(fmt.Sprintf("%-9s", id))
		bar := renderShareBar(count, summary.TotalUsers, 24, s)
		meta := s.planMeta.Render(fmt.Sprintf("%d %s", count, pluralUsers(count)))

		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, label, " ", bar, " ", meta))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderRecent(records []domain.SubscriptionRecord, opts RenderOptions, s styles) string {
	parts := []string{s.header.Render("recent signups")}
	for _, record := range records {
		name := strings.TrimSpace(record.FirstName)
		if name == "" {
			name = "(unnamed)"
		}

		line := fmt.Sprintf("%s  %s  %s  %s",
			record.UserID, name, record.Plan, formatJoinedRelative(record.CreatedAt, opts.Now))
		parts = append(parts, s.recent.Render(line))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderShareBar(count, total, width int, s styles) string {
	if width <= 0 || total <= 0 {
		return ""
	}

	fraction := float64(count) / float64(total)
	filled := int(math.Round(float64(width) * fraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", width-filled))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func formatJoinedRelative(createdAt, now time.Time) string {
	if createdAt.IsZero() {
		return "joined unknown"
	}
	if now.IsZero() || createdAt.After(now) {
		return "joined " + createdAt.Format("02 Jan")
	}

	elapsed := now.Sub(createdAt)
	if elapsed < 24*time.Hour {
		hours := int(elapsed.Hours())
		if hours < 1 {
			return "joined just now"
		}
		suffix := "hours"
		if hours == 1 {
			suffix = "hour"
		}
		return fmt.Sprintf("joined %d %s ago", hours, suffix)
	}

	days := int(elapsed.Hours() / 24)
	suffix := "days"
	if days == 1 {
		suffix = "day"
	}

	return fmt.Sprintf("joined %d %s ago", days, suffix)
}

func pluralUsers(count int) string {
	if count == 1 {
		return "user"
	}
	return "users"
}
