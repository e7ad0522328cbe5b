package server

import (
	"fmt"
	"strings"

	"github.com/crazypanel/lookupbot/internal/application"
	"github.com/crazypanel/lookupbot/internal/domain"
)

const (
	unknownCommandText = "🤔 Unknown command. Send a 10-digit mobile number to search, or /help for instructions."
	notAuthorizedText  = "🚫 This command is for the admin only."
	temporaryIssueText = "⚠️ Something went wrong on our side. Please try again in a moment."
	invalidNumberText  = "❌ That doesn't look like a mobile number. Send a 10-digit number, e.g. `9876543210`."
	lookupFailedText   = "⚠️ The lookup service is not responding right now. Please try again later."
	grantUsageText     = "Usage: `/grant <user_id> <plan> [amount]`"
)

func welcomeText(firstName string, catalog *domain.Catalog) string {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = "there"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👋 Hi %s! Send me a 10-digit mobile number and I'll look it up for you.\n\n", name)
	b.WriteString(plansText(catalog))
	b.WriteString("\n\nCommands: /plans /mystats /help")

	return b.String()
}

func plansText(catalog *domain.Catalog) string {
	var b strings.Builder
	b.WriteString("💎 *Plans*\n")
	for _, plan := range catalog.Plans() {
		fmt.Fprintf(&b, "• %s — ₹%d, %s\n", planTitle(plan.ID), plan.Price, quotaLabel(plan))
	}
	b.WriteString("\nContact the admin to activate a plan.")

	return b.String()
}

func planListText(catalog *domain.Catalog) string {
	ids := make([]string, 0, len(catalog.Plans()))
	for _, plan := range catalog.Plans() {
		ids = append(ids, string(plan.ID))
	}

	return strings.Join(ids, ", ")
}

func denialText(result domain.EntitlementResult, catalog *domain.Catalog) string {
	switch result.Reason {
	case domain.DenyReasonExpired:
		return "⏰ Your subscription has expired.\n\n" + plansText(catalog)
	case domain.DenyReasonQuotaExceeded:
		return "❌ Daily limit reached! Your quota resets at midnight UTC.\n\n" + plansText(catalog)
	default:
		return "🆓 The free plan includes no searches.\n\n" + plansText(catalog)
	}
}

func noRecordText(number string) string {
	return fmt.Sprintf("❌ No data found for `%s`.", number)
}

func resultText(number, payload string) string {
	return fmt.Sprintf("📱 *Results for %s*\n\n%s", number, payload)
}

func remainingFooter(result domain.EntitlementResult) string {
	if result.Unlimited() {
		return "\n\n📊 Searches remaining today: unlimited"
	}

	return fmt.Sprintf("\n\n📊 Searches remaining today: %d", result.Remaining)
}

func grantConfirmationText(record domain.SubscriptionRecord) string {
	return fmt.Sprintf("✅ Granted *%s* to user `%s` (₹%d).%s",
		planTitle(record.Plan), record.UserID, record.PaymentAmount, expiryLine(record))
}

func grantNotificationText(record domain.SubscriptionRecord) string {
	return fmt.Sprintf("🎉 Your *%s* plan is now active!%s", planTitle(record.Plan), expiryLine(record))
}

func expiryLine(record domain.SubscriptionRecord) string {
	if record.Expires.IsZero() {
		return "\n⏰ Never expires."
	}

	return fmt.Sprintf("\n⏰ Expires: %s", record.Expires.UTC().Format("2006-01-02 15:04 MST"))
}

func myStatsText(record domain.SubscriptionRecord, catalog *domain.Catalog) string {
	var b strings.Builder
	b.WriteString("📊 *Your Stats*\n\n")
	fmt.Fprintf(&b, "💎 Plan: %s\n", planTitle(record.Plan))
	fmt.Fprintf(&b, "📈 Status: %s\n", record.Status)

	if plan, err := catalog.Lookup(record.Plan); err == nil {
		if plan.Unlimited() {
			fmt.Fprintf(&b, "🔍 Searches today: %d (unlimited)\n", record.SearchesUsed)
		} else {
			fmt.Fprintf(&b, "🔍 Searches today: %d/%d\n", record.SearchesUsed, plan.DailyQuota)
		}
	}

	fmt.Fprintf(&b, "🗂 Total searches: %d\n", record.TotalSearches)
	fmt.Fprintf(&b, "📅 Member since: %s", record.CreatedAt.UTC().Format("2006-01-02"))
	b.WriteString(expiryLine(record))

	return b.String()
}

func statsText(summary application.Summary) string {
	var b strings.Builder
	b.WriteString("📊 *Bot Statistics*\n\n")
	fmt.Fprintf(&b, "👥 Users: %d\n", summary.TotalUsers)
	fmt.Fprintf(&b, "💰 Revenue: ₹%d\n", summary.TotalRevenue)

	b.WriteString("\n*By plan:*\n")
	for _, id := range []domain.PlanID{domain.PlanFree, domain.PlanSingle, domain.PlanPremium, domain.PlanPro, domain.PlanLifetime} {
		if count, ok := summary.CountByPlan[id]; ok {
			fmt.Fprintf(&b, "• %s: %d\n", planTitle(id), count)
		}
	}

	if len(summary.Recent) > 0 {
		b.WriteString("\n*Recent signups:*\n")
		for _, record := range summary.Recent {
			fmt.Fprintf(&b, "• `%s` %s (%s)\n", record.UserID, record.FirstName, record.Plan)
		}
	}

	return b.String()
}

func planTitle(id domain.PlanID) string {
	switch id {
	case domain.PlanFree:
		return "Free"
	case domain.PlanSingle:
		return "Single Search"
	case domain.PlanPremium:
		return "Premium"
	case domain.PlanPro:
		return "Pro"
	case domain.PlanLifetime:
		return "Lifetime"
	default:
		return string(id)
	}
}

func quotaLabel(plan domain.PlanDefinition) string {
	if plan.Unlimited() {
		return "unlimited searches forever"
	}
	if plan.DailyQuota == 0 {
		return "no searches (upgrade required)"
	}

	label := fmt.Sprintf("%d searches/day", plan.DailyQuota)
	if plan.Validity.Expires() {
		if hours := int(plan.Validity.Duration.Hours()); hours < 48 {
			label += fmt.Sprintf(" for %dh", hours)
		} else {
			label += fmt.Sprintf(" for %d days", hours/24)
		}
	}

	return label
}
