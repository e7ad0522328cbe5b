package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/crazypanel/lookupbot/internal/adapters/lookup"
	"github.com/crazypanel/lookupbot/internal/adapters/telegram"
	"github.com/crazypanel/lookupbot/internal/domain"
)

const recentRecordsInStats = 10

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "secret") != s.cfg.WebhookSecret {
		http.NotFound(w, r)
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "bad update payload", http.StatusBadRequest)
		return
	}

	// Telegram redelivers on non-2xx; anything past payload decoding is
	// handled (and logged) without failing the webhook call.
	if update.Message != nil && update.Message.From != nil {
		s.dispatch(r.Context(), update.Message)
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true}`))
}

func (s *Server) dispatch(ctx context.Context, msg *telegram.Message) {
	userID := domain.UserID(strconv.FormatInt(msg.From.ID, 10))
	text := strings.TrimSpace(msg.Text)

	switch {
	case text == "/start" || text == "/help":
		s.handleStart(ctx, msg, userID)
	case text == "/plans":
		s.reply(ctx, msg.Chat.ID, plansText(s.service.Catalog()))
	case text == "/mystats":
		s.handleMyStats(ctx, msg, userID)
	case text == "/stats":
		s.handleStats(ctx, msg, userID)
	case strings.HasPrefix(text, "/grant"):
		s.handleGrant(ctx, msg, userID, text)
	case strings.HasPrefix(text, "/"):
		s.reply(ctx, msg.Chat.ID, unknownCommandText)
	default:
		s.handleLookup(ctx, msg, userID, text)
	}
}

func (s *Server) handleStart(ctx context.Context, msg *telegram.Message, userID domain.UserID) {
	if _, err := s.service.EnsureRecord(ctx, userID, msg.From.Username, msg.From.FirstName); err != nil {
		s.reportFailure(ctx, err, "ensure record failed", userID)
		s.reply(ctx, msg.Chat.ID, temporaryIssueText)
		return
	}

	s.reply(ctx, msg.Chat.ID, welcomeText(msg.From.FirstName, s.service.Catalog()))
}

func (s *Server) handleMyStats(ctx context.Context, msg *telegram.Message, userID domain.UserID) {
	record, err := s.service.StatsFor(ctx, userID, msg.From.Username, msg.From.FirstName)
	if err != nil {
		s.reportFailure(ctx, err, "load user stats failed", userID)
		s.reply(ctx, msg.Chat.ID, temporaryIssueText)
		return
	}

	s.reply(ctx, msg.Chat.ID, myStatsText(record, s.service.Catalog()))
}

func (s *Server) handleStats(ctx context.Context, msg *telegram.Message, userID domain.UserID) {
	if !s.isAdmin(userID) {
		s.reply(ctx, msg.Chat.ID, notAuthorizedText)
		return
	}

	summary, err := s.reporter.Summarize(ctx, recentRecordsInStats)
	if err != nil {
		s.reportFailure(ctx, err, "summarize failed", userID)
		s.reply(ctx, msg.Chat.ID, temporaryIssueText)
		return
	}

	s.reply(ctx, msg.Chat.ID, statsText(summary))
}

// handleGrant processes "/grant <user_id> <plan> [amount]". The amount
// defaults to the plan's list price.
func (s *Server) handleGrant(ctx context.Context, msg *telegram.Message, userID domain.UserID, text string) {
	if !s.isAdmin(userID) {
		s.reply(ctx, msg.Chat.ID, notAuthorizedText)
		return
	}

	fields := strings.Fields(text)
	if len(fields) < 3 || len(fields) > 4 {
		s.reply(ctx, msg.Chat.ID, grantUsageText)
		return
	}

	targetID := domain.UserID(fields[1])
	planID := domain.PlanID(fields[2])

	plan, err := s.service.Catalog().Lookup(planID)
	if err != nil {
		s.reply(ctx, msg.Chat.ID, fmt.Sprintf("❌ Unknown plan `%s`. Valid plans: %s", planID, planListText(s.service.Catalog())))
		return
	}

	amount := plan.Price
	if len(fields) == 4 {
		parsed, parseErr := strconv.Atoi(fields[3])
		if parseErr != nil || parsed < 0 {
			s.reply(ctx, msg.Chat.ID, grantUsageText)
			return
		}
		amount = parsed
	}

	record, err := s.service.GrantSubscription(ctx, targetID, "", "", planID, amount)
	if err != nil {
		s.reportFailure(ctx, err, "grant failed", targetID)
		s.reply(ctx, msg.Chat.ID, temporaryIssueText)
		return
	}

	s.reply(ctx, msg.Chat.ID, grantConfirmationText(record))
	if chatID, convErr := strconv.ParseInt(string(targetID), 10, 64); convErr == nil {
		s.reply(ctx, chatID, grantNotificationText(record))
	}
}

func (s *Server) handleLookup(ctx context.Context, msg *telegram.Message, userID domain.UserID, text string) {
	number, ok := NormalizeNumber(text)
	if !ok {
		s.reply(ctx, msg.Chat.ID, invalidNumberText)
		return
	}

	result, err := s.service.TryConsumeSearch(ctx, userID, msg.From.Username, msg.From.FirstName)
	if err != nil {
		s.reportFailure(ctx, err, "consume search failed", userID)
		s.reply(ctx, msg.Chat.ID, temporaryIssueText)
		return
	}

	if !result.Allowed {
		s.reply(ctx, msg.Chat.ID, denialText(result, s.service.Catalog()))
		return
	}

	payload, err := s.lookup.Lookup(ctx, number)
	switch {
	case errors.Is(err, lookup.ErrNoRecord):
		s.reply(ctx, msg.Chat.ID, noRecordText(number)+remainingFooter(result))
	case err != nil:
		s.reportFailure(ctx, err, "lookup upstream failed", userID)
		s.reply(ctx, msg.Chat.ID, lookupFailedText+remainingFooter(result))
	default:
		s.reply(ctx, msg.Chat.ID, resultText(number, payload)+remainingFooter(result))
	}
}

func (s *Server) isAdmin(userID domain.UserID) bool {
	return string(userID) == s.cfg.AdminUserID
}

func (s *Server) reply(ctx context.Context, chatID int64, text string) {
	if err := s.sender.SendMessage(ctx, chatID, text); err != nil {
		s.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send reply failed")
	}
}

// reportFailure logs a structural failure and forwards it to the admin chat
// as an operational alert. Failures are never swallowed silently.
func (s *Server) reportFailure(ctx context.Context, err error, event string, userID domain.UserID) {
	s.logger.Error().Err(err).Str("user_id", string(userID)).Msg(event)

	if s.cfg.AdminChatID == 0 {
		return
	}
	alert := fmt.Sprintf("⚠️ *Operational alert*\n%s\nuser: `%s`\nerror: %v", event, userID, err)
	if sendErr := s.sender.SendMessage(ctx, s.cfg.AdminChatID, alert); sendErr != nil {
		s.logger.Error().Err(sendErr).Msg("admin alert failed")
	}
}
