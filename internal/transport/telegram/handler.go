package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	adminService "github.com/fugui-tools/filter-bot/internal/modules/admin/service"
	channelDomain "github.com/fugui-tools/filter-bot/internal/modules/channel/domain"
	channelService "github.com/fugui-tools/filter-bot/internal/modules/channel/service"
	connectionService "github.com/fugui-tools/filter-bot/internal/modules/connection/service"
	filterDomain "github.com/fugui-tools/filter-bot/internal/modules/filter/domain"
	filterService "github.com/fugui-tools/filter-bot/internal/modules/filter/service"
	statsDomain "github.com/fugui-tools/filter-bot/internal/modules/stats/domain"
	statsService "github.com/fugui-tools/filter-bot/internal/modules/stats/service"
	"github.com/fugui-tools/filter-bot/internal/shared/config"
	sharederrors "github.com/fugui-tools/filter-bot/internal/shared/errors"
)

type commandFunc func(ctx context.Context, b *bot.Bot, update *models.Update, args []string)

// Handler receives every Telegram update: commands are dispatched to their
// handler, any other text message goes through the filter matcher.
type Handler struct {
	cfg         *config.Config
	filters     *filterService.Service
	connections *connectionService.Service
	channels    *channelService.Service
	admins      *adminService.Service
	stats       *statsService.Service
	commands    map[string]commandFunc
}

// New creates a new Telegram handler
func New(
	cfg *config.Config,
	filters *filterService.Service,
	connections *connectionService.Service,
	channels *channelService.Service,
	admins *adminService.Service,
	stats *statsService.Service,
) *Handler {
	h := &Handler{
		cfg:         cfg,
		filters:     filters,
		connections: connections,
		channels:    channels,
		admins:      admins,
		stats:       stats,
	}
	h.commands = map[string]commandFunc{
		"start":       h.handleStart,
		"help":        h.handleStart,
		"add":         h.handleAdd,
		"del":         h.handleDel,
		"filters":     h.handleFilters,
		"connect":     h.handleConnect,
		"connections": h.handleConnections,
		"disconnect":  h.handleDisconnect,
		"addchannel":  h.handleAddChannel,
		"channels":    h.handleChannels,
		"delchannel":  h.handleDelChannel,
		"addadmin":    h.handleAddAdmin,
		"removeadmin": h.handleRemoveAdmin,
		"stats":       h.handleStats,
		"id":          h.handleID,
		"info":        h.handleInfo,
	}
	return h
}

// RegisterCommands publishes the command menu to Telegram.
func (h *Handler) RegisterCommands(ctx context.Context, b *bot.Bot) {
	_, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: []models.BotCommand{
			{Command: "add", Description: "Set auto-reply for a keyword"},
			{Command: "del", Description: "Remove a filter"},
			{Command: "filters", Description: "List all filters"},
			{Command: "connect", Description: "Link a group to PM"},
			{Command: "connections", Description: "Show linked group"},
			{Command: "disconnect", Description: "Remove the connection"},
			{Command: "addchannel", Description: "Add a channel to the registry"},
			{Command: "channels", Description: "List registered channels"},
			{Command: "delchannel", Description: "Remove a channel"},
			{Command: "addadmin", Description: "Grant bot admin"},
			{Command: "removeadmin", Description: "Revoke bot admin"},
			{Command: "stats", Description: "Bot usage statistics"},
			{Command: "id", Description: "Show user/group ID"},
			{Command: "info", Description: "Show user details"},
			{Command: "help", Description: "Show help"},
		},
	})
	if err != nil {
		slog.Error("Failed to register bot commands", "error", err)
	}
}

// HandleUpdate processes incoming updates
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Text == "" {
		return
	}

	if name, args, ok := parseCommand(msg.Text); ok {
		cmd, known := h.commands[name]
		if !known {
			return
		}
		h.stats.Record(ctx, name, msg.From.ID, msg.Chat.ID)
		cmd(ctx, b, update, args)
		return
	}

	h.handleMessage(ctx, b, msg)
}

// parseCommand splits "/name@bot arg arg" into the command name and its
// arguments. ok is false for non-command text.
func parseCommand(text string) (string, []string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", nil, false
	}
	fields := strings.Fields(text)
	name := strings.TrimPrefix(fields[0], "/")
	name, _, _ = strings.Cut(name, "@")
	if name == "" {
		return "", nil, false
	}
	return strings.ToLower(name), fields[1:], true
}

func isGroupChat(chat models.Chat) bool {
	return chat.Type == models.ChatTypeGroup || chat.Type == models.ChatTypeSupergroup
}

func (h *Handler) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}); err != nil {
		slog.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) sendMarkdown(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	}); err != nil {
		slog.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
}

// handleMessage runs the filter matcher over a plain text message.
func (h *Handler) handleMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	matched := h.filters.MatchMessage(ctx, msg.Chat.ID, msg.Text)
	if matched == nil {
		return
	}

	directive, ok := filterDomain.ParseDirective(matched.Response)
	if !ok {
		slog.Warn("Skipping malformed response directive", "chat_id", msg.Chat.ID, "keyword", matched.Keyword)
		return
	}

	switch directive.Kind {
	case filterDomain.DirectiveKindButton:
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "🔘 " + directive.Label,
			ReplyMarkup: models.InlineKeyboardMarkup{
				InlineKeyboard: [][]models.InlineKeyboardButton{
					{{Text: directive.Label, URL: directive.URL}},
				},
			},
		})
		if err != nil {
			slog.Error("Failed to send button reply", "chat_id", msg.Chat.ID, "error", err)
		}
	case filterDomain.DirectiveKindLink:
		h.sendMarkdown(ctx, b, msg.Chat.ID, fmt.Sprintf("🔗 [%s](%s)", directive.Label, directive.URL))
	default:
		h.sendText(ctx, b, msg.Chat.ID, directive.Text)
	}
}

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update, _ []string) {
	text := `👋 Keyword filter bot

Filter commands:
/add <keyword> <response> - Set auto-reply for a keyword
/del <keyword> - Remove a filter
/filters - List all filters

Connection commands:
/connect <group_id> - Link a group to PM
/connections - Show the linked group
/disconnect - Remove the connection

Channel registry:
/addchannel <channel_id> [title] - Add a channel
/channels [page] - List channels
/delchannel <channel_id> - Remove a channel

Admin commands:
/addadmin <user_id> - Grant bot admin
/removeadmin <user_id> - Revoke bot admin
/stats - Usage statistics

Other:
/id - Show user/group ID
/info <user_id> - Show user details`

	h.sendText(ctx, b, update.Message.Chat.ID, text)
}

func (h *Handler) handleAdd(ctx context.Context, b *bot.Bot, update *models.Update, args []string) {
	chat := update.Message.Chat
	userID := update.Message.From.ID

	if !h.admins.CanManageFilters(ctx, chat.ID, userID, isGroupChat(chat)) {
		h.sendText(ctx, b, chat.ID, "❌ You need admin rights to add filters!")
		return
	}

	if len(args) < 2 {
		h.sendText(ctx, b, chat.ID, "Usage: /add <keyword> <response>")
		return
	}

	keyword := filterDomain.NormalizeKeyword(args[0])
	response := strings.Join(args[1:], " ")

	err := h.filters.Add(ctx, chat.ID, keyword, response, userID)
	switch {
	case errors.Is(err, sharederrors.ErrFilterExists):
		h.sendText(ctx, b, chat.ID, fmt.Sprintf("⚠️ Filter for '%s' already exists!", keyword))
	case err != nil:
		h.sendText(ctx, b, chat.ID, "❌ Failed to add filter. Please try again later.")
	default:
		h.sendText(ctx, b, chat.ID, fmt.Sprintf("✅ Filter added for '%s'", keyword))
	}
}

func (h *Handler) handleDel(ctx context.Context, b *bot.Bot, update *models.Update, args []string) {
	chat := update.Message.Chat
	userID := update.Message.From.ID

	if !h.admins.CanManageFilters(ctx, chat.ID, userID, isGroupChat(chat)) {
		h.sendText(ctx, b, chat.ID, "❌ You need admin rights to delete filters!")
		return
	}

	if len(args) < 1 {
		h.sendText(ctx, b, chat.ID, "Usage: /del <keyword>")
		return
	}

	keyword := filterDomain.NormalizeKeyword(args[0])
	if h.filters.Delete(ctx, chat.ID, keyword) {
		h.sendText(ctx, b, chat.ID, fmt.Sprintf("✅ Filter deleted for '%s'", keyword))
	} else {
		h.sendText(ctx, b, chat.ID, fmt.Sprintf("❌ No filter found for '%s'", keyword))
	}
}

func (h *Handler) handleFilters(ctx context.Context, b *bot.Bot, update *models.Update, _ []string) {
	chatID := update.Message.Chat.ID

	filters := h.filters.List(ctx, chatID)
	if len(filters) == 0 {
		h.sendText(ctx, b, chatID, "📭 No filters added yet!")
		return
	}

	h.sendText(ctx, b, chatID, formatFilterList(filters))
}

func (h *Handler) handleConnect(ctx context.Context, b *bot.Bot, update *models.Update, args []string) {
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	if len(args) < 1 {
		h.sendText(ctx, b, chatID, "Usage: /connect <group_id>\nGet the group ID with /id in the group")
		return
	}

	groupID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendText(ctx, b, chatID, "❌ Invalid group ID!")
		return
	}

	if h.connections.Connect(ctx, userID, groupID) {
		h.sendText(ctx, b, chatID, fmt.Sprintf("✅ Group %d connected!\nYou can now use bot features in private.", groupID))
	} else {
		h.sendText(ctx, b, chatID, "❌ Failed to connect group.")
	}
}

func (h *Handler) handleConnections(ctx context.Context, b *bot.Bot, update *models.Update, _ []string) {
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	conn := h.connections.Get(ctx, userID)
	if conn == nil {
		h.sendText(ctx, b, chatID, "📭 No connected groups!")
		return
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf("🔗 Connected group:\nID: %d\nConnected at: %s",
		conn.GroupID, conn.ConnectedAt.Format("2006-01-02 15:04")))
}

func (h *Handler) handleDisconnect(ctx context.Context, b *bot.Bot, update *models.Update, _ []string) {
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	conn := h.connections.Get(ctx, userID)
	if conn == nil {
		h.sendText(ctx, b, chatID, "❌ No active connection!")
		return
	}

	if h.connections.Disconnect(ctx, userID) {
		h.sendText(ctx, b, chatID, fmt.Sprintf("✅ Disconnected from group %d", conn.GroupID))
	} else {
		h.sendText(ctx, b, chatID, "❌ Failed to disconnect.")
	}
}

func (h *Handler) handleAddChannel(ctx context.Context, b *bot.Bot, update *models.Update, args []string) {
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	// Channel administration is bot-specific: only the stored grant counts,
	// the platform's group roles are not consulted.
	if !h.admins.IsAdmin(ctx, chatID, userID) {
		h.sendText(ctx, b, chatID, "❌ You need admin rights to add channels!")
		return
	}

	if len(args) < 1 {
		h.sendText(ctx, b, chatID, "Usage: /addchannel <channel_id> [title]\nExample: /addchannel -1001234567890 Anime Channel")
		return
	}

	channelID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendText(ctx, b, chatID, "❌ Invalid channel ID!")
		return
	}

	title := "Untitled Channel"
	if len(args) > 1 {
		title = strings.Join(args[1:], " ")
	}

	if h.channels.Add(ctx, channelID, title, userID) {
		h.sendText(ctx, b, chatID, fmt.Sprintf("✅ Channel added!\nID: %d\nTitle: %s", channelID, title))
	} else {
		h.sendText(ctx, b, chatID, "❌ Failed to add channel.")
	}
}

func (h *Handler) handleChannels(ctx context.Context, b *bot.Bot, update *models.Update, args []string) {
	chatID := update.Message.Chat.ID

	page := parsePage(args)
	channels, total, pages := h.channels.Page(ctx, page)
	if len(channels) == 0 {
		h.sendText(ctx, b, chatID, "📭 No channels in database!")
		return
	}

	h.sendText(ctx, b, chatID, formatChannelPage(channels, page, total, pages))
}

func (h *Handler) handleDelChannel(ctx context.Context, b *bot.Bot, update *models.Update, args []string) {
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	if !h.admins.IsAdmin(ctx, chatID, userID) {
		h.sendText(ctx, b, chatID, "❌ You need admin rights to delete channels!")
		return
	}

	if len(args) < 1 {
		h.sendText(ctx, b, chatID, "Usage: /delchannel <channel_id>")
		return
	}

	channelID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendText(ctx, b, chatID, "❌ Invalid channel ID!")
		return
	}

	if h.channels.Get(ctx, channelID) == nil {
		h.sendText(ctx, b, chatID, fmt.Sprintf("❌ Channel %d not found!", channelID))
		return
	}

	if h.channels.Delete(ctx, channelID) {
		h.sendText(ctx, b, chatID, fmt.Sprintf("✅ Channel %d deleted!", channelID))
	} else {
		h.sendText(ctx, b, chatID, "❌ Failed to delete channel.")
	}
}

func (h *Handler) handleAddAdmin(ctx context.Context, b *bot.Bot, update *models.Update, args []string) {
	chat := update.Message.Chat
	userID := update.Message.From.ID

	if !isGroupChat(chat) {
		h.sendText(ctx, b, chat.ID, "❌ This command can only be used in groups!")
		return
	}

	// Granting the first admins is gated on the platform role alone.
	if !h.admins.HasPlatformRole(ctx, chat.ID, userID) {
		h.sendText(ctx, b, chat.ID, "❌ You need admin rights to add admins!")
		return
	}

	if len(args) < 1 {
		h.sendText(ctx, b, chat.ID, "Usage: /addadmin <user_id>")
		return
	}

	newAdminID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendText(ctx, b, chat.ID, "❌ Invalid user ID!")
		return
	}

	if h.admins.Grant(ctx, chat.ID, newAdminID, userID) {
		h.sendText(ctx, b, chat.ID, fmt.Sprintf("✅ User %d added as admin!", newAdminID))
	} else {
		h.sendText(ctx, b, chat.ID, "❌ Failed to add admin.")
	}
}

func (h *Handler) handleRemoveAdmin(ctx context.Context, b *bot.Bot, update *models.Update, args []string) {
	chat := update.Message.Chat
	userID := update.Message.From.ID

	if !isGroupChat(chat) {
		h.sendText(ctx, b, chat.ID, "❌ This command can only be used in groups!")
		return
	}

	if !h.admins.HasPlatformRole(ctx, chat.ID, userID) {
		h.sendText(ctx, b, chat.ID, "❌ You need admin rights to remove admins!")
		return
	}

	if len(args) < 1 {
		h.sendText(ctx, b, chat.ID, "Usage: /removeadmin <user_id>")
		return
	}

	adminID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendText(ctx, b, chat.ID, "❌ Invalid user ID!")
		return
	}

	if h.admins.Revoke(ctx, chat.ID, adminID) {
		h.sendText(ctx, b, chat.ID, fmt.Sprintf("✅ User %d removed from admins!", adminID))
	} else {
		h.sendText(ctx, b, chat.ID, fmt.Sprintf("❌ User %d is not an admin!", adminID))
	}
}

func (h *Handler) handleStats(ctx context.Context, b *bot.Bot, update *models.Update, _ []string) {
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	if !h.admins.IsAdmin(ctx, chatID, userID) {
		h.sendText(ctx, b, chatID, "❌ You need admin rights to view stats!")
		return
	}

	summary := h.stats.Summary(ctx, h.cfg.StatsWindowDays)
	if summary.TotalCommands == 0 && len(summary.Days) == 0 {
		h.sendText(ctx, b, chatID, "📊 No statistics available yet!")
		return
	}

	h.sendText(ctx, b, chatID, formatStats(summary))
}

func (h *Handler) handleID(ctx context.Context, b *bot.Bot, update *models.Update, _ []string) {
	chat := update.Message.Chat
	userID := update.Message.From.ID

	if chat.Type == models.ChatTypePrivate {
		h.sendText(ctx, b, chat.ID, fmt.Sprintf("👤 Your ID: %d", userID))
		return
	}
	h.sendText(ctx, b, chat.ID, fmt.Sprintf("👤 Your ID: %d\n👥 Group ID: %d", userID, chat.ID))
}

func (h *Handler) handleInfo(ctx context.Context, b *bot.Bot, update *models.Update, args []string) {
	chatID := update.Message.Chat.ID

	if len(args) < 1 {
		h.sendText(ctx, b, chatID, "Usage: /info <user_id>")
		return
	}

	targetID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendText(ctx, b, chatID, "❌ Invalid user ID!")
		return
	}

	info, err := b.GetChat(ctx, &bot.GetChatParams{ChatID: targetID})
	if err != nil {
		slog.Error("Failed to fetch user info", "user_id", targetID, "error", err)
		h.sendText(ctx, b, chatID, "❌ Failed to fetch user info.")
		return
	}

	h.sendText(ctx, b, chatID, formatUserInfo(info))
}

// ----- formatting -----

const maxReplyLength = 4000

func formatFilterList(filters []filterDomain.Filter) string {
	var text strings.Builder
	text.WriteString("🔍 Active filters:\n\n")
	for i, f := range filters {
		preview := f.Response
		if len(preview) > 30 {
			preview = preview[:30] + "..."
		}
		text.WriteString(fmt.Sprintf("%d. %s → %s\n", i+1, f.Keyword, preview))
	}

	out := text.String()
	if len(out) > maxReplyLength {
		out = out[:maxReplyLength] + "\n\n... and more"
	}
	return out
}

func formatChannelPage(channels []channelDomain.Channel, page int, total, pages int64) string {
	var text strings.Builder
	text.WriteString(fmt.Sprintf("📢 Channel registry (page %d):\n\n", page))
	for i, ch := range channels {
		text.WriteString(fmt.Sprintf("%d. %s\n   ID: %d\n   Added: %s\n\n",
			i+1, ch.Title, ch.ChannelID, ch.AddedAt.Format("2006-01-02")))
	}
	if pages > 1 {
		text.WriteString(fmt.Sprintf("📄 Page %d/%d of %d channels", page, pages, total))
	}
	return text.String()
}

func formatStats(summary *statsDomain.Summary) string {
	var text strings.Builder
	text.WriteString(fmt.Sprintf("📊 Bot statistics (last %d days):\n\n", summary.WindowDays))
	text.WriteString(fmt.Sprintf("• Total commands: %d\n", summary.TotalCommands))
	text.WriteString(fmt.Sprintf("• Active users: %d\n", summary.ActiveUsers))
	text.WriteString(fmt.Sprintf("• Active chats: %d\n", summary.ActiveChats))

	if len(summary.Days) > 0 {
		text.WriteString("\nCommand breakdown:\n")
		for _, day := range summary.Days {
			text.WriteString(fmt.Sprintf("%s:\n", day.Date.Format("2006-01-02")))
			for _, cmd := range sortedCommandNames(day.Commands) {
				text.WriteString(fmt.Sprintf("  • %s: %d\n", cmd, day.Commands[cmd]))
			}
		}
	}
	return text.String()
}

func formatUserInfo(info *models.ChatFullInfo) string {
	lastName := info.LastName
	if lastName == "" {
		lastName = "N/A"
	}
	username := info.Username
	if username == "" {
		username = "N/A"
	}
	return fmt.Sprintf("👤 User information:\nID: %d\nFirst name: %s\nLast name: %s\nUsername: @%s",
		info.ID, info.FirstName, lastName, username)
}

func sortedCommandNames(commands map[string]int64) []string {
	names := lo.Keys(commands)
	sort.Strings(names)
	return names
}

// parsePage reads an optional 1-based page argument, defaulting to 1.
func parsePage(args []string) int {
	if len(args) == 0 {
		return 1
	}
	page, err := strconv.Atoi(args[0])
	if err != nil || page < 1 {
		return 1
	}
	return page
}
