package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"withgames/internal/ports/input"
	pkgdiscord "withgames/pkg/discord"
)

var eventCommand = &discordgo.ApplicationCommand{
	Name:        "event",
	Description: "ゲームイベントの募集を管理します",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "create",
			Description: "新しいイベントを作成します",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "title", Description: "イベント名", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "game", Description: "ゲーム名", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "start", Description: "開始日時 (YYYY-MM-DD HH:MM)", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "max", Description: "定員", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "description", Description: "説明", Required: false},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "edit",
			Description: "イベントを編集します（作成者・管理者のみ）",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "event_id", Description: "イベントID", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "title", Description: "イベント名", Required: false},
				{Type: discordgo.ApplicationCommandOptionString, Name: "description", Description: "説明", Required: false},
				{Type: discordgo.ApplicationCommandOptionString, Name: "start", Description: "開始日時 (YYYY-MM-DD HH:MM)", Required: false},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "max", Description: "定員", Required: false},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "close",
			Description: "イベントの募集を終了します（作成者・管理者のみ）",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "event_id", Description: "イベントID", Required: true},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "cancel",
			Description: "イベントをキャンセルします（作成者・管理者のみ）",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "event_id", Description: "イベントID", Required: true},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "delete",
			Description: "イベントを削除します（作成者・管理者のみ）",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "event_id", Description: "イベントID", Required: true},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "list",
			Description: "募集中のイベントを一覧表示します",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "mine",
			Description: "自分が参加しているイベントを表示します",
		},
	},
}

func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]
	opts := map[string]*discordgo.ApplicationCommandInteractionDataOption{}
	for _, o := range sub.Options {
		opts[o.Name] = o
	}

	switch sub.Name {
	case "create":
		h.handleCreate(s, i, opts)
	case "edit":
		h.handleEdit(s, i, opts)
	case "close":
		h.handleClose(s, i, opts)
	case "cancel":
		h.handleCancel(s, i, opts)
	case "delete":
		h.handleDelete(s, i, opts)
	case "list":
		h.handleList(s, i)
	case "mine":
		h.handleMine(s, i)
	}
}

func optString(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if o, ok := opts[name]; ok {
		return o.StringValue()
	}
	return ""
}

func (h *Handler) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	startTime, err := pkgdiscord.ParseEventDateTime(optString(opts, "start"))
	if err != nil {
		respondEphemeral(s, i, err.Error())
		return
	}
	maxOpt, ok := opts["max"]
	if !ok || maxOpt.IntValue() < 1 {
		respondEphemeral(s, i, h.translator.T(h.locale, "error.generic", nil))
		return
	}
	userID, userName := interactionUser(i)
	game := optString(opts, "game")
	info := gameInfoFor(game)
	event, err := h.eventUseCase.CreateEvent(ctx, input.CreateEventInput{
		Title:           optString(opts, "title"),
		Description:     optString(opts, "description"),
		GameType:        game,
		GameEmoji:       info.Emoji,
		GameIconURL:     info.IconURL,
		StartTime:       startTime,
		MaxParticipants: int(maxOpt.IntValue()),
		CreatorID:       userID,
		CreatorName:     userName,
		GuildID:         i.GuildID,
		ChannelID:       i.ChannelID,
	})
	if err != nil {
		log.WithError(err).Error("failed to create event")
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}

	msg, err := s.ChannelMessageSendComplex(event.ChannelID, &discordgo.MessageSend{
		Embed:      pkgdiscord.BuildEventEmbed(event, nil, nil),
		Components: recruitmentButtons(),
	})
	if err != nil {
		log.WithError(err).WithField("event_id", event.ID).Error("failed to post event message")
	} else if err := h.eventUseCase.SetEventMessageID(ctx, event.ID, msg.ID); err != nil {
		log.WithError(err).WithField("event_id", event.ID).Error("failed to store event message id")
	}

	respondEphemeral(s, i, h.translator.T(h.locale, "create.done", map[string]any{"Title": event.Title}))
}

func (h *Handler) handleEdit(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	event, err := h.eventUseCase.GetEvent(ctx, optString(opts, "event_id"))
	if err != nil {
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	if err := canManageEvent(i, event); err != nil {
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	if event.Status.IsTerminal() {
		respondEphemeral(s, i, h.errorMessage(statusError(event)))
		return
	}

	oldMax := event.MaxParticipants
	if v := optString(opts, "title"); v != "" {
		event.Title = v
	}
	if v := optString(opts, "description"); v != "" {
		event.Description = v
	}
	if v := optString(opts, "start"); v != "" {
		startTime, err := pkgdiscord.ParseEventDateTime(v)
		if err != nil {
			respondEphemeral(s, i, err.Error())
			return
		}
		event.StartTime = startTime
	}
	if o, ok := opts["max"]; ok && o.IntValue() >= 1 {
		event.MaxParticipants = int(o.IntValue())
	}

	if err := h.eventUseCase.ApplyEdit(ctx, event); err != nil {
		log.WithError(err).WithField("event_id", event.ID).Error("failed to edit event")
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	if event.MaxParticipants != oldMax {
		if err := h.capacityUseCase.ReconcileCapacity(ctx, event, oldMax); err != nil {
			log.WithError(err).WithField("event_id", event.ID).Error("capacity reconciliation failed")
		}
	}

	h.refreshEventMessage(ctx, s, event.ID)
	respondEphemeral(s, i, h.translator.T(h.locale, "edit.done", map[string]any{"Title": event.Title}))
}

func (h *Handler) handleClose(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	event, err := h.eventUseCase.GetEvent(ctx, optString(opts, "event_id"))
	if err != nil {
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	if err := canManageEvent(i, event); err != nil {
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	if err := h.eventUseCase.CloseEvent(ctx, event.ID); err != nil {
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	h.refreshEventMessage(ctx, s, event.ID)
	respondEphemeral(s, i, h.translator.T(h.locale, "close.done", map[string]any{"Title": event.Title}))
}

func (h *Handler) handleCancel(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	event, err := h.eventUseCase.GetEvent(ctx, optString(opts, "event_id"))
	if err != nil {
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	if err := canManageEvent(i, event); err != nil {
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	if err := h.eventUseCase.CancelEvent(ctx, event.ID); err != nil {
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	h.refreshEventMessage(ctx, s, event.ID)
	respondEphemeral(s, i, h.translator.T(h.locale, "cancel.done", map[string]any{"Title": event.Title}))
}

func (h *Handler) handleDelete(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()
	event, err := h.eventUseCase.GetEvent(ctx, optString(opts, "event_id"))
	if err != nil {
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	if err := canManageEvent(i, event); err != nil {
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	if err := h.eventUseCase.DeleteEvent(ctx, event.ID); err != nil {
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	if event.MessageID != "" {
		if err := s.ChannelMessageDelete(event.ChannelID, event.MessageID); err != nil {
			log.WithError(err).WithField("event_id", event.ID).Warn("failed to delete event message")
		}
	}
	respondEphemeral(s, i, h.translator.T(h.locale, "delete.done", map[string]any{"Title": event.Title}))
}

func (h *Handler) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	events, err := h.eventUseCase.GetActiveEvents(ctx, i.GuildID)
	if err != nil {
		log.WithError(err).WithField("guild_id", i.GuildID).Error("failed to list events")
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	if len(events) == 0 {
		respondEphemeral(s, i, h.translator.T(h.locale, "list.none", nil))
		return
	}
	var b strings.Builder
	for _, e := range events {
		fmt.Fprintf(&b, "%s **%s** — %s (%d/%d) `%s`\n",
			gameInfoFor(e.GameType).Emoji, e.Title, pkgdiscord.FormatEventDateTime(e.StartTime),
			e.CurrentParticipants, e.MaxParticipants, e.ID)
	}
	respondEphemeral(s, i, b.String())
}

func (h *Handler) handleMine(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID, _ := interactionUser(i)
	userEvents, err := h.recruitmentUseCase.GetUserEvents(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("failed to list user events")
		respondEphemeral(s, i, h.errorMessage(err))
		return
	}
	if len(userEvents) == 0 {
		respondEphemeral(s, i, h.translator.T(h.locale, "mine.none", nil))
		return
	}
	var b strings.Builder
	for _, ue := range userEvents {
		marker := "✅ 参加中"
		if ue.Participant.IsOnWaitlist() {
			marker = fmt.Sprintf("⏳ キャンセル待ち %d番目", ue.Participant.Position)
		}
		fmt.Fprintf(&b, "%s **%s** — %s (%d/%d) %s\n",
			gameInfoFor(ue.Event.GameType).Emoji, ue.Event.Title,
			pkgdiscord.FormatEventDateTime(ue.Event.StartTime),
			ue.Event.CurrentParticipants, ue.Event.MaxParticipants, marker)
	}
	respondEphemeral(s, i, b.String())
}
