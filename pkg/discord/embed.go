package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"withgames/internal/domain"
	"withgames/internal/domain/entities"
)

const (
	colorActive    = 0x2ECC71
	colorFull      = 0xE67E22
	colorClosed    = 0x9B59B6
	colorCancelled = 0x95A5A6
	colorCompleted = 0x3498DB
)

func statusColor(status domain.EventStatus) int {
	switch status {
	case domain.EventStatusFull:
		return colorFull
	case domain.EventStatusClosed:
		return colorClosed
	case domain.EventStatusCancelled:
		return colorCancelled
	case domain.EventStatusCompleted:
		return colorCompleted
	default:
		return colorActive
	}
}

func statusLabel(status domain.EventStatus) string {
	switch status {
	case domain.EventStatusActive:
		return "🟢 募集中"
	case domain.EventStatusFull:
		return "🟠 満員"
	case domain.EventStatusClosed:
		return "🔒 募集終了"
	case domain.EventStatusCancelled:
		return "🚫 キャンセル"
	case domain.EventStatusCompleted:
		return "✅ 終了"
	default:
		return string(status)
	}
}

// Mention renders a Discord user mention.
func Mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}

func mentionList(participants []entities.Participant) string {
	if len(participants) == 0 {
		return "なし"
	}
	lines := make([]string, len(participants))
	for i, p := range participants {
		lines[i] = "- " + Mention(p.UserID)
	}
	return strings.Join(lines, "\n")
}

// BuildEventEmbed renders the recruitment post for an event with its current
// joined and waitlist partitions.
func BuildEventEmbed(event *entities.Event, joined, waitlist []entities.Participant) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s %s", event.GameEmoji, event.Title),
		Description: event.Description,
		Color:       statusColor(event.Status),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎮 ゲーム", Value: event.GameType, Inline: true},
			{Name: "📅 開始日時", Value: FormatEventDateTime(event.StartTime), Inline: true},
			{Name: "📊 ステータス", Value: statusLabel(event.Status), Inline: true},
			{
				Name:   fmt.Sprintf("👥 参加者 (%d/%d)", event.CurrentParticipants, event.MaxParticipants),
				Value:  mentionList(joined),
				Inline: false,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("主催: %s | ID: %s", event.CreatorName, event.ID),
		},
	}
	if event.GameIconURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: event.GameIconURL}
	}
	if len(waitlist) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("⏳ キャンセル待ち (%d)", len(waitlist)),
			Value:  mentionList(waitlist),
			Inline: false,
		})
	}
	return embed
}
