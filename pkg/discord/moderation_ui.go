/*
 * cineflix-bot is a Discord bot to browse a shared movie and series catalogue.
 * Copyright (C) 2025  Cineflix contributors
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package discord

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/cineflix/cineflix-bot/pkg/moderation"
	"github.com/cineflix/cineflix-bot/pkg/utils"
)

// Review-channel component actions.
const (
	actionModAccept = "mod_accept"
	actionModReject = "mod_reject"
	actionModReason = "mod_reason"
)

// postReviewMessage drops a pending report into the review channel with
// accept/reject buttons. Without a configured channel the report still
// exists; it just waits unseen.
func (b *Bot) postReviewMessage(s *discordgo.Session, report *moderation.Report) {
	if b.cfg.ReviewChannelID == "" {
		utils.WarnLog("Moderation: no review channel configured, report %s stays queued", report.ID)
		return
	}

	embed := reviewEmbed(report)
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Style: discordgo.SuccessButton, Label: "✅ Accepter",
				CustomID: encodeCustomID(actionModAccept, report.ID)},
			discordgo.Button{Style: discordgo.DangerButton, Label: "❌ Refuser",
				CustomID: encodeCustomID(actionModReject, report.ID)},
		}},
	}
	msg, err := s.ChannelMessageSendComplex(b.cfg.ReviewChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		utils.ErrorLog("Moderation: failed to post report %s to review channel: %v", report.ID, err)
		return
	}
	b.reviewLock.Lock()
	b.reviewMsgs[report.ID] = reviewMessage{ChannelID: msg.ChannelID, MessageID: msg.ID}
	b.reviewLock.Unlock()
}

func reviewEmbed(report *moderation.Report) *discordgo.MessageEmbed {
	kind := "Demande d'ajout"
	if report.Key == "" {
		kind = "Suggestion"
	}
	embed := &discordgo.MessageEmbed{
		Title: "📬 " + kind + " — " + report.Title,
		Color: colorWarn,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Demandeur", Value: fmt.Sprintf("<@%s>", report.RequesterID), Inline: true},
		},
		Timestamp: report.CreatedAt.UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: "Réf " + report.ID},
	}
	if report.Key != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Clé", Value: "`" + report.Key + "`", Inline: true})
	}
	switch report.Status {
	case moderation.StatusAccepted:
		embed.Color = colorSuccess
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Décision", Value: "Acceptée ✅"})
	case moderation.StatusRejected:
		embed.Color = colorError
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Décision", Value: "Refusée ❌ — " + report.Reason})
	}
	return embed
}

// handleModDecision processes the accept/reject buttons under a review
// message. Reject first asks for a reason through a modal.
func (b *Bot) handleModDecision(s *discordgo.Session, i *discordgo.InteractionCreate, action string, args []string) {
	if len(args) != 1 {
		return
	}
	reportID := args[0]
	if !b.requireAdmin(s, i) {
		return
	}

	if action == actionModReject {
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: &discordgo.InteractionResponseData{
				CustomID: encodeCustomID(actionModReason, reportID),
				Title:    "Motif du refus",
				Components: []discordgo.MessageComponent{
					discordgo.ActionsRow{Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:  "raison",
							Label:     "Pourquoi cette demande est refusée ?",
							Style:     discordgo.TextInputParagraph,
							Required:  true,
							MaxLength: 500,
						},
					}},
				},
			},
		})
		if err != nil {
			utils.ErrorLog("Moderation: failed to open reason modal: %v", err)
		}
		return
	}

	report, err := b.reports.Accept(reportID)
	if err != nil {
		b.respondDecisionError(s, i, err)
		return
	}
	b.updateReviewMessage(s, report)
	respondEmbed(s, i, colorSuccess, "✅ Demande acceptée",
		fmt.Sprintf("**%s** est validé. Pense à ajouter le lien avec `/addlien`.", report.Title))
}

// handleRejectReason finalizes a rejection once the modal comes back.
func (b *Bot) handleRejectReason(s *discordgo.Session, i *discordgo.InteractionCreate, reportID, reason string) {
	report, err := b.reports.Reject(reportID, reason)
	if err != nil {
		b.respondDecisionError(s, i, err)
		return
	}
	b.updateReviewMessage(s, report)
	respondEmbed(s, i, colorInfo, "❌ Demande refusée",
		fmt.Sprintf("**%s** a été refusé. Le demandeur est prévenu.", report.Title))
}

func (b *Bot) respondDecisionError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	switch {
	case errors.Is(err, moderation.ErrAlreadyDecided):
		respondEmbed(s, i, colorWarn, "⚠️ Déjà traité", "Cette demande a déjà reçu une décision.")
	case errors.Is(err, moderation.ErrNotFound):
		respondEmbed(s, i, colorWarn, "⚠️ Demande inconnue", "Cette demande n'existe plus (redémarrage du bot ?).")
	case errors.Is(err, moderation.ErrReasonRequired):
		respondEmbed(s, i, colorWarn, "⚠️ Motif requis", "Un refus doit être motivé.")
	default:
		respondEmbed(s, i, colorError, "❌ Erreur", "Impossible de traiter la décision.")
	}
}

// updateReviewMessage rewrites the review embed with the decision and
// drops the buttons.
func (b *Bot) updateReviewMessage(s *discordgo.Session, report *moderation.Report) {
	b.reviewLock.RLock()
	ref, ok := b.reviewMsgs[report.ID]
	b.reviewLock.RUnlock()
	if !ok {
		return
	}

	embeds := []*discordgo.MessageEmbed{reviewEmbed(report)}
	components := []discordgo.MessageComponent{}
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         ref.MessageID,
		Channel:    ref.ChannelID,
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		utils.WarnLog("Moderation: failed to update review message for %s: %v", report.ID, err)
	}
	b.reviewLock.Lock()
	delete(b.reviewMsgs, report.ID)
	b.reviewLock.Unlock()
}

// NotifyDecision delivers the outcome to the requester by direct message.
// It implements moderation.Notifier; failures are the queue's to log.
func (b *Bot) NotifyDecision(report *moderation.Report) error {
	switch report.Status {
	case moderation.StatusAccepted:
		return b.dmUser(report.RequesterID, colorSuccess, "✅ Demande acceptée",
			fmt.Sprintf("Bonne nouvelle ! Ta demande pour **%s** a été acceptée. Le titre arrive bientôt dans le catalogue.", report.Title))
	case moderation.StatusRejected:
		return b.dmUser(report.RequesterID, colorError, "❌ Demande refusée",
			fmt.Sprintf("Ta demande pour **%s** a été refusée.", report.Title),
			&discordgo.MessageEmbedField{Name: "Motif", Value: report.Reason})
	default:
		return nil
	}
}
