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
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/cineflix/cineflix-bot/pkg/utils"
)

// Common embed colors
const (
	colorInfo    = 0x5BC0DE // teal-ish
	colorSuccess = 0x28A745 // green
	colorWarn    = 0xFFC107 // amber
	colorError   = 0xDC3545 // red
)

// sendEmbed is a small helper to send a styled embed.
func (b *Bot) sendEmbed(channelID string, color int, title, description string, fields ...*discordgo.MessageEmbedField) error {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if len(fields) > 0 {
		embed.Fields = make([]*discordgo.MessageEmbedField, 0, len(fields))
		for _, f := range fields {
			if f != nil {
				embed.Fields = append(embed.Fields, f)
			}
		}
	}
	_, err := b.session.ChannelMessageSendEmbed(channelID, embed)
	return err
}

// Convenience wrappers with fixed color themes.
func (b *Bot) info(channelID, title, desc string, fields ...*discordgo.MessageEmbedField) {
	if err := b.sendEmbed(channelID, colorInfo, title, desc, fields...); err != nil {
		utils.ErrorLog("Discord: failed to send info embed: %v", err)
	}
}
func (b *Bot) success(channelID, title, desc string, fields ...*discordgo.MessageEmbedField) {
	if err := b.sendEmbed(channelID, colorSuccess, title, desc, fields...); err != nil {
		utils.ErrorLog("Discord: failed to send success embed: %v", err)
	}
}
func (b *Bot) warn(channelID, title, desc string, fields ...*discordgo.MessageEmbedField) {
	if err := b.sendEmbed(channelID, colorWarn, title, desc, fields...); err != nil {
		utils.ErrorLog("Discord: failed to send warning embed: %v", err)
	}
}
func (b *Bot) fail(channelID, title, desc string, fields ...*discordgo.MessageEmbedField) {
	if err := b.sendEmbed(channelID, colorError, title, desc, fields...); err != nil {
		utils.ErrorLog("Discord: failed to send error embed: %v", err)
	}
}

// dmUser sends a themed embed to a user's DM channel. Callers treat the
// returned error as advisory: closed DMs are common and never fatal.
func (b *Bot) dmUser(userID string, color int, title, desc string, fields ...*discordgo.MessageEmbedField) error {
	channel, err := b.session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	return b.sendEmbed(channel.ID, color, title, desc, fields...)
}

// respondText answers an interaction with a short ephemeral sentence.
func respondText(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral, Content: content},
	})
	if err != nil {
		utils.ErrorLog("Discord: failed to respond to interaction: %v", err)
	}
}

// respondEmbed answers an interaction with an ephemeral themed embed.
func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, color int, title, desc string, fields ...*discordgo.MessageEmbedField) {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: desc,
		Color:       color,
		Fields:      fields,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral, Embeds: []*discordgo.MessageEmbed{embed}},
	})
	if err != nil {
		utils.ErrorLog("Discord: failed to respond to interaction: %v", err)
	}
}

// respondView answers an interaction with an ephemeral embed plus
// components and returns the created message, whose ID keys the
// navigation registry.
func (b *Bot) respondView(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (*discordgo.Message, error) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:      discordgo.MessageFlagsEphemeral,
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err != nil {
		return nil, err
	}
	return s.InteractionResponse(i.Interaction)
}

// updateView swaps the interaction's own message for the next screen.
func updateView(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// respondBanned is the single refusal shown to blocked users, whatever
// surface they came in through.
func (b *Bot) respondBanned(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondEmbed(s, i, colorError, "⛔ Accès bloqué",
		"Tu n'as plus accès au bot. Contacte un modérateur si tu penses que c'est une erreur.")
}

// respondExpired tells the user the view's clock ran out.
func respondExpired(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondEmbed(s, i, colorWarn, "⏱️ Recherche expirée",
		"Cette recherche n'est plus active. Relance `/recherche` pour recommencer.")
}
