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
	"bytes"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/jamesnetherton/m3u"

	"github.com/cineflix/cineflix-bot/pkg/utils"
)

// handleAddLien associates a watch link with a media key.
func (b *Bot) handleAddLien(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}
	key := strings.TrimSpace(optString(i, "cle"))
	link := strings.TrimSpace(optString(i, "lien"))
	if key == "" || link == "" {
		respondEmbed(s, i, colorInfo, "🔗 Ajouter un lien",
			"Usage : `/addlien cle:<id ou id_Sx_Ey> lien:<url>`")
		return
	}

	if err := b.store.PutLink(key, link); err != nil {
		utils.ErrorLog("Admin: addlien %s failed: %v", key, err)
		respondEmbed(s, i, colorError, "❌ Échec de l'enregistrement",
			"Le catalogue n'a pas pu être sauvegardé. Le lien n'a pas été ajouté.")
		return
	}
	respondEmbed(s, i, colorSuccess, "🔗 Lien ajouté",
		fmt.Sprintf("La clé `%s` pointe maintenant vers ce lien. Le titre est disponible immédiatement.", key))
}

// handleAddSaison bulk-adds the episodes of one season, either from a
// delimited list of links or from an M3U playlist URL.
func (b *Bot) handleAddSaison(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}
	id := strings.TrimSpace(optString(i, "id"))
	season := int(optInt(i, "saison"))
	rawLinks := strings.TrimSpace(optString(i, "liens"))
	playlistURL := strings.TrimSpace(optString(i, "playlist"))

	if id == "" || season < 1 || (rawLinks == "" && playlistURL == "") {
		respondEmbed(s, i, colorInfo, "📺 Ajouter une saison",
			"Usage : `/addsaison id:<id série> saison:<n> liens:<url1,url2,…>`\n"+
				"ou : `/addsaison id:<id série> saison:<n> playlist:<url m3u>`")
		return
	}

	var urls []string
	if playlistURL != "" {
		playlist, err := m3u.Parse(playlistURL)
		if err != nil {
			utils.ErrorLog("Admin: addsaison playlist parse failed: %v", err)
			respondEmbed(s, i, colorError, "❌ Playlist illisible",
				"Impossible de lire la playlist M3U. Vérifie l'URL.")
			return
		}
		for _, track := range playlist.Tracks {
			urls = append(urls, track.URI)
		}
	} else {
		urls = splitLinks(rawLinks)
	}
	if len(urls) == 0 {
		respondEmbed(s, i, colorWarn, "📺 Aucune entrée", "Aucun lien exploitable dans la liste fournie.")
		return
	}

	keys, err := b.store.BulkAddSeason(id, season, urls)
	if err != nil {
		utils.ErrorLog("Admin: addsaison %s S%d failed: %v", id, season, err)
		respondEmbed(s, i, colorError, "❌ Échec de l'enregistrement",
			"Le catalogue n'a pas pu être sauvegardé. Aucun épisode n'a été ajouté.")
		return
	}
	respondEmbed(s, i, colorSuccess, "📺 Saison ajoutée",
		fmt.Sprintf("%d épisode(s) enregistrés pour la saison %d (`%s` … `%s`).",
			len(keys), season, keys[0], keys[len(keys)-1]))
}

// handleAddTrailer associates a trailer with a movie id.
func (b *Bot) handleAddTrailer(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}
	id := strings.TrimSpace(optString(i, "id"))
	link := strings.TrimSpace(optString(i, "lien"))
	if id == "" || link == "" {
		respondEmbed(s, i, colorInfo, "🎬 Ajouter une bande-annonce",
			"Usage : `/addtrailer id:<id film> lien:<url>`")
		return
	}

	if err := b.store.PutTrailer(id, link); err != nil {
		utils.ErrorLog("Admin: addtrailer %s failed: %v", id, err)
		respondEmbed(s, i, colorError, "❌ Échec de l'enregistrement",
			"Le catalogue n'a pas pu être sauvegardé. La bande-annonce n'a pas été ajoutée.")
		return
	}
	respondEmbed(s, i, colorSuccess, "🎬 Bande-annonce ajoutée",
		fmt.Sprintf("La fiche du film `%s` proposera désormais sa bande-annonce.", id))
}

// handleWarnUser relays a moderation warning to a user by DM. The DM is
// best-effort: closed DMs do not fail the command, the admin just gets
// told the warning was not delivered.
func (b *Bot) handleWarnUser(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}
	user := optUser(s, i, "utilisateur")
	reason := strings.TrimSpace(optString(i, "raison"))
	if user == nil || reason == "" {
		respondEmbed(s, i, colorInfo, "⚠️ Avertir", "Usage : `/warn utilisateur:@membre raison:<motif>`")
		return
	}

	err := b.dmUser(user.ID, colorWarn, "⚠️ Avertissement",
		"Un modérateur t'a adressé un avertissement.",
		&discordgo.MessageEmbedField{Name: "Motif", Value: reason})
	if err != nil {
		utils.WarnLog("Admin: warn DM to %s not delivered: %v", user.ID, err)
		respondEmbed(s, i, colorWarn, "⚠️ Avertissement non remis",
			fmt.Sprintf("<@%s> n'a pas pu être prévenu en message privé (MP fermés ?).", user.ID))
		return
	}
	respondEmbed(s, i, colorSuccess, "⚠️ Avertissement envoyé",
		fmt.Sprintf("<@%s> a reçu l'avertissement en message privé.", user.ID))
}

// handleBanUser blocks a user from every user-facing command.
func (b *Bot) handleBanUser(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}
	user := optUser(s, i, "utilisateur")
	if user == nil {
		respondEmbed(s, i, colorInfo, "🚫 Bloquer", "Usage : `/banuser utilisateur:@membre`")
		return
	}

	if err := b.store.Ban(user.ID); err != nil {
		utils.ErrorLog("Admin: ban %s failed: %v", user.ID, err)
		respondEmbed(s, i, colorError, "❌ Échec de l'enregistrement", "Le blocage n'a pas pu être sauvegardé.")
		return
	}
	if err := b.dmUser(user.ID, colorError, "🚫 Accès retiré",
		"Tu n'as plus accès au bot. Contacte un modérateur si tu penses que c'est une erreur."); err != nil {
		utils.WarnLog("Admin: ban DM to %s not delivered: %v", user.ID, err)
	}
	respondEmbed(s, i, colorSuccess, "🚫 Utilisateur bloqué",
		fmt.Sprintf("<@%s> n'a plus accès au bot.", user.ID))
}

// handleUnbanUser lifts a block.
func (b *Bot) handleUnbanUser(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}
	user := optUser(s, i, "utilisateur")
	if user == nil {
		respondEmbed(s, i, colorInfo, "🔓 Débloquer", "Usage : `/unbanuser utilisateur:@membre`")
		return
	}

	if err := b.store.Unban(user.ID); err != nil {
		utils.ErrorLog("Admin: unban %s failed: %v", user.ID, err)
		respondEmbed(s, i, colorError, "❌ Échec de l'enregistrement", "Le déblocage n'a pas pu être sauvegardé.")
		return
	}
	if err := b.dmUser(user.ID, colorSuccess, "🔓 Accès rétabli",
		"Tu as de nouveau accès au bot. Bon visionnage !"); err != nil {
		utils.WarnLog("Admin: unban DM to %s not delivered: %v", user.ID, err)
	}
	respondEmbed(s, i, colorSuccess, "🔓 Utilisateur débloqué",
		fmt.Sprintf("<@%s> a de nouveau accès au bot.", user.ID))
}

// handleExport sends the whole catalogue document as a JSON attachment.
func (b *Bot) handleExport(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.requireAdmin(s, i) {
		return
	}
	data, err := b.store.Export()
	if err != nil {
		utils.ErrorLog("Admin: export failed: %v", err)
		respondEmbed(s, i, colorError, "❌ Export impossible", "Le catalogue n'a pas pu être sérialisé.")
		return
	}

	// Unique filename so successive exports never collide in downloads.
	filename := fmt.Sprintf("catalogue-%s.json", uuid.New().String()[:8])
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:   discordgo.MessageFlagsEphemeral,
			Content: "📦 Export du catalogue :",
			Files: []*discordgo.File{{
				Name:        filename,
				ContentType: "application/json",
				Reader:      bytes.NewReader(data),
			}},
		},
	})
	if err != nil {
		utils.ErrorLog("Admin: failed to send export: %v", err)
	}
}

// splitLinks accepts both comma and whitespace separated link lists.
func splitLinks(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// optUser resolves a user option to its discordgo.User.
func optUser(s *discordgo.Session, i *discordgo.InteractionCreate, name string) *discordgo.User {
	for _, o := range i.ApplicationCommandData().Options {
		if o.Name == name {
			return o.UserValue(s)
		}
	}
	return nil
}
