package discord

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/cineflix/cineflix-bot/pkg/catalogue"
	"github.com/cineflix/cineflix-bot/pkg/config"
	"github.com/cineflix/cineflix-bot/pkg/moderation"
	"github.com/cineflix/cineflix-bot/pkg/nav"
	"github.com/cineflix/cineflix-bot/pkg/store"
	"github.com/cineflix/cineflix-bot/pkg/types"
)

// titleResolver is the part of catalogue.Resolver the bot drives; tests
// substitute a recording fake.
type titleResolver interface {
	ResolveTitle(ctx context.Context, id string, kind types.MediaKind) (*types.TitleDetail, error)
	ResolveSeason(ctx context.Context, id, title string, season int) (*types.SeasonDetail, error)
}

// Bot represents the Discord bot and its stateful maps for interactive flows.
type Bot struct {
	session *discordgo.Session
	cfg     *config.BotConfig

	store    *store.FileStore
	search   *catalogue.SearchAdapter
	resolver titleResolver
	reports  *moderation.Queue

	// Live navigation views, keyed by the message rendering them.
	flows *nav.Registry

	// Review-channel message per report, so decisions edit it in place.
	reviewMsgs map[string]reviewMessage
	reviewLock sync.RWMutex

	devGuildID         string
	registeredCommands []*discordgo.ApplicationCommand
	cleanupInterval    time.Duration
	stopJanitor        chan struct{}
}

type reviewMessage struct {
	ChannelID string
	MessageID string
}
