package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/19506jk/briscola-server/internal/services/game"
)

// Subcommands of /briscola
const (
	SubcommandStandings = "standings"
	SubcommandTable     = "table"
)

// standingsLimit caps the players and deals shown by /briscola standings
const standingsLimit = 10

// BriscolaCommand handles the /briscola command
type BriscolaCommand struct {
	BaseCommand
	gameService game.Service
}

// NewBriscolaCommand creates a new briscola command handler
func NewBriscolaCommand(gameService game.Service) *BriscolaCommand {
	return &BriscolaCommand{
		BaseCommand: BaseCommand{
			Name:        "briscola",
			Description: "Five-player Briscola table",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandStandings,
					Description: "Show the standings and the latest deals",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandTable,
					Description: "Show who is seated and how the deal is going",
				},
			},
		},
		gameService: gameService,
	}
}

// Handle processes a Discord interaction for the briscola command
func (c *BriscolaCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	response, err := c.respond(context.Background(), data.Options[0].Name)
	if err != nil {
		if respondErr := RespondWithError(s, i, err.Error()); respondErr != nil {
			return respondErr
		}
		return err
	}

	return Respond(s, i, response)
}

// respond builds the reply for a subcommand
func (c *BriscolaCommand) respond(ctx context.Context, subcommand string) (*discordgo.InteractionResponseData, error) {
	switch subcommand {
	case SubcommandStandings:
		output, err := c.gameService.GetStandings(ctx, &game.GetStandingsInput{
			Limit: standingsLimit,
		})
		if errors.Is(err, game.ErrPersistenceDisabled) {
			return &discordgo.InteractionResponseData{
				Content: "Results are not being recorded on this server.",
				Flags:   discordgo.MessageFlagsEphemeral,
			}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get standings: %w", err)
		}
		return &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildStandingsEmbed(output.Standings, output.Recent)},
		}, nil

	case SubcommandTable:
		output, err := c.gameService.GetGameState(ctx, &game.GetGameStateInput{})
		if err != nil {
			return nil, fmt.Errorf("failed to get game state: %w", err)
		}
		return &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{buildTableEmbed(output.State)},
		}, nil

	default:
		return nil, fmt.Errorf("unknown subcommand: %s", subcommand)
	}
}
