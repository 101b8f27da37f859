package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/19506jk/briscola-server/internal/models"
	"github.com/19506jk/briscola-server/internal/services/messaging"
)

// Embed colors
const (
	colorGreen  = 0x00ff00
	colorRed    = 0xff0000
	colorBlue   = 0x3498db
	colorYellow = 0xf1c40f
)

func errorEmbed(message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Error",
		Description: message,
		Color:       colorRed,
	}
}

func displayName(name string) string {
	if name == "" {
		return "Anonymous"
	}
	return name
}

// buildResultEmbed renders a finished deal with its message
func buildResultEmbed(record *models.GameRecord, message *messaging.GetResultMessageOutput) *discordgo.MessageEmbed {
	color := colorBlue
	switch message.Tone {
	case messaging.ToneCelebration:
		color = colorGreen
	case messaging.ToneSympathy:
		color = colorYellow
	}

	team := make([]string, 0, 2)
	for _, name := range record.CallingTeam() {
		team = append(team, displayName(name))
	}

	embed := &discordgo.MessageEmbed{
		Title:       message.Title,
		Description: message.Message,
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Calling team", Value: strings.Join(team, " & "), Inline: true},
			{Name: "Called card", Value: record.CalledCard.String(), Inline: true},
			{Name: "Bid", Value: fmt.Sprintf("%d", record.Result.Bid), Inline: true},
			{Name: "Calling team points", Value: fmt.Sprintf("%d", record.Result.GuiltyPoints), Inline: true},
			{Name: "Table points", Value: fmt.Sprintf("%d", record.Result.NonGuiltyPoints), Inline: true},
		},
	}

	if message.Flavor != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: message.Flavor}
	}
	if !record.CompletedAt.IsZero() {
		embed.Timestamp = record.CompletedAt.Format(time.RFC3339)
	}

	return embed
}

// buildStandingsEmbed renders the leaderboard and the latest deals
func buildStandingsEmbed(standings []*models.Standing, recent []*models.GameRecord) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Briscola Standings",
		Color: colorBlue,
	}

	if len(standings) == 0 {
		embed.Description = "No deals have been recorded yet."
		return embed
	}

	var sb strings.Builder
	for i, standing := range standings {
		fmt.Fprintf(&sb, "%d. **%s** %d pts, %d/%d won\n",
			i+1, standing.PlayerName, standing.Points, standing.Wins, standing.Games)
	}
	embed.Description = sb.String()

	if len(recent) > 0 {
		lines := make([]string, 0, len(recent))
		for _, record := range recent {
			outcome := "went down"
			if record.Result.CallingTeamWon {
				outcome = "made it"
			}
			lines = append(lines, fmt.Sprintf("%s: bid %d, %d pts, %s",
				strings.Join(record.CallingTeam(), " & "), record.Result.Bid, record.Result.GuiltyPoints, outcome))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Recent deals",
			Value: strings.Join(lines, "\n"),
		})
	}

	return embed
}

// buildTableEmbed renders the public state of the table
func buildTableEmbed(state *models.GameState) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Briscola Table",
		Color: colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Phase", Value: string(state.Phase), Inline: true},
		},
	}

	var seats strings.Builder
	for _, seat := range state.Seats {
		if !seat.Occupied {
			fmt.Fprintf(&seats, "%d. (empty)\n", seat.Index+1)
			continue
		}
		status := "not ready"
		if seat.Ready {
			status = "ready"
		}
		fmt.Fprintf(&seats, "%d. %s (%s, %d pts)\n", seat.Index+1, displayName(seat.PlayerName), status, seat.Score)
	}
	embed.Description = seats.String()

	if state.HighestBid > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Highest bid", Value: fmt.Sprintf("%d", state.HighestBid), Inline: true,
		})
	}
	if state.CalledCard != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Called card", Value: state.CalledCard.String(), Inline: true,
		})
	}
	if state.Phase == models.PhasePlaying {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Tricks", Value: fmt.Sprintf("%d", state.RoundCount), Inline: true,
		})
	}

	return embed
}
