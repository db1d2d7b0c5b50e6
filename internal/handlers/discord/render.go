package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/hideandseek/internal/catalog"
	"github.com/KirkDiggler/hideandseek/internal/models"
	"github.com/KirkDiggler/hideandseek/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

const (
	colorFound   = 0x00ff00
	colorOngoing = 0xffa500
	colorClosed  = 0x808080
)

// maxFieldValue is the longest embed field value Discord accepts
const maxFieldValue = 1024

var toneEmoji = map[messaging.MessageTone]string{
	messaging.ToneCelebration: "🎉",
	messaging.ToneFunny:       "🙈",
}

// renderReport builds the channel message for a room report
func renderReport(report *models.RoomReport, headline string, tone messaging.MessageTone) *discordgo.MessageSend {
	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Room",
			Value:  report.RoomID,
			Inline: true,
		},
		{
			Name:   "Phase",
			Value:  string(report.Game),
			Inline: true,
		},
	}

	if played := report.Duration(); played > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Played",
			Value:  played.Round(time.Second).String(),
			Inline: true,
		})
	}

	fields = append(fields,
		&discordgo.MessageEmbedField{Name: "Seekers", Value: playerList(report.Players, models.RoleSeeker)},
		&discordgo.MessageEmbedField{Name: "Hiders", Value: playerList(report.Players, models.RoleHider)},
	)

	if tasks := taskList(report.Tasks); tasks != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Tasks", Value: tasks})
	}

	if curses := curseList(report.Curses); curses != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Curses", Value: curses})
	}

	if emoji, ok := toneEmoji[tone]; ok && headline != "" {
		headline = emoji + " " + headline
	}

	return &discordgo.MessageSend{
		Content: headline,
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:     reportTitle(report),
				Color:     reportColor(report),
				Fields:    fields,
				Timestamp: report.CreatedAt.Format(time.RFC3339),
			},
		},
	}
}

func reportTitle(report *models.RoomReport) string {
	if report.Kind == models.ReportKindRoomClosed {
		return fmt.Sprintf("Room %s closed", report.RoomID)
	}
	if report.Found == models.FoundStateBoth {
		return "Hiders found!"
	}
	return "Round over"
}

func reportColor(report *models.RoomReport) int {
	switch {
	case report.Kind == models.ReportKindRoomClosed:
		return colorClosed
	case report.Found == models.FoundStateBoth:
		return colorFound
	default:
		return colorOngoing
	}
}

func playerList(players []*models.ReportPlayer, role models.Role) string {
	var names []string
	for _, p := range players {
		if p.Role != role {
			continue
		}
		name := p.Name
		if p.Disconnected {
			name += " (left)"
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "nobody"
	}
	return strings.Join(names, ", ")
}

// taskList lists the tasks of the latest round only
func taskList(tasks []*models.Task) string {
	var lines []string
	for _, t := range tasks {
		if t.Old {
			continue
		}
		name := t.Task
		if entry, ok := catalog.LookupTask(t.Task); ok {
			name = entry.Name
		}
		line := fmt.Sprintf("%s (%s)", name, t.State)
		if t.Result != "" {
			line += ": " + t.Result
		}
		lines = append(lines, line)
	}
	return fieldLines(lines)
}

func curseList(curses []*models.Curse) string {
	var lines []string
	for _, c := range curses {
		if c.Old {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s from %v (%s)", catalog.CurseName(c.Curse), c.Dices, c.State))
	}
	return fieldLines(lines)
}

// fieldLines joins lines into one field value, cutting the list short with a
// count of what was left out when it would not fit
func fieldLines(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		rest := len(lines) - i - 1
		size := len(line)
		if i > 0 {
			size++
		}
		// what remains after this line must still have room for the tail
		tail := ""
		if rest > 0 {
			tail = fmt.Sprintf("\n…and %d more", rest)
		}
		if b.Len()+size+len(tail) > maxFieldValue {
			if i == 0 {
				return fmt.Sprintf("…and %d more", len(lines))
			}
			fmt.Fprintf(&b, "\n…and %d more", len(lines)-i)
			return b.String()
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}
