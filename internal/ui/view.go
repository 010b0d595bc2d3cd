package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"petsim/internal/activity"
	"petsim/internal/battle"
	"petsim/internal/pet"
)

var gameStyles = struct {
	title   lipgloss.Style
	status  lipgloss.Style
	menu    lipgloss.Style
	menuBox lipgloss.Style
	stats   lipgloss.Style
	events  lipgloss.Style
	anim    lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(40),

	stats: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(40),

	menu: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")),

	menuBox: lipgloss.NewStyle().
		Padding(0, 2),

	events: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#A0A0A0")).
		Width(40),

	anim: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFD700")).
		Bold(true).
		Padding(1, 2),
}

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return "Thanks for playing!\n"
	}
	if m.Animation.Type != AnimNone {
		return m.renderAnimation()
	}

	sections := []string{m.renderTitle(), ""}
	if m.Screen == screenBattle && m.Save.Battle != nil {
		sections = append(sections, m.renderBattle())
	} else {
		sections = append(sections, m.renderStats(), "", m.renderStatus())
		if line := m.renderActivity(); line != "" {
			sections = append(sections, "", line)
		}
	}

	if len(m.Events) > 0 {
		sections = append(sections, "", gameStyles.events.Render(strings.Join(m.Events, "\n")))
	}
	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		sections = append(sections, "", gameStyles.status.Render(m.Message))
	}

	helpText := "Use arrows to move • enter to select • q to quit"
	if m.Screen != screenMain && m.Screen != screenBattle {
		helpText = "Use arrows to move • enter to select • esc to go back"
	}
	sections = append(sections,
		"",
		m.renderMenu(),
		"",
		gameStyles.status.Render(helpText),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) petEmoji() string {
	if sp, ok := m.engine.Catalog().Species(m.Save.Pet.Identity.SpeciesID); ok && sp.Emoji != "" {
		return sp.Emoji
	}
	return "😺"
}

func (m Model) renderTitle() string {
	emoji := m.petEmoji()
	return gameStyles.title.Render(emoji + " " + m.Save.Pet.Identity.Name + " " + emoji)
}

func (m Model) renderStats() string {
	p := m.Save.Pet
	careMax := p.MaxStats.CareStat

	stage := p.Growth.Stage.DisplayName()
	if sched, ok := m.engine.Catalog().Schedule(p.Identity.SpeciesID); ok {
		if prof, ok := sched.Profile(p.Growth.Stage); ok && prof.Substages > 1 {
			stage = fmt.Sprintf("%s %d/%d", stage, p.Growth.Substage+1, prof.Substages)
		}
	}

	items := 0
	for _, n := range m.Save.Inventory {
		items += n
	}

	stats := []struct {
		name, value string
	}{
		{"Stage", stage},
		{"Age", fmt.Sprintf("day %d (%d ticks)", p.AgeDays(), p.Growth.AgeTicks)},
		{"Satiety", fmt.Sprintf("%d%%", pet.Percent(p.Care.Satiety, careMax))},
		{"Hydration", fmt.Sprintf("%d%%", pet.Percent(p.Care.Hydration, careMax))},
		{"Happiness", fmt.Sprintf("%d%%", pet.Percent(p.Care.Happiness, careMax))},
		{"Care-life", fmt.Sprintf("%d%%", pet.Percent(p.CareLife.CareLife, careMax))},
		{"Energy", fmt.Sprintf("%d/%d", pet.Display(p.Energy.Energy), pet.Display(p.MaxStats.Energy))},
		{"Health", fmt.Sprintf("%d/%d", pet.Display(p.Health.Health), pet.Display(p.MaxStats.Health))},
		{"Poop", strings.Repeat(pet.StatusEmojiPoop, p.Poop.Count)},
		{"Items", fmt.Sprintf("%d", items)},
	}

	var lines []string
	for _, stat := range stats {
		lines = append(lines, fmt.Sprintf("%-10s %s", stat.name+":", stat.value))
	}

	return gameStyles.stats.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	return gameStyles.status.Render(fmt.Sprintf("Status: %s", pet.GetStatusWithLabel(m.Save.Pet)))
}

// renderActivity shows the progress of a running activity.
func (m Model) renderActivity() string {
	c := m.engine.Catalog()
	p := m.Save.Pet

	if t, ok := p.Activity.Training(); ok {
		name := t.SessionID
		if f, ok := c.Facility(t.FacilityID); ok {
			if s, ok := f.Session(t.SessionID); ok {
				name = s.Name
			}
		}
		pct := activity.TrainingProgress(t)
		return gameStyles.status.Render(fmt.Sprintf("%s %s [%s] %d%%", pet.StatusEmojiTraining, name, makeBar(pct, 10), pct))
	}

	if e, ok := p.Activity.Exploration(); ok {
		name := e.LocationID
		if loc, ok := c.Location(e.LocationID); ok {
			name = loc.Name
		}
		pct := activity.ExplorationProgress(e)
		line := gameStyles.status.Render(fmt.Sprintf("%s %s [%s] %d%%", pet.StatusEmojiExplore, name, makeBar(pct, 10), pct))
		if m.sceneRunning {
			return lipgloss.JoinVertical(lipgloss.Left, line, m.Scene.Render(p))
		}
		return line
	}
	return ""
}

func (m Model) renderBattle() string {
	b := m.Save.Battle
	side := func(bp battle.BattlePet) string {
		line := fmt.Sprintf("%-14s ❤️ %3d/%-3d ⚡ %3d/%-3d", bp.Name, bp.Health, bp.MaxHealth, bp.Energy, bp.MaxEnergy)
		for _, se := range bp.StatusEffects {
			line += fmt.Sprintf(" [%s %d]", se.Kind, se.Duration)
		}
		return line
	}

	lines := []string{
		fmt.Sprintf("Turn %d", b.CurrentTurn),
		side(b.Opponent),
		side(b.Player),
	}
	if turn, ok := b.LastTurn(); ok {
		lines = append(lines, "")
		for _, a := range turn.Actions {
			lines = append(lines, a.Messages...)
		}
		lines = append(lines, turn.Upkeep...)
	}
	return gameStyles.stats.Render(strings.Join(lines, "\n"))
}

func (m Model) menuHeader() string {
	switch m.Screen {
	case screenTrain:
		return "Where should we train?"
	case screenForage:
		return "Where should we forage?"
	case screenBattleSelect:
		return "Where should we look for a fight?"
	case screenBattle:
		if m.Save.Battle != nil && m.Save.Battle.Status.Finished() {
			return "The battle is over"
		}
		return "What will " + m.Save.Pet.Identity.Name + " do?"
	}
	return ""
}

func (m Model) renderMenu() string {
	var menuItems []string
	if header := m.menuHeader(); header != "" {
		menuItems = append(menuItems, gameStyles.menu.Render(header))
	}

	for i, opt := range m.options() {
		cursor := " "
		if m.Choice == i {
			cursor = ">"
		}
		menuItems = append(menuItems, fmt.Sprintf("%s %s", cursor, opt.label))
	}

	return gameStyles.menuBox.Render(strings.Join(menuItems, "\n"))
}

func (m Model) renderAnimation() string {
	frame := GetAnimationFrame(m.Animation, m.petEmoji())

	sections := []string{
		m.renderTitle(),
		"",
		gameStyles.anim.Render(frame),
	}

	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		sections = append(sections, "", gameStyles.status.Render(m.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// makeBar draws pct as a bar of width cells.
func makeBar(pct, width int) string {
	filled := min(max(pct*width/100, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func formatTicks(n int64) string {
	if n == 1 {
		return "1 tick"
	}
	return fmt.Sprintf("%d ticks", n)
}
