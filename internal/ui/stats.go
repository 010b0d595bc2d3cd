package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"petsim/internal/content"
	"petsim/internal/pet"
	"petsim/internal/store"
)

// StatsModel is a simple Bubble Tea model for displaying stats
type StatsModel struct {
	Save    *store.Save
	Catalog *content.Catalog
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m StatsModel) View() string {
	p := m.Save.Pet
	careMax := p.MaxStats.CareStat

	emoji := "😺"
	if sp, ok := m.Catalog.Species(p.Identity.SpeciesID); ok && sp.Emoji != "" {
		emoji = sp.Emoji
	}

	row := func(label string, pct int) string {
		return fmt.Sprintf("  %-10s [%s] %3d%%\n", label+":", makeBar(pct, 5), pct)
	}

	var s strings.Builder
	s.WriteString(gameStyles.title.Render(emoji+" "+p.Identity.Name+" "+emoji) + "\n\n")
	s.WriteString(fmt.Sprintf("  %-10s %s\n", "Stage:", p.Growth.Stage.DisplayName()))
	s.WriteString(fmt.Sprintf("  %-10s %d days\n", "Age:", p.AgeDays()))
	s.WriteString(fmt.Sprintf("  %-10s %s\n", "Status:", pet.GetStatusWithLabel(p)))
	s.WriteString("\n")
	s.WriteString(row("Satiety", pet.Percent(p.Care.Satiety, careMax)))
	s.WriteString(row("Hydration", pet.Percent(p.Care.Hydration, careMax)))
	s.WriteString(row("Happiness", pet.Percent(p.Care.Happiness, careMax)))
	s.WriteString(row("Care-life", pet.Percent(p.CareLife.CareLife, careMax)))
	s.WriteString(row("Energy", pet.Percent(p.Energy.Energy, p.MaxStats.Energy)))
	s.WriteString(row("Health", pet.Percent(p.Health.Health, p.MaxStats.Health)))
	s.WriteString("\n")

	bs := p.BattleStats
	s.WriteString(fmt.Sprintf("  STR %d  END %d  AGI %d\n", bs.Strength, bs.Endurance, bs.Agility))
	s.WriteString(fmt.Sprintf("  PRE %d  FOR %d  CUN %d\n", bs.Precision, bs.Fortitude, bs.Cunning))

	ids := m.Save.Inventory.IDs()
	if len(ids) > 0 {
		s.WriteString("\n  Items:\n")
		for _, id := range ids {
			s.WriteString(fmt.Sprintf("    %s x%d\n", m.Catalog.ItemName(id), m.Save.Inventory[id]))
		}
	}

	if n := len(m.Save.Logs); n > 0 {
		last := m.Save.Logs[n-1]
		s.WriteString(fmt.Sprintf("\n  Since %s: %s\n", last.Time.Format("Jan 2 15:04"), last.NewStatus))
	}

	s.WriteString("\nPress any key or click to close...")
	return s.String()
}

// DisplayStats shows the stats screen until a key is pressed.
func DisplayStats(sv *store.Save, c *content.Catalog) error {
	program := tea.NewProgram(StatsModel{Save: sv, Catalog: c}, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running stats display: %w", err)
	}
	return nil
}
