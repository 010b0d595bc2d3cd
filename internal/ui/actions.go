package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"petsim/internal/activity"
	"petsim/internal/battle"
	"petsim/internal/engine"
	"petsim/internal/pet"
)

// option is one menu entry.
type option struct {
	label string
	run   func(m *Model) tea.Cmd
}

func back() option {
	return option{label: "Back", run: func(m *Model) tea.Cmd {
		m.goTo(screenMain)
		return nil
	}}
}

// options returns the menu for the current screen.
func (m Model) options() []option {
	switch m.Screen {
	case screenTrain:
		return m.trainingOptions()
	case screenForage:
		return m.forageOptions()
	case screenBattleSelect:
		return m.battleSelectOptions()
	case screenBattle:
		return m.battleOptions()
	}
	return m.mainOptions()
}

func (m Model) mainOptions() []option {
	p := m.Save.Pet
	opts := []option{
		careOption("Feed", (*engine.Engine).Feed, AnimFeed, "🍖 Yum!"),
		careOption("Water", (*engine.Engine).Water, AnimWater, "💧 Refreshing!"),
		careOption("Play", (*engine.Engine).Play, AnimPlay, "🎾 Wheee!"),
		careOption("Clean", (*engine.Engine).Clean, AnimClean, "✨ All clean!"),
	}
	if p.Activity.State() == pet.StateSleeping {
		opts = append(opts, careOption("Wake", (*engine.Engine).Wake, AnimNone, "🌅 Good morning!"))
	} else {
		opts = append(opts, careOption("Sleep", (*engine.Engine).Sleep, AnimSleep, "😴 Sweet dreams..."))
	}

	switch p.Activity.State() {
	case pet.StateTraining, pet.StateExploring:
		opts = append(opts, option{label: "Cancel " + string(p.Activity.State()), run: (*Model).cancel})
	case pet.StateBattling:
		opts = append(opts, option{label: "Return to battle", run: func(m *Model) tea.Cmd {
			m.goTo(screenBattle)
			return nil
		}})
	default:
		opts = append(opts,
			option{label: "Train", run: func(m *Model) tea.Cmd { m.goTo(screenTrain); return nil }},
			option{label: "Forage", run: func(m *Model) tea.Cmd { m.goTo(screenForage); return nil }},
			option{label: "Battle", run: func(m *Model) tea.Cmd { m.goTo(screenBattleSelect); return nil }},
		)
	}

	return append(opts, option{label: "Quit", run: func(m *Model) tea.Cmd {
		m.persist()
		m.Quitting = true
		return tea.Quit
	}})
}

func careOption(label string, fn func(*engine.Engine, pet.Pet) (pet.Pet, error), anim AnimationType, success string) option {
	return option{label: label, run: func(m *Model) tea.Cmd {
		next, err := fn(m.engine, m.Save.Pet)
		if err != nil {
			m.setMessage(err.Error())
			return nil
		}
		m.Save.Pet = next
		m.persist()
		m.setMessage(success)
		if anim == AnimNone {
			return nil
		}
		return m.startAnimation(anim)
	}}
}

func (m *Model) cancel() tea.Cmd {
	var res activity.CancelResult
	var err error
	if m.Save.Pet.Activity.State() == pet.StateTraining {
		res, err = m.engine.CancelTraining(m.Save.Pet)
	} else {
		res, err = m.engine.CancelForaging(m.Save.Pet)
	}
	if err != nil {
		m.setMessage(err.Error())
		return nil
	}
	m.Save.Pet = res.Pet
	m.persist()
	m.setMessage(fmt.Sprintf("%s (+%d energy)", res.Message, pet.Display(res.Refund)))
	return nil
}

func (m Model) trainingOptions() []option {
	c := m.engine.Catalog()
	var opts []option
	for _, locID := range c.LocationIDs() {
		for _, f := range c.FacilitiesAt(locID) {
			for _, s := range f.Sessions {
				ctx := activity.TrainingContext{LocationID: locID, FacilityID: f.ID, SessionID: s.ID}
				label := fmt.Sprintf("%s: %s (%d ticks, %d⚡)", f.Name, s.Name, s.DurationTicks, s.EnergyCost)
				opts = append(opts, option{label: label, run: func(m *Model) tea.Cmd {
					res, err := m.engine.StartTraining(m.Save.Pet, ctx)
					if err != nil {
						m.setMessage(err.Error())
						return nil
					}
					m.Save.Pet = res.Pet
					m.persist()
					m.setMessage(res.Message)
					m.goTo(screenMain)
					return m.startAnimation(AnimTrain)
				}})
			}
		}
	}
	return append(opts, back())
}

// forageSkill grows with the pet: one level per growth stage.
func forageSkill(p pet.Pet) int {
	return 1 + int(p.Growth.Stage)
}

func (m Model) forageOptions() []option {
	c := m.engine.Catalog()
	var opts []option
	for _, locID := range c.LocationIDs() {
		loc, _ := c.Location(locID)
		if loc.ForageTable == "" {
			continue
		}
		opts = append(opts, option{label: loc.Emoji + " " + loc.Name, run: func(m *Model) tea.Cmd {
			ctx := activity.ForageContext{LocationID: locID, SkillLevel: forageSkill(m.Save.Pet)}
			res, err := m.engine.StartForaging(m.Save.Pet, ctx)
			if err != nil {
				m.setMessage(err.Error())
				return nil
			}
			m.Save.Pet = res.Pet
			m.persist()
			m.setMessage(res.Message)
			m.goTo(screenMain)
			return nil
		}})
	}
	return append(opts, back())
}

func (m Model) battleSelectOptions() []option {
	c := m.engine.Catalog()
	var opts []option
	for _, locID := range c.LocationIDs() {
		loc, _ := c.Location(locID)
		if len(loc.Opponents) == 0 {
			continue
		}
		opts = append(opts, option{label: loc.Emoji + " " + loc.Name, run: func(m *Model) tea.Cmd {
			next, b, err := m.engine.WildBattle(m.Save.Pet, locID)
			if err != nil {
				m.setMessage(err.Error())
				return nil
			}
			m.Save.Pet = next
			m.Save.Battle = &b
			m.persist()
			m.setMessage(fmt.Sprintf("⚔️ A %s appeared!", b.Opponent.Name))
			m.goTo(screenBattle)
			return m.startAnimation(AnimBattle)
		}})
	}
	return append(opts, back())
}

func (m Model) battleOptions() []option {
	b := m.Save.Battle
	if b == nil {
		return []option{back()}
	}
	if b.Status.Finished() {
		return []option{{label: "Continue", run: (*Model).finishBattle}}
	}

	var opts []option
	for _, mv := range b.Player.Moves {
		label := fmt.Sprintf("%s (%d⚡)", mv.Name, mv.EnergyCost)
		opts = append(opts, option{label: label, run: func(m *Model) tea.Cmd {
			return m.battleAction(battle.UseMove(mv.ID))
		}})
	}
	return append(opts, option{label: "Flee", run: func(m *Model) tea.Cmd {
		return m.battleAction(battle.Flee())
	}})
}

func (m *Model) battleAction(a battle.Action) tea.Cmd {
	next, err := m.engine.ProcessPlayerAction(*m.Save.Battle, a)
	if err != nil {
		m.setMessage(err.Error())
		return nil
	}
	m.Save.Battle = &next
	if next.Status.Finished() {
		m.Choice = 0
		m.setMessage(battleOutcome(next))
	}
	m.persist()
	return nil
}

func (m *Model) finishBattle() tea.Cmd {
	p, err := m.engine.ApplyBattleResults(m.Save.Pet, *m.Save.Battle)
	if err != nil {
		m.setMessage(err.Error())
		return nil
	}
	m.Save.Pet = p
	m.Save.Battle = nil
	m.persist()
	m.goTo(screenMain)
	return nil
}

func battleOutcome(b battle.Battle) string {
	switch b.Status {
	case battle.StatusVictory:
		return "🏆 Victory over " + b.Opponent.Name + "!"
	case battle.StatusDefeat:
		return "💫 " + b.Player.Name + " was defeated..."
	case battle.StatusFled:
		return "💨 Got away safely"
	}
	return ""
}
