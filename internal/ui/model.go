package ui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"petsim/internal/activity"
	"petsim/internal/chase"
	"petsim/internal/engine"
	"petsim/internal/pet"
	"petsim/internal/store"
)

type screen int

const (
	screenMain screen = iota
	screenTrain
	screenForage
	screenBattleSelect
	screenBattle
)

const (
	maxEventLines   = 4
	messageDuration = 3 * time.Second
	sceneFrame      = 150 * time.Millisecond
	defaultWidth    = 40
)

// Model represents the game state
type Model struct {
	engine   *engine.Engine
	session  *store.Session
	logger   *slog.Logger
	interval time.Duration

	Save           *store.Save
	Screen         screen
	Choice         int
	Quitting       bool
	Message        string
	MessageExpires time.Time
	Events         []string
	Animation      Animation
	Scene          chase.Scene
	sceneRunning   bool
	width          int
}

type tickMsg time.Time
type animTickMsg struct {
	started time.Time
}
type sceneTickMsg struct{}

// NewModel creates the game screen for a restored save. A nil session
// disables saving.
func NewModel(e *engine.Engine, session *store.Session, r store.Restored, interval time.Duration, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	m := Model{
		engine:   e,
		session:  session,
		logger:   logger,
		interval: interval,
		Save:     r.Save,
		width:    defaultWidth,
	}
	if m.Save.Inventory == nil {
		m.Save.Inventory = activity.Inventory{}
	}

	switch {
	case r.Created:
		m.setMessage("🥚 " + m.Save.Pet.Identity.Name + " hatched!")
	case r.Ticks > 0:
		m.notify(r.Events)
		m.setMessage("⏰ While you were away, " + formatTicks(r.Ticks) + " passed")
	}
	if _, ok := m.Save.Pet.Activity.Battle(); ok {
		m.Screen = screenBattle
	}
	return m
}

// Pet returns the pet being shown.
func (m Model) Pet() pet.Pet {
	return m.Save.Pet
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(m.interval)}
	if m.Save.Pet.Activity.State() == pet.StateExploring {
		cmds = append(cmds, sceneTick())
	}
	return tea.Batch(cmds...)
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func animTick(start time.Time) tea.Cmd {
	return tea.Tick(AnimationFrameDuration, func(t time.Time) tea.Msg {
		return animTickMsg{started: start}
	})
}

func sceneTick() tea.Cmd {
	return tea.Tick(sceneFrame, func(time.Time) tea.Msg {
		return sceneTickMsg{}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// While an animation is playing, ignore inputs except quit keys
		if m.Animation.Type != AnimNone {
			switch msg.String() {
			case "ctrl+c", "q":
				return m.quit()
			default:
				return m, nil
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m.quit()
		case "esc", "backspace":
			if m.Screen != screenMain && m.Screen != screenBattle {
				m.goTo(screenMain)
			}
		case "up", "k":
			if m.Choice > 0 {
				m.Choice--
			}
		case "down", "j":
			if m.Choice < len(m.options())-1 {
				m.Choice++
			}
		case "enter", " ":
			opts := m.options()
			if m.Choice < 0 || m.Choice >= len(opts) {
				return m, nil
			}
			cmd := opts[m.Choice].run(&m)
			return m, m.withScene(cmd)
		}

	case tickMsg:
		m.advance()
		return m, m.withScene(tick(m.interval))

	case animTickMsg:
		// Drop ticks that belong to an older animation
		if m.Animation.Type == AnimNone || !m.Animation.StartTime.Equal(msg.started) {
			return m, nil
		}

		m.Animation.Frame++
		if IsAnimationComplete(m.Animation) {
			m.Animation = Animation{}
			return m, nil
		}

		return m, animTick(m.Animation.StartTime)

	case sceneTickMsg:
		if m.Save.Pet.Activity.State() != pet.StateExploring {
			m.sceneRunning = false
			return m, nil
		}
		m.Scene = m.Scene.Step()
		return m, sceneTick()
	}

	return m, nil
}

// withScene starts the exploring scene if the pet just set off.
func (m *Model) withScene(cmd tea.Cmd) tea.Cmd {
	if m.sceneRunning || m.Save.Pet.Activity.State() != pet.StateExploring {
		return cmd
	}
	active, _ := m.Save.Pet.Activity.Exploration()
	m.Scene = chase.NewScene(m.width-4, chase.TargetsFor(m.engine.Catalog(), active.LocationID))
	m.sceneRunning = true
	return tea.Batch(cmd, sceneTick())
}

// advance runs one game tick.
func (m *Model) advance() {
	p, events := m.engine.ProcessTick(m.Save.Pet)
	m.Save.Pet = p
	m.Save.Ticked(m.interval)
	m.Save.Inventory.Collect(events)
	m.notify(events)
	m.persist()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.persist()
	m.Quitting = true
	return m, tea.Quit
}

func (m *Model) goTo(s screen) {
	m.Screen = s
	m.Choice = 0
}

func (m *Model) persist() {
	if m.session == nil {
		return
	}
	if err := m.session.Save(context.Background(), m.Save); err != nil {
		m.logger.Error("Failed to save pet", "error", err)
		m.setMessage("⚠️ Could not save: " + err.Error())
	}
}

func (m *Model) setMessage(msg string) {
	m.Message = msg
	m.MessageExpires = pet.TimeNow().Add(messageDuration)
}

func (m *Model) startAnimation(animType AnimationType) tea.Cmd {
	m.Animation = Animation{
		Type:      animType,
		Frame:     0,
		StartTime: pet.TimeNow(),
	}
	return animTick(m.Animation.StartTime)
}

// notify adds events to the on-screen log and shows the latest one.
func (m *Model) notify(events []pet.Event) {
	for _, ev := range events {
		line := formatEvent(m.Save.Pet.Identity.Name, ev)
		m.Events = append(m.Events, line)
		m.setMessage(line)
	}
	if n := len(m.Events); n > maxEventLines {
		m.Events = m.Events[n-maxEventLines:]
	}
}

func formatEvent(name string, ev pet.Event) string {
	switch ev.(type) {
	case activity.TrainingCompleted, activity.ExplorationCompleted:
		return ev.Emoji() + " " + ev.Message()
	}
	return ev.Emoji() + " " + name + " " + ev.Message()
}
