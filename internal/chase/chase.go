// Package chase draws the little scene shown while a pet is out exploring:
// the pet runs after whatever the location has to offer, catches it at the
// far edge and sets off after the next thing.
package chase

import (
	"math"
	"strings"

	"petsim/internal/content"
	"petsim/internal/pet"
)

const (
	// Rows is the height of the scene.
	Rows = 3

	minWidth = 12
	maxWidth = 48
)

// Target is something the pet can chase.
type Target struct {
	Emoji string
	Name  string
	Speed int // frames per step; lower is faster
}

// Fallback is chased where a location has nothing to find.
var Fallback = Target{Emoji: "🦋", Name: "butterfly", Speed: 3}

// TargetsFor turns a location's forage table into chase targets. Rare finds
// run faster.
func TargetsFor(c *content.Catalog, locationID string) []Target {
	loc, ok := c.Location(locationID)
	if !ok {
		return []Target{Fallback}
	}
	table, ok := c.ForageTable(loc.ForageTable)
	if !ok {
		return []Target{Fallback}
	}

	var targets []Target
	for _, e := range table.Entries {
		item, ok := c.Item(e.ItemID)
		if !ok || item.Emoji == "" {
			continue
		}
		speed := 4
		switch {
		case e.BaseDropRate < 0.2:
			speed = 2
		case e.BaseDropRate < 0.5:
			speed = 3
		}
		targets = append(targets, Target{Emoji: item.Emoji, Name: item.Name, Speed: speed})
	}
	if len(targets) == 0 {
		return []Target{Fallback}
	}
	return targets
}

// Scene is one chase in progress. It is a value; Step returns the next frame.
type Scene struct {
	Width   int
	Targets []Target
	Current int
	PetX    int
	PetY    int
	TargetX int
	TargetY int
	Frame   int
	Caught  int
}

// NewScene starts a chase across width columns.
func NewScene(width int, targets []Target) Scene {
	if len(targets) == 0 {
		targets = []Target{Fallback}
	}
	s := Scene{
		Width:   min(max(width, minWidth), maxWidth),
		Targets: targets,
	}
	return s.reset()
}

// Target returns what the pet is chasing now.
func (s Scene) Target() Target {
	if len(s.Targets) == 0 {
		return Fallback
	}
	return s.Targets[s.Current%len(s.Targets)]
}

func (s Scene) reset() Scene {
	s.PetX, s.PetY = 0, Rows/2
	s.TargetX, s.TargetY = 5, Rows/2
	return s
}

func (s Scene) maxX() int {
	return s.Width - 2
}

// Step advances the scene by one frame.
func (s Scene) Step() Scene {
	s.Frame++
	target := s.Target()

	if s.Frame%max(target.Speed, 1) == 0 {
		s.TargetX = min(s.TargetX+1, s.maxX())
		// flutter
		wave := math.Sin(float64(s.TargetX) * 0.6)
		s.TargetY = min(max(int(math.Round(float64(Rows/2)+wave)), 0), Rows-1)
	}

	if s.Frame%2 == 0 {
		if s.TargetX-s.PetX > 2 {
			s.PetX++
		}
		switch {
		case s.TargetY > s.PetY:
			s.PetY++
		case s.TargetY < s.PetY:
			s.PetY--
		}
	}

	caught := abs(s.TargetX-s.PetX) <= 2 && s.TargetY == s.PetY
	if caught || s.TargetX >= s.maxX() {
		if caught {
			s.Caught++
		}
		s.Current++
		return s.reset()
	}
	return s
}

// Render draws the scene with the pet's current mood.
func (s Scene) Render(p pet.Pet) string {
	petEmoji := Mood(p, s.TargetX-s.PetX)

	grid := make([][]string, Rows)
	for y := range grid {
		grid[y] = make([]string, s.Width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	place := func(x, y int, emoji string) {
		if y < 0 || y >= Rows || x < 0 || x >= s.Width {
			return
		}
		grid[y][x] = emoji
		// Emoji are two cells wide.
		if x+1 < s.Width {
			grid[y][x+1] = ""
		}
	}
	place(s.TargetX, s.TargetY, s.Target().Emoji)
	place(s.PetX, s.PetY, petEmoji)

	lines := make([]string, Rows)
	for y := range grid {
		lines[y] = strings.TrimRight(strings.Join(grid[y], ""), " ")
	}
	return strings.Join(lines, "\n")
}

// Mood picks the pet's face for the chase from its stats and how close it
// is to its target.
func Mood(p pet.Pet, dist int) string {
	if abs(dist) <= 3 {
		return "😻"
	}
	energy := pet.Percent(p.Energy.Energy, p.MaxStats.Energy)
	switch {
	case energy < 30:
		return pet.StatusEmojiSleeping
	case energy > 80:
		return "😼"
	}
	if pet.Percent(p.Care.Satiety, p.MaxStats.CareStat) < 30 {
		return pet.StatusEmojiHungry
	}
	if pet.Percent(p.Care.Happiness, p.MaxStats.CareStat) < 30 {
		return pet.StatusEmojiSad
	}
	return pet.StatusEmojiHappy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
