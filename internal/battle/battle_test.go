package battle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petsim/internal/content"
	"petsim/internal/pet"
	"petsim/internal/rng"
)

var tackle = content.Move{ID: "tackle", Name: "Tackle", Category: content.CategoryPhysical, Power: 10, Accuracy: 95}

func combatant(name string, agility int, moves ...content.Move) BattlePet {
	return BattlePet{
		ID:            name,
		Name:          name,
		Health:        40,
		MaxHealth:     40,
		Energy:        20,
		MaxEnergy:     20,
		InitialHealth: 40,
		InitialEnergy: 20,
		Stats: pet.BattleStats{
			Strength: 10, Endurance: 10, Agility: agility,
			Precision: 10, Fortitude: 10, Cunning: 10,
		},
		Moves: moves,
	}
}

func newBattle(player, opponent BattlePet) Battle {
	player.IsPlayer = true
	return Battle{
		ID:          "b1",
		Kind:        KindWild,
		Player:      player,
		Opponent:    opponent,
		CurrentTurn: 1,
		Status:      StatusInProgress,
		Phase:       PhaseSelectAction,
	}
}

func TestFirstToAct(t *testing.T) {
	pounce := content.Move{ID: "pounce", Priority: 1}

	tests := []struct {
		name     string
		player   BattlePet
		opponent BattlePet
		pa, oa   Action
		want     Side
	}{
		{"faster player", combatant("p", 30, tackle), combatant("o", 10, tackle), UseMove("tackle"), UseMove("tackle"), SidePlayer},
		{"faster opponent", combatant("p", 10, tackle), combatant("o", 30, tackle), UseMove("tackle"), UseMove("tackle"), SideOpponent},
		{"priority beats speed", combatant("p", 10, pounce), combatant("o", 30, tackle), UseMove("pounce"), UseMove("tackle"), SidePlayer},
		{"flee goes first", combatant("p", 30, tackle), combatant("o", 10, tackle), UseMove("tackle"), Flee(), SideOpponent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBattle(tt.player, tt.opponent)
			// Every coin flip would favour the other side; it must not be consulted.
			for _, coin := range []int{0, 1} {
				got := FirstToAct(b, tt.pa, tt.oa, &rng.Fixed{Ints: []int{coin}})
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFirstToActTieUsesCoin(t *testing.T) {
	b := newBattle(combatant("p", 10, tackle), combatant("o", 10, tackle))
	assert.Equal(t, SidePlayer, FirstToAct(b, UseMove("tackle"), UseMove("tackle"), &rng.Fixed{Ints: []int{0}}))
	assert.Equal(t, SideOpponent, FirstToAct(b, UseMove("tackle"), UseMove("tackle"), &rng.Fixed{Ints: []int{1}}))
}

func TestSpeedModifierChangesOrder(t *testing.T) {
	b := newBattle(combatant("p", 20, tackle), combatant("o", 15, tackle))
	assert.Equal(t, SidePlayer, FirstToAct(b, UseMove("tackle"), UseMove("tackle"), &rng.Fixed{}))

	b.Player.Modifiers.Agility = -50
	assert.Equal(t, 10, b.Player.Speed())
	assert.Equal(t, SideOpponent, FirstToAct(b, UseMove("tackle"), UseMove("tackle"), &rng.Fixed{}))
}

func TestHitChance(t *testing.T) {
	tests := []struct {
		move, acc, eva, want int
	}{
		{95, 10, 10, 95},
		{95, 30, 10, 97},
		{95, 200, 10, 100},
		{10, 10, 200, 5},
		{80, 10, 30, 78},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HitChance(tt.move, tt.acc, tt.eva))
	}
}

func TestDamage(t *testing.T) {
	tests := []struct {
		name                   string
		attack, defense, power int
		variance               float64
	}{
		{"even", 10, 10, 10, 1.0},
		{"weak attacker", 1, 100, 1, VarianceLow},
		{"zero defense", 5, 0, 4, VarianceHigh},
		{"tiny power", 3, 10, 1, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normal := Damage(tt.attack, tt.defense, tt.power, tt.variance, false)
			crit := Damage(tt.attack, tt.defense, tt.power, tt.variance, true)
			assert.GreaterOrEqual(t, normal, 1)
			assert.Greater(t, crit, normal)
		})
	}

	assert.Equal(t, 10, Damage(10, 10, 10, 1.0, false))
	assert.Equal(t, 15, Damage(10, 10, 10, 1.0, true))
}

func TestProcessPlayerActionFullTurn(t *testing.T) {
	// 0.6 lands every hit, rolls a variance just above 1 and no critical.
	r := NewResolver(nil, &rng.Fixed{Floats: []float64{0.6}, Ints: []int{0}})
	b := newBattle(combatant("Ash", 30, tackle), combatant("Wild", 10, tackle))

	next, err := r.ProcessPlayerAction(b, UseMove("tackle"))
	require.NoError(t, err)

	assert.Equal(t, StatusInProgress, next.Status)
	assert.Equal(t, PhaseSelectAction, next.Phase)
	assert.Equal(t, 2, next.CurrentTurn)
	require.Len(t, next.Turns, 1)

	turn := next.Turns[0]
	require.Len(t, turn.Actions, 2)
	assert.Equal(t, SidePlayer, turn.Actions[0].Side)
	assert.True(t, turn.Actions[0].Hit)
	assert.Equal(t, 10, turn.Actions[0].Damage)
	assert.Equal(t, 30, next.Opponent.Health)
	assert.Equal(t, 30, next.Player.Health)

	// The input battle is untouched.
	assert.Empty(t, b.Turns)
	assert.Equal(t, 40, b.Opponent.Health)
	assert.Equal(t, 1, b.CurrentTurn)
}

func TestProcessPlayerActionVictoryEndsEarly(t *testing.T) {
	r := NewResolver(nil, &rng.Fixed{Floats: []float64{0.5}})
	opp := combatant("Wild", 10, tackle)
	opp.Health = 5
	b := newBattle(combatant("Ash", 30, tackle), opp)

	next, err := r.ProcessPlayerAction(b, UseMove("tackle"))
	require.NoError(t, err)
	assert.Equal(t, StatusVictory, next.Status)
	assert.Equal(t, PhaseFinished, next.Phase)
	assert.Len(t, next.Turns[0].Actions, 1)
	assert.Empty(t, next.Turns[0].Upkeep)
	assert.Equal(t, 0, next.Opponent.Health)

	_, err = r.ProcessPlayerAction(next, UseMove("tackle"))
	assert.True(t, errors.Is(err, ErrInvalidAction))
}

func TestProcessPlayerActionFlee(t *testing.T) {
	r := NewResolver(nil, &rng.Fixed{Floats: []float64{0.5}})
	b := newBattle(combatant("Ash", 10, tackle), combatant("Wild", 30, tackle))

	next, err := r.ProcessPlayerAction(b, Flee())
	require.NoError(t, err)
	assert.Equal(t, StatusFled, next.Status)
	require.Len(t, next.Turns[0].Actions, 1)
	assert.True(t, next.Turns[0].Actions[0].Fled)
	assert.Equal(t, 40, next.Player.Health)
}

func TestProcessPlayerActionFailedFlee(t *testing.T) {
	r := NewResolver(nil, &rng.Fixed{Floats: []float64{0.9}})
	b := newBattle(combatant("Ash", 10, tackle), combatant("Wild", 30, tackle))

	next, err := r.ProcessPlayerAction(b, Flee())
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, next.Status)
	assert.Len(t, next.Turns[0].Actions, 2)
}

func TestProcessPlayerActionRejectsInvalid(t *testing.T) {
	expensive := content.Move{ID: "blast", Name: "Blast", Category: content.CategorySpecial, Power: 30, Accuracy: 100, EnergyCost: 50}
	r := NewResolver(nil, &rng.Fixed{})
	b := newBattle(combatant("Ash", 10, tackle, expensive), combatant("Wild", 10, tackle))

	tests := []struct {
		name   string
		action Action
		kind   error
	}{
		{"unknown move", UseMove("hyper_beam"), ErrInvalidAction},
		{"unknown kind", Action{Kind: "dance"}, ErrInvalidAction},
		{"not enough energy", UseMove("blast"), pet.ErrInsufficientEnergy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := r.ProcessPlayerAction(b, tt.action)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			assert.Equal(t, b, next)
		})
	}
}

func TestFirstActionStartsBattle(t *testing.T) {
	r := NewResolver(nil, &rng.Fixed{Floats: []float64{0.6}})
	b := newBattle(combatant("Ash", 30, tackle), combatant("Wild", 10, tackle))
	b.Status = StatusWaiting
	require.NoError(t, Validate(b, UseMove("tackle")))

	next, err := r.ProcessPlayerAction(b, UseMove("tackle"))
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, next.Status)
	assert.Equal(t, StatusWaiting, b.Status, "input battle is unchanged")

	b.Status = StatusVictory
	assert.True(t, errors.Is(Validate(b, UseMove("tackle")), ErrInvalidAction))
}

func TestStunnedCombatantLosesAction(t *testing.T) {
	r := NewResolver(nil, &rng.Fixed{Floats: []float64{0.5}})
	opp := combatant("Wild", 10, tackle)
	opp.StatusEffects = []StatusEffect{{Kind: EffectStun, Duration: 1}}
	b := newBattle(combatant("Ash", 30, tackle), opp)

	next, err := r.ProcessPlayerAction(b, UseMove("tackle"))
	require.NoError(t, err)

	actions := next.Turns[0].Actions
	require.Len(t, actions, 2)
	assert.True(t, actions[1].Skipped)
	assert.Equal(t, 40, next.Player.Health)
	assert.Empty(t, next.Opponent.StatusEffects, "stun is spent on the lost action")
	assert.Len(t, b.Opponent.StatusEffects, 1, "input battle keeps its effects")
}

func TestSlowStunMoveCostsNextAction(t *testing.T) {
	slam := content.Move{
		ID: "slam", Name: "Slam", Category: content.CategoryPhysical, Power: 10, Accuracy: 100, Priority: -1,
		Effects: []content.MoveEffect{{Kind: content.EffectStatus, Target: content.TargetOpponent, Status: EffectStun, Duration: 1, Chance: 1}},
	}
	r := NewResolver(nil, &rng.Fixed{Floats: []float64{0.5}})
	b := newBattle(combatant("Ash", 30, slam), combatant("Wild", 10, tackle))
	b.Player.Health, b.Player.MaxHealth = 200, 200
	b.Opponent.Health, b.Opponent.MaxHealth = 200, 200

	// Turn 1: the opponent moves first, then gets stunned.
	b, err := r.ProcessPlayerAction(b, UseMove("slam"))
	require.NoError(t, err)
	first := b.Turns[0].Actions
	require.Len(t, first, 2)
	assert.Equal(t, SideOpponent, first[0].Side)
	assert.False(t, first[0].Skipped)
	require.True(t, b.Opponent.HasStatus(EffectStun), "stun survives the turn it was applied")

	// Turn 2: the opponent loses its action. Slam lands again, so the
	// stun is renewed for turn 3.
	health := b.Player.Health
	b, err = r.ProcessPlayerAction(b, UseMove("slam"))
	require.NoError(t, err)
	second := b.Turns[1].Actions
	require.Len(t, second, 2)
	assert.Equal(t, SideOpponent, second[0].Side)
	assert.True(t, second[0].Skipped)
	assert.Equal(t, health, b.Player.Health, "no damage taken while the opponent is stunned")
	assert.True(t, b.Opponent.HasStatus(EffectStun))
}

func TestStunDurationCountsLostActions(t *testing.T) {
	spores := content.Move{
		ID: "spores", Name: "Spores", Category: content.CategoryStatus, Accuracy: 100, Priority: 1,
		Effects: []content.MoveEffect{{Kind: content.EffectStatus, Target: content.TargetOpponent, Status: EffectStun, Duration: 2, Chance: 1}},
	}
	r := NewResolver(nil, &rng.Fixed{Floats: []float64{0.5}})
	b := newBattle(combatant("Ash", 10, spores, tackle), combatant("Wild", 30, tackle))

	// Spores goes first and the opponent loses this action and the next.
	b, err := r.ProcessPlayerAction(b, UseMove("spores"))
	require.NoError(t, err)
	assert.True(t, b.Turns[0].Actions[1].Skipped)

	b, err = r.ProcessPlayerAction(b, UseMove("tackle"))
	require.NoError(t, err)
	var opp ActionResult
	for _, a := range b.Turns[1].Actions {
		if a.Side == SideOpponent {
			opp = a
		}
	}
	assert.True(t, opp.Skipped)
	assert.False(t, b.Opponent.HasStatus(EffectStun))

	b, err = r.ProcessPlayerAction(b, UseMove("tackle"))
	require.NoError(t, err)
	for _, a := range b.Turns[2].Actions {
		if a.Side == SideOpponent {
			assert.False(t, a.Skipped, "stun is gone after two lost actions")
		}
	}
}

func TestAddStatusCapAndRefresh(t *testing.T) {
	bp := combatant("p", 10)
	assert.True(t, addStatus(&bp, StatusEffect{Kind: EffectPoison, Duration: 2, TickDamage: 1}))
	assert.True(t, addStatus(&bp, StatusEffect{Kind: EffectBurn, Duration: 2, TickDamage: 1}))
	assert.True(t, addStatus(&bp, StatusEffect{Kind: EffectRegen, Duration: 2, TickDamage: -1}))
	assert.False(t, addStatus(&bp, StatusEffect{Kind: EffectStun, Duration: 1}))
	assert.Len(t, bp.StatusEffects, MaxStatusEffects)

	assert.True(t, addStatus(&bp, StatusEffect{Kind: EffectPoison, Duration: 5, TickDamage: 3}))
	assert.Len(t, bp.StatusEffects, MaxStatusEffects)
	assert.Equal(t, 5, bp.StatusEffects[0].Duration)
}

func TestUpkeep(t *testing.T) {
	bp := combatant("p", 10)
	bp.Health = 38
	bp.StatusEffects = []StatusEffect{
		{Kind: EffectPoison, Duration: 2, TickDamage: 3},
		{Kind: EffectRegen, Duration: 1, TickDamage: -10},
	}

	msgs := upkeep(&bp)
	assert.NotEmpty(t, msgs)
	// 38 - 3 = 35, then regen heals to the 40 cap.
	assert.Equal(t, 40, bp.Health)
	require.Len(t, bp.StatusEffects, 1)
	assert.Equal(t, EffectPoison, bp.StatusEffects[0].Kind)
	assert.Equal(t, 1, bp.StatusEffects[0].Duration)

	upkeep(&bp)
	assert.Equal(t, 37, bp.Health)
	assert.Empty(t, bp.StatusEffects)
}

func TestStatModifierIsClamped(t *testing.T) {
	r := NewResolver(nil, &rng.Fixed{})
	actor := combatant("p", 10)
	target := combatant("o", 10)
	cry := content.MoveEffect{Kind: content.EffectStat, Target: content.TargetSelf, Stat: pet.StatStrength, Amount: 20, Chance: 1}

	for i := 0; i < 4; i++ {
		r.applyEffect(&actor, &target, cry)
	}
	assert.Equal(t, ModifierCap, actor.Modifiers.Strength)
	assert.Equal(t, 15, actor.Stat(pet.StatStrength))
	assert.Equal(t, 0, target.Modifiers.Strength)
}

func TestChooseAction(t *testing.T) {
	costly := content.Move{ID: "costly", EnergyCost: 99}
	bp := combatant("o", 10, costly)
	assert.Equal(t, Flee(), ChooseAction(bp, &rng.Fixed{}))

	bp = combatant("o", 10, costly, tackle)
	assert.Equal(t, UseMove("tackle"), ChooseAction(bp, &rng.Fixed{Ints: []int{5}}))
}

func defaultPet(t *testing.T, c *content.Catalog) pet.Pet {
	t.Helper()
	schedule, ok := c.Schedule("emberkit")
	require.True(t, ok)
	return pet.NewPet("Ash", "emberkit", schedule)
}

func TestInitiateAndApplyResults(t *testing.T) {
	c, err := content.Default()
	require.NoError(t, err)
	r := NewResolver(c, rng.New(7))
	p := defaultPet(t, c)

	opp, err := r.Wild("wild_emberkit")
	require.NoError(t, err)
	assert.NotEmpty(t, opp.Moves)
	assert.Equal(t, opp.MaxHealth, opp.Health)

	inBattle, b, err := r.Initiate(p, opp, KindWild, "meadow")
	require.NoError(t, err)
	assert.Equal(t, pet.StateBattling, inBattle.Activity.State())
	ref, ok := inBattle.Activity.Battle()
	require.True(t, ok)
	assert.Equal(t, b.ID, ref.BattleID)
	assert.Equal(t, StatusWaiting, b.Status)
	assert.True(t, b.Player.IsPlayer)

	_, err = ApplyResults(inBattle, b)
	assert.True(t, errors.Is(err, pet.ErrInvalidInput))

	b.Status = StatusVictory
	b.Player.Health = b.Player.InitialHealth - 5
	b.Player.Energy = b.Player.InitialEnergy - 3

	after, err := ApplyResults(inBattle, b)
	require.NoError(t, err)
	assert.True(t, after.Activity.IsIdle())
	assert.Equal(t, p.Health.Health-pet.Micro(5), after.Health.Health)
	assert.Equal(t, p.Energy.Energy-pet.Micro(3), after.Energy.Energy)

	other := b
	other.ID = "someone-else"
	_, err = ApplyResults(inBattle, other)
	assert.True(t, errors.Is(err, pet.ErrInvalidInput))
}

func TestApplyResultsClampsAtZero(t *testing.T) {
	c, err := content.Default()
	require.NoError(t, err)
	r := NewResolver(c, rng.New(1))
	p := defaultPet(t, c)

	opp, err := r.Wild("wild_thornling")
	require.NoError(t, err)
	inBattle, b, err := r.Initiate(p, opp, KindWild, "meadow")
	require.NoError(t, err)

	b.Status = StatusDefeat
	b.Player.Health = 0
	// Health dropped below what the pet had, e.g. after out-of-band damage.
	inBattle.Health.Health = pet.Micro(3)

	after, err := ApplyResults(inBattle, b)
	require.NoError(t, err)
	assert.Equal(t, int64(0), after.Health.Health)
}

func TestInitiateRefusals(t *testing.T) {
	c, err := content.Default()
	require.NoError(t, err)
	r := NewResolver(c, rng.New(1))
	p := defaultPet(t, c)
	opp, err := r.Wild("wild_emberkit")
	require.NoError(t, err)

	asleep, err := pet.Sleep(p)
	require.NoError(t, err)
	_, _, err = r.Initiate(asleep, opp, KindWild, "meadow")
	assert.True(t, errors.Is(err, pet.ErrBusy))

	hurt := p
	hurt.Health.Health = 0
	got, _, err := r.Initiate(hurt, opp, KindWild, "meadow")
	assert.True(t, errors.Is(err, pet.ErrRequirement))
	assert.Equal(t, hurt, got)

	_, err = r.Wild("dragon")
	assert.True(t, errors.Is(err, content.ErrNotFound))
}

func TestEncounterPicksLocationOpponent(t *testing.T) {
	c, err := content.Default()
	require.NoError(t, err)
	r := NewResolver(c, &rng.Fixed{Ints: []int{1}})

	opp, err := r.Encounter("meadow")
	require.NoError(t, err)
	assert.Equal(t, "wild_thornling", opp.ID)

	_, err = r.Encounter("atlantis")
	assert.True(t, errors.Is(err, content.ErrNotFound))
}
