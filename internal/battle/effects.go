package battle

import (
	"fmt"

	"petsim/internal/content"
	"petsim/internal/rng"
)

// applyEffect rolls and applies one move side effect. A zero chance in
// content means the effect always fires.
func (r *Resolver) applyEffect(actor, target *BattlePet, e content.MoveEffect) (string, bool) {
	who := target
	if e.Target == content.TargetSelf {
		who = actor
	}
	if who.Health <= 0 {
		return "", false
	}
	chance := e.Chance
	if chance <= 0 {
		chance = 1
	}
	if !rng.Chance(r.src, chance) {
		return "", false
	}

	switch e.Kind {
	case content.EffectHeal:
		healed := min(max(e.Amount, 0), who.MaxHealth-who.Health)
		who.Health += healed
		return fmt.Sprintf("%s recovered %d health.", who.Name, healed), true
	case content.EffectStat:
		cur, _ := who.Modifiers.Get(e.Stat)
		mod := min(max(cur+e.Amount, -ModifierCap), ModifierCap)
		if mod == cur {
			return fmt.Sprintf("%s's %s won't go any further!", who.Name, e.Stat), true
		}
		who.Modifiers, _ = who.Modifiers.With(e.Stat, mod)
		dir := "rose"
		if mod < cur {
			dir = "fell"
		}
		return fmt.Sprintf("%s's %s %s!", who.Name, e.Stat, dir), true
	case content.EffectStatus:
		if !addStatus(who, StatusEffect{Kind: e.Status, Duration: e.Duration, TickDamage: e.TickDamage}) {
			return "", false
		}
		return fmt.Sprintf("%s is affected by %s!", who.Name, e.Status), true
	}
	return "", false
}

// addStatus applies an effect, refreshing one of the same kind. It reports
// false when the combatant already carries MaxStatusEffects others.
func addStatus(bp *BattlePet, eff StatusEffect) bool {
	if eff.Duration <= 0 {
		return false
	}
	for i, cur := range bp.StatusEffects {
		if cur.Kind == eff.Kind {
			bp.StatusEffects[i] = eff
			return true
		}
	}
	if len(bp.StatusEffects) >= MaxStatusEffects {
		return false
	}
	bp.StatusEffects = append(bp.StatusEffects, eff)
	return true
}

// spendStun counts a stun down by one lost action and reports whether it
// ran out.
func spendStun(bp *BattlePet) bool {
	var kept []StatusEffect
	expired := false
	for _, eff := range bp.StatusEffects {
		if eff.Kind == EffectStun {
			eff.Duration--
			if eff.Duration <= 0 {
				expired = true
				continue
			}
		}
		kept = append(kept, eff)
	}
	bp.StatusEffects = kept
	return expired
}

// upkeep runs end-of-turn status effects: tick damage (negative heals), then
// the duration countdown. Expired effects are dropped. Stun is counted in
// lost actions instead, see spendStun.
func upkeep(bp *BattlePet) []string {
	var msgs []string
	var kept []StatusEffect
	for _, eff := range bp.StatusEffects {
		if eff.Kind == EffectStun {
			kept = append(kept, eff)
			continue
		}
		if eff.TickDamage != 0 && bp.Health > 0 {
			before := bp.Health
			bp.Health = min(max(bp.Health-eff.TickDamage, 0), bp.MaxHealth)
			switch {
			case bp.Health < before:
				msgs = append(msgs, fmt.Sprintf("%s is hurt by %s (%d).", bp.Name, eff.Kind, before-bp.Health))
			case bp.Health > before:
				msgs = append(msgs, fmt.Sprintf("%s recovers %d from %s.", bp.Name, bp.Health-before, eff.Kind))
			}
		}
		eff.Duration--
		if eff.Duration > 0 {
			kept = append(kept, eff)
		} else {
			msgs = append(msgs, fmt.Sprintf("%s's %s wore off.", bp.Name, eff.Kind))
		}
	}
	bp.StatusEffects = kept
	return msgs
}
