package pet

// ProcessPoop counts down the poop timer and adds a poop when it fires.
func ProcessPoop(p Pet) (Pet, []Event) {
	p.Poop.TicksUntilNext--
	if p.Poop.TicksUntilNext > 0 {
		return p, nil
	}
	p.Poop.TicksUntilNext = PoopIntervalTicks
	if p.Poop.Count >= MaxPoop {
		return p, nil
	}
	p.Poop.Count++
	return p, []Event{PoopAppeared{Count: p.Poop.Count}}
}
