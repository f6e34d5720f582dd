package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/peterkuimelis/neondominance/internal/log"
)

// Card fixture builders. Tests compose exact catalogs from these instead of
// loading the shipped deck, so draw order is fully controlled.

func fillerCard(name string) *Card {
	return &Card{Name: name, Type: CardTypeProgram, Cost: 0, MemoryUnits: 0}
}

func programCard(name string, cost, mu int) *Card {
	return &Card{Name: name, Type: CardTypeProgram, Cost: cost, MemoryUnits: mu}
}

func breakerCard(name string, class IceClass, maxStrength, cost, mu int) *Card {
	return &Card{
		Name:        name,
		Type:        CardTypeIcebreaker,
		Cost:        cost,
		MemoryUnits: mu,
		Strength:    maxStrength,
		Ability: &Ability{
			Kind:        AbilityBreakIce,
			IceClasses:  []IceClass{class},
			MaxStrength: maxStrength,
		},
	}
}

func eventCard(name string, cost int, effects ...Effect) *Card {
	return &Card{
		Name: name,
		Type: CardTypeEvent,
		Cost: cost,
		Ability: &Ability{
			Kind:    AbilityOneTime,
			Effects: effects,
		},
	}
}

func triggerCard(name string, ctype CardType, cost int, event Trigger, effect Effect, freq Frequency) *Card {
	return &Card{
		Name: name,
		Type: ctype,
		Cost: cost,
		Ability: &Ability{
			Kind:      AbilityTrigger,
			Event:     event,
			Effect:    effect,
			Frequency: freq,
		},
	}
}

func permanentCard(name string, cost int, effects ...Effect) *Card {
	return &Card{
		Name: name,
		Type: CardTypeHardware,
		Cost: cost,
		Ability: &Ability{
			Kind:    AbilityPermanent,
			Effects: effects,
		},
	}
}

func resourceCard(name string, counters int, consumableFor string) *Card {
	return &Card{
		Name: name,
		Type: CardTypeResource,
		Cost: 0,
		Ability: &Ability{
			Kind:          AbilityResource,
			Counters:      counters,
			ConsumableFor: consumableFor,
		},
	}
}

// paddedCatalog front-loads the given cards and pads to n with fillers. With
// NoShuffle the opening hand is the first five catalog entries.
func paddedCatalog(cards []*Card, n int) []*Card {
	out := make([]*Card, 0, n)
	out = append(out, cards...)
	for i := len(out); i < n; i++ {
		out = append(out, fillerCard(fmt.Sprintf("Filler %d", i+1)))
	}
	return out
}

// newTestGame builds an unshuffled, started game over the catalog and returns
// it with its event log.
func newTestGame(t *testing.T, catalog []*Card, seed int64) (*Game, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	g, err := New(Config{
		Catalog:   catalog,
		Logger:    logger,
		Seed:      seed,
		NoShuffle: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Start()
	return g, logger
}

func mustExec(t *testing.T, g *Game, line string) {
	t.Helper()
	if err := g.Execute(line); err != nil {
		t.Fatalf("Execute(%q): %v", line, err)
	}
}

func wantPrecondition(t *testing.T, g *Game, line string) {
	t.Helper()
	err := g.Execute(line)
	if err == nil {
		t.Fatalf("Execute(%q): expected precondition error, got nil", line)
	}
	var pe *PreconditionError
	if !errors.As(err, &pe) {
		t.Fatalf("Execute(%q): expected *PreconditionError, got %T: %v", line, err, err)
	}
}

// endTurnPastCorp ends the runner's turn and confirms play came back to the
// runner on the next odd turn.
func endTurnPastCorp(t *testing.T, g *Game) {
	t.Helper()
	before := g.Turn()
	mustExec(t, g, "end")
	if g.Over() {
		return
	}
	if g.Turn() != before+2 {
		t.Fatalf("after end: turn = %d, want %d", g.Turn(), before+2)
	}
	if g.Phase() != PhaseAction {
		t.Fatalf("after end: phase = %s, want %s", g.Phase(), PhaseAction)
	}
}
