package game

import (
	"testing"

	"github.com/peterkuimelis/neondominance/internal/log"
)

func TestTurnStartTriggerFiresEachTurn(t *testing.T) {
	drip := triggerCard("Drip Feed", CardTypeResource, 2,
		TriggerTurnStart, Effect{Kind: EffectGainCredits, Value: 1}, FrequencyPerTurn)
	g, logger := newTestGame(t, paddedCatalog([]*Card{drip}, 30), 1)

	mustExec(t, g, "install Drip Feed") // 5 -> 3 credits
	endTurnPastCorp(t, g)

	// Fired at the start of turn 3.
	if g.Credits() != 4 {
		t.Errorf("credits = %d, want 4", g.Credits())
	}

	endTurnPastCorp(t, g)
	if g.Credits() != 5 {
		t.Errorf("credits = %d, want 5 after a second turn start", g.Credits())
	}

	var dripEvents int
	for _, e := range logger.EventsOfType(log.EventCreditChange) {
		if e.Card == "Drip Feed" {
			dripEvents++
		}
	}
	if dripEvents != 2 {
		t.Errorf("drip credit events = %d, want 2", dripEvents)
	}
}

func TestPerTurnTriggerFiresOncePerTurn(t *testing.T) {
	miner := triggerCard("Skimmer", CardTypeProgram, 0,
		TriggerSuccessfulRun, Effect{Kind: EffectGainCredits, Value: 2}, FrequencyPerTurn)
	g, _ := newTestGame(t, paddedCatalog([]*Card{miner}, 30), 1)

	mustExec(t, g, "install Skimmer")

	// Turn 1: servers are open, both runs succeed, but the trigger only
	// pays once.
	mustExec(t, g, "run R&D") // +2 from Skimmer
	mustExec(t, g, "run HQ")  // trigger already spent

	if g.Credits() != 7 {
		t.Errorf("credits = %d, want 7 (one Skimmer payout)", g.Credits())
	}
}

func TestAlwaysTriggerFiresEveryRun(t *testing.T) {
	miner := triggerCard("Greedy Loop", CardTypeProgram, 0,
		TriggerSuccessfulRun, Effect{Kind: EffectGainCredits, Value: 1}, FrequencyAlways)
	g, _ := newTestGame(t, paddedCatalog([]*Card{miner}, 30), 1)

	mustExec(t, g, "install Greedy Loop")
	mustExec(t, g, "run R&D")
	mustExec(t, g, "run HQ")

	if g.Credits() != 7 {
		t.Errorf("credits = %d, want 7 (two payouts)", g.Credits())
	}
}

func TestPermanentMemoryBonus(t *testing.T) {
	chip := permanentCard("Slab", 1, Effect{Kind: EffectIncreaseMemory, Value: 2})
	g, _ := newTestGame(t, paddedCatalog([]*Card{chip}, 20), 1)

	if g.MemoryLimit() != 4 {
		t.Fatalf("base memory limit = %d, want 4", g.MemoryLimit())
	}
	mustExec(t, g, "install Slab")
	if g.MemoryLimit() != 6 {
		t.Errorf("memory limit = %d, want 6", g.MemoryLimit())
	}
}

func TestDamagePreventionAbsorbsOncePerTurn(t *testing.T) {
	shield := triggerCard("Buffer", CardTypeProgram, 0,
		TriggerDamage, Effect{Kind: EffectPreventDamage, Value: 1}, FrequencyPerTurn)
	g, logger := newTestGame(t, paddedCatalog([]*Card{shield}, 20), 1)

	mustExec(t, g, "install Buffer")
	handBefore := len(g.Hand())

	g.takeDamage(2, "test rig")
	if lost := handBefore - len(g.Hand()); lost != 1 {
		t.Errorf("cards lost = %d, want 1 (one point absorbed)", lost)
	}

	// Spent for the turn: a second hit lands in full.
	handBefore = len(g.Hand())
	g.takeDamage(1, "test rig")
	if lost := handBefore - len(g.Hand()); lost != 1 {
		t.Errorf("cards lost = %d, want 1 (prevention already used)", lost)
	}

	if n := len(logger.EventsOfType(log.EventDamage)); n != 2 {
		t.Errorf("damage events = %d, want 2", n)
	}
}

func TestDamageDiscardsFromEndOfHand(t *testing.T) {
	g, _ := newTestGame(t, paddedCatalog(nil, 20), 1)

	last := g.Hand()[len(g.Hand())-1].Card.Name
	g.takeDamage(1, "test rig")

	heap := g.Heap()
	if len(heap) != 1 || heap[0].Card.Name != last {
		t.Fatalf("heap = %v, want the last card in hand (%s)", heap, last)
	}
}

func TestMismatchedTriggerDoesNothing(t *testing.T) {
	odd := triggerCard("Lurker", CardTypeProgram, 0,
		TriggerJackOut, Effect{Kind: EffectGainCredits, Value: 5}, FrequencyAlways)
	g, _ := newTestGame(t, paddedCatalog([]*Card{odd}, 20), 1)

	mustExec(t, g, "install Lurker")
	mustExec(t, g, "run R&D") // successful run is not this card's event

	if g.Credits() != 5 {
		t.Errorf("credits = %d, want 5 (Lurker never fires)", g.Credits())
	}
}

func TestOneTimeEventAppliesAllEffects(t *testing.T) {
	combo := eventCard("Windfall", 0,
		Effect{Kind: EffectGainCredits, Value: 3},
		Effect{Kind: EffectDrawCards, Value: 2},
	)
	g, _ := newTestGame(t, paddedCatalog([]*Card{combo}, 20), 1)

	mustExec(t, g, "install Windfall")

	if g.Credits() != 8 {
		t.Errorf("credits = %d, want 8", g.Credits())
	}
	// 5 opening - 1 played + 2 drawn.
	if len(g.Hand()) != 6 {
		t.Errorf("hand = %d cards, want 6", len(g.Hand()))
	}
}

func TestResolveAbilityIgnoresVanillaCards(t *testing.T) {
	g, _ := newTestGame(t, paddedCatalog(nil, 20), 1)

	ci := g.Hand()[0]
	if msg, ok := g.resolveAbility(ci, TriggerTurnStart, nil); ok || msg != "" {
		t.Errorf("vanilla card resolved an ability: %q", msg)
	}
}

func TestBreaksClassWildcard(t *testing.T) {
	a := &Ability{Kind: AbilityBreakIce, IceClasses: []IceClass{IceClassAll}}
	for _, class := range []IceClass{IceClassBarrier, IceClassCodeGate, IceClassSentry} {
		if !a.BreaksClass(class) {
			t.Errorf("wildcard breaker does not answer %s", class)
		}
	}
	b := &Ability{Kind: AbilityBreakIce, IceClasses: []IceClass{IceClassSentry}}
	if b.BreaksClass(IceClassBarrier) {
		t.Error("sentry breaker answered a barrier")
	}
}
