package ai

import (
	"strings"
	"testing"
)

func TestSameSeedPlaysIdentically(t *testing.T) {
	view := TurnView{Turn: 2, RunnerCredits: 5, RunnerHandSize: 5}

	a := New(42)
	b := New(42)
	if a.Strategy() != b.Strategy() {
		t.Fatalf("strategies differ: %s vs %s", a.Strategy(), b.Strategy())
	}

	for turn := 0; turn < 5; turn++ {
		la := a.TakeTurn(view)
		lb := b.TakeTurn(view)
		if strings.Join(la, "\n") != strings.Join(lb, "\n") {
			t.Fatalf("turn %d diverged:\n%v\nvs\n%v", turn, la, lb)
		}
	}
}

func TestTurnSpendsWholeClickBudget(t *testing.T) {
	o := New(7)
	o.TakeTurn(TurnView{Turn: 2})
	if o.clicks != 0 {
		t.Errorf("clicks left = %d, want 0", o.clicks)
	}
}

func TestHandStaysUnderCap(t *testing.T) {
	o := New(3)
	for turn := 0; turn < 20; turn++ {
		o.TakeTurn(TurnView{Turn: turn*2 + 2})
		if len(o.hand) > MaxHandSize {
			t.Fatalf("turn %d: hand = %d cards, over the cap of %d", turn, len(o.hand), MaxHandSize)
		}
	}
}

func TestDeckOnlyShrinks(t *testing.T) {
	o := New(11)
	prev := o.CardsRemaining()
	for turn := 0; turn < 25; turn++ {
		o.TakeTurn(TurnView{Turn: turn*2 + 2})
		if got := o.CardsRemaining(); got > prev {
			t.Fatalf("deck grew from %d to %d", prev, got)
		} else {
			prev = got
		}
	}
	if prev < 0 {
		t.Errorf("deck went negative: %d", prev)
	}
}

func TestAgendaPointsAccumulate(t *testing.T) {
	o := New(5)
	prev := 0
	for turn := 0; turn < 40; turn++ {
		o.TakeTurn(TurnView{Turn: turn*2 + 2})
		got := o.AgendaPoints()
		if got < prev {
			t.Fatalf("agenda points dropped from %d to %d", prev, got)
		}
		prev = got
	}
}

func TestCreditsNeverNegative(t *testing.T) {
	o := New(9)
	for turn := 0; turn < 30; turn++ {
		o.TakeTurn(TurnView{Turn: turn*2 + 2})
		if o.Credits() < 0 {
			t.Fatalf("credits went negative: %d", o.Credits())
		}
	}
}

func TestTrashAssetOnlyWhenPresent(t *testing.T) {
	o := New(1)
	if o.TrashAsset() {
		t.Error("trashed an asset before any were installed")
	}
	o.remotes = append(o.remotes, &remoteServer{name: "Remote Server 1", kind: "asset"})
	if !o.TrashAsset() {
		t.Error("failed to trash an installed asset")
	}
	if len(o.remotes) != 0 {
		t.Errorf("remotes = %d, want 0", len(o.remotes))
	}
}

// Install actions resolve only when the hand actually holds a card of the
// kind; otherwise the click falls through to a basic action.
func TestInstallNeedsCardInHand(t *testing.T) {
	o := New(1)
	o.clicks = 2

	if msg := o.perform(ActionInstallAgenda); !strings.Contains(msg, "basic action") {
		t.Errorf("install agenda with empty hand = %q, want a basic action", msg)
	}
	if msg := o.perform(ActionInstallAsset); !strings.Contains(msg, "basic action") {
		t.Errorf("install asset with empty hand = %q, want a basic action", msg)
	}
	if len(o.remotes) != 0 {
		t.Fatalf("remotes = %d, want 0: nothing was in hand to install", len(o.remotes))
	}

	o.clicks = 1
	o.hand = []corpCard{{kind: "agenda", name: "Card-0001"}}
	if msg := o.perform(ActionInstallAgenda); !strings.Contains(msg, "remote server") {
		t.Errorf("install agenda from hand = %q, want a remote install", msg)
	}
	if len(o.remotes) != 1 || o.remotes[0].kind != "agenda" {
		t.Fatalf("remotes = %v, want one agenda", o.remotes)
	}
	if len(o.hand) != 0 {
		t.Errorf("hand = %d cards, want 0 after installing", len(o.hand))
	}
}

// The menu never offers an action the Corporation has no card or credit for.
func TestMenuOnlyOffersLegalActions(t *testing.T) {
	o := New(9)
	o.hand = nil
	o.deckRemaining = 0
	for i := 0; i < 50; i++ {
		switch a := o.nextAction(TurnView{Turn: 4}); a {
		case ActionDraw, ActionInstallAgenda, ActionInstallAsset, ActionAdvance:
			t.Fatalf("offered action %d with nothing to perform it with", a)
		}
	}
}

func TestInstalledIceCounts(t *testing.T) {
	o := New(1)
	if o.InstalledIce() != 0 {
		t.Fatalf("InstalledIce = %d before any installs, want 0", o.InstalledIce())
	}
	o.clicks = 2
	o.perform(ActionInstallIce)
	o.perform(ActionInstallIce)
	if o.InstalledIce() != 2 {
		t.Errorf("InstalledIce = %d, want 2", o.InstalledIce())
	}
}

func TestStealAgendaOnlyWhenPresent(t *testing.T) {
	o := New(1)
	if pts := o.StealAgenda(); pts != 0 {
		t.Errorf("stole %d points before any agendas were installed", pts)
	}
	o.remotes = append(o.remotes, &remoteServer{name: "Remote Server 1", kind: "agenda", requirement: 3})
	pts := o.StealAgenda()
	if pts < 1 || pts > 3 {
		t.Errorf("stolen agenda worth %d points, want 1-3", pts)
	}
	if len(o.remotes) != 0 {
		t.Errorf("remotes = %d, want 0", len(o.remotes))
	}
}

func TestStrategyNames(t *testing.T) {
	want := map[Strategy]string{
		StrategyBalanced:   "Balanced",
		StrategyAggressive: "Aggressive",
		StrategyDefensive:  "Defensive",
		StrategyEconomic:   "Economic",
	}
	for s, name := range want {
		if s.String() != name {
			t.Errorf("Strategy(%d).String() = %q, want %q", s, s.String(), name)
		}
	}
}
