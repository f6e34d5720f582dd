package game

import (
	"testing"

	"github.com/peterkuimelis/neondominance/internal/log"
)

// Early servers are undefended: a turn-1 run reaches the server without
// meeting any ICE.
func TestEarlyRunMeetsNoIce(t *testing.T) {
	g, logger := newTestGame(t, paddedCatalog(nil, 20), 1)

	mustExec(t, g, "run R&D")

	if g.ActiveRun() != nil {
		t.Fatal("run still active after an undefended server")
	}
	begins := logger.EventsOfType(log.EventRunBegin)
	if len(begins) != 1 {
		t.Fatalf("run begin events = %d, want 1", len(begins))
	}
	if begins[0].Value != 0 {
		t.Errorf("ICE count = %d, want 0 before turn 3", begins[0].Value)
	}
	if len(logger.EventsOfType(log.EventIceApproach)) != 0 {
		t.Error("approached ICE on an undefended server")
	}
	if g.Clicks() != 3 {
		t.Errorf("clicks = %d, want 3", g.Clicks())
	}
}

// Identical turn and server produce identical defenses.
func TestIceGenerationIsDeterministic(t *testing.T) {
	a := generateIce("R&D", 3)
	b := generateIce("R&D", 3)
	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("ICE counts = %d, %d, want 2 at turn 3", len(a), len(b))
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			t.Errorf("position %d: %s vs %s", i, a[i].Name, b[i].Name)
		}
	}
	if a[0].Class != IceClassBarrier {
		t.Errorf("outermost ICE class = %s, want Barrier", a[0].Class)
	}
	if a[1].Class != IceClassCodeGate {
		t.Errorf("second ICE class = %s, want Code Gate", a[1].Class)
	}

	if n := len(generateIce("HQ", 7)); n != 3 {
		t.Errorf("ICE count at turn 7 = %d, want 3", n)
	}

	// Remotes run lighter than the centrals.
	if n := len(generateIce("Remote 1", 3)); n != 1 {
		t.Errorf("remote ICE count at turn 3 = %d, want 1", n)
	}
	if n := len(generateIce("Remote 1", 7)); n != 2 {
		t.Errorf("remote ICE count at turn 7 = %d, want 2", n)
	}
	if n := len(generateIce("Remote 2", 1)); n != 0 {
		t.Errorf("remote ICE count at turn 1 = %d, want 0", n)
	}
}

func TestRunPausesAtIce(t *testing.T) {
	g, logger := newTestGame(t, paddedCatalog(nil, 30), 1)
	endTurnPastCorp(t, g) // to turn 3, where servers have ICE

	mustExec(t, g, "run R&D")

	r := g.ActiveRun()
	if r == nil {
		t.Fatal("no active run")
	}
	if r.Phase != RunEncountering {
		t.Fatalf("run phase = %v, want encountering", r.Phase)
	}
	ice := r.CurrentIce()
	if ice == nil || ice.Name != "Wall of Static" {
		t.Fatalf("current ICE = %v, want Wall of Static", ice)
	}
	if n := len(logger.EventsOfType(log.EventIceApproach)); n != 1 {
		t.Errorf("approach events = %d, want 1", n)
	}

	// Mutating commands are locked out during a run.
	wantPrecondition(t, g, "draw")
	wantPrecondition(t, g, "end")
	wantPrecondition(t, g, "run HQ")
	if g.ActiveRun() == nil {
		t.Fatal("rejected commands ended the run")
	}

	// Read-only commands still work.
	mustExec(t, g, "system")
	mustExec(t, g, "hand")
}

// An engaged piece of ICE that no breaker answers fires for its strength in
// net damage, and the run keeps moving toward the server.
func TestUnbrokenIceFiresForItsStrength(t *testing.T) {
	g, logger := newTestGame(t, paddedCatalog(nil, 30), 1)
	endTurnPastCorp(t, g)

	mustExec(t, g, "run R&D") // pause at Wall of Static
	mustExec(t, g, "run")     // engage with no breaker: 3 damage, push on

	r := g.ActiveRun()
	if r == nil {
		t.Fatal("run ended at the first obstacle")
	}
	if ice := r.CurrentIce(); ice == nil || ice.Name != "Enigma" {
		t.Fatalf("current ICE = %v, want Enigma", ice)
	}
	if len(g.Hand()) != 2 {
		t.Errorf("hand = %d cards, want 2 after 3 net damage", len(g.Hand()))
	}

	mustExec(t, g, "run") // Enigma fires for 2, then breach

	if g.ActiveRun() != nil {
		t.Fatal("run still active after the last obstacle")
	}
	if len(g.Hand()) != 0 {
		t.Errorf("hand = %d cards, want 0 after 5 total net damage", len(g.Hand()))
	}
	// Turn 3 against R&D siphons 3 credits on access.
	if g.Credits() != 8 {
		t.Errorf("credits = %d, want 8", g.Credits())
	}
	damages := logger.EventsOfType(log.EventIceDamage)
	if len(damages) != 2 || damages[0].Value != 3 || damages[1].Value != 2 {
		t.Fatalf("damage events = %v, want values 3 then 2", damages)
	}
}

// A partial rig takes the hits it cannot break but still reaches the server.
func TestPartialRigStillReachesTheServer(t *testing.T) {
	crowbar := breakerCard("Crowbar", IceClassBarrier, 3, 1, 1)
	g, logger := newTestGame(t, paddedCatalog([]*Card{crowbar}, 30), 1)

	mustExec(t, g, "install Crowbar") // 5 -> 4 credits
	endTurnPastCorp(t, g)

	mustExec(t, g, "run R&D")
	mustExec(t, g, "run") // Crowbar breaks Wall of Static, pause at Enigma
	if ice := g.ActiveRun().CurrentIce(); ice == nil || ice.Name != "Enigma" {
		t.Fatalf("current ICE = %v, want Enigma", ice)
	}
	handBefore := len(g.Hand())
	mustExec(t, g, "run") // no decoder: Enigma fires for 2, then breach

	if g.ActiveRun() != nil {
		t.Fatal("run still active after the last obstacle")
	}
	if len(g.Hand()) != handBefore-2 {
		t.Errorf("hand = %d cards, want %d after Enigma's 2 damage", len(g.Hand()), handBefore-2)
	}
	// 4 credits plus the turn-3 R&D siphon of 3.
	if g.Credits() != 7 {
		t.Errorf("credits = %d, want 7", g.Credits())
	}
	if n := len(logger.EventsOfType(log.EventIceBreak)); n != 1 {
		t.Errorf("break events = %d, want 1", n)
	}
}

// A breaker with a subroutine cap cannot answer ICE carrying more
// subroutines than the cap, whatever its strength.
func TestSubroutineCapLimitsBreakers(t *testing.T) {
	capped := &Card{
		Name:        "Hammerhand",
		Type:        CardTypeIcebreaker,
		Cost:        1,
		MemoryUnits: 1,
		Strength:    5,
		Ability: &Ability{
			Kind:          AbilityBreakIce,
			IceClasses:    []IceClass{IceClassAll},
			MaxStrength:   5,
			SubroutineCap: 1,
		},
	}
	g, logger := newTestGame(t, paddedCatalog([]*Card{capped}, 30), 1)

	mustExec(t, g, "install Hammerhand")
	endTurnPastCorp(t, g)

	mustExec(t, g, "run R&D")
	mustExec(t, g, "run") // Wall of Static: 1 subroutine, broken
	mustExec(t, g, "run") // Enigma: 2 subroutines, over the cap

	breaks := logger.EventsOfType(log.EventIceBreak)
	if len(breaks) != 1 || breaks[0].Details != "Hammerhand breaks Wall of Static" {
		t.Fatalf("break events = %v, want only Wall of Static broken", breaks)
	}
	damages := logger.EventsOfType(log.EventIceDamage)
	if len(damages) != 1 || damages[0].Card != "Enigma" || damages[0].Value != 2 {
		t.Fatalf("damage events = %v, want Enigma firing for 2", damages)
	}
	if g.ActiveRun() != nil {
		t.Fatal("run still active after the last obstacle")
	}
}

func TestFullBreachAccessesServer(t *testing.T) {
	fracter := breakerCard("Fracter", IceClassBarrier, 3, 1, 1)
	decoder := breakerCard("Decoder", IceClassCodeGate, 4, 1, 1)
	g, logger := newTestGame(t, paddedCatalog([]*Card{fracter, decoder}, 30), 1)

	mustExec(t, g, "install Fracter")
	mustExec(t, g, "install Decoder")
	endTurnPastCorp(t, g)

	mustExec(t, g, "run R&D")
	mustExec(t, g, "run")
	mustExec(t, g, "run")

	if g.ActiveRun() != nil {
		t.Fatal("run still active after breaching")
	}
	// Turn 3 against R&D siphons 3 credits: 5 - 2 installs + 3.
	if g.Credits() != 6 {
		t.Errorf("credits = %d, want 6", g.Credits())
	}
	if n := len(logger.EventsOfType(log.EventIceBreak)); n != 2 {
		t.Errorf("break events = %d, want 2", n)
	}
}

func TestAggressiveApproachBoostsBreakers(t *testing.T) {
	weak := breakerCard("Chisel", IceClassBarrier, 2, 1, 1)

	// Standard approach: strength 2 cannot answer Wall of Static (3), which
	// fires for its strength.
	g, plainLog := newTestGame(t, paddedCatalog([]*Card{weak}, 30), 1)
	mustExec(t, g, "install Chisel")
	endTurnPastCorp(t, g)
	mustExec(t, g, "run R&D")
	mustExec(t, g, "run")
	if len(plainLog.EventsOfType(log.EventIceBreak)) != 0 {
		t.Fatal("Chisel broke a barrier above its strength")
	}
	if ice := g.ActiveRun().CurrentIce(); ice == nil || ice.Name != "Enigma" {
		t.Fatalf("current ICE = %v, want Enigma after pushing past the wall", ice)
	}

	// Aggressive approach: +1 strength gets it over the wall.
	g2, logger := newTestGame(t, paddedCatalog([]*Card{weak}, 30), 1)
	mustExec(t, g2, "install Chisel")
	endTurnPastCorp(t, g2)
	mustExec(t, g2, "run R&D --aggressive")
	mustExec(t, g2, "run")
	breaks := logger.EventsOfType(log.EventIceBreak)
	if len(breaks) != 1 || breaks[0].Card != "Chisel" {
		t.Fatalf("break events = %v, want one by Chisel", breaks)
	}
}

// Unbroken ICE fires for 1 less damage under an aggressive approach, with a
// floor of 1.
func TestAggressiveApproachSoftensUnbrokenIce(t *testing.T) {
	g, logger := newTestGame(t, paddedCatalog(nil, 30), 1)
	endTurnPastCorp(t, g)

	mustExec(t, g, "run R&D --aggressive")
	mustExec(t, g, "run") // Wall of Static (3) fires for 2
	mustExec(t, g, "run") // Enigma (2) fires for 1

	damages := logger.EventsOfType(log.EventIceDamage)
	if len(damages) != 2 || damages[0].Value != 2 || damages[1].Value != 1 {
		t.Fatalf("damage events = %v, want values 2 then 1", damages)
	}
	if len(g.Hand()) != 2 {
		t.Errorf("hand = %d cards, want 2 after 3 total net damage", len(g.Hand()))
	}
	if g.ActiveRun() != nil {
		t.Fatal("run still active after the last obstacle")
	}
}

func TestCarefulApproachDisengagesSafely(t *testing.T) {
	g, logger := newTestGame(t, paddedCatalog(nil, 30), 1)
	endTurnPastCorp(t, g)

	handBefore := len(g.Hand())
	mustExec(t, g, "run R&D --careful")
	mustExec(t, g, "run") // engage without a breaker

	if g.ActiveRun() != nil {
		t.Fatal("run still active")
	}
	if n := len(logger.EventsOfType(log.EventJackOut)); n != 1 {
		t.Fatalf("jack out events = %d, want 1", n)
	}
	if len(g.Hand()) != handBefore || g.Credits() != 5 {
		t.Error("careful disengage still took a penalty")
	}
}

// A failed jack-out leaves the run in place at the same obstacle, free to
// retry; only a successful roll ends it.
func TestFailedJackOutLeavesRunInPlace(t *testing.T) {
	g, logger := newTestGame(t, paddedCatalog(nil, 30), 1)
	endTurnPastCorp(t, g)

	mustExec(t, g, "run R&D")
	for i := 0; i < 100 && g.ActiveRun() != nil; i++ {
		mustExec(t, g, "jack_out")
		if r := g.ActiveRun(); r != nil {
			if ice := r.CurrentIce(); ice == nil || ice.Name != "Wall of Static" {
				t.Fatalf("after failed jack_out: current ICE = %v, want Wall of Static", ice)
			}
		}
	}
	if g.ActiveRun() != nil {
		t.Fatal("jack_out never succeeded in 100 attempts")
	}
	if n := len(logger.EventsOfType(log.EventJackOut)); n != 1 {
		t.Errorf("jack out events = %d, want 1 (failed attempts are not withdrawals)", n)
	}
	if g.Credits() != 5 || len(g.Hand()) != 5 {
		t.Errorf("credits = %d, hand = %d: failed attempts must carry no penalty", g.Credits(), len(g.Hand()))
	}
}

func TestJackOutWithoutRun(t *testing.T) {
	g, _ := newTestGame(t, paddedCatalog(nil, 20), 1)
	wantPrecondition(t, g, "jack_out")
}

func TestStealthApproachCostsCredit(t *testing.T) {
	g, _ := newTestGame(t, paddedCatalog(nil, 30), 1)
	endTurnPastCorp(t, g)

	mustExec(t, g, "run R&D --stealth")
	if g.Credits() != 4 {
		t.Errorf("credits = %d, want 4 after paying the stealth cost", g.Credits())
	}
}

func TestBypassTokenSkipsIce(t *testing.T) {
	route := eventCard("Ghost Route", 0, Effect{Kind: EffectBypassIce, Value: 1})
	g, logger := newTestGame(t, paddedCatalog([]*Card{route}, 30), 1)
	endTurnPastCorp(t, g)

	mustExec(t, g, "install Ghost Route") // played: stages a bypass token
	mustExec(t, g, "run R&D")

	if n := len(logger.EventsOfType(log.EventIceBypass)); n != 1 {
		t.Fatalf("bypass events = %d, want 1", n)
	}
	r := g.ActiveRun()
	if r == nil {
		t.Fatal("no active run")
	}
	if ice := r.CurrentIce(); ice == nil || ice.Name != "Enigma" {
		t.Fatalf("current ICE = %v, want Enigma (Wall of Static bypassed)", ice)
	}
}

func TestRunRequiresKnownServer(t *testing.T) {
	g, _ := newTestGame(t, paddedCatalog(nil, 20), 1)
	wantPrecondition(t, g, "run mainframe")
	wantPrecondition(t, g, "run")
	wantPrecondition(t, g, "run 0")
	wantPrecondition(t, g, "run 4")
	wantPrecondition(t, g, "run remote 9")
}

// Remote servers are run by index, and an empty remote yields nothing.
func TestRemoteRunByIndex(t *testing.T) {
	g, logger := newTestGame(t, paddedCatalog(nil, 30), 1)

	mustExec(t, g, "run 1") // turn 1: undefended, and the corp has installed nothing

	if g.ActiveRun() != nil {
		t.Fatal("run still active after an undefended remote")
	}
	if g.Clicks() != 3 {
		t.Errorf("clicks = %d, want 3", g.Clicks())
	}
	access := logger.EventsOfType(log.EventAccess)
	if len(access) != 1 || access[0].Details != "nothing of value" {
		t.Fatalf("access events = %v, want one empty remote access", access)
	}
	if access[0].Server != "Remote 1" {
		t.Errorf("access server = %q, want Remote 1", access[0].Server)
	}

	// The longhand spelling names the same server.
	mustExec(t, g, "run remote 2")
	if g.ActiveRun() != nil {
		t.Fatal("run still active after an undefended remote")
	}
	begins := logger.EventsOfType(log.EventRunBegin)
	if len(begins) != 2 || begins[1].Server != "Remote 2" {
		t.Fatalf("run begin events = %v, want a second on Remote 2", begins)
	}
}
