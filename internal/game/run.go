package game

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/neondominance/internal/log"
)

// RunPhase tracks where the active run stands.
type RunPhase int

const (
	// RunApproaching means the run is moving toward the next ICE position
	// (or the server, when none remain).
	RunApproaching RunPhase = iota
	// RunEncountering means the run is paused at a piece of ICE waiting
	// for the runner to engage or jack out.
	RunEncountering
)

// Run is the state of the single active run. A game never holds more than
// one.
type Run struct {
	Server       string
	Approach     Approach
	Phase        RunPhase
	Ice          []Ice
	Index        int // position within Ice
	BypassTokens int
}

func (r *Run) PhaseName() string {
	if r.Phase == RunEncountering {
		return "encountering ICE"
	}
	return "approaching"
}

// CurrentIce returns the ICE at the run's position, or nil past the last.
func (r *Run) CurrentIce() *Ice {
	if r.Index < len(r.Ice) {
		return &r.Ice[r.Index]
	}
	return nil
}

// icePool is the Corporation's ICE repertoire. Obstacle generation draws
// from it per class slot.
var icePool = []Ice{
	{Name: "Ice Wall", Class: IceClassBarrier, Cost: 1, Strength: 1, Subroutines: 1, Description: "A simple barrier. Fires for 1 net damage unless broken."},
	{Name: "Enigma", Class: IceClassCodeGate, Cost: 3, Strength: 2, Subroutines: 2, Description: "A code gate. Fires for 2 net damage unless broken."},
	{Name: "Rototurret", Class: IceClassSentry, Cost: 4, Strength: 0, Subroutines: 1, Description: "A destroyer sentry. Harmless against a steady hand."},
	{Name: "Neural Katana", Class: IceClassSentry, Cost: 4, Strength: 3, Subroutines: 3, Description: "A killer sentry. Fires for 3 net damage unless broken."},
	{Name: "Wall of Static", Class: IceClassBarrier, Cost: 3, Strength: 3, Subroutines: 1, Description: "A sturdy barrier. Fires for 3 net damage unless broken."},
	{Name: "Tollbooth", Class: IceClassCodeGate, Cost: 8, Strength: 5, Subroutines: 2, Description: "A heavy code gate. Fires for 5 net damage unless broken."},
}

func isRemoteServer(server string) bool {
	return strings.HasPrefix(server, "Remote")
}

// iceCount is how many pieces of ICE protect a server at a given turn. Early
// turns are undefended, and remote servers run lighter than the centrals.
func iceCount(server string, turn int) int {
	remote := isRemoteServer(server)
	switch {
	case turn < 3:
		return 0
	case turn < 6:
		if remote {
			return 1
		}
		return 2
	default:
		if remote {
			return 2
		}
		return 3
	}
}

// slotClass fixes the class layout of a server's defenses: a barrier on the
// outside, then a code gate, then sentries.
func slotClass(i int) IceClass {
	switch i {
	case 0:
		return IceClassBarrier
	case 1:
		return IceClassCodeGate
	default:
		return IceClassSentry
	}
}

// generateIce builds the server's defenses deterministically from the turn
// and server name, so repeating a run against the same server on the same
// turn meets the same ICE.
func generateIce(server string, turn int) []Ice {
	n := iceCount(server, turn)
	if n == 0 {
		return nil
	}
	ice := make([]Ice, 0, n)
	for i := 0; i < n; i++ {
		class := slotClass(i)
		var candidates []Ice
		for _, c := range icePool {
			if c.Class == class {
				candidates = append(candidates, c)
			}
		}
		if len(candidates) == 0 {
			candidates = icePool
		}
		idx := (turn + int(server[0]) + i) % len(candidates)
		ice = append(ice, candidates[idx])
	}
	return ice
}

// beginRun creates the run state and advances it to the first pause point.
func (g *Game) beginRun(server string, approach Approach) error {
	r := &Run{
		Server:       server,
		Approach:     approach,
		Ice:          generateIce(server, g.turn),
		BypassTokens: g.pendingBypass,
	}
	g.pendingBypass = 0
	g.run = r

	g.record(log.GameEvent{
		Type:    log.EventRunBegin,
		Side:    SideRunner.String(),
		Server:  server,
		Value:   len(r.Ice),
		Details: fmt.Sprintf("%s run on %s, %d ICE", approach, server, len(r.Ice)),
	})
	g.renderer.Emit(fmt.Sprintf("You initiate a %s run on %s.", r.Approach, server))

	if approach == ApproachStealth {
		g.credits--
		if tokens := g.rng.Intn(2); tokens > 0 {
			r.BypassTokens += tokens
			g.renderer.Emit(fmt.Sprintf("Your stealth rig spins up %d bypass token.", tokens))
		} else {
			g.renderer.Emit("Your stealth rig finds no gap in the coverage.")
		}
	}

	g.advanceRun()
	return nil
}

// advanceRun moves the run forward: bypass tokens skip ICE silently, the
// first arrival at a guarded position pauses for a decision, and a second
// 'run' engages the ICE. Reaching the end of the defenses accesses the
// server.
func (g *Game) advanceRun() {
	r := g.run
	for {
		if r.Index >= len(r.Ice) {
			g.finishRunSuccess()
			return
		}
		ice := r.Ice[r.Index]

		if r.Phase != RunEncountering {
			if r.BypassTokens > 0 {
				r.BypassTokens--
				r.Index++
				g.record(log.GameEvent{
					Type:   log.EventIceBypass,
					Side:   SideRunner.String(),
					Server: r.Server,
					Card:   ice.Name,
				})
				g.renderer.Emit(fmt.Sprintf("You slip past %s unnoticed.", ice.Name))
				continue
			}
			r.Phase = RunEncountering
			g.record(log.GameEvent{
				Type:   log.EventIceApproach,
				Side:   SideRunner.String(),
				Server: r.Server,
				Card:   ice.Name,
			})
			g.renderer.Emit(fmt.Sprintf("You encounter %s. 'run' to engage, 'jack_out' to withdraw.", ice))
			return
		}

		if !g.resolveEncounter(ice) {
			return
		}
		r.Index++
		r.Phase = RunApproaching
	}
}

// resolveEncounter engages the ICE with installed breakers. An unbroken
// obstacle fires for its strength in net damage and the run pushes on to the
// next position. Only a careful approach withdraws instead of taking the
// hit. It reports whether the run continues.
func (g *Game) resolveEncounter(ice Ice) bool {
	bonus := 0
	if g.run.Approach == ApproachAggressive {
		bonus = 1
	}

	for _, ci := range g.installed {
		a := ci.Card.Ability
		if a == nil || a.Kind != AbilityBreakIce || !a.BreaksClass(ice.Class) {
			continue
		}
		if a.SubroutineCap > 0 && ice.Subroutines > a.SubroutineCap {
			continue
		}
		limit := a.MaxStrength
		if limit == 0 {
			limit = ci.Card.Strength
		}
		if limit+bonus < ice.Strength {
			continue
		}
		g.record(log.GameEvent{
			Type:    log.EventIceBreak,
			Side:    SideRunner.String(),
			Server:  g.run.Server,
			Card:    ci.Card.Name,
			Details: fmt.Sprintf("%s breaks %s", ci.Card.Name, ice.Name),
		})
		g.renderer.EmitSuccess(fmt.Sprintf("%s breaks %s.", ci.Card.Name, ice.Name))
		return true
	}

	// No breaker answers this ICE.
	if g.run.Approach == ApproachCareful {
		g.renderer.Emit(fmt.Sprintf("%s holds. You disengage before it can bite.", ice.Name))
		g.finishRunJackOut(true)
		return false
	}

	damage := ice.Strength
	if g.run.Approach == ApproachAggressive {
		damage--
		if damage < 1 {
			damage = 1
		}
	}
	if damage > 0 {
		g.record(log.GameEvent{
			Type:   log.EventIceDamage,
			Side:   SideRunner.String(),
			Card:   ice.Name,
			Server: g.run.Server,
			Value:  damage,
		})
		g.renderer.Emit(fmt.Sprintf("%s fires for %d net damage. You push through.", ice.Name, damage))
		g.takeDamage(damage, ice.Name)
	} else {
		g.renderer.Emit(fmt.Sprintf("%s fires but finds no purchase. You push through.", ice.Name))
	}
	return true
}

// jackOut rolls to withdraw from the active run. A failed roll leaves the
// run in place, still facing the same ICE.
func (g *Game) jackOut() error {
	r := g.run
	chance := 0.5
	ice := r.CurrentIce()
	if ice != nil {
		switch ice.Class {
		case IceClassCodeGate:
			chance -= 0.1
		case IceClassSentry:
			chance -= 0.2
		case IceClassBarrier:
			chance += 0.1
		}
	}
	chance += g.jackOutAssistBonus()
	if r.Approach == ApproachCareful {
		chance += 0.3
	}
	if chance < 0.05 {
		chance = 0.05
	}
	if chance > 0.95 {
		chance = 0.95
	}

	if g.rng.Float64() < chance {
		g.finishRunJackOut(false)
		return nil
	}

	if ice != nil {
		g.renderer.Emit(fmt.Sprintf("The trace holds you in place. You are still facing %s.", ice.Name))
	} else {
		g.renderer.Emit("The trace holds you in place.")
	}
	return nil
}

// finishRunSuccess accesses the server and fires successful-run triggers.
func (g *Game) finishRunSuccess() {
	r := g.run
	g.run = nil

	g.renderer.EmitSuccess(fmt.Sprintf("You breach %s.", r.Server))
	g.accessServer(r)

	for _, ci := range g.installed {
		if msg, ok := g.resolveAbility(ci, TriggerSuccessfulRun, nil); ok {
			g.renderer.Emit(msg)
		}
	}
}

func (g *Game) finishRunJackOut(forced bool) {
	r := g.run
	g.run = nil
	detail := "jacked out"
	if forced {
		detail = "disengaged before the ICE resolved"
	}
	g.record(log.GameEvent{
		Type:    log.EventJackOut,
		Side:    SideRunner.String(),
		Server:  r.Server,
		Details: detail,
	})
	g.renderer.Emit(fmt.Sprintf("You jack out. The run on %s ends.", r.Server))
}

// accessServer resolves what the runner finds. Remote servers expose
// whatever the Corporation installed there; central access rolls
// deterministically from the turn and server so identical runs find
// identical loot.
func (g *Game) accessServer(r *Run) {
	if isRemoteServer(r.Server) {
		g.accessRemote(r)
		return
	}

	roll := (g.turn*7 + int(r.Server[0])) % 10

	switch {
	case roll < 3:
		points := roll + 1
		g.runnerPoints += points
		g.record(log.GameEvent{
			Type:   log.EventAgendaScore,
			Side:   SideRunner.String(),
			Server: r.Server,
			Value:  points,
		})
		g.renderer.EmitSuccess(fmt.Sprintf("You steal an agenda worth %d points! (%d/%d)", points, g.runnerPoints, pointsToWin))

	case roll < 6:
		gained := roll
		g.credits += gained
		g.record(log.GameEvent{
			Type:   log.EventCreditChange,
			Side:   SideRunner.String(),
			Server: r.Server,
			Value:  gained,
		})
		g.renderer.EmitSuccess(fmt.Sprintf("You siphon %d credits from %s.", gained, r.Server))

	case roll < 8 && g.corp.TrashAsset():
		g.record(log.GameEvent{
			Type:    log.EventAccess,
			Side:    SideRunner.String(),
			Server:  r.Server,
			Details: "asset trashed",
		})
		g.renderer.EmitSuccess("You trash a Corporation asset.")

	default:
		g.record(log.GameEvent{
			Type:    log.EventAccess,
			Side:    SideRunner.String(),
			Server:  r.Server,
			Details: "nothing of value",
		})
		g.renderer.Emit("Nothing of value. The Corporation logs the intrusion.")
	}
}

// accessRemote raids the Corporation's installed remotes: an exposed agenda
// is stolen, an asset is trashed, an empty board yields nothing.
func (g *Game) accessRemote(r *Run) {
	if points := g.corp.StealAgenda(); points > 0 {
		g.runnerPoints += points
		g.record(log.GameEvent{
			Type:   log.EventAgendaScore,
			Side:   SideRunner.String(),
			Server: r.Server,
			Value:  points,
		})
		g.renderer.EmitSuccess(fmt.Sprintf("You steal an agenda worth %d points! (%d/%d)", points, g.runnerPoints, pointsToWin))
		return
	}
	if g.corp.TrashAsset() {
		g.record(log.GameEvent{
			Type:    log.EventAccess,
			Side:    SideRunner.String(),
			Server:  r.Server,
			Details: "asset trashed",
		})
		g.renderer.EmitSuccess("You trash a Corporation asset.")
		return
	}
	g.record(log.GameEvent{
		Type:    log.EventAccess,
		Side:    SideRunner.String(),
		Server:  r.Server,
		Details: "nothing of value",
	})
	g.renderer.Emit("The server is empty. The Corporation logs the intrusion.")
}
