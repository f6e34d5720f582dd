package game

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/neondominance/internal/log"
)

// TriggerContext carries run-time context into an ability resolution. Fields
// are nil or zero when the trigger fires outside a run.
type TriggerContext struct {
	Ice           *Ice
	StrengthBonus int
}

// resolveAbility fires a card's ability for the given trigger. It returns a
// player-facing description and whether anything resolved. An ability whose
// kind or event does not match the trigger resolves to nothing; that is the
// normal case, not an error.
func (g *Game) resolveAbility(ci *CardInstance, trigger Trigger, tc *TriggerContext) (string, bool) {
	a := ci.Card.Ability
	if a == nil {
		return "", false
	}

	switch a.Kind {
	case AbilityBreakIce:
		// Breakers resolve inside encounters, not through the trigger
		// path.
		return "", false

	case AbilityPermanent:
		if trigger != TriggerInstall {
			return "", false
		}
		parts := make([]string, 0, len(a.Effects))
		for _, e := range a.Effects {
			switch e.Kind {
			case EffectIncreaseMemory:
				parts = append(parts, fmt.Sprintf("+%d MU", e.Value))
			case EffectIncreaseHandSize:
				parts = append(parts, fmt.Sprintf("+%d hand size", e.Value))
			case EffectJackOutAssist:
				parts = append(parts, "jack-out assistance")
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		msg := fmt.Sprintf("%s is online: %s.", ci.Card.Name, strings.Join(parts, ", "))
		g.logAbility(ci, msg, 0)
		return msg, true

	case AbilityTrigger:
		if a.Event != trigger {
			return "", false
		}
		if a.Frequency == FrequencyPerTurn && ci.UsedThisTurn {
			return "", false
		}
		msg := g.applyEffect(a.Effect, ci, tc)
		if msg == "" {
			return "", false
		}
		if a.Frequency == FrequencyPerTurn {
			ci.UsedThisTurn = true
		}
		g.logAbility(ci, msg, a.Effect.Value)
		return msg, true

	case AbilityOneTime:
		if trigger != TriggerPlay {
			return "", false
		}
		parts := make([]string, 0, len(a.Effects))
		for _, e := range a.Effects {
			if msg := g.applyEffect(e, ci, tc); msg != "" {
				parts = append(parts, msg)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		msg := strings.Join(parts, " ")
		g.logAbility(ci, msg, 0)
		return msg, true

	case AbilityResource:
		if trigger != TriggerInstall || ci.Counters == 0 {
			return "", false
		}
		msg := fmt.Sprintf("%s holds %d counters usable for %s costs.",
			ci.Card.Name, ci.Counters, a.ConsumableFor)
		g.logAbility(ci, msg, ci.Counters)
		return msg, true
	}

	return "", false
}

// applyEffect mutates game state for one effect and returns a description,
// or "" when the effect has no immediate action (static bonuses and damage
// prevention resolve elsewhere).
func (g *Game) applyEffect(e Effect, ci *CardInstance, tc *TriggerContext) string {
	switch e.Kind {
	case EffectGainCredits:
		g.credits += e.Value
		g.record(log.GameEvent{
			Type:  log.EventCreditChange,
			Side:  SideRunner.String(),
			Card:  ci.Card.Name,
			Value: e.Value,
		})
		return fmt.Sprintf("%s: gain %d credits (%d total).", ci.Card.Name, e.Value, g.credits)

	case EffectDrawCards:
		drawn := g.drawCards(e.Value)
		if drawn == 0 {
			return fmt.Sprintf("%s: your stack is empty.", ci.Card.Name)
		}
		return fmt.Sprintf("%s: draw %d cards.", ci.Card.Name, drawn)

	case EffectBypassIce:
		if g.run != nil {
			g.run.BypassTokens += e.Value
			return fmt.Sprintf("%s: gain %d bypass tokens.", ci.Card.Name, e.Value)
		}
		g.pendingBypass += e.Value
		return fmt.Sprintf("%s: your next run starts with %d bypass tokens.", ci.Card.Name, g.pendingBypass)

	case EffectIncreaseMemory, EffectIncreaseHandSize, EffectPreventDamage, EffectJackOutAssist:
		// Static or reactive; nothing to do at trigger time.
		return ""
	}
	return ""
}

func (g *Game) logAbility(ci *CardInstance, details string, value int) {
	g.record(log.GameEvent{
		Type:    log.EventAbility,
		Side:    SideRunner.String(),
		Card:    ci.Card.Name,
		Value:   value,
		Details: details,
	})
}

// jackOutAssistBonus sums installed jack-out assistance. Each assist adds a
// fixed 20% to the withdrawal chance.
func (g *Game) jackOutAssistBonus() float64 {
	bonus := 0.0
	for _, ci := range g.installed {
		a := ci.Card.Ability
		if a == nil || a.Kind != AbilityPermanent {
			continue
		}
		for _, e := range a.Effects {
			if e.Kind == EffectJackOutAssist {
				bonus += 0.2
			}
		}
	}
	return bonus
}
