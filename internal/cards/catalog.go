// Package cards loads the runner's card catalog from YAML descriptors.
package cards

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/neondominance/internal/game"
)

//go:embed cards.yaml
var builtinCatalog []byte

type catalogFile struct {
	Cards []cardSpec `yaml:"cards"`
}

type cardSpec struct {
	Name        string       `yaml:"name"`
	Type        string       `yaml:"type"`
	Subtype     string       `yaml:"subtype"`
	Cost        int          `yaml:"cost"`
	Memory      int          `yaml:"memory"`
	Strength    int          `yaml:"strength"`
	Copies      int          `yaml:"copies"`
	Description string       `yaml:"description"`
	Ability     *abilitySpec `yaml:"ability"`
}

type abilitySpec struct {
	Kind string `yaml:"kind"`

	IceClasses    []string `yaml:"ice_classes"`
	MaxStrength   int      `yaml:"max_strength"`
	SubroutineCap int      `yaml:"subroutine_cap"`

	Effects []effectSpec `yaml:"effects"`

	Event     string     `yaml:"event"`
	Effect    effectSpec `yaml:"effect"`
	Frequency string     `yaml:"frequency"`

	Counters      int    `yaml:"counters"`
	ConsumableFor string `yaml:"consumable_for"`
}

type effectSpec struct {
	Kind  string `yaml:"kind"`
	Value int    `yaml:"value"`
}

// Load parses the built-in catalog. The deck holds every card the number of
// times its descriptor says.
func Load() ([]*game.Card, error) {
	return parse(builtinCatalog)
}

// LoadFile parses a catalog from disk, for custom decks.
func LoadFile(path string) ([]*game.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cards: read catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) ([]*game.Card, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("cards: parse catalog: %w", err)
	}
	if len(file.Cards) == 0 {
		return nil, fmt.Errorf("cards: catalog has no cards")
	}

	var out []*game.Card
	for i, spec := range file.Cards {
		card, err := spec.toCard()
		if err != nil {
			return nil, fmt.Errorf("cards: card %d (%s): %w", i+1, spec.Name, err)
		}
		copies := spec.Copies
		if copies <= 0 {
			copies = 1
		}
		for c := 0; c < copies; c++ {
			out = append(out, card)
		}
	}
	return out, nil
}

func (s cardSpec) toCard() (*game.Card, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	ctype, ok := game.ParseCardType(s.Type)
	if !ok {
		return nil, fmt.Errorf("unknown card type %q", s.Type)
	}
	if s.Cost < 0 {
		return nil, fmt.Errorf("negative cost %d", s.Cost)
	}

	card := &game.Card{
		Name:        s.Name,
		Type:        ctype,
		Subtype:     s.Subtype,
		Cost:        s.Cost,
		MemoryUnits: s.Memory,
		Strength:    s.Strength,
		Description: s.Description,
	}

	if s.Ability != nil {
		ability, err := s.Ability.toAbility()
		if err != nil {
			return nil, err
		}
		card.Ability = ability
	}
	if ctype == game.CardTypeIcebreaker {
		if card.Ability == nil || card.Ability.Kind != game.AbilityBreakIce {
			return nil, fmt.Errorf("icebreaker needs a break_ice ability")
		}
	}
	return card, nil
}

func (s *abilitySpec) toAbility() (*game.Ability, error) {
	switch s.Kind {
	case "break_ice":
		if len(s.IceClasses) == 0 {
			return nil, fmt.Errorf("break_ice ability needs ice_classes")
		}
		classes := make([]game.IceClass, 0, len(s.IceClasses))
		for _, name := range s.IceClasses {
			class, ok := game.ParseIceClass(name)
			if !ok {
				return nil, fmt.Errorf("unknown ice class %q", name)
			}
			classes = append(classes, class)
		}
		return &game.Ability{
			Kind:          game.AbilityBreakIce,
			IceClasses:    classes,
			MaxStrength:   s.MaxStrength,
			SubroutineCap: s.SubroutineCap,
		}, nil

	case "permanent":
		effects, err := parseEffects(s.Effects)
		if err != nil {
			return nil, err
		}
		return &game.Ability{Kind: game.AbilityPermanent, Effects: effects}, nil

	case "trigger":
		event, ok := game.ParseTrigger(s.Event)
		if !ok {
			return nil, fmt.Errorf("unknown trigger event %q", s.Event)
		}
		effect, err := parseEffect(s.Effect)
		if err != nil {
			return nil, err
		}
		freq := game.FrequencyAlways
		switch s.Frequency {
		case "", "always":
		case "per_turn":
			freq = game.FrequencyPerTurn
		default:
			return nil, fmt.Errorf("unknown frequency %q", s.Frequency)
		}
		return &game.Ability{
			Kind:      game.AbilityTrigger,
			Event:     event,
			Effect:    effect,
			Frequency: freq,
		}, nil

	case "one_time":
		effects, err := parseEffects(s.Effects)
		if err != nil {
			return nil, err
		}
		if len(effects) == 0 {
			return nil, fmt.Errorf("one_time ability needs effects")
		}
		return &game.Ability{Kind: game.AbilityOneTime, Effects: effects}, nil

	case "resource":
		if s.Counters <= 0 {
			return nil, fmt.Errorf("resource ability needs counters")
		}
		if s.ConsumableFor == "" {
			return nil, fmt.Errorf("resource ability needs consumable_for")
		}
		return &game.Ability{
			Kind:          game.AbilityResource,
			Counters:      s.Counters,
			ConsumableFor: s.ConsumableFor,
		}, nil

	default:
		return nil, fmt.Errorf("unknown ability kind %q", s.Kind)
	}
}

func parseEffects(specs []effectSpec) ([]game.Effect, error) {
	effects := make([]game.Effect, 0, len(specs))
	for _, es := range specs {
		e, err := parseEffect(es)
		if err != nil {
			return nil, err
		}
		effects = append(effects, e)
	}
	return effects, nil
}

func parseEffect(s effectSpec) (game.Effect, error) {
	kind, ok := game.ParseEffectKind(s.Kind)
	if !ok {
		return game.Effect{}, fmt.Errorf("unknown effect kind %q", s.Kind)
	}
	return game.Effect{Kind: kind, Value: s.Value}, nil
}
