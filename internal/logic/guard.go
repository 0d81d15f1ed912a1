// Package logic defines Guard, the pure-predicate value every path and
// check in the world graph carries. Guards are data, not methods on a
// type hierarchy: they are built by composing small named constructors,
// the way internal/prenode's And/Or sugar composes prerequisite trees.
package logic

import (
	"github.com/lorule/randomizer/internal/item"
	"github.com/lorule/randomizer/internal/progress"
	"github.com/lorule/randomizer/internal/settings"
)

// A Guard is a total, side-effect-free predicate over accumulated
// Progress (which itself carries the run's Settings). Callers may invoke
// a Guard an unbounded number of times per placement; it must never
// mutate p.
type Guard func(p *progress.Progress) bool

// Always returns a Guard with a fixed outcome, for ungated paths and
// checks.
func Always(ok bool) Guard {
	return func(*progress.Progress) bool { return ok }
}

// Has requires a single specific item tag.
func Has(it item.Item) Guard {
	return func(p *progress.Progress) bool { return p.Has(it) }
}

// HasAny requires at least one of the given tags — the idiom guards use
// for "any bottle", "any sword copy".
func HasAny(items ...item.Item) Guard {
	return func(p *progress.Progress) bool { return p.HasAny(items...) }
}

// HasAll requires every one of the given tags.
func HasAll(items ...item.Item) Guard {
	return func(p *progress.Progress) bool {
		for _, it := range items {
			if !p.Has(it) {
				return false
			}
		}
		return true
	}
}

// MinCount requires countFn(p) to reach at least min — used for "N
// portraits", "N purple rupees", sword level thresholds.
func MinCount(countFn func(*progress.Progress) int, min int) Guard {
	return func(p *progress.Progress) bool { return countFn(p) >= min }
}

// SettingIs gates on a predicate over the run's Settings alone, ignoring
// held items (lampless mode, swordless mode, logic mode floor).
func SettingIs(pred func(*settings.Settings) bool) Guard {
	return func(p *progress.Progress) bool { return pred(p.Settings()) }
}

// And requires every sub-guard to pass.
func And(guards ...Guard) Guard {
	return func(p *progress.Progress) bool {
		for _, g := range guards {
			if !g(p) {
				return false
			}
		}
		return true
	}
}

// Or requires at least one sub-guard to pass. An empty Or is vacuously
// false, matching "no way in" rather than "always open".
func Or(guards ...Guard) Guard {
	return func(p *progress.Progress) bool {
		for _, g := range guards {
			if g(p) {
				return true
			}
		}
		return false
	}
}

// Not inverts a guard.
func Not(g Guard) Guard {
	return func(p *progress.Progress) bool { return !g(p) }
}

// MinLogicMode requires the run's logic mode to be at least as permissive
// as floor (glitch-tier modes are ordered Normal < Hard < GlitchBasic <
// GlitchAdvanced < GlitchHell < NoLogic per settings.LogicMode).
func MinLogicMode(floor settings.LogicMode) Guard {
	return SettingIs(func(s *settings.Settings) bool { return s.Mode >= floor })
}
