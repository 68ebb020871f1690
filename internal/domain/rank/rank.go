// Package rank maps cumulative points to the named tier ladder.
package rank

import (
	"fmt"

	"github.com/shuuuu87/DarkFocus/pkg/enum"
)

type Tier string

var (
	Dormant        = enum.New(Tier("Dormant"))
	Initiate       = enum.New(Tier("Initiate"))
	Grinder        = enum.New(Tier("Grinder"))
	Executor       = enum.New(Tier("Executor"))
	Obsessor       = enum.New(Tier("Obsessor"))
	Disciplinar    = enum.New(Tier("Disciplinar"))
	Sentinel       = enum.New(Tier("Sentinel"))
	Dominus        = enum.New(Tier("Dominus"))
	Phantom        = enum.New(Tier("Phantom"))
	ApexMind       = enum.New(Tier("Apex Mind"))
	SystemOverride = enum.New(Tier("System Override"))
	DarkensulCore  = enum.New(Tier("Darkensul Core"))
)

// thresholds[i] is the minimum points NOT yet reaching tiers[i]; a user with
// points < thresholds[i] and >= thresholds[i-1] holds tiers[i]. The last
// tier is unbounded.
var thresholds = []float64{101, 301, 601, 1001, 1501, 2001, 2601, 3301, 4001, 4701, 5501}

var tiers = []Tier{
	Dormant, Initiate, Grinder, Executor, Obsessor, Disciplinar,
	Sentinel, Dominus, Phantom, ApexMind, SystemOverride, DarkensulCore,
}

// Of returns the tier a user with the given cumulative points holds.
func Of(points float64) Tier {
	for i, threshold := range thresholds {
		if points < threshold {
			return tiers[i]
		}
	}

	return tiers[len(tiers)-1]
}

// Progress describes how far into the current tier bucket the points are.
func Progress(points float64) string {
	for i, threshold := range thresholds {
		if points < threshold {
			prev := 0.0
			if i > 0 {
				prev = thresholds[i-1]
			}

			return fmt.Sprintf("Progress: %.0f / %.0f points", points-prev, threshold-prev)
		}
	}

	return fmt.Sprintf("Progress: %.0f / ∞ points", points)
}
