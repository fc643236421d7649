// Package leveling converts cumulative XP into the level and
// progress-bar representation shown across the app. Every screen that
// displays a level goes through Compute; the formula lives nowhere else.
package leveling

import "fmt"

// BaseThreshold is the XP required to leave level 1.
const BaseThreshold = 100

// ThresholdStep is the amount each successive level threshold grows by.
const ThresholdStep = 50

// Info describes a learner's position within the level schedule.
type Info struct {
	// Level is the current level, starting at 1.
	Level int

	// XP is the XP earned within the current level (0 <= XP < XPNeeded).
	XP int

	// XPNeeded is the XP required to leave the current level.
	XPNeeded int
}

// ErrNegativeXP reports a caller error: total XP is a monotonically
// increasing counter and can never be negative.
type ErrNegativeXP struct {
	TotalXP int
}

func (e *ErrNegativeXP) Error() string {
	return fmt.Sprintf("leveling: negative total XP %d", e.TotalXP)
}

// Compute maps cumulative XP to level info. The threshold to advance
// out of level L is BaseThreshold + ThresholdStep*(L-1), so the
// sequence runs 100, 150, 200, … and the loop terminates after
// O(sqrt(totalXP)) iterations.
func Compute(totalXP int) (Info, error) {
	if totalXP < 0 {
		return Info{}, &ErrNegativeXP{TotalXP: totalXP}
	}

	level := 1
	threshold := BaseThreshold
	remaining := totalXP

	for remaining >= threshold {
		remaining -= threshold
		level++
		threshold += ThresholdStep
	}

	return Info{
		Level:    level,
		XP:       remaining,
		XPNeeded: threshold,
	}, nil
}

// TotalXP reconstructs the cumulative XP that produced this Info.
// Inverse of Compute; used by tests and the stats command.
func TotalXP(info Info) int {
	total := info.XP
	threshold := BaseThreshold
	for l := 1; l < info.Level; l++ {
		total += threshold
		threshold += ThresholdStep
	}
	return total
}

// Progress returns the fill ratio of the level progress bar, in [0, 1).
func Progress(info Info) float64 {
	if info.XPNeeded <= 0 {
		return 0
	}
	return float64(info.XP) / float64(info.XPNeeded)
}
