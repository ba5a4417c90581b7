// Package thermo provides the simulation core for water being heated and cooled.
//
// The package is host-agnostic. A [Simulator] consumes two input levels
// (heating, cooling) and produces a [Frame] per tick:
//
//   - [Advance]: temperature integration under heating, cooling and ambient drift
//   - [RenderPhase]: liquid/ice/thermometer parameters for the current temperature
//   - [BubbleSystem] and [SteamSystem]: transient particles with spawn/decay lifecycles
//   - [Properties]: derived quantities (expansion, stress, work, entropy, units)
//
// # Time
//
// Every rate is expressed per nominal frame (60 per second). Elapsed time is
// measured in seconds and converted to frames, so the result is independent of
// the host's actual frame rate:
//
//	frames := elapsed * c.NominalFPS
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. A host drives one simulator from a
// single loop; input levels set between ticks take effect on the next tick.
package thermo
