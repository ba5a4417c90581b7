// Package viz provides the terminal front end for the water simulation.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the live session driving a thermo.Simulator from frame ticks
//   - [Canvas]: Braille-based pixel canvas implementing thermo.Surface
//   - [Vessel]: the tinted water column with bubble and steam overlays
//   - [Gauge]: a spring-eased thermometer
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	H     - Toggle heating
//	C     - Toggle cooling
//	Space - Release both inputs
//	A     - Toggle the feedback controller, when one is configured
//	R     - Reset to the initial temperature
//	T     - Cycle color themes
//	?     - Show help overlay
//
// # Mouse
//
// Pressing the left button on [ HEAT ] or [ COOL ] holds that input until
// the button is released. Enable mouse reporting with
// tea.WithMouseCellMotion.
package viz
