// Package control provides feedback controllers that drive the heater and
// cooler toward a target temperature.
//
// Controllers implement [Controller], turning the latest thermo.Frame into
// the input level for the next tick:
//
//   - [PID]: Proportional-Integral-Derivative demand on the temperature error
//   - [Thermostat]: switches heat or cool when the PID demand leaves a deadband
//
// # Usage
//
//	th := control.NewThermostat(control.NewPID(1.0, 0.05, 0.5, 60), 0.5)
//	control.Attach(sim, th)
//	// Decide is called after every frame
//
// [PID] supports live tuning through GetParams and SetParam.
package control
