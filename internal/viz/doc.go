// Package viz renders a running Lennard-Jones system in the terminal.
//
//   - [Canvas]: braille dot canvas with periodic particle discs
//   - [LiveModel]: Bubble Tea model advancing one batch per frame
//   - [EnergyPlot]: asciigraph chart of the kinetic and potential energy
//
// Renderers only ever see copies of the particle positions.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	T     - Cycle color themes
//	Q     - Quit
package viz
