// Package viz draws knot skeletons in the terminal.
//
//   - [Canvas]: braille pixel canvas, 2x4 dots per cell
//   - [Camera] and [Wireframe]: orbiting perspective projection onto a canvas
//   - [Profile]: per-segment series plotted with asciigraph
//   - [Viewer]: bubbletea model that edits a [knot.Builder] live
//
// # Key Bindings
//
//	n/N   - More / fewer nodes (full rebuild)
//	c/C   - Curvature (reframe)
//	w/W   - Twist angle (reframe)
//	f     - Toggle loop end fixing (reframe)
//	l     - Toggle closed loop (full rebuild)
//	Tab   - Select curve parameter, Up/Down to change it
//	Space - Toggle camera spin
//	T     - Cycle color themes
//
// Setters called between two ticks are merged; the viewer applies one
// rebuild per tick.
package viz
