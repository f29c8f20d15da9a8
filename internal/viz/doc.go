// Package viz draws the attractor's RGBA frame in a terminal.
//
// A frame is downscaled onto a [Canvas] of braille cells, 2x4 dots per
// cell, with ordered dithering standing in for grey levels. Each cell is
// tinted with the average colour of its lit dots.
//
// [Palette] values are the foreground/background pairs offered by the
// explorer, and the styles in this package dress the surrounding panels.
package viz
