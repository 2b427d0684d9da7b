// Package muses encodes control words for the MUSES72323 two-channel
// electronic volume controller.
//
// Every command is a 16-bit word. Bits [3:2] carry the select address
// (which register the word targets) and bits [1:0] the chip address, so up
// to four chips can share one serial bus. The remaining bits depend on the
// select address:
//
//	volume    [15:7] attenuation   [4] soft-step
//	gain      [15] link  [14:12] left  [11:9] right  [8] zero-cross
//	configure [14:13] zero-window  [12:10] clock divider  [9] soft-step clock
//
// Attenuation is expressed in device units of 0.25 dB where MinAttenuation
// (0x20) is the loudest step and the variant maximum the quietest; 0x1FF is
// reserved for mute.
//
// Encoding is pure: no I/O, no state, safe for concurrent use. Delivering the
// word (MSB first, one chip-select frame per word) belongs to the caller.
package muses
