// Package visualiser renders ripple profiles. Renderers only read frames and
// snapshots handed over by the simulator and never touch the live field.
package visualiser
