// Package ripple simulates the growth of wind ripples on a one-dimensional
// granular bed driven by ballistic saltation impacts.
//
// A Field holds the discretised elevation profile. A Simulator fires grains at
// the bed along straight descending trajectories, erodes the first cell each
// trajectory meets and deposits the ejected material one cell downstream. After
// every event the first cell is tied to the last (periodic domain) and the
// profile is shifted back to zero mean.
//
// The profile is exposed to rendering collaborators in two ways: a push feed
// of Frames at the render cadence (FrameSink) and a fixed buffer of Snapshots
// captured at the save cadence. Callers may also drive the loop one event at a
// time with Step and read the profile between events.
package ripple
