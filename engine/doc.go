// Package engine runs the fixed-cadence render loop and the input watcher that stops it.
//
// The loop and the watcher share a single atomic stop flag. The loop checks it once per frame
// and never interrupts a frame in progress; the watcher's blocking read is never cancelled.
package engine
