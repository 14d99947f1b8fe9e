// Package reload hands freshly loaded documents to readers without
// blocking them.
//
// A [Slot] holds the latest published [Snapshot]. A [Worker] runs loads
// on its own goroutine when triggered; triggers that arrive while a load
// is in flight coalesce into one follow-up load, and the in-flight result
// is discarded because a newer request exists. Readers call
// [Slot.Load] at any time and may keep using a snapshot after it has
// been replaced.
package reload
