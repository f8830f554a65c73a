// Package speech reads cards aloud without blocking the session.
//
// A Dispatcher owns a single worker goroutine and keeps at most one
// utterance sequence in flight: every Say cancels whatever is playing and
// replaces anything still queued. Speakers do the actual playback, either by
// running an external text-to-speech command or by logging.
package speech
