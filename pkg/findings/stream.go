// Copyright (C) 2025 Lintbridge Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package findings

// =============================================================================
// Stream
// =============================================================================

// Stream is a finite, forward-only sequence of findings.
//
// # Description
//
// Extractors return a Stream rather than a reusable slice to make the
// consumption contract explicit: a stream is consumed exactly once, in
// the order the extractor emitted. Re-iterating an exhausted stream
// yields nothing; it is not an error.
//
// Extraction runs over already-captured text, so streams are backed by a
// materialized slice. That keeps the all-or-nothing error contract: any
// configuration or format error surfaces before the first finding is
// available, never mid-stream.
//
// # Thread Safety
//
// A Stream is single-consumer. Share the collected slice, not the stream.
type Stream struct {
	items []Finding
	pos   int
}

// NewStream wraps findings in a single-pass stream. The slice is owned by
// the stream after the call.
func NewStream(items []Finding) *Stream {
	return &Stream{items: items}
}

// Empty returns a stream that is already exhausted.
func Empty() *Stream {
	return &Stream{}
}

// Next returns the next finding and true, or a zero Finding and false
// once the stream is exhausted.
func (s *Stream) Next() (Finding, bool) {
	if s == nil || s.pos >= len(s.items) {
		return Finding{}, false
	}
	f := s.items[s.pos]
	s.pos++
	return f, true
}

// Collect drains the remaining findings into a slice, preserving emission
// order. A second Collect on the same stream returns an empty slice.
func (s *Stream) Collect() []Finding {
	if s == nil {
		return nil
	}
	out := make([]Finding, 0, len(s.items)-s.pos)
	for {
		f, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, f)
	}
}

// Remaining reports how many findings have not been consumed yet.
func (s *Stream) Remaining() int {
	if s == nil {
		return 0
	}
	return len(s.items) - s.pos
}

// Concat chains streams into one, preserving the argument order and each
// stream's internal order. This is the whole of result assembly: callers
// decide the order by the order they pass extractors' outputs, and no
// re-sorting ever happens here.
func Concat(streams ...*Stream) *Stream {
	total := 0
	for _, s := range streams {
		total += s.Remaining()
	}
	items := make([]Finding, 0, total)
	for _, s := range streams {
		items = append(items, s.Collect()...)
	}
	return NewStream(items)
}
