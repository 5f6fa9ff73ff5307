// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jstreamer implements a callback-driven reader for streams of
// structured data events, such as those produced by a JSON tokenizer.
//
// # Sources and Cursors
//
// A Source reports a forward-only sequence of events: the start and end of
// records and arrays, and scalar values. Immediately after each event, the
// source can report the innermost frame of its context: the name of the field
// or the offset of the array element the event belongs to. Packages
// jsonsource and yamlsource provide sources for JSON and YAML text; an
// EventList reports events held in memory.
//
// A traversal begins by wrapping a source in a Cursor. The cursor is the only
// handle on the source during the traversal, and every reader and handler
// advances the stream through it:
//
//	c := jstreamer.NewCursor(jsonsource.New(input))
//	c.SetMaxDepth(64)
//
// # Records and Handlers
//
// A RecordReader reads the fields of a record and gives each to a Handler
// chosen by the field name. Fields without a registered handler go to the
// default handler, which discards them:
//
//	var id value.Value
//	names := value.Record{}
//
//	r := jstreamer.NewRecordReader()
//	r.SetHandler("id", jstreamer.Capture(&id))
//	r.SetHandler("items", jstreamer.ForEachElement(func(v value.Value) error {
//	   log.Printf("Item: %v", v)
//	   return nil
//	}))
//	r.SetDefaultHandler(jstreamer.CopyInto(names))
//	if err := r.ReadDocument(c); err != nil {
//	   log.Fatalf("Read failed: %v", err)
//	}
//
// A handler is called with the cursor positioned just after the first event
// of the field's value, and must consume exactly the rest of that value
// before it returns. The reader cannot check this in general; a handler that
// reads too little or too much corrupts the rest of the traversal. During
// testing, call Cursor.CheckHandlers to have the cursor verify each handler.
//
// # Materializing
//
// Materialize, MaterializeArray, and MaterializeRecord consume complete
// values and return them as value.Value trees. These are what the built-in
// handlers use, and what a custom handler can fall back to for any part of a
// value it does not need to stream.
//
// # Errors
//
// A *ContractViolation reports that the source, reader, and handlers disagree
// about the structure of the stream, or that the input exceeds the nesting
// limit of the cursor. An *IncompleteError reports that the input ended in the
// middle of a value. Neither can be recovered from, and the traversal stops.
//
// An event that cannot begin a value, found where a value is expected, is an
// anomaly. By default the cursor logs the anomaly and materializes a null in
// its place; in strict mode (see Cursor.SetStrict) it is an *AnomalyError.
package jstreamer
