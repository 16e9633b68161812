// Package media turns user-selected files into embeddable data URIs.
//
// Reading a file is the one asynchronous step in caretrack: Intake.Submit
// schedules the read on a worker pool and hands the result to a callback
// exactly once, after the read finishes. Files above the size cap are
// rejected before they are read.
package media
