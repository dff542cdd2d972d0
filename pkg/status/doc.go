/*
Package status tracks what happened to each file in a batch write.

	            +-------------+
	            |   Tracker   |
	            | (outcomes)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |                         |
	+-----+------+           +------+-----+
	|  FileInfo  |           |  Progress  |
	| per target |           |  counters  |
	+------------+           +------------+

🎯 Purpose:
- Records one outcome per file (written, failed, skipped)
- Fingerprints written files so repeated runs can be compared
- Reports progress through zerolog while a batch runs

⚡ Key Responsibilities:
- Thread-safe bookkeeping for concurrent batches
- Summaries for the CLI exit status
- Formatting through the emoji FileFormatter

🔍 Example:

	tracker := status.New(zerolog.Ctx(ctx))
	tracker.StartOperation(ctx, len(paths))
	for _, p := range paths {
		tracker.TrackFile(ctx, p, status.FileInfo{Outcome: status.OutcomeWritten})
		tracker.Advance(ctx)
	}
	tracker.FinishOperation(ctx)
	if tracker.Summary().Failed > 0 {
		os.Exit(1)
	}
*/
package status
