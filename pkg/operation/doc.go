/*
Package operation runs batches of independent exiftool write jobs.

	+-------------+
	|   Runner    |
	| (batching)  |
	+------+------+
	       |
	+------+------+       +-------------+
	|     Job     +------>+  exiftool   |
	| (one file)  |       |   runners   |
	+------+------+       +-------------+
	       |
	+------+------+
	|   status    |
	|  Tracker    |
	+-------------+

🎯 Purpose:
- Turns a list of files plus tag operations into one write per file
- Runs them one after another or concurrently with a bounded worker count
- Records every outcome in a status.Tracker and the console logger

🔄 Flow:
1. Each Job picks a write kind (copy to a new file, overwrite, overwrite in place)
2. The Runner hands the job to the exiftool facade
3. The WriteResult or Go error becomes a status.FileInfo
4. Completions are recorded in whatever order they finish

⚡ Key Responsibilities:
- Bounding concurrency with errgroup
- Keeping one failed file from stopping the batch
- Stopping early only when the context is cancelled

🔍 Example:

	tool := exiftool.New(cfg.ExifTool)
	runner := operation.NewRunner(tool, status.New(zerolog.Ctx(ctx)), cfg.Async, cfg.Concurrency)

	jobs := []operation.Job{
		operation.NewJob("a.jpg", operation.KindOverwriteInPlace, ops),
		operation.NewJob("b.jpg", operation.KindCopy, ops).WithDestination("out/b.jpg"),
	}
	results, err := runner.Run(ctx, jobs)
*/
package operation
