/*
Package config loads the exifpipe configuration file.

	            +-------------+
	            |   Config    |
	            |  exiftool   |
	            |  batching   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Picks a parser by file extension
- Decodes the exiftool options and batch settings
- Fills defaults for anything left out

🔄 Flow:
1. Reads the file
2. Parses the format-specific syntax (unknown keys are rejected)
3. Validates and applies defaults

📝 Defaults:
- exiftool.executable_path falls back to "exiftool" on PATH
- concurrency falls back to the number of CPUs

🔍 Example:

	# exifpipe.yaml
	exiftool:
	  executable_path: /usr/local/bin/exiftool
	  escape_tag_values: true
	  extra_args: ["-P"]
	async: true
	concurrency: 4

	# exifpipe.hcl
	exiftool {
	  executable_path = "${home}/bin/exiftool"
	  keep_backup     = true
	}

	cfg, err := config.Load(ctx, "exifpipe.yaml")
	if err != nil {
		return err
	}
	tool := exiftool.New(cfg.ExifTool)
*/
package config
