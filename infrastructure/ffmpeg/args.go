package ffmpeg

import "strconv"

// FormatSeconds renders a timestamp for ffmpeg as fixed-point decimal with
// exactly three fractional digits (millisecond precision), independent of
// locale.
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}

// CopyTrimArgs builds the argument vector for a stream-copy trim. The order
// is a contract: -ss precedes -i for fast input seeking, and the output path
// is always the final token. Paths are passed through verbatim, with no
// normalization or escaping.
func CopyTrimArgs(inputPath, outputPath string, start, duration float64) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-ss", FormatSeconds(start),
		"-i", inputPath,
		"-t", FormatSeconds(duration),
		"-c", "copy",
		"-avoid_negative_ts", "make_zero",
		"-reset_timestamps", "1",
		"-movflags", "+faststart",
		"-y",
		outputPath,
	}
}
