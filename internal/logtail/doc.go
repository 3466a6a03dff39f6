// Package logtail reads the end of booktrack's log file and turns its JSON
// records into one-line text for `booktrack logs`.
//
// Read uses a ring buffer, so memory stays O(maxLines) regardless of file
// size, and returns lines in chronological order.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	for _, line := range logtail.FormatLines(lines) {
//		fmt.Println(line)
//	}
package logtail
