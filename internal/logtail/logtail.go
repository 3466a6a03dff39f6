package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Read returns at most maxLines from the end of the file at path. A maxLines
// of zero or less returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded JSON log record.
type Entry struct {
	Timestamp string
	Level     string
	Message   string
	Fields    map[string]any
}

var reservedKeys = map[string]bool{
	"timestamp": true, "level": true, "msg": true, "caller": true, "stacktrace": true,
}

// Parse decodes a JSON log line. ok is false for lines that are not JSON
// objects.
func Parse(line string) (Entry, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") {
		return Entry{}, false
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return Entry{}, false
	}
	entry := Entry{
		Timestamp: stringField(raw, "timestamp"),
		Level:     strings.ToUpper(stringField(raw, "level")),
		Message:   stringField(raw, "msg"),
		Fields:    make(map[string]any),
	}
	for k, v := range raw {
		if !reservedKeys[k] {
			entry.Fields[k] = v
		}
	}
	return entry, true
}

// Format renders a JSON log line as "timestamp LEVEL message key=value ...".
// Fields are sorted by key. Non-JSON lines are returned unchanged.
func Format(line string) string {
	entry, ok := Parse(line)
	if !ok {
		return line
	}
	var b strings.Builder
	if entry.Timestamp != "" {
		b.WriteString(entry.Timestamp)
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s %s", entry.Level, entry.Message)

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
	}
	return b.String()
}

// FormatLines applies Format to each line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Format(line)
	}
	return out
}

func stringField(raw map[string]any, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}
