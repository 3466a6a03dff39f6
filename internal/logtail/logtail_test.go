package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, expectedAll},
		{"read all (negative)", -1, expectedAll},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v, want nil, nil", got, err)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain line unchanged",
			input: "not json",
			want:  "not json",
		},
		{
			name:  "broken json unchanged",
			input: `{"msg":`,
			want:  `{"msg":`,
		},
		{
			name:  "fields sorted, reserved keys dropped",
			input: `{"level":"warn","timestamp":"2025-01-01T12:00:00.000Z","caller":"books/client.go:10","msg":"request failed","method":"GET","endpoint":"books"}`,
			want:  "2025-01-01T12:00:00.000Z WARN  request failed endpoint=books method=GET",
		},
		{
			name:  "numbers keep json form",
			input: `{"level":"debug","msg":"request completed","status":200}`,
			want:  "DEBUG request completed status=200",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.input); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatLines(t *testing.T) {
	got := FormatLines([]string{`{"level":"info","msg":"a"}`, "b"})
	want := []string{"INFO  a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FormatLines() = %v, want %v", got, want)
	}
}
