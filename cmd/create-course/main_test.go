package main

import (
	"bufio"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stemsi/elearning-backend/internal/validator"
)

func TestMain(m *testing.M) {
	validator.Setup()
	os.Exit(m.Run())
}

func newPrompter(input string) prompter {
	return prompter{reader: bufio.NewReader(strings.NewReader(input)), out: io.Discard}
}

func TestReadCourse(t *testing.T) {
	input := "Go Basics\nLearn Go\nProgramming\n\n19.5\n8\n\nyes\n"

	req, err := readCourse(newPrompter(input))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if req.Title != "Go Basics" || req.Category != "Programming" || req.Level != "" {
		t.Errorf("req = %+v", req)
	}
	if req.Price != 19.5 || req.DurationInHours != 8 || req.InstructorID != 0 || !req.IsPublished {
		t.Errorf("req = %+v", req)
	}
	if err := checkCourse(&req); err != nil {
		t.Errorf("check: %v", err)
	}
}

func TestReadCourseRejectsBadNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"price", "t\nd\nc\n\nfree\n", "price"},
		{"duration", "t\nd\nc\n\n0\n1.5\n", "duration"},
		{"instructor", "t\nd\nc\n\n0\n2\nbob\n", "instructor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readCourse(newPrompter(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestCheckCourseListsFields(t *testing.T) {
	req, err := readCourse(newPrompter("\n\n\n\n\n0\n"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	err = checkCourse(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	// Fields are sorted so the message is stable.
	if !strings.HasPrefix(msg, "category: ") {
		t.Errorf("message = %q", msg)
	}
	for _, field := range []string{"category", "description", "duration_in_hours", "title"} {
		if !strings.Contains(msg, field+": ") {
			t.Errorf("message %q missing %s", msg, field)
		}
	}
}
