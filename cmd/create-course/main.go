package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/stemsi/elearning-backend/internal/apperror"
	"github.com/stemsi/elearning-backend/internal/config"
	"github.com/stemsi/elearning-backend/internal/logger"
	"github.com/stemsi/elearning-backend/internal/model"
	"github.com/stemsi/elearning-backend/internal/repository"
	"github.com/stemsi/elearning-backend/internal/storage"
	"github.com/stemsi/elearning-backend/internal/validator"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.StorageDriver == config.DriverMemory {
		return fmt.Errorf("create-course needs persistent storage, got %q", cfg.StorageDriver)
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName)
	validator.Setup()

	ctx := context.Background()

	// ─── Open Storage ──────────────────────────────────────────────────
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	courseRepo := repository.NewCourseRepository(store.Courses, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	// Prompts are only printed for an interactive session so the command
	// can also be fed from a pipe.
	p := prompter{
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}

	if p.interactive {
		fmt.Println("=== Create New Course ===")
	}

	req, err := readCourse(p)
	if err != nil {
		return err
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	if err := checkCourse(&req); err != nil {
		return err
	}

	course, err := courseRepo.Create(ctx, req.ToCourse())
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	fmt.Printf("\nSuccess! Course '%s' created with ID: %d\n", course.Title, course.ID)
	return nil
}

type prompter struct {
	reader      *bufio.Reader
	out         io.Writer
	interactive bool
}

func (p prompter) ask(label string) string {
	if p.interactive {
		fmt.Fprintf(p.out, "Enter %s: ", label)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return strings.TrimSpace(line)
}

// readCourse collects one course from the prompter, in form order.
func readCourse(p prompter) (model.CourseRequest, error) {
	req := model.CourseRequest{
		Title:       p.ask("Title"),
		Description: p.ask("Description"),
		Category:    p.ask("Category"),
		Level:       p.ask("Level (default Beginner)"),
	}

	var err error
	if req.Price, err = parseFloat(p.ask("Price (default 0)")); err != nil {
		return req, errors.New("price must be a number")
	}
	if req.DurationInHours, err = parseInt(p.ask("Duration in hours")); err != nil {
		return req, errors.New("duration must be a whole number")
	}
	if req.InstructorID, err = parseInt(p.ask("Instructor ID (default 0)")); err != nil {
		return req, errors.New("instructor ID must be a whole number")
	}
	published := strings.ToLower(p.ask("Published? [y/N]"))
	req.IsPublished = published == "y" || published == "yes"

	return req, nil
}

// checkCourse runs the API's validation rules and flattens field errors
// into one message.
func checkCourse(req *model.CourseRequest) error {
	err := validator.Struct(req)
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) || len(appErr.Fields) == 0 {
		return err
	}

	fields := make([]string, 0, len(appErr.Fields))
	for field := range appErr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, len(fields))
	for i, field := range fields {
		msgs[i] = field + ": " + appErr.Fields[field]
	}
	return errors.New(strings.Join(msgs, "; "))
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
