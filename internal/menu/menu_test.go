package menu_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"taskmenu/internal/menu"
	"taskmenu/internal/service"
	"taskmenu/internal/taskstore"
	"taskmenu/internal/testutil"
)

// seededStore returns A, B, C with A completed.
func seededStore() *taskstore.Store {
	s := taskstore.New()
	s.Add("A")
	s.Add("B")
	s.Add("C")
	s.MarkComplete(1)
	return s
}

// runMenu runs a menu over store with the given input.
func runMenu(t *testing.T, store *taskstore.Store, input string, opts menu.Options) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	opts.In = strings.NewReader(input)
	opts.Out = &outBuf
	opts.ErrOut = &errBuf

	err = menu.New(store, opts).Run(context.Background())
	return outBuf.String(), errBuf.String(), err
}

func TestMenu_ListAllThenExit(t *testing.T) {
	stdout, stderr, err := runMenu(t, seededStore(), "2\n7\n", menu.Options{})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{
		"Task menu",
		"  1. Add task",
		"  7. Exit",
		"All tasks",
		"   1  [x]  A\n   2  [ ]  B\n   3  [ ]  C\n",
		"bye\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected stdout to contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestMenu_AddTask(t *testing.T) {
	store := taskstore.New()
	stdout, stderr, err := runMenu(t, store, "1\nBuy milk\n2\n7\n", menu.Options{})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "added task 1: Buy milk\n") {
		t.Errorf("expected confirmation, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "   1  [ ]  Buy milk\n") {
		t.Errorf("expected task in listing, got:\n%s", stdout)
	}
	if got := store.List(); len(got) != 1 || got[0].Description != "Buy milk" {
		t.Errorf("unexpected store contents %+v", got)
	}
}

func TestMenu_UserErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty description", "1\n   \n", "error: description cannot be empty\n"},
		{"non-numeric id", "5\nabc\n", "error: task ID must be an integer: abc\n"},
		{"unknown id", "5\n99\n", "error: task not found: 99\n"},
		{"zero id", "5\n0\n", "error: task not found: 0\n"},
		{"id out of int range", "5\n99999999999999999999\n", "error: task not found: 99999999999999999999\n"},
		{"invalid option", "9\n", "error: invalid option: 9\n"},
		{"export disabled", "8\n", "error: export is not configured\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seededStore()
			before := store.List()

			_, stderr, err := runMenu(t, store, tt.input, menu.Options{})

			if err != nil {
				t.Fatalf("user errors must not end the loop with an error, got %v", err)
			}
			if stderr != tt.wantErr {
				t.Errorf("expected stderr %q, got %q", tt.wantErr, stderr)
			}
			after := store.List()
			if len(after) != len(before) {
				t.Fatalf("store size changed: %d -> %d", len(before), len(after))
			}
			for i := range after {
				if after[i] != before[i] {
					t.Errorf("task %d changed: %+v -> %+v", i+1, before[i], after[i])
				}
			}
		})
	}
}

func TestMenu_MarkCompleteAndFilter(t *testing.T) {
	store := seededStore()
	stdout, stderr, err := runMenu(t, store, "5\n2\n4\n3\n", menu.Options{})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "completed task 2\n") {
		t.Errorf("expected confirmation, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Completed tasks\n------------\n   1  [x]  A\n   2  [x]  B\n") {
		t.Errorf("expected completed listing, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Pending tasks\n------------\n   3  [ ]  C\n") {
		t.Errorf("expected pending listing, got:\n%s", stdout)
	}
}

func TestMenu_Summary(t *testing.T) {
	stdout, _, err := runMenu(t, seededStore(), "6\n", menu.Options{})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Total:      3\n", "Completed:  1\n", "Pending:    2\n", "Progress:   33.3%\n"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected summary to contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestMenu_EmptyListings(t *testing.T) {
	stdout, _, err := runMenu(t, taskstore.New(), "2\n6\n", menu.Options{})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "no tasks found\n") {
		t.Errorf("expected empty message, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Progress:   0.0%\n") {
		t.Errorf("expected zero progress, got:\n%s", stdout)
	}
}

func TestMenu_Quiet(t *testing.T) {
	store := taskstore.New()
	stdout, _, err := runMenu(t, store, "1\nX\n2\n7\n", menu.Options{Quiet: true})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(stdout, menu.Title) {
		t.Errorf("quiet mode should hide the option list, got:\n%s", stdout)
	}
	if strings.Contains(stdout, "added task") || strings.Contains(stdout, "bye") {
		t.Errorf("quiet mode should hide confirmations, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "   1  [ ]  X\n") {
		t.Errorf("quiet mode should still print listings, got:\n%s", stdout)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 task, got %d", store.Len())
	}
}

func TestMenu_EOFEndsLoop(t *testing.T) {
	_, _, err := runMenu(t, seededStore(), "", menu.Options{})
	if err != nil {
		t.Errorf("expected nil on end of input, got %v", err)
	}

	// End of input inside a prompt also ends the loop.
	store := taskstore.New()
	_, _, err = runMenu(t, store, "1\n", menu.Options{})
	if err != nil {
		t.Errorf("expected nil on end of input, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("expected no task added, got %d", store.Len())
	}
}

func TestMenu_LongDescription(t *testing.T) {
	store := taskstore.New()
	desc := strings.Repeat("x", 70*1024)

	stdout, stderr, err := runMenu(t, store, "1\n"+desc+"\n2\n7\n", menu.Options{Quiet: true})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	got := store.List()
	if len(got) != 1 || got[0].Description != desc {
		t.Fatalf("expected one task with the full description, got %d tasks", len(got))
	}
	if !strings.Contains(stdout, "   1  [ ]  xxx") {
		t.Error("expected the long task in the listing")
	}
}

func TestMenu_LineTooLong(t *testing.T) {
	store := seededStore()
	tooLong := strings.Repeat("y", menu.MaxLineLength+1)

	// Once as a choice, once as a description; the loop continues both times.
	input := tooLong + "\n1\n" + tooLong + "\n1\nD\n7\n"
	_, stderr, err := runMenu(t, store, input, menu.Options{Quiet: true})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := fmt.Sprintf("error: input line too long (limit %d bytes)\n", menu.MaxLineLength)
	if stderr != want+want {
		t.Errorf("expected two too-long errors, got %q", stderr)
	}
	got := store.List()
	if len(got) != 4 || got[3].Description != "D" {
		t.Errorf("expected D appended after the rejected lines, got %+v", got)
	}
}

func TestMenu_ReadError(t *testing.T) {
	var out bytes.Buffer
	m := menu.New(taskstore.New(), menu.Options{
		In:  iotest.ErrReader(errors.New("boom")),
		Out: &out,
	})

	err := m.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestMenu_Cancelled(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := menu.New(taskstore.New(), menu.Options{In: pr})
	if err := m.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMenu_Export(t *testing.T) {
	svc := testutil.NewFakeService()
	connects := 0
	opts := menu.Options{
		Connect: func(ctx context.Context) (service.Service, error) {
			connects++
			return svc, nil
		},
	}

	stdout, stderr, err := runMenu(t, seededStore(), "8\n8\n7\n", opts)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "exported to My Tasks: 3 created, 1 completed, 0 unchanged\n") {
		t.Errorf("expected first export result, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "exported to My Tasks: 0 created, 0 completed, 3 unchanged\n") {
		t.Errorf("expected second export result, got:\n%s", stdout)
	}
	if connects != 1 {
		t.Errorf("expected one connect, got %d", connects)
	}
	if got := svc.Tasks(testutil.DefaultListID); len(got) != 3 {
		t.Errorf("expected 3 remote tasks, got %d", len(got))
	}
}

func TestMenu_ExportErrors(t *testing.T) {
	tests := []struct {
		name       string
		connectErr error
		exportList string
		wantErr    string
	}{
		{
			name:       "not logged in",
			connectErr: fmt.Errorf("%w: not logged in (run: taskmenu login)", service.ErrAuth),
			wantErr:    "error: auth error: not logged in (run: taskmenu login)\n",
		},
		{
			name:       "unknown list",
			exportList: "Errands",
			wantErr:    "error: export list not found: list \"Errands\": not found\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			opts := menu.Options{
				ExportList: tt.exportList,
				Connect: func(ctx context.Context) (service.Service, error) {
					if tt.connectErr != nil {
						return nil, tt.connectErr
					}
					return svc, nil
				},
			}

			_, stderr, err := runMenu(t, seededStore(), "8\n", opts)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if stderr != tt.wantErr {
				t.Errorf("expected stderr %q, got %q", tt.wantErr, stderr)
			}
		})
	}
}
