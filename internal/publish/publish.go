// Package publish exports the tasks of a menu session to a remote task list.
package publish

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"taskmenu/internal/service"
	"taskmenu/internal/taskstore"
)

// Result reports what a Publish call changed remotely.
type Result struct {
	List      string // title of the target list
	Created   int
	Completed int
	Unchanged int
}

// remoteRef tracks the remote copy of a local task.
type remoteRef struct {
	id        string
	completed bool
}

// Publisher mirrors local tasks into one remote list. It remembers what it
// exported, so publishing again only sends new tasks and new completions.
// A Publisher is not safe for concurrent use.
type Publisher struct {
	svc       service.Service
	listName  string
	sessionID string
	logger    *log.Logger

	list   *service.TaskList
	remote map[int]remoteRef // local task ID -> remote task
}

// New creates a Publisher. An empty listName targets the default list.
// A nil logger discards output.
func New(svc service.Service, listName string, logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Publisher{
		svc:       svc,
		listName:  strings.TrimSpace(listName),
		sessionID: uuid.NewString(),
		logger:    logger,
		remote:    make(map[int]remoteRef),
	}
}

// SessionID identifies this Publisher's exports in remote task notes.
func (p *Publisher) SessionID() string {
	return p.sessionID
}

// Publish sends tasks to the remote list. On error, tasks exported before
// the failure stay recorded and are not sent again.
func (p *Publisher) Publish(ctx context.Context, tasks []taskstore.Task) (Result, error) {
	list, err := p.target(ctx)
	if err != nil {
		return Result{}, err
	}

	res := Result{List: list.Title}
	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		ref, exported := p.remote[t.ID]
		switch {
		case !exported:
			created, err := p.svc.CreateTask(ctx, list.ID, service.Task{
				Title: t.Description,
				Notes: p.notes(t),
			})
			if err != nil {
				return res, fmt.Errorf("export task %d: %w", t.ID, err)
			}
			ref = remoteRef{id: created.ID}
			p.remote[t.ID] = ref
			res.Created++
			p.logger.Debug("exported task", "id", t.ID, "remote", created.ID)
		case ref.completed == t.Completed:
			res.Unchanged++
			continue
		}

		if t.Completed && !ref.completed {
			if err := p.svc.CompleteTask(ctx, list.ID, ref.id); err != nil {
				return res, fmt.Errorf("complete task %d: %w", t.ID, err)
			}
			ref.completed = true
			p.remote[t.ID] = ref
			res.Completed++
			p.logger.Debug("completed remote task", "id", t.ID, "remote", ref.id)
		}
	}
	return res, nil
}

// target resolves the remote list once per Publisher.
func (p *Publisher) target(ctx context.Context) (service.TaskList, error) {
	if p.list != nil {
		return *p.list, nil
	}

	var list service.TaskList
	var err error
	if p.listName != "" {
		list, err = p.svc.ResolveList(ctx, p.listName)
	} else {
		list, err = p.svc.DefaultList(ctx)
	}
	if err != nil {
		return service.TaskList{}, err
	}
	p.list = &list
	return list, nil
}

func (p *Publisher) notes(t taskstore.Task) string {
	return fmt.Sprintf("taskmenu task %d, session %s", t.ID, p.sessionID)
}
