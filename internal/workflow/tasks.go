package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/zhubert/grove/internal/errors"
	"github.com/zhubert/grove/internal/issues"
	"github.com/zhubert/grove/internal/selection"
)

// taskKey is the branch config key linking a branch to its task.
const taskKey = "grove-task"

func (r *Runner) requireTasks() error {
	if r.Tasks == nil {
		return errors.E(errors.Op("workflow.Tasks"), errors.KindConfig,
			"no task source configured; set tasks.source in .grove.toml")
	}
	if !r.Tasks.IsConfigured() {
		return errors.E(errors.Op("workflow.Tasks"), errors.KindConfig,
			fmt.Sprintf("%s is not configured for this repository", r.Tasks.Name()))
	}
	return nil
}

func (r *Runner) fetchTasks(ctx context.Context) ([]issues.Issue, error) {
	var list []issues.Issue
	err := r.spin(ctx, "Fetching "+r.Tasks.Name(), func(ctx context.Context) error {
		var err error
		list, err = r.Tasks.FetchIssues(ctx)
		return err
	})
	return list, err
}

// PickTask lists open tasks and returns the chosen one.
func (r *Runner) PickTask(ctx context.Context) (issues.Issue, error) {
	if err := r.requireTasks(); err != nil {
		return issues.Issue{}, err
	}
	list, err := r.fetchTasks(ctx)
	if err != nil {
		return issues.Issue{}, err
	}
	if len(list) == 0 {
		return issues.Issue{}, errors.E(errors.Op("workflow.PickTask"), errors.KindNotFound,
			fmt.Sprintf("%s has no open tasks", r.Tasks.Name()))
	}

	options := make([]selection.Option, len(list))
	for i, issue := range list {
		options[i] = selection.Option{Label: issue.Label(), Value: issue.ID}
	}
	res, err := r.UI.SingleSelect(ctx, "Task", options)
	if err != nil {
		return issues.Issue{}, err
	}
	id, err := selected(res)
	if err != nil {
		return issues.Issue{}, err
	}
	for _, issue := range list {
		if issue.ID == id {
			return issue, nil
		}
	}
	return issues.Issue{}, fmt.Errorf("task %s disappeared", id)
}

// ListTasks shows open tasks and prints the chosen task's URL.
func (r *Runner) ListTasks(ctx context.Context) (issues.Issue, error) {
	issue, err := r.PickTask(ctx)
	if err != nil {
		return issue, err
	}
	if issue.URL != "" {
		fmt.Fprintln(r.Out, issue.URL)
	} else {
		fmt.Fprintln(r.Out, issue.Title)
	}
	return issue, nil
}

func encodeTask(issue issues.Issue) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", issue.Source, issue.ID, issue.URL))
}

func decodeTask(value string) (issues.Issue, bool) {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return issues.Issue{}, false
	}
	issue := issues.Issue{Source: issues.Source(fields[0]), ID: fields[1]}
	if len(fields) > 2 {
		issue.URL = fields[2]
	}
	return issue, true
}
