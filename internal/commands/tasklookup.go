package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/board"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

// openBoard builds an engine rendering into p and loads every task.
func openBoard(ctx context.Context, env *Env, p *output.Printer, confirm board.Confirmer) (*board.Engine, error) {
	e := board.New(env.Service, board.Options{
		Surface:   p,
		Confirmer: confirm,
		Logger:    env.logger(),
	})
	if _, err := e.Refresh(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// lookupTask loads the board and resolves the task reference in args.
// Positions refer to the default listing, which is what the fresh engine renders.
func lookupTask(ctx context.Context, env *Env, p *output.Printer, confirm board.Confirmer, args []string) (*board.Engine, service.Task, error) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		return nil, service.Task{}, err
	}
	e, err := openBoard(ctx, env, p, confirm)
	if err != nil {
		return nil, service.Task{}, err
	}
	task, err := e.Resolve(ref.Raw)
	if err != nil {
		return nil, service.Task{}, err
	}
	env.logger().Debug("resolved task reference", "ref", ref.Raw, "id", task.ID)
	return e, task, nil
}

// dispatch runs intent on e and reports the outcome. A mutation that went
// through still exits successfully, but a failed re-fetch after it is
// printed from the error notices p collected.
func dispatch(ctx context.Context, env *Env, e *board.Engine, p *output.Printer, intent board.Intent) int {
	if err := e.Dispatch(ctx, intent); err != nil {
		return report(env, err)
	}
	for _, n := range p.Errors() {
		fmt.Fprintf(env.ErrOut, "error: %s\n", n.Text)
	}
	return exitcode.Success
}

// report prints err and returns the matching exit code.
func report(env *Env, err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case service.IsAuth(err):
		fmt.Fprintln(env.ErrOut, "error: not logged in (run: taskboard login)")
	case errors.Is(err, service.ErrCancelled):
		if !env.Config.Quiet {
			fmt.Fprintln(env.Out, "cancelled")
		}
		return exitcode.Success
	default:
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
	}
	return exitcode.FromError(err)
}

// prompter reads answers to interactive questions from env.In.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func newPrompter(env *Env) *prompter {
	in := env.In
	if in == nil {
		in = strings.NewReader("")
	}
	return &prompter{r: bufio.NewReader(in), w: env.ErrOut}
}

// ask prints label and returns the trimmed answer line.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.w, label)
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirmDelete asks before a task is removed. End of input counts as no.
func (p *prompter) confirmDelete(ctx context.Context, t service.Task) (bool, error) {
	answer, err := p.ask(fmt.Sprintf("Delete %q? [y/N] ", output.NormalizeTitle(t.Title)))
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.w)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
