package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&LoginCmd{})
	Register(&RegisterCmd{})
}

// credentialFlags holds the flags shared by login and register.
type credentialFlags struct {
	email    string
	password string
}

func (c *credentialFlags) register(fs *flag.FlagSet) {
	*c = credentialFlags{}
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.email, "e", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

// credentials returns the trimmed email and password, prompting for any
// that were not given as flags. Both are required.
func (c *credentialFlags) credentials(env *Env) (service.Credentials, error) {
	creds := service.Credentials{
		Email:    strings.TrimSpace(c.email),
		Password: strings.TrimSpace(c.password),
	}
	p := newPrompter(env)
	if creds.Email == "" {
		if answer, err := p.ask("Email: "); err == nil {
			creds.Email = answer
		}
	}
	if creds.Password == "" {
		if answer, err := p.ask("Password: "); err == nil {
			creds.Password = answer
		}
	}
	if creds.Email == "" {
		return creds, service.Required("email")
	}
	if creds.Password == "" {
		return creds, service.Required("password")
	}
	return creds, nil
}

// LoginCmd implements the login command.
type LoginCmd struct {
	flags credentialFlags
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in to the task service" }
func (c *LoginCmd) Usage() string     { return "taskboard login [--email <e>] [--password <p>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	c.flags.register(fs)
}

func (c *LoginCmd) Run(ctx context.Context, env *Env, args []string) int {
	if env.Guard.Authenticated() {
		if !env.Config.Quiet {
			fmt.Fprintln(env.Out, "already logged in")
		}
		return exitcode.Success
	}

	creds, err := c.flags.credentials(env)
	if err != nil {
		return report(env, err)
	}

	tokens, err := env.Service.Login(ctx, creds)
	if err != nil {
		// The server's reason for a bad login is shown as is.
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if err := env.Config.EnsureDir(); err != nil {
		fmt.Fprintf(env.ErrOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := env.Guard.Establish(tokens); err != nil {
		fmt.Fprintf(env.ErrOut, "error: failed to save session: %v\n", err)
		return exitcode.AuthError
	}
	env.logger().Debug("session established", "email", creds.Email)

	if !env.Config.Quiet {
		fmt.Fprintf(env.Out, "logged in as %s\n", creds.Email)
	}
	return exitcode.Success
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	flags credentialFlags
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string     { return "taskboard register [--email <e>] [--password <p>]" }
func (c *RegisterCmd) NeedsAuth() bool   { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	c.flags.register(fs)
}

func (c *RegisterCmd) Run(ctx context.Context, env *Env, args []string) int {
	creds, err := c.flags.credentials(env)
	if err != nil {
		return report(env, err)
	}
	if err := env.Service.Register(ctx, creds); err != nil {
		return report(env, err)
	}
	if !env.Config.Quiet {
		fmt.Fprintln(env.Out, "registered, now log in (run: taskboard login)")
	}
	return exitcode.Success
}
