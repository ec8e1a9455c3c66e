package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"urban/internal/llm"
)

var (
	styleYou  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleAI   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleInfo = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Session is the in-memory state of one REPL invocation.
type Session struct {
	Model        string
	SystemPrompt string
	Temperature  float64
	APIKey       string
	KeySource    Source

	// persistPending is true only while an environment-sourced key has not
	// yet been validated by a successful exchange and is not already stored.
	// It transitions true -> false at most once per session.
	persistPending bool
}

// NewSession resolves the credential and builds the session state. It fails
// before any transcript or client exists when no key can be found.
func NewSession(store KeyStore, model, systemPrompt string, temperature float64) (*Session, error) {
	cred := ResolveKey(store)
	if cred.Source == SourceNone {
		return nil, ErrNoAPIKey
	}

	return &Session{
		Model:          model,
		SystemPrompt:   systemPrompt,
		Temperature:    temperature,
		APIKey:         cred.Value,
		KeySource:      cred.Source,
		persistPending: cred.Source == SourceEnvironment && !hasStoredKey(store),
	}, nil
}

// PersistPending reports whether a first successful exchange would trigger
// a key write.
func (s *Session) PersistPending() bool {
	return s.persistPending
}

func hasStoredKey(store KeyStore) bool {
	for _, key := range []string{ConfigPrimaryKey, ConfigAliasKey} {
		if v, ok := store.Stored(key); ok && strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// REPL runs the interactive chat loop: read a line, dispatch it as a
// control command or a chat message, one exchange at a time.
type REPL struct {
	session    *Session
	store      KeyStore
	client     llm.Client
	transcript *Transcript
	in         io.Reader
	out        io.Writer
	log        *zap.Logger

	renderer *glamour.TermRenderer
}

// NewREPL wires the loop. The transcript handle stays owned by the caller;
// the REPL only appends to it.
func NewREPL(sess *Session, store KeyStore, client llm.Client, transcript *Transcript, in io.Reader, out io.Writer, log *zap.Logger) *REPL {
	if log == nil {
		log = zap.NewNop()
	}
	return &REPL{
		session:    sess,
		store:      store,
		client:     client,
		transcript: transcript,
		in:         in,
		out:        out,
		log:        log,
	}
}

// Run blocks until the session terminates. Context cancellation (interrupt)
// and end-of-input both end the session with a farewell; an LLM transport
// failure ends it with an error.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "/exit to quit, /help for commands")
	fmt.Fprintln(r.out, "/logout to stop using the saved API key")

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(r.out, styleYou.Render("You > "))

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out, "\nSession ended")
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(r.out, "\nSession ended")
				return nil
			}
			line = l
		}

		input := strings.TrimSpace(line)
		switch input {
		case "":
			continue
		case "/exit", "/quit":
			fmt.Fprintln(r.out, "Goodbye.")
			return nil
		case "/help":
			fmt.Fprintln(r.out, "Commands: /exit, /quit, /help, /logout")
			continue
		case "/logout":
			r.logout()
			return nil
		}

		if err := r.exchange(ctx, input); err != nil {
			return err
		}
	}
}

// exchange runs one user turn: transcript, spinner, blocking LLM call,
// display, persistence policy.
func (r *REPL) exchange(ctx context.Context, message string) error {
	if err := r.transcript.AppendUser(message); err != nil {
		return err
	}

	reply, err := r.send(ctx, message)
	if err != nil {
		return fmt.Errorf("gemini call failed: %w", err)
	}

	if err := r.transcript.AppendAssistant(reply); err != nil {
		return err
	}
	fmt.Fprintln(r.out, styleAI.Render("AI > ")+r.renderReply(reply))

	r.persistKeyOnce()
	return nil
}

// send wraps the blocking client call with the spinner. The spinner is
// stopped and its line cleared on every path out, including errors.
func (r *REPL) send(ctx context.Context, message string) (string, error) {
	sp := NewSpinner(r.out, "Thinking")
	sp.Start()
	defer sp.Stop()
	return r.client.Send(ctx, message)
}

// persistKeyOnce implements the deferred-write policy: after the first
// successful exchange with a session-sourced key, write it to the primary
// config key. Best effort, at most one attempt per session.
func (r *REPL) persistKeyOnce() {
	if !r.session.persistPending {
		return
	}
	r.session.persistPending = false

	if err := r.store.Set(ConfigPrimaryKey, r.session.APIKey); err != nil {
		r.log.Debug("API key persistence failed", zap.Error(err))
		return
	}
	fmt.Fprintln(r.out, styleInfo.Render("[info] API key validated and saved to config."))
}

// logout revokes the key everywhere: both stored config keys and both
// session environment variables. Partial failures are tolerated.
func (r *REPL) logout() {
	for _, key := range []string{ConfigPrimaryKey, ConfigAliasKey} {
		if removed, err := r.store.Unset(key); err != nil {
			r.log.Debug("failed to unset config key", zap.String("key", key), zap.Error(err))
		} else if removed {
			r.log.Debug("removed config key", zap.String("key", key))
		}
	}
	for _, env := range []string{EnvPrimaryKey, EnvAliasKey} {
		if err := os.Unsetenv(env); err != nil {
			r.log.Debug("failed to unset env var", zap.String("var", env), zap.Error(err))
		}
	}
	fmt.Fprintln(r.out, "Saved API key disabled. Ending session.")
}

// renderReply formats the assistant reply for display: Markdown via glamour
// on a terminal, raw text everywhere else.
func (r *REPL) renderReply(text string) string {
	if !writerIsTerminal(r.out) {
		return text
	}
	if r.renderer == nil {
		tr, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err != nil {
			return text
		}
		r.renderer = tr
	}
	out, err := r.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
