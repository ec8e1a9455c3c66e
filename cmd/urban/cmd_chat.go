package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"urban/internal/chat"
	"urban/internal/config"
	"urban/internal/llm"
)

var (
	chatSystem      string
	chatTemperature float64
	chatProject     string
)

// chatCmd runs the interactive chat session
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session with the research assistant",
	Long: `Starts a line-oriented chat REPL against the Gemini API.

The API key is resolved from the environment (UR_GEMINI_API_KEY,
GOOGLE_API_KEY) or the persisted config (gemini-api-key, google-api-key).
A key supplied via the environment is saved to the config after its first
successful exchange. Each session writes a Markdown transcript under the
project's logs/ directory.

In-session commands: /exit, /quit, /help, /logout`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatSystem, "system", "", "System prompt (default: built-in assistant prompt)")
	chatCmd.Flags().Float64Var(&chatTemperature, "temperature", 0, "Sampling temperature (default: 0.7)")
	chatCmd.Flags().StringVar(&chatProject, "project", "", "Project root for transcripts (default: current directory)")
}

func runChat(cmd *cobra.Command, args []string) error {
	root := chatProject
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve working directory: %w", err)
		}
		root = cwd
	}

	settings, err := config.LoadSettings(root)
	if err != nil {
		return err
	}
	if chatSystem != "" {
		settings.SystemPrompt = chatSystem
	}
	if cmd.Flags().Changed("temperature") {
		settings.Temperature = chatTemperature
	}

	store := openStore()
	sess, err := chat.NewSession(store, settings.Model, settings.SystemPrompt, settings.Temperature)
	if err != nil {
		return err
	}
	logger.Debug("chat session starting",
		zap.String("model", sess.Model),
		zap.String("key_source", string(sess.KeySource)),
		zap.Bool("persist_pending", sess.PersistPending()))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := llm.NewGemini(ctx, sess.APIKey, llm.Config{
		Model:       settings.Model,
		Temperature: settings.Temperature,
		TopP:        settings.TopP,
		TopK:        settings.TopK,
	}, settings.SystemPrompt)
	if err != nil {
		return err
	}

	transcript, err := chat.OpenTranscript(root, sess.Model, sess.SystemPrompt)
	if err != nil {
		return err
	}
	defer transcript.Close()
	fmt.Fprintf(cmd.OutOrStdout(), "Transcript: %s\n", transcript.Path())

	repl := chat.NewREPL(sess, store, client, transcript, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	return repl.Run(ctx)
}
