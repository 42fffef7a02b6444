package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"book-chatbot/config"
	"book-chatbot/internal/app"
	"book-chatbot/internal/chat"
	"book-chatbot/pkg/log"
)

var chatFlags struct {
	intents    string
	historyDir string
	verbose    bool
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Reads one message per line and prints the bot's reply.
Type "quit" or "exit" (or send EOF) to leave. The conversation is saved
to the history directory like a web session.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatFlags.intents, "intents", "", "intent catalog file (overrides intents.path)")
	chatCmd.Flags().StringVar(&chatFlags.historyDir, "history-dir", "", "conversation directory (overrides history.dir)")
	chatCmd.Flags().BoolVarP(&chatFlags.verbose, "verbose", "v", false, "log at debug level")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if chatFlags.intents != "" {
		cfg.Intents.Path = chatFlags.intents
	}
	if chatFlags.historyDir != "" {
		cfg.History.Dir = chatFlags.historyDir
	}
	cfg.Intents.Watch = false
	cfg.Session.Store = config.SessionStoreMemory

	level := "error"
	if chatFlags.verbose {
		level = "debug"
	}
	logger := log.Init(log.ZapConfig{Level: level, Mode: cfg.Logger.Mode, Encoding: "console"})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	chatApp, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer chatApp.Close()

	return repl(ctx, chatApp.UseCase, cmd.InOrStdin(), cmd.OutOrStdout())
}

// repl runs one session over in/out until EOF or a quit command.
func repl(ctx context.Context, uc chat.UseCase, in io.Reader, out io.Writer) error {
	sess, err := uc.StartSession(ctx, chat.StartSessionInput{})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "How can I help you today?")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		res, err := uc.Send(ctx, chat.SendInput{SessionID: sess.ID, Text: line})
		if err != nil {
			return err
		}
		sess = res.Session
		fmt.Fprintln(out, "Bot: "+plainText(res.Reply))
	}
}

// plainText renders a bot reply fragment for a terminal: line breaks kept, tags dropped, covers listed.
func plainText(fragment string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimRight(b.String(), "\n ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "br":
				b.WriteString("\n")
			case "img":
				for hasAttr {
					var key, val []byte
					key, val, hasAttr = z.TagAttr()
					if string(key) == "src" {
						b.WriteString("Cover: " + string(val))
					}
				}
			}
		}
	}
}
