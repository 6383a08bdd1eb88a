package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/wanderplan/wanderplan/internal/engine"
	"github.com/wanderplan/wanderplan/pkg/domain"
)

// menuTokenPattern matches follow-up menu tokens like A1 or D99. Anything
// else typed at the prompt is treated as free text.
var menuTokenPattern = regexp.MustCompile(`^[AD][0-9]{1,2}$`)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive planning conversation",
	Long:  `Opens a terminal conversation with the assistant. Type travel requests as free text, or answer a follow-up menu by typing its token (A1, D2, ...).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := buildLogger(cmd, false)
		assistant, err := buildAssistant(cmd, logger)
		if err != nil {
			return err
		}

		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		printBanner()
		fmt.Printf("Session %s. Type your trip idea, a menu token, or 'exit'.\n\n", sessionID)

		render := newRenderer()
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}
			if input == "exit" || input == "quit" {
				break
			}

			ctx := cmd.Context()
			token := strings.ToUpper(input)
			var turn engine.TurnResult
			if menuTokenPattern.MatchString(token) {
				turn, err = assistant.SubmitSelection(ctx, sessionID, token)
				// Stale tokens come back with a response that re-shows
				// the current menu, so render them like any other turn.
				if err != nil && !errors.Is(err, domain.ErrInvalidSelection) {
					fmt.Printf("Error: %v\n", err)
					continue
				}
			} else {
				turn, err = assistant.Submit(ctx, sessionID, input)
				if err != nil {
					fmt.Printf("Error: %v\n", err)
					continue
				}
			}
			printTurn(render, turn)
		}
		return scanner.Err()
	},
}

// printTurn writes one assistant turn: the markdown response followed by
// the follow-up menu, if any.
func printTurn(render func(string) (string, error), turn engine.TurnResult) {
	out, err := render(turn.Response)
	if err != nil {
		out = turn.Response + "\n"
	}
	fmt.Print(out)
	if len(turn.Menu) > 0 {
		p := termenv.ColorProfile()
		for _, entry := range turn.Menu {
			token := termenv.String(entry.Token).Foreground(p.Color("#818cf8")).Bold()
			fmt.Printf("  [%s] %s\n", token, entry.Description)
		}
		fmt.Println()
	}
}

// newRenderer returns a function that renders markdown using glamour.
func newRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

func printBanner() {
	p := termenv.ColorProfile()
	lines := []string{
		` _    _                 _                 _`,
		`| |  | |               | |               | |`,
		`| |  | | __ _ _ __   __| | ___ _ __ _ __ | | __ _ _ __`,
		`| |/\| |/ _' | '_ \ / _' |/ _ \ '__| '_ \| |/ _' | '_ \`,
		`\  /\  / (_| | | | | (_| |  __/ |  | |_) | | (_| | | | |`,
		` \/  \/ \__,_|_| |_|\__,_|\___|_|  | .__/|_|\__,_|_| |_|`,
		`                                   | |`,
		`                                   |_|`,
	}
	colors := []string{"#818cf8", "#8b8cf9", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#f95d9a", "#fb7185"}

	fmt.Println()
	for i, line := range lines {
		fmt.Println(termenv.String(line).Foreground(p.Color(colors[i%len(colors)])))
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().String("session", "", "Resume an existing session by ID")
}
