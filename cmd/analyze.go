package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/pable/go-scrim-metrics/internal/normalize"
	"github.com/pable/go-scrim-metrics/internal/storage"
)

const analyzeSystemPrompt = `You are a League of Legends performance analyst reviewing scrim results.
You are given structured data computed from match history and a question from
a player or coach.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and actionable.

Metrics glossary:
- kda: (kills + assists) / max(deaths, 1).
- killParticipation: % of the team's takedowns the player took part in.
  Values marked estimated used a fallback team total.
- earlyKillParticipation: same, for takedowns before 15 minutes.
- damageEfficiency: damage dealt / damage taken. 999 means no damage taken.
- goldEfficiency: damage dealt per gold earned.
- csPerMinute: creep score per minute played.
- visionContribution: vision score relative to the team's average (100 = average).
- rankings: rank 1 is best; "Top N%" is rank divided by cohort size.
- counterJungleRate / ownJungleControl: jungle CS taken on the enemy / own side.`

var (
	analyzeModel   string
	analyzeAPIKey  string
	analyzeVersion string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
}

var analyzePlayerCmd = &cobra.Command{
	Use:   "player <name> <question>",
	Short: "Ask about a player's computed metrics",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyzePlayer,
}

var analyzeMatchCmd = &cobra.Command{
	Use:   "match <id-prefix> <question>",
	Short: "Ask about a single match",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyzeMatch,
}

func init() {
	analyzeCmd.PersistentFlags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.PersistentFlags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzePlayerCmd.Flags().StringVar(&analyzeVersion, "version", "", "version bucket (default: $SCRIM_VERSION or newest)")

	analyzeCmd.AddCommand(analyzePlayerCmd)
	analyzeCmd.AddCommand(analyzeMatchCmd)
}

func runAnalyzePlayer(cmd *cobra.Command, args []string) error {
	name, question := args[0], args[1]

	ds, err := loadDataset()
	if err != nil {
		return err
	}
	a, err := analyzePlayer(ds, name, ds.resolveBucket(analyzeVersion), cfg.RecentWindow)
	if err != nil {
		return err
	}
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal context: %w", err)
	}

	printAnalysis(a)
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, string(data), question)
}

func runAnalyzeMatch(cmd *cobra.Command, args []string) error {
	prefix, question := args[0], args[1]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	sm, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if sm == nil {
		return fmt.Errorf("no match found with ID prefix %q", prefix)
	}
	m, err := normalize.DecodeMatch(sm.ID, sm.Body)
	if err != nil {
		return fmt.Errorf("decode match: %w", err)
	}

	calc := cfg.Calculator()
	type row struct {
		Player   string `json:"player"`
		Side     string `json:"side"`
		Position string `json:"position"`
		Champion string `json:"champion"`
		Win      bool   `json:"win"`
		Metrics  any    `json:"metrics"`
	}
	rows := make([]row, 0, len(m.Participants))
	for _, p := range m.Participants {
		rows = append(rows, row{
			Player:   p.Player,
			Side:     p.Side.String(),
			Position: string(p.Position),
			Champion: p.Champion,
			Win:      p.Win,
			Metrics:  calc.Advanced(p, nil, m.Participants),
		})
	}
	data, err := json.Marshal(map[string]any{"version": m.Version, "participants": rows})
	if err != nil {
		return fmt.Errorf("marshal context: %w", err)
	}
	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, string(data), question)
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")
	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})
	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		if msg := err.Error(); strings.Contains(msg, "401") || strings.Contains(msg, "authentication") {
			return fmt.Errorf("API authentication failed, check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
