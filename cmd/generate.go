package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dkrish/quizforge/internal/embeddings"
	"github.com/dkrish/quizforge/internal/enrich"
	"github.com/dkrish/quizforge/internal/generator"
	"github.com/dkrish/quizforge/internal/pipeline"
	"github.com/dkrish/quizforge/internal/quality"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quality-checked batch of questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := buildLogger(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		questionType, _ := cmd.Flags().GetString("type")
		grade, _ := cmd.Flags().GetInt("grade")
		count, _ := cmd.Flags().GetInt("count")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		curriculumPath, _ := cmd.Flags().GetString("curriculum")

		ctx := context.Background()

		provider, err := newProvider(ctx, logger)
		if err != nil {
			return err
		}

		agents := []pipeline.Agent{
			generator.New(provider, generator.DefaultConfig()),
			quality.New(quality.DefaultConfig()),
		}

		if curriculumPath != "" {
			enhancer, err := buildEnhancer(ctx, curriculumPath)
			if err != nil {
				return err
			}
			agents = append(agents, enhancer)
		}

		wc := &pipeline.Context{
			QuestionType: questionType,
			Grade:        grade,
			Difficulty:   difficulty,
			Count:        count,
		}
		if min, max := rangeFlags(cmd); max > min {
			wc.DifficultySettings.NumberRange = &pipeline.Range{Min: min, Max: max}
		}

		out, err := pipeline.NewOrchestrator(logger, agents...).Run(ctx, wc)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	generateCmd.Flags().String("type", "", "Question type, e.g. addition, subtraction")
	generateCmd.Flags().Int("grade", 0, "Target grade level (1 or higher)")
	generateCmd.Flags().Int("count", 5, "Number of questions to generate")
	generateCmd.Flags().String("difficulty", "medium", "Difficulty label passed to the generator")
	generateCmd.Flags().Float64("min", 0, "Smallest number allowed in question text")
	generateCmd.Flags().Float64("max", 0, "Largest number allowed in question text")
	generateCmd.Flags().String("curriculum", "", "Path to a JSON array of curriculum snippets for topic enrichment")
}

func rangeFlags(cmd *cobra.Command) (float64, float64) {
	min, _ := cmd.Flags().GetFloat64("min")
	max, _ := cmd.Flags().GetFloat64("max")
	return min, max
}

// buildEnhancer loads curriculum snippets and indexes them into an
// in-memory vector store. Embeddings need an OpenAI key; QUIZFORGE_ vars
// win over the plain env var.
func buildEnhancer(ctx context.Context, path string) (*enrich.Enhancer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read curriculum file: %w", err)
	}

	var texts []string
	if err := json.Unmarshal(data, &texts); err != nil {
		return nil, fmt.Errorf("parse curriculum file: %w", err)
	}

	apiKey := os.Getenv("QUIZFORGE_OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	embedder, err := embeddings.NewOpenAIEmbedder(apiKey, os.Getenv("QUIZFORGE_EMBEDDING_MODEL"))
	if err != nil {
		return nil, err
	}

	retriever, err := enrich.NewChromemRetriever("", "curriculum", embedder)
	if err != nil {
		return nil, err
	}

	snippets := make([]enrich.Snippet, len(texts))
	for i, text := range texts {
		snippets[i] = enrich.Snippet{ID: uuid.NewString(), Text: text}
	}
	if err := retriever.Index(ctx, snippets); err != nil {
		return nil, err
	}

	return enrich.NewEnhancer(retriever, 3), nil
}
