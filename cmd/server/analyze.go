package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"citypulse/backend/internal/langdetect"
	"citypulse/backend/internal/model"
	"citypulse/backend/internal/sentiment"
)

func analyzeCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "analyze <comments.csv>",
		Short: "Score a CSV of comments offline",
		Long: `Reads a CSV with a comment column (comment, text or comment_text,
matched case-insensitively), scores every row with the sentiment
lexicon, and writes a results CSV. Rows are scored as-is; nothing is
translated offline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runAnalyze(args[0], outPath)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "results CSV path (default <input>_scored.csv)")

	return cmd
}

var analyzeHeader = []string{"Comment", "Language", "Negative", "Neutral", "Positive", "Compound", "Label"}

func runAnalyze(inPath, outPath string) error {
	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + "_scored.csv"
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	texts, err := readCommentColumn(in)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return errors.New("no data rows in input")
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.Write(analyzeHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	scorer := sentiment.NewScorer()
	counts := map[string]int{}
	var compoundSum float64

	for _, text := range texts {
		lang, _ := langdetect.Detect(text)
		scores := scorer.Score(text)
		label := sentiment.Classify(scores.Compound)

		counts[label]++
		compoundSum += scores.Compound

		row := []string{
			text,
			lang,
			strconv.FormatFloat(scores.Negative, 'f', 4, 64),
			strconv.FormatFloat(scores.Neutral, 'f', 4, 64),
			strconv.FormatFloat(scores.Positive, 'f', 4, 64),
			strconv.FormatFloat(scores.Compound, 'f', 4, 64),
			label,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	total := len(texts)
	fmt.Printf("Scored %d comments: %d positive, %d negative, %d neutral (average compound %.4f)\n",
		total, counts[model.LabelPositive], counts[model.LabelNegative], counts[model.LabelNeutral],
		compoundSum/float64(total))
	fmt.Printf("Results written to %s\n", outPath)
	return nil
}

// readCommentColumn pulls the comment column out of the CSV, skipping rows
// where it is blank. The header convention matches the dashboard's CSV
// import.
func readCommentColumn(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.New("empty or unreadable csv")
	}

	col := -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "comment", "text", "comment_text":
			if col == -1 {
				col = i
			}
		}
	}
	if col == -1 {
		return nil, errors.New("no comment column in header")
	}

	var texts []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if col >= len(record) {
			continue
		}
		if text := strings.TrimSpace(record[col]); text != "" {
			texts = append(texts, text)
		}
	}
	return texts, nil
}
