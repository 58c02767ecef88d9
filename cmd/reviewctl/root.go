package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/spacesedan/reviewsense/config"
	"github.com/spacesedan/reviewsense/internal/clients"
	"github.com/spacesedan/reviewsense/internal/clients/kafka_client"
	"github.com/spacesedan/reviewsense/internal/db"
	"github.com/spacesedan/reviewsense/internal/keypoints"
	"github.com/spacesedan/reviewsense/internal/language"
	"github.com/spacesedan/reviewsense/internal/logging"
	"github.com/spacesedan/reviewsense/internal/models"
	"github.com/spacesedan/reviewsense/internal/review"
)

type rootFlags struct {
	env      string
	logLevel string
	file     string
	trace    bool
}

type analyzeOutput struct {
	Sentiment models.SentimentLabel `json:"sentiment"`
	KeyPoints string                `json:"key_points"`
	Language  language.Language     `json:"language"`
	Attempts  []attemptOutput       `json:"attempts,omitempty"`
}

type attemptOutput struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Outcome  string `json:"outcome"`
	Error    string `json:"error,omitempty"`
}

func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "reviewctl",
		Short:         "Analyze product reviews from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.CompletionOptions.HiddenDefaultCmd = true
	root.PersistentFlags().StringVar(&flags.env, "env", "", "env file to load from config/envs (default $APP_ENV or dev)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override LOG_LEVEL")

	load := func() (*config.Config, error) {
		env := flags.env
		if env == "" {
			env = config.AppEnv()
		}
		config.LoadEnv(env)
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if flags.logLevel != "" {
			cfg.LogLevel = flags.logLevel
		}
		slog.SetDefault(logging.New(stderr, cfg.LogLevel))
		return cfg, nil
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Print sentiment and key points for a review",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(stdin, flags.file, args)
			if err != nil {
				return err
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			out, err := analyze(cmd.Context(), cfg, text, flags.trace)
			if err != nil {
				return err
			}
			return writeJSON(stdout, out)
		},
	}
	analyzeCmd.Flags().StringVarP(&flags.file, "file", "f", "", "read the review from a file, - for stdin")
	analyzeCmd.Flags().BoolVar(&flags.trace, "trace", false, "include every provider attempt")
	root.AddCommand(analyzeCmd)

	detectCmd := &cobra.Command{
		Use:   "detect [text]",
		Short: "Print the detected language code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(stdin, flags.file, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, language.Detect(text))
			return err
		},
	}
	detectCmd.Flags().StringVarP(&flags.file, "file", "f", "", "read the text from a file, - for stdin")
	root.AddCommand(detectCmd)

	root.AddCommand(&cobra.Command{
		Use:   "models",
		Short: "Print the provider model cascade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(stdout)
			enc.SetIndent(2)
			if err := enc.Encode(cfg.Providers.Models); err != nil {
				return err
			}
			return enc.Close()
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "submit [text]",
		Short: "Queue a review on the analysis request topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			req := models.NewAnalysisRequest(args[0])
			kafkaCfg := kafka_client.GetKafkaConfig(cfg.Kafka, kafka_client.KAFKA_TOPIC_REVIEW_REQUEST)
			producer, err := kafka_client.NewProducer(cmd.Context(), kafkaCfg, "reviewctl-"+req.ReviewID)
			if err != nil {
				return err
			}
			defer producer.Close()
			if err := producer.Publish(cmd.Context(), kafkaCfg.Topic, req.ReviewID, req); err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, req.ReviewID)
			return err
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "result <review-id>",
		Short: "Print a stored analysis result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			dynamo, err := clients.GetDynamoDBClient(cmd.Context(), cfg.AWS)
			if err != nil {
				return err
			}
			result, err := db.NewReviewStore(dynamo, cfg.AWS.Table).GetResult(cmd.Context(), args[0])
			if errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("no result stored for %s", args[0])
			}
			if err != nil {
				return err
			}
			return writeJSON(stdout, result)
		},
	})

	cacheCmd := &cobra.Command{Use: "cache", Short: "Manage the key-point cache"}
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every cached key-point entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if !cfg.Valkey.Enabled() {
				return errors.New("VALKEY_INIT_ADDRESS is not set")
			}
			vc, err := clients.InitValkey(cfg.Valkey)
			if err != nil {
				return err
			}
			defer vc.Close()
			n, err := vc.DeletePrefix(cmd.Context(), review.CacheKeyPrefix)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "deleted %d entries\n", n)
			return err
		},
	})
	root.AddCommand(cacheCmd)

	return root
}

func analyze(ctx context.Context, cfg *config.Config, text string, trace bool) (analyzeOutput, error) {
	analyzer, lazy := clients.BuildAnalyzer(ctx, cfg, nil)
	defer lazy.Close()

	if !trace {
		result, err := analyzer.Analyze(ctx, text)
		if err != nil {
			return analyzeOutput{}, err
		}
		return analyzeOutput{Sentiment: result.Sentiment, KeyPoints: result.KeyPoints, Language: result.Language}, nil
	}

	if strings.TrimSpace(text) == "" {
		return analyzeOutput{}, review.ErrEmptyReview
	}
	label, lang := analyzer.Arbiter.AnalyzeWithLanguage(ctx, text)
	points, attempts := analyzer.Extractor.ExtractWithTrace(ctx, text)
	return analyzeOutput{
		Sentiment: label,
		KeyPoints: points,
		Language:  lang,
		Attempts:  traceOutput(attempts),
	}, nil
}

func traceOutput(attempts []keypoints.Attempt) []attemptOutput {
	out := make([]attemptOutput, 0, len(attempts))
	for _, a := range attempts {
		o := attemptOutput{Provider: a.Provider, Model: a.Model, Outcome: string(a.Outcome)}
		if a.Err != nil {
			o.Error = a.Err.Error()
		}
		out = append(out, o)
	}
	return out
}

// readText takes the positional argument, else --file, else stdin.
func readText(stdin io.Reader, file string, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	var r io.Reader = stdin
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return "", fmt.Errorf("open review file: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read review: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
