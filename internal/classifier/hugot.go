package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/reviewsense/internal/models"
)

const DefaultModelName = "cardiffnlp/twitter-roberta-base-sentiment-latest"

// ModelPath is where hugot stores a downloaded model inside dir.
func ModelPath(dir, name string) string {
	return filepath.Join(dir, strings.ReplaceAll(name, "/", "_"))
}

// EnsureModel downloads name into dir unless it is already there and returns
// the model path.
func EnsureModel(dir, name string) (string, error) {
	path := ModelPath(dir, name)
	if _, err := os.Stat(path); err == nil {
		slog.Info("[Classifier] Using existing model", slog.String("path", path))
		return path, nil
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create model directory: %w", err)
	}

	slog.Info("[Classifier] Model not found, downloading...", slog.String("model", name))
	path, err := hugot.DownloadModel(name, dir, hugot.NewDownloadOptions())
	if err != nil {
		return "", fmt.Errorf("download model %s: %w", name, err)
	}
	slog.Info("[Classifier] Model downloaded successfully", slog.String("path", path))
	return path, nil
}

type pipelineOutput = pipelines.ClassificationOutput

// Hugot runs a transformer text-classification pipeline on ONNX Runtime.
type Hugot struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewHugot opens an ORT session and builds the sentiment pipeline from the
// model at modelPath.
func NewHugot(modelPath string) (*Hugot, error) {
	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("init hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "reviewSentimentPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("init sentiment pipeline: %w", err)
	}

	return &Hugot{session: session, pipeline: pipeline}, nil
}

func (h *Hugot) Classify(ctx context.Context, text string) (models.SentimentLabel, float64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	output, err := h.pipeline.RunPipeline([]string{text})
	if err != nil {
		return "", 0, fmt.Errorf("run sentiment pipeline: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 {
		return "", 0, errors.New("sentiment pipeline returned no output")
	}

	return best(output.ClassificationOutputs[0])
}

func best(outputs []pipelineOutput) (models.SentimentLabel, float64, error) {
	if len(outputs) == 0 {
		return "", 0, errors.New("sentiment pipeline returned no labels")
	}
	top := outputs[0]
	for _, o := range outputs[1:] {
		if o.Score > top.Score {
			top = o
		}
	}
	return NormalizeLabel(top.Label), clamp01(float64(top.Score)), nil
}

func (h *Hugot) Close() error {
	return h.session.Destroy()
}
