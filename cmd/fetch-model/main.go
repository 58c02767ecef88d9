package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spacesedan/reviewsense/config"
	"github.com/spacesedan/reviewsense/internal/classifier"
	"github.com/spacesedan/reviewsense/internal/logging"
)

func main() {
	config.LoadEnv(config.AppEnv())
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	dir, name := cfg.Classifier.ModelDir, cfg.Classifier.ModelName
	cmd := &cobra.Command{
		Use:          "fetch-model",
		Short:        "Download the ONNX sentiment model used by the hugot backend",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := classifier.EnsureModel(dir, name)
			if err != nil {
				return err
			}
			slog.Info("[FetchModel] Model ready", slog.String("path", path))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", dir, "directory to store models in")
	cmd.Flags().StringVar(&name, "model", name, "Hugging Face model id")

	if err := cmd.Execute(); err != nil {
		slog.Error("[FetchModel] Download failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
