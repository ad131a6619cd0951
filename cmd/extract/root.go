package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"meeting-archaeologist/config"
	"meeting-archaeologist/internal/bootstrap"
	"meeting-archaeologist/internal/extraction"
	"meeting-archaeologist/pkg/log"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

func newRootCmd() *cobra.Command {
	var (
		file   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract decisions, tasks and noise from a meeting transcript",
		Long: `Reads meeting text from --file or stdin, runs the validated extraction
loop against the configured language model and prints the result.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatMarkdown {
				return fmt.Errorf("unsupported format %q (want json or markdown)", format)
			}

			raw, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := log.Init(log.ZapConfig{
				Level:    cfg.Logger.Level,
				Mode:     cfg.Logger.Mode,
				Encoding: cfg.Logger.Encoding,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			uc, err := bootstrap.NewExtractionUseCase(ctx, cfg, logger)
			if err != nil {
				return err
			}

			return run(ctx, uc, raw, format, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read meeting text from this file instead of stdin")
	cmd.Flags().StringVar(&format, "format", formatJSON, "Output format: json or markdown")
	return cmd
}

func readInput(stdin io.Reader, file string) (string, error) {
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func run(ctx context.Context, uc extraction.UseCase, raw, format string, out, errOut io.Writer) error {
	result, err := uc.Extract(ctx, extraction.ExtractInput{RawText: raw})
	if err != nil {
		var f *extraction.Failure
		if errors.As(err, &f) {
			for _, v := range f.Violations {
				fmt.Fprintf(errOut, "  %s: %s\n", v.Path, v.Message)
			}
			return fmt.Errorf("%s after %d attempt(s)", f.Code, f.Attempts)
		}
		return err
	}

	if format == formatMarkdown {
		_, err = fmt.Fprintln(out, extraction.ToMarkdown(result))
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
