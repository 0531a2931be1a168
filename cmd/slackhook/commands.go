package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dynoinc/slackhook/internal/document"
	"github.com/dynoinc/slackhook/message"
	"github.com/dynoinc/slackhook/mrkdwn"
)

var errSomeFailed = errors.New("some messages failed")

func newSendCmd(a *app) *cobra.Command {
	var (
		text        string
		format      string
		inputFormat string
	)

	cmd := &cobra.Command{
		Use:   "send [FILE...]",
		Short: "Send message documents, or a single --text message",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if text != "" {
				if len(args) > 0 {
					return errors.New("--text cannot be combined with files")
				}

				if format != "" {
					f, err := mrkdwn.ParseFormat(format)
					if err != nil {
						return err
					}
					text = mrkdwn.Apply(text, f)
				}

				_, err := a.client.Send(ctx, message.Message{Text: text})
				return err
			}

			if len(args) == 0 {
				return errors.New("nothing to send: pass files or --text")
			}

			in, err := document.ParseFormat(inputFormat)
			if err != nil {
				return err
			}

			msgs, paths, failed := loadAll(ctx, out, args, in)
			errs := a.client.SendAll(ctx, msgs...)
			for i, err := range errs {
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", paths[i], err)
					continue
				}
				fmt.Fprintf(out, "sent %s\n", paths[i])
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errSomeFailed, failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "send this text instead of files")
	cmd.Flags().StringVarP(&format, "format", "f", "", "wrap --text as pre, code, italic, bold or strike")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "json or yaml; guessed from the extension when empty")

	return cmd
}

func newPreviewCmd(a *app) *cobra.Command {
	var inputFormat string

	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Print a message builder link for a message document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := document.ParseFormat(inputFormat)
			if err != nil {
				return err
			}

			m, err := document.Load(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), a.client.PreviewURL(m))
			return nil
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "json or yaml; guessed from the extension when empty")

	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	var inputFormat string

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check message documents without sending them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := document.ParseFormat(inputFormat)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			msgs, _, failed := loadAll(cmd.Context(), out, args, in)
			for _, m := range msgs {
				if _, err := m.JSON(); err != nil {
					failed++
					fmt.Fprintf(out, "FAIL encoding: %v\n", err)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errSomeFailed, failed, len(args))
			}
			fmt.Fprintf(out, "%d documents ok\n", len(args))
			return nil
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "json or yaml; guessed from the extension when empty")

	return cmd
}

// loadAll reports every file that fails to load on out and returns the rest
// together with their paths.
func loadAll(ctx context.Context, out io.Writer, paths []string, format document.Format) ([]message.Message, []string, int) {
	var (
		msgs   []message.Message
		loaded []string
		failed int
	)

	for _, path := range paths {
		m, err := document.Load(ctx, path, format)
		if err != nil {
			failed++
			reportLoadError(out, path, err)
			continue
		}
		msgs = append(msgs, m)
		loaded = append(loaded, path)
	}

	return msgs, loaded, failed
}

func reportLoadError(out io.Writer, path string, err error) {
	var verr *document.ValidationError
	if !errors.As(err, &verr) {
		fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
		return
	}

	fmt.Fprintf(out, "FAIL %s:\n", path)
	for _, ke := range verr.Errors {
		fmt.Fprintf(out, "  %s: %s\n", ke.PropertyPath, ke.Message)
	}
}
