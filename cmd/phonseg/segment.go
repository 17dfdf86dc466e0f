package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/phonseg/batch"
	"github.com/npillmayer/phonseg/segment"
	"github.com/spf13/cobra"
)

func newSegmentCmd() *cobra.Command {
	var (
		outPath string
		encode  bool
	)

	cmd := &cobra.Command{
		Use:   "segment [file ...]",
		Short: "Segment transcriptions, one utterance per line",
		Long: `Segment reads transcriptions from files (or stdin), one utterance per
line, and writes the segmented units of every utterance as a line of
blank-separated units. Utterances which fail to segment produce an empty
line, so that output lines correspond to input lines.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			v, err := loadVariant(cfg)
			if err != nil {
				return err
			}
			seg, err := newSegmenter(cfg, v)
			if err != nil {
				return err
			}
			utterances, err := readUtterances(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			results, sum, err := batch.Run(cmd.Context(), seg, utterances, cfg.Segment.Workers)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			w := bufio.NewWriter(out)
			if encode {
				err = writeIndices(w, v, cfg.Segment.Mode, results)
			} else {
				for _, r := range results {
					fmt.Fprintln(w, segment.Join(r.Units))
				}
			}
			if err != nil {
				return err
			}
			if err = w.Flush(); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.ErrOrStderr(), sum)
			return err
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&encode, "encode", false, "Write label indices instead of units")

	return cmd
}

// readUtterances reads lines from files, or from stdin if no files are given.
func readUtterances(stdin io.Reader, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return readLines(stdin)
	}
	var utterances []string
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}
		lines, err := readLines(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		utterances = append(utterances, lines...)
	}
	return utterances, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}
