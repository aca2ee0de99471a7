package main

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/languoid-cli/internal/geometry"
	"github.com/sells-group/languoid-cli/internal/guess"
	"github.com/sells-group/languoid-cli/internal/languoid"
	"github.com/sells-group/languoid-cli/internal/model"
	"github.com/sells-group/languoid-cli/internal/store"
)

var (
	guessMethod  string
	guessLon     float64
	guessLat     float64
	guessBuffer  float64
	guessRank    string
	guessVerify  bool
	guessPrimary bool
	guessRecord  bool
)

var guessCmd = &cobra.Command{
	Use:   "guess <language>",
	Short: "Guess the glottocode for a language name",
	Long:  "Guesses via Wikipedia infoboxes, via an LLM over geospatially resolved candidates, or both in order. The llm and both methods need --lon and --lat to build the candidate set.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		language := args[0]
		ctx := cmd.Context()

		var runs []*model.GuessRun

		var code string
		switch guessMethod {
		case model.MethodWikipedia:
			wikiCode, run, err := guessViaWikipedia(ctx, language)
			if err != nil {
				return err
			}
			code = wikiCode
			runs = append(runs, run)
		case model.MethodLLM:
			llmCode, run, err := guessViaLLM(ctx, cmd, language)
			if err != nil {
				return err
			}
			code = llmCode
			runs = append(runs, run)
		case "both":
			wikiCode, run, err := guessViaWikipedia(ctx, language)
			if err != nil {
				return err
			}
			runs = append(runs, run)
			code = wikiCode
			if code == "" {
				llmCode, llmRun, err := guessViaLLM(ctx, cmd, language)
				if err != nil {
					return err
				}
				runs = append(runs, llmRun)
				code = llmCode
			}
		default:
			return eris.Errorf("unknown method %q (want wikipedia, llm, or both)", guessMethod)
		}

		if code != "" && guessVerify {
			v := newVerifier(newFetcher())
			ok, err := v.Verify(ctx, language, code)
			if err != nil {
				return err
			}
			for _, run := range runs {
				if run.Glottocode == code {
					run.Verified = &ok
				}
			}
			if !ok {
				zap.L().Warn("guess failed verification",
					zap.String("language", language),
					zap.String("glottocode", code),
				)
				code = ""
			}
		}

		if guessRecord {
			if err := recordRuns(ctx, runs); err != nil {
				return err
			}
		}

		if code == "" {
			fmt.Printf("no glottocode found for %s\n", language)
			return nil
		}
		fmt.Println(code)
		return nil
	},
}

func guessViaWikipedia(ctx context.Context, language string) (string, *model.GuessRun, error) {
	w := newWikipedia(newFetcher())
	code, err := w.GuessGlottocode(ctx, language, guessPrimary)
	if err != nil {
		return "", nil, err
	}
	return code, &model.GuessRun{
		Language:   language,
		Method:     model.MethodWikipedia,
		Glottocode: code,
	}, nil
}

func guessViaLLM(ctx context.Context, cmd *cobra.Command, language string) (string, *model.GuessRun, error) {
	if !cmd.Flags().Changed("lon") || !cmd.Flags().Changed("lat") {
		return "", nil, eris.New("the llm method requires --lon and --lat to build candidates")
	}
	if cfg.Anthropic.Key == "" {
		return "", nil, eris.New("anthropic.key is not configured")
	}

	buffer := guessBuffer
	if !cmd.Flags().Changed("buffer") {
		buffer = cfg.Resolve.BufferKM
	}

	r := newResolver(newFetcher())
	candidates, err := r.Resolve(ctx, geometry.Coordinate{Lon: guessLon, Lat: guessLat}, buffer, guessRank)
	if err != nil {
		return "", nil, err
	}

	run := &model.GuessRun{
		Language:   language,
		Method:     model.MethodLLM,
		Candidates: len(candidates),
	}
	if len(candidates) == 0 {
		zap.L().Warn("no candidates near location",
			zap.Float64("lon", guessLon),
			zap.Float64("lat", guessLat),
		)
		return "", run, nil
	}

	g := guess.NewAnthropicGuesser(cfg.Anthropic.Key, cfg.Anthropic.Model)
	code, err := g.Guess(ctx, language, candidates)
	if err != nil {
		return "", nil, err
	}
	run.Glottocode = code
	return code, run, nil
}

func recordRuns(ctx context.Context, runs []*model.GuessRun) error {
	st, err := store.Open(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	if err := st.Migrate(ctx); err != nil {
		return err
	}
	for _, run := range runs {
		if err := st.RecordRun(ctx, run); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	guessCmd.Flags().StringVar(&guessMethod, "method", "both", "guess method: wikipedia, llm, or both")
	guessCmd.Flags().Float64Var(&guessLon, "lon", 0, "longitude for candidate resolution (llm method)")
	guessCmd.Flags().Float64Var(&guessLat, "lat", 0, "latitude for candidate resolution (llm method)")
	guessCmd.Flags().Float64Var(&guessBuffer, "buffer", 50, "candidate search radius in kilometers")
	guessCmd.Flags().StringVar(&guessRank, "rank", languoid.RankAll, "candidate rank filter")
	guessCmd.Flags().BoolVar(&guessVerify, "verify", false, "verify the guess against the authoritative record")
	guessCmd.Flags().BoolVar(&guessPrimary, "primary-only", true, "accept only the primary glottocode from infoboxes")
	guessCmd.Flags().BoolVar(&guessRecord, "record", true, "record the run in the local database")
	rootCmd.AddCommand(guessCmd)
}
