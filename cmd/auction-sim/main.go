package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudx-io/auctiongym/core"
	"github.com/cloudx-io/auctiongym/sim"
	"github.com/cloudx-io/auctiongym/transcript"
	"github.com/cloudx-io/auctiongym/validation"
)

var (
	numAgents      int
	numRounds      int
	maxValuation   float64
	seed           int64
	transcriptPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "auction-sim",
		Short: "auction-sim plays sequential sealed-bid auction episodes between simulated agents.",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Play one episode with uniformly random bids",
		RunE:  runEpisode,
	}
	runCmd.Flags().IntVar(&numAgents, "agents", 3, "Number of bidding agents")
	runCmd.Flags().IntVar(&numRounds, "rounds", 2, "Number of auction rounds")
	runCmd.Flags().Float64Var(&maxValuation, "max-valuation", 10.0, "Exclusive upper bound for sampled valuations")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for valuations and bids; the same seed replays the same episode")
	runCmd.Flags().StringVar(&transcriptPath, "transcript", "", "Optional path to write the CBOR episode transcript")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay the scripted 3-agent, 2-round episode from the README",
		RunE:  runDemo,
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.Execute()
}

func runEpisode(cmd *cobra.Command, args []string) error {
	env, err := sim.New(sim.Config{NumAgents: numAgents, NumRounds: numRounds, MaxValuation: maxValuation})
	if err != nil {
		return err
	}

	state, _ := env.Reset(seed)
	log.Printf("INFO: Starting episode: %d agents, %d rounds, seed %d", numAgents, numRounds, seed)

	ep := transcript.New(seed, maxValuation, state.Valuations)
	env.Render(os.Stdout, state, nil)

	// Bids come from a separate stream so valuations stay a function of
	// the seed alone
	bidRng := rand.New(rand.NewSource(seed + 1))

	for done := false; !done; {
		bids := make([]float64, numAgents)
		for i := range bids {
			bids[i] = bidRng.Float64() * maxValuation
		}

		if done, err = playRound(env, state, ep, bids); err != nil {
			return err
		}
	}

	return finishEpisode(env, state, ep)
}

func runDemo(cmd *cobra.Command, args []string) error {
	env, err := sim.New(sim.Config{NumAgents: 3, NumRounds: 2, MaxValuation: 10.0})
	if err != nil {
		return err
	}

	state, _, err := env.ResetWith([]float64{5.94, 7.44, 6.42})
	if err != nil {
		return err
	}

	ep := transcript.New(0, 10.0, state.Valuations)
	env.Render(os.Stdout, state, nil)

	for _, bids := range [][]float64{{5.0, 7.0, 6.0}, {8.0, 5.0, 7.0}} {
		if _, err := playRound(env, state, ep, bids); err != nil {
			return err
		}
	}

	return finishEpisode(env, state, ep)
}

func playRound(env *sim.Auction, state *sim.EpisodeState, ep *transcript.Episode, bids []float64) (bool, error) {
	_, done, _, err := env.Step(state, bids)
	if err != nil {
		return false, fmt.Errorf("step round %d: %w", state.Round, err)
	}

	ep.RecordRound(bids, core.ResolveRound(state.Valuations, bids))
	env.Render(os.Stdout, state, bids)
	return done, nil
}

func finishEpisode(env *sim.Auction, state *sim.EpisodeState, ep *transcript.Episode) error {
	result, err := validation.ValidateTranscript(ep)
	if err != nil {
		return fmt.Errorf("validate transcript: %w", err)
	}
	if !result.IsValid() {
		log.Printf("ERROR: Transcript failed self-validation: %v", result.ValidationDetails)
	}

	log.Printf("INFO: Episode %s complete after %d rounds, digest %s", ep.EpisodeID, state.Round, ep.Digest())

	if transcriptPath != "" {
		data, err := ep.Encode()
		if err != nil {
			return err
		}
		if err := os.WriteFile(transcriptPath, data, 0o644); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
		log.Printf("INFO: Wrote transcript to %s (%d bytes)", transcriptPath, len(data))
	}

	return nil
}
