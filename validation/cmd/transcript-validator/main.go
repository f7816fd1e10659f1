package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cloudx-io/auctiongym/transcript"
	"github.com/cloudx-io/auctiongym/validation"
)

func main() {
	// Define CLI flags
	var (
		transcriptPath = flag.String("transcript", "", "Path to a CBOR-encoded episode transcript")
		outputFormat   = flag.String("format", "text", "Output format: text or json")
		help           = flag.Bool("help", false, "Show usage information")
	)

	flag.Parse()

	// Show help
	if *help {
		showUsage()
		os.Exit(0)
	}

	if *transcriptPath == "" {
		showUsage()
		fmt.Fprintf(os.Stderr, "\nError: --transcript is required\n")
		os.Exit(1)
	}

	data, err := os.ReadFile(*transcriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transcript: %v\n", err)
		os.Exit(2)
	}

	ep, err := transcript.DecodeEpisode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding transcript: %v\n", err)
		os.Exit(2)
	}

	// Validate using library
	result, err := validation.ValidateTranscript(ep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
		os.Exit(2)
	}

	// Output results
	if *outputFormat == "json" {
		outputJSON(result)
	} else {
		outputText(ep, result)
	}

	// Exit with appropriate code
	if !result.IsValid() {
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Println("transcript-validator verifies an auction episode transcript by replaying")
	fmt.Println("the auction rules over the recorded bids.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  transcript-validator --transcript <path> [--format text|json]")
	fmt.Println()
	flag.PrintDefaults()
}

func outputJSON(result *validation.TranscriptValidationResult) {
	out := map[string]any{
		"valid":              result.IsValid(),
		"shape_valid":        result.ShapeValid,
		"winners_valid":      result.WinnersValid,
		"rewards_valid":      result.RewardsValid,
		"utility_valid":      result.UtilityValid,
		"hash_chain_valid":   result.HashChainValid,
		"validation_details": result.ValidationDetails,
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(data))
}

func outputText(ep *transcript.Episode, result *validation.TranscriptValidationResult) {
	fmt.Printf("Episode:    %s\n", ep.EpisodeID)
	fmt.Printf("Agents:     %d\n", ep.NumAgents)
	fmt.Printf("Rounds:     %d\n", len(ep.Rounds))
	fmt.Printf("Digest:     %s\n", ep.Digest())
	fmt.Println()
	fmt.Printf("Shape:      %s\n", passFail(result.ShapeValid))
	fmt.Printf("Winners:    %s\n", passFail(result.WinnersValid))
	fmt.Printf("Rewards:    %s\n", passFail(result.RewardsValid))
	fmt.Printf("Utility:    %s\n", passFail(result.UtilityValid))
	fmt.Printf("Hash chain: %s\n", passFail(result.HashChainValid))
	fmt.Println()
	for _, detail := range result.ValidationDetails {
		fmt.Printf("  - %s\n", detail)
	}
	fmt.Println()
	if result.IsValid() {
		fmt.Println("Transcript is VALID")
	} else {
		fmt.Println("Transcript is INVALID")
	}
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
