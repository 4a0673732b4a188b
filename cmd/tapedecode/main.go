/* Decode Apple II cassette recordings from WAV files */
package main

/*-------------------------------------------------------------------
 *
 * Purpose:     Command line front end for the cassette decoder.
 *
 * Inputs:	A .WAV recording of an Apple II cassette, typically
 *		captured with a sound card from a tape deck's line
 *		output.
 *
 * Description:	Scans the recording for tape chunks, reports each one
 *		with its sample bounds and checksum status, and can
 *		save the payloads out as files.
 *
 *		Defaults can be kept in a small YAML profile so a tape
 *		digitizing session doesn't need the same four flags
 *		every time.
 *
 *--------------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	cidermill "github.com/doismellburning/cidermill/src"
)

type decode_profile struct {
	Algorithm       string `yaml:"algorithm"`
	FirstOnly       bool   `yaml:"first_only"`
	OutputDir       string `yaml:"output_dir"`
	TimestampFormat string `yaml:"timestamp_format"`
}

func parse_algorithm(name string) (cidermill.CassetteAlgorithm, error) {
	switch name {
	case "zerocross", "zero":
		return cidermill.AlgZeroCross, nil
	case "sharp":
		return cidermill.AlgSharpPeak, nil
	case "round":
		return cidermill.AlgRoundPeak, nil
	case "shallow":
		return cidermill.AlgShallowPeak, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (want zerocross, sharp, round, or shallow)", name)
	}
}

func main() {
	var algorithmName = pflag.StringP("algorithm", "a", "zerocross", "Half-cycle extraction: zerocross, sharp, round, or shallow.")
	var firstOnly = pflag.BoolP("first", "1", false, "Stop after the first chunk.")
	var outputDir = pflag.StringP("output", "o", "", "Write each chunk's payload to a file in this directory.")
	var timestampFormat = pflag.StringP("timestamp-format", "T", "", "Prefix saved chunk names with a 'strftime' format time stamp.")
	var profilePath = pflag.StringP("profile", "c", "", "YAML profile supplying default options.")
	var verbose = pflag.BoolP("verbose", "v", false, "Hex dump each chunk's payload.")
	var showVersion = pflag.Bool("version", false, "Print version and exit.")
	pflag.Parse()

	if *showVersion {
		cidermill.PrintVersion("tapedecode")
		return
	}

	cidermill.TextColorInit(1)

	if *profilePath != "" {
		var raw, readErr = os.ReadFile(*profilePath)
		if readErr != nil {
			log.Fatal("Can't read profile", "path", *profilePath, "error", readErr)
		}
		var profile decode_profile
		if yamlErr := yaml.Unmarshal(raw, &profile); yamlErr != nil {
			log.Fatal("Can't parse profile", "path", *profilePath, "error", yamlErr)
		}

		// Explicit flags win over the profile.
		if profile.Algorithm != "" && !pflag.CommandLine.Changed("algorithm") {
			*algorithmName = profile.Algorithm
		}
		if profile.FirstOnly && !pflag.CommandLine.Changed("first") {
			*firstOnly = true
		}
		if profile.OutputDir != "" && !pflag.CommandLine.Changed("output") {
			*outputDir = profile.OutputDir
		}
		if profile.TimestampFormat != "" && !pflag.CommandLine.Changed("timestamp-format") {
			*timestampFormat = profile.TimestampFormat
		}
	}

	if pflag.NArg() != 1 {
		fmt.Printf("Usage: tapedecode [options] recording.wav\n\n")
		pflag.PrintDefaults()
		os.Exit(1)
	}

	var algorithm, algErr = parse_algorithm(*algorithmName)
	if algErr != nil {
		log.Fatal("Bad flag", "error", algErr)
	}

	var wavPath = pflag.Arg(0)
	var f, openErr = os.Open(wavPath)
	if openErr != nil {
		log.Fatal("Can't open recording", "path", wavPath, "error", openErr)
	}
	defer f.Close()

	var wav, wavErr = cidermill.OpenWav(f)
	if wavErr != nil {
		log.Fatal("Can't parse WAV", "path", wavPath, "error", wavErr)
	}
	log.Info("Opened recording",
		"rate", wav.SamplesPerSec, "bits", wav.BitsPerSample,
		"channels", wav.Channels, "dataBytes", wav.DataLength)

	var decoder = cidermill.NewCassetteDecoder(wav, algorithm)
	var chunks = decoder.Decode(*firstOnly)

	if len(chunks) == 0 {
		log.Warn("No chunks found", "algorithm", algorithm)
		os.Exit(1)
	}

	var prefix = ""
	if *timestampFormat != "" {
		var formatted, tsErr = strftime.Format(*timestampFormat, time.Now())
		if tsErr != nil {
			log.Fatal("Bad timestamp format", "format", *timestampFormat, "error", tsErr)
		}
		prefix = formatted + "-"
	}

	for i, chunk := range chunks {
		log.Info("Chunk",
			"index", i,
			"bytes", len(chunk.Data),
			"samples", fmt.Sprintf("%d-%d", chunk.StartSample, chunk.EndSample),
			"readChecksum", fmt.Sprintf("0x%02x", chunk.ReadChecksum),
			"checksum", cidermill.IfThenElse(chunk.BadChecksum(), "BAD", "ok"),
			"end", cidermill.IfThenElse(chunk.BadEnd, "ragged", "clean"))

		if *verbose {
			cidermill.HexDump(os.Stdout, chunk.Data)
		}

		if *outputDir != "" {
			var name = filepath.Join(*outputDir, fmt.Sprintf("%schunk%02d.bin", prefix, i))
			if writeErr := os.WriteFile(name, chunk.Data, 0644); writeErr != nil {
				log.Fatal("Can't save chunk", "path", name, "error", writeErr)
			}
			log.Info("Saved chunk", "path", name)
		}
	}
}
