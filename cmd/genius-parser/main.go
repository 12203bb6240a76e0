package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sukalov/lyricle/internal/logger"
	"github.com/sukalov/lyricle/internal/lyrics"
	"github.com/sukalov/lyricle/internal/lyrics/parsers/genius"
	"github.com/sukalov/lyricle/internal/utils"
)

func main() {
	var outputFile, section string

	flag.StringVar(&outputFile, "output", "extracted_lyrics.txt", "Output file name")
	flag.StringVar(&section, "section", string(genius.SectionChorus), "Section heading to extract, e.g. Chorus or Hook")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <URL | \"title - artist\">\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "Example: %s https://genius.com/Daft-punk-get-lucky-lyrics\n", os.Args[0])
		os.Exit(1)
	}

	target := strings.Join(args, " ")

	fmt.Println("=== Genius Lyrics Extractor CLI ===")
	fmt.Printf("Target: %s\n", target)
	fmt.Printf("Output file: %s\n", outputFile)
	fmt.Println()

	env, err := utils.LoadEnv([]string{"GENIUS_ACCESS_TOKEN"})
	if err != nil && !strings.HasPrefix(target, "http") {
		log.Fatalf("searching by title needs GENIUS_ACCESS_TOKEN: %v", err)
	}

	service := lyrics.NewService(env["GENIUS_ACCESS_TOKEN"])
	ctx := context.Background()

	var result *lyrics.LyricsResult
	if strings.HasPrefix(target, "http") {
		result, err = service.ExtractLyrics(ctx, target)
	} else {
		title, artist, _ := strings.Cut(target, " - ")
		result, err = service.FindLyrics(ctx, strings.TrimSpace(title), strings.TrimSpace(artist))
	}
	if err != nil {
		logger.Error(fmt.Sprintf("Error extracting lyrics\nTarget: %s\nError: %v", target, err))
		log.Fatalf("Error extracting lyrics: %v", err)
	}

	normalized := genius.Normalize(result.Text)
	if err := os.WriteFile(outputFile, []byte(normalized), 0644); err != nil {
		logger.Error(fmt.Sprintf("Error saving lyrics file\nFile: %s\nError: %v", outputFile, err))
		log.Fatalf("Error saving file: %v", err)
	}
	logger.Success(fmt.Sprintf("Lyrics extraction completed successfully\nURL: %s\nOutput: %s\nLength: %d chars", result.URL, outputFile, len(normalized)))

	cfg := genius.DefaultConfig()
	cfg.ChorusMarker = genius.SectionType(section).Marker()

	chorus, err := genius.ExtractChorus(normalized, cfg)
	switch {
	case errors.Is(err, genius.ErrNoChorusMarker):
		fmt.Println("Chorus not found.")
	case err != nil:
		fmt.Printf("Chorus rejected: %v\n", err)
	default:
		fmt.Printf("Chorus:\n%s\n\nTotal Words in Chorus: %d\nUnique Words in Chorus: %d\n",
			chorus, genius.WordCount(chorus), genius.UniqueWordCount(chorus))
	}

	fmt.Printf("Lyrics saved to: %s\n", outputFile)
	fmt.Println("=== EXTRACTION COMPLETED SUCCESSFULLY ===")
}
