package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fatih/color"

	"SessionSpectra/internal/config"
	"SessionSpectra/internal/model"
	"SessionSpectra/internal/probe"
	"SessionSpectra/pkg/pcap"
)

// fileStats summarizes one processed capture file.
type fileStats struct {
	Input    string
	Output   string
	Sessions int
	Span     model.TimeSpan
}

func outputPath(outDir, input string) string {
	base := filepath.Base(input)
	if idx := strings.LastIndex(base, "."); idx != -1 {
		base = base[:idx]
	}
	return filepath.Join(outDir, base+"_intervals.txt")
}

// processFile tracks the sessions of one pcap file, writes them as an
// intervals file, and optionally publishes each one to NATS.
func processFile(input, output string, pub *probe.Publisher) (*fileStats, error) {
	reader, err := pcap.NewReader(input)
	if err != nil {
		return nil, fmt.Errorf("failed to open pcap file %s: %w", input, err)
	}
	defer reader.Close()

	packets := make(chan *model.PacketInfo, 1024)
	go reader.ReadPackets(packets)

	tracker := probe.NewTracker()
	for info := range packets {
		tracker.Observe(info)
	}

	file, err := os.Create(output)
	if err != nil {
		return nil, fmt.Errorf("failed to create intervals file %s: %w", output, err)
	}
	defer file.Close()

	span := model.EmptyTimeSpan()
	for _, session := range tracker.Sessions() {
		if _, err := fmt.Fprintln(file, session.Line()); err != nil {
			return nil, fmt.Errorf("failed to write interval line: %w", err)
		}
		iv := session.Interval()
		span = span.Extend(iv)
		if pub != nil {
			if err := pub.Publish(iv); err != nil {
				log.Printf("Failed to publish interval for flow %s: %v", session.Key, err)
			}
		}
	}

	return &fileStats{
		Input:    input,
		Output:   output,
		Sessions: tracker.Len(),
		Span:     span,
	}, nil
}

func printStats(stats []*fileStats) {
	for _, stat := range stats {
		color.Set(color.FgYellow)
		fmt.Print("input: ")
		color.Set(color.FgGreen)
		fmt.Printf("%s\n", stat.Input)
		color.Set(color.FgYellow)
		fmt.Print("sessions: ")
		color.Set(color.FgGreen)
		fmt.Printf("%d\n", stat.Sessions)
		color.Set(color.FgYellow)
		fmt.Print("span: ")
		if stat.Span.Empty() {
			color.Set(color.FgRed)
			fmt.Println("empty")
		} else {
			color.Set(color.FgGreen)
			fmt.Printf("[%d, %d] (%d seconds)\n", stat.Span.Begin, stat.Span.End, stat.Span.NumBins())
		}
		color.Set(color.FgYellow)
		fmt.Print("output: ")
		color.Set(color.FgMagenta)
		fmt.Printf("%s\n", stat.Output)
		color.Unset()
		fmt.Println()
	}
}

func main() {
	outDir := flag.String("out", ".", "Directory for the generated intervals files")
	publish := flag.Bool("publish", false, "Publish extracted intervals to NATS as well")
	configPath := flag.String("config", "configs/config.yaml", "Path to the configuration file (read when -publish is set)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: ss-probe [OPTIONS] PCAP_FILE...")
		flag.Usage()
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	var pub *probe.Publisher
	if *publish {
		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		pub, err = probe.NewPublisher(cfg.Probe)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer pub.Close()
	}

	var mu sync.Mutex
	var stats []*fileStats

	var g errgroup.Group
	for _, input := range flag.Args() {
		g.Go(func() error {
			stat, err := processFile(input, outputPath(*outDir, input), pub)
			if err != nil {
				return err
			}
			mu.Lock()
			stats = append(stats, stat)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Error processing capture files: %v", err)
	}

	printStats(stats)
}
