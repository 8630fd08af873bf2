// Command scan classifies one job page and previews the autofill mapping.
// It works against a live URL through the browser, or against a saved HTML
// snapshot without one.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/applyforge/applyforge/internal/autofill"
	"github.com/applyforge/applyforge/internal/browser"
	"github.com/applyforge/applyforge/internal/config"
	"github.com/applyforge/applyforge/internal/dom"
	"github.com/applyforge/applyforge/internal/domain"
	"github.com/applyforge/applyforge/internal/portal"
)

func main() {
	godotenv.Load()

	var (
		pageURL     = flag.String("url", "", "job page URL to open in the browser")
		file        = flag.String("file", "", "saved HTML snapshot to scan instead of a live page")
		snapshotURL = flag.String("snapshot-url", "", "original URL of the snapshot (for hostname checks)")
		profilePath = flag.String("profile", "", "candidate profile JSON file (enables the autofill preview)")
		headed      = flag.Bool("headed", false, "run the browser with a visible window")
		timeout     = flag.Duration("timeout", 30*time.Second, "navigation timeout")
	)
	flag.Parse()

	if (*pageURL == "") == (*file == "") {
		fail("exactly one of -url or -file is required")
	}

	doc, cleanup, err := openDocument(*pageURL, *file, *snapshotURL, *headed, *timeout)
	if err != nil {
		fail(err.Error())
	}
	defer cleanup()

	detector := portal.NewDetector(nil)
	extractor := portal.NewExtractor(detector)

	detection := detector.Detect(doc)
	printDetection(detection)

	job, _ := extractor.Extract(doc)
	fmt.Println()
	fmt.Printf("Role:    %s\n", job.Title)
	fmt.Printf("Company: %s\n", job.Company)
	fmt.Printf("Description: %d chars\n", len(job.Description))

	if *profilePath == "" {
		return
	}

	profile, err := loadProfile(*profilePath)
	if err != nil {
		fail(err.Error())
	}

	engine := autofill.NewEngine(autofill.Config{}, zap.NewNop())
	preview := engine.Preview(doc, profile)

	fmt.Println()
	if len(preview) == 0 {
		color.Yellow("No autofill matches on this page")
		return
	}

	color.Green("Autofill preview (%d fields):", len(preview))
	for _, row := range preview {
		fmt.Printf("  %-12s %-10s %3d%%  %-24s → %s\n",
			row.SourceKey, row.Kind, row.Confidence, ellipsis(row.Label, 24), ellipsis(row.Value, 32))
	}
}

func openDocument(pageURL, file, snapshotURL string, headed bool, timeout time.Duration) (dom.Document, func(), error) {
	if file != "" {
		html, err := os.ReadFile(file)
		if err != nil {
			return nil, nil, fmt.Errorf("reading snapshot: %w", err)
		}
		doc, err := dom.NewStaticDocument(string(html), snapshotURL)
		if err != nil {
			return nil, nil, err
		}
		return doc, func() {}, nil
	}

	manager, err := browser.NewManager(config.BrowserConfig{
		Headless:          !headed,
		NavigationTimeout: timeout,
		MaxSessions:       1,
		SessionTTL:        time.Hour,
	}, nil, nil)
	if err != nil {
		return nil, nil, err
	}

	sess, err := manager.Open(context.Background(), pageURL)
	if err != nil {
		manager.Close()
		return nil, nil, err
	}
	return sess.Doc, func() { manager.Close() }, nil
}

func loadProfile(path string) (domain.CandidateProfile, error) {
	var profile domain.CandidateProfile
	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("reading profile: %w", err)
	}
	if err := json.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("parsing profile: %w", err)
	}
	return profile, nil
}

func printDetection(detection domain.PortalDetection) {
	if detection.Compatible {
		color.Green("Portal: %s (compatible)", detection.Portal)
	} else {
		color.Red("Portal: %s (not compatible)", detection.Portal)
	}
	for _, reason := range detection.Reasons {
		fmt.Printf("  - %s\n", reason)
	}
}

func ellipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func fail(msg string) {
	color.Red("error: %s", msg)
	os.Exit(1)
}
