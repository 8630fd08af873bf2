// Command classify runs the portal classifier over a directory of saved HTML
// snapshots and summarizes the result per portal. Snapshot files may encode
// their origin host as "hostname__rest-of-name.html".
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/applyforge/applyforge/internal/dom"
	"github.com/applyforge/applyforge/internal/domain"
	"github.com/applyforge/applyforge/internal/portal"
)

func main() {
	var (
		dir     = flag.String("dir", ".", "directory of .html snapshots")
		verbose = flag.Bool("v", false, "print every file's classification")
	)
	flag.Parse()

	files, err := snapshotFiles(*dir)
	if err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		color.Yellow("no .html snapshots under %s", *dir)
		return
	}

	detector := portal.NewDetector(nil)
	counts := make(map[domain.Portal]int)
	var unreadable int

	bar := progressbar.Default(int64(len(files)), "classifying")
	for _, file := range files {
		bar.Add(1)

		html, err := os.ReadFile(file)
		if err != nil {
			unreadable++
			continue
		}

		doc, err := dom.NewStaticDocument(string(html), snapshotURL(file))
		if err != nil {
			unreadable++
			continue
		}

		detection := detector.Detect(doc)
		counts[detection.Portal]++

		if *verbose {
			fmt.Printf("\n%s: %s", filepath.Base(file), detection.Portal)
		}
	}
	fmt.Println()

	portals := make([]string, 0, len(counts))
	for p := range counts {
		portals = append(portals, string(p))
	}
	sort.Strings(portals)

	color.Green("Classified %d snapshots:", len(files)-unreadable)
	for _, p := range portals {
		fmt.Printf("  %-12s %d\n", p, counts[domain.Portal(p)])
	}
	if unreadable > 0 {
		color.Yellow("  unreadable   %d", unreadable)
	}
}

func snapshotFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".html") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// snapshotURL reconstructs an URL from the "hostname__name.html" convention
// so hostname signatures still apply to offline snapshots.
func snapshotURL(file string) string {
	base := filepath.Base(file)
	host, _, found := strings.Cut(base, "__")
	if !found {
		return ""
	}
	return "https://" + host + "/"
}
