// Command mapview is a terminal client for the midpoint API. It submits a
// query for three place names (or replays one from history), renders the
// points and midpoint onto a GeoJSON map surface, and writes the document
// to a file ready for any GeoJSON viewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/samirrijal/meetpoint/internal/client"
	"github.com/samirrijal/meetpoint/internal/core/ranking"
	"github.com/samirrijal/meetpoint/internal/mapview"
	"github.com/samirrijal/meetpoint/internal/mapview/geojson"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "midpoint API base URL")
	out := flag.String("out", "meetpoint.geojson", "output GeoJSON file")
	sort := flag.String("sort", "", "history order: asc or desc (default: most recent first)")
	selectIdx := flag.Int("select", -1, "replay the n-th history entry instead of submitting")
	flag.Parse()

	svc := client.NewAPIClient(*server)

	var renderer *geojson.Renderer
	surface := mapview.NewSurface(func(container string) (mapview.Renderer, error) {
		renderer = geojson.NewRenderer(container)
		return renderer, nil
	})
	if err := surface.Init("map"); err != nil {
		log.Fatalf("map surface: %v", err)
	}
	defer surface.Dispose()

	panel := client.NewHistoryPanel(svc, surface)
	panel.SetMode(ranking.ParseMode(*sort))
	ctrl := client.NewController(svc, surface, panel)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch {
	case *selectIdx >= 0:
		if err := panel.Refresh(ctx); err != nil {
			log.Fatalf("fetch history: %v", err)
		}
		if err := panel.Select(*selectIdx); err != nil {
			log.Fatalf("select history entry: %v", err)
		}

	case flag.NArg() == 3:
		record, err := ctrl.Submit(ctx, flag.Arg(0), flag.Arg(1), flag.Arg(2))
		if err != nil {
			if qe, ok := client.AsQueryError(err); ok {
				log.Fatal(qe.UserMessage())
			}
			log.Fatal(err)
		}
		fmt.Printf("midpoint: %.4f, %.4f (%s)\n",
			record.Midpoint.Lat, record.Midpoint.Lon, record.Midpoint.Reverse.Caption())
		fmt.Printf("distances: A %.1f km, B %.1f km, C %.1f km\n",
			record.DistancesKm.AToM, record.DistancesKm.BToM, record.DistancesKm.CToM)

	default:
		fmt.Fprintln(os.Stderr, "usage: mapview [flags] <placeA> <placeB> <placeC>")
		fmt.Fprintln(os.Stderr, "       mapview [flags] -select <n>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	doc, err := renderer.Document()
	if err != nil {
		log.Fatalf("render document: %v", err)
	}
	if err := os.WriteFile(*out, doc, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	fmt.Printf("wrote %s\n", *out)
}
