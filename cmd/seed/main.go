// Package main generates a demo catalog document for local development.
package main

import (
	"encoding/json/jsontext"
	"encoding/json/v2"
	"flag"
	"fmt"
	"os"

	"github.com/marqueeapp/marquee-server/internal/catalog"
)

func main() {
	out := flag.String("out", "catalog.json", "output path for the catalog document")
	flag.Parse()

	movies := demoMovies()
	doc := catalog.Document{
		TotalMovies: len(movies),
		Movies:      movies,
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", *out, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := json.MarshalWrite(f, doc, jsontext.WithIndent("  ")); err != nil {
		fmt.Fprintf(os.Stderr, "write catalog: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d movies to %s\n", len(movies), *out)
}

func demoMovies() []catalog.Movie {
	base := "https://demo.marquee.local"

	movie := func(title, year, rating string, genres []string, description string) catalog.Movie {
		return catalog.Movie{
			Title:       title,
			Year:        year,
			Rating:      rating,
			Genres:      genres,
			Poster:      fmt.Sprintf("%s/posters/%s.jpg", base, slug(title)),
			Source:      fmt.Sprintf("%s/streams/%s.mp4", base, slug(title)),
			Description: description,
		}
	}

	return []catalog.Movie{
		movie("Midnight Premiere", "2019", "PG-13", []string{"Thriller", "Drama"},
			"A projectionist discovers a reel that was never meant to be shown."),
		movie("The Last Usher", "2021", "R", []string{"Horror"},
			"After closing time, the old Bijou refuses to empty out."),
		movie("Popcorn Summer", "2005", "PG", []string{"Comedy", "Romance"},
			"Two rival concession stands, one boardwalk, zero chill."),
		movie("Reel Steel Rain", "1998", "R", []string{"Action"},
			"A retired stuntman takes one last job on a cursed production."),
		movie("Balcony Seats", "1972", "G", []string{"Romance", "Drama"},
			"Fifty years of Friday nights in the same two chairs."),
		movie("The Intermission", "2013", "PG-13", []string{"Mystery"},
			"Fifteen minutes nobody in the theater can account for."),
		movie("Cartoon Physics", "2020", "G", []string{"Animation", "Comedy"},
			"A hand-drawn rabbit learns the rules were never real."),
		movie("Silver Screen Serenade", "1947", "G", []string{"Musical", "Romance"},
			"An organist falls for a voice she only hears during the newsreels."),
		movie("Double Feature", "2016", "R", []string{"Thriller"},
			"The second film looks suspiciously like your life."),
		movie("Marquee Lights", "1989", "PG", []string{"Drama"},
			"A small-town cinema fights the arrival of the multiplex."),
		movie("The Foley Artist", "2007", "PG-13", []string{"Drama", "Mystery"},
			"Every sound he makes comes true the next day."),
		movie("Celluloid Ghosts", "1963", "PG", []string{"Horror", "Mystery"},
			"Restorers find extra frames in a film shot with a cast of three."),
		movie("Ticket Stub", "2022", "PG", []string{"Comedy"},
			"An usher keeps every stub, and every stub keeps a story."),
		movie("Final Cut", "2000", "R", []string{"Thriller", "Action"},
			"An editor realizes the dailies change when no one is watching."),
		movie("Drive-In Eclipse", "2000", "PG-13", []string{"Science Fiction"},
			"The last show at the drive-in runs longer than the night."),
		movie("Projection Booth", "2011", "PG-13", []string{"Drama"},
			"A father and daughter rebuild a carbon-arc projector and more."),
	}
}

// slug lowercases a title into a URL-safe file stem.
func slug(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '-')
		}
	}
	return string(out)
}
