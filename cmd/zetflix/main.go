package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const usage = `Usage: zetflix [flags] <commande>

Commandes:
  health | version
  trending
  [-type multi|movie|tv] search <texte>
  watchlist list
  watchlist add <movie|tv> <id>
  watchlist remove <movie|tv> <id>
  watchlist clear`

func main() {
	baseURL := flag.String("server", envOr("ZETFLIX_SERVER_URL", "http://127.0.0.1:8080"), "URL du serveur (ex: http://127.0.0.1:8080)")
	timeout := flag.Duration("timeout", 10*time.Second, "Timeout HTTP")
	searchType := flag.String("type", "multi", "Type de recherche (multi, movie, tv)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	c := &cli{http: &http.Client{Timeout: *timeout}, base: strings.TrimRight(*baseURL, "/") + "/api/v1"}

	switch args[0] {
	case "health":
		c.run(http.MethodGet, "/health", nil)
	case "version":
		c.run(http.MethodGet, "/version", nil)
	case "trending":
		c.trending()
	case "search":
		if len(args) < 2 {
			fail(2, "search: texte manquant")
		}
		q := url.Values{"q": {strings.Join(args[1:], " ")}, "type": {*searchType}}
		c.run(http.MethodGet, "/search?"+q.Encode(), nil)
	case "watchlist":
		c.watchlist(args[1:])
	default:
		fail(2, "Commande inconnue: "+args[0])
	}
}

type cli struct {
	http *http.Client
	base string
}

func (c *cli) watchlist(args []string) {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		c.run(http.MethodGet, "/watchlist", nil)
	case "clear":
		c.run(http.MethodDelete, "/watchlist", nil)
	case "add", "remove":
		if len(args) != 3 {
			fail(2, "watchlist "+args[0]+": attendu <movie|tv> <id>")
		}
		id, err := strconv.Atoi(args[2])
		if err != nil || id <= 0 {
			fail(2, "id invalide: "+args[2])
		}
		if args[0] == "add" {
			body, _ := json.Marshal(map[string]any{"mediaType": args[1], "id": id})
			c.run(http.MethodPost, "/watchlist", body)
			return
		}
		c.run(http.MethodDelete, "/watchlist/"+url.PathEscape(args[1])+"/"+strconv.Itoa(id), nil)
	default:
		fail(2, "watchlist: sous-commande inconnue: "+args[0])
	}
}

// trending affiche la première ligne de l'accueil sous forme de liste.
func (c *cli) trending() {
	status, b := c.do(http.MethodGet, "/home", nil)
	if status >= 400 {
		printBody(b)
		os.Exit(1)
	}
	var home struct {
		Rows []struct {
			Title string `json:"title"`
			Items []struct {
				ID          int     `json:"id"`
				Kind        string  `json:"kind"`
				Title       string  `json:"title"`
				ReleaseDate string  `json:"releaseDate"`
				VoteAverage float64 `json:"voteAverage"`
			} `json:"items"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(b, &home); err != nil || len(home.Rows) == 0 {
		printBody(b)
		return
	}
	row := home.Rows[0]
	fmt.Println(row.Title)
	for _, it := range row.Items {
		year := it.ReleaseDate
		if len(year) >= 4 {
			year = year[:4]
		}
		fmt.Printf("  %-6s %8d  %.1f  %s (%s)\n", it.Kind, it.ID, it.VoteAverage, it.Title, year)
	}
}

func (c *cli) do(method, path string, body []byte) (int, []byte) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, c.base+path, rd)
	if err != nil {
		fail(1, "Erreur: "+err.Error())
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		fail(1, "Erreur: "+err.Error())
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func (c *cli) run(method, path string, body []byte) {
	status, b := c.do(method, path, body)
	printBody(b)
	if status >= 400 {
		os.Exit(1)
	}
}

func printBody(b []byte) {
	if len(bytes.TrimSpace(b)) == 0 {
		return
	}
	var pretty any
	if err := json.Unmarshal(b, &pretty); err == nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(pretty)
		return
	}
	os.Stdout.Write(b)
	os.Stdout.Write([]byte("\n"))
}

func fail(code int, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
