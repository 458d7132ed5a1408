package main

import (
	_ "embed"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tomz197/dodgefall/internal/config"
	"github.com/tomz197/dodgefall/internal/highscore"
)

const (
	defaultHost      = "0.0.0.0"
	defaultPort      = "8080"
	defaultScoreFile = "/app/data/scores.json"
)

//go:embed index.html
var htmlPage string

// scoreReader is the part of the high score board the site reads.
type scoreReader interface {
	Get() int
}

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	scoreFile := config.GetEnv("DODGE_SCORE_FILE", defaultScoreFile)

	board := highscore.NewBoard(highscore.NewFileStore(scoreFile))

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr, "scores", scoreFile)
	if err := http.ListenAndServe(addr, newMux(board, sshHost, logger)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func newMux(scores scoreReader, sshHost string, logger *log.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := strings.NewReplacer(
			"{{.SSHHost}}", sshHost,
			"{{.HighScore}}", strconv.Itoa(scores.Get()),
		).Replace(htmlPage)
		_, _ = w.Write([]byte(page))
	})

	mux.HandleFunc("/api/highscore", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		body := map[string]int{highscore.Key: scores.Get()}
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Warn("write high score", "err", err)
		}
	})

	return mux
}
