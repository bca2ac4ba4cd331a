// Package main provides the tube entry point.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/tongbarn/tube/internal/app/playback"
	"github.com/tongbarn/tube/internal/app/session"
	"github.com/tongbarn/tube/internal/domain/video"
	"github.com/tongbarn/tube/internal/infra/config"
	"github.com/tongbarn/tube/internal/infra/logger"
	"github.com/tongbarn/tube/internal/infra/ytembed"
)

var (
	app        = kingpin.New("tube", "Personal distraction-free YouTube front end")
	configPath = app.Flag("config", "Path to config file").Default("config/tube.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()

	// history command
	historyCmd      = app.Command("history", "Manage the watch history")
	historyListCmd  = historyCmd.Command("list", "List the watch history").Default()
	historyClearCmd = historyCmd.Command("clear", "Clear the watch history")

	// queue command
	queueCmd       = app.Command("queue", "Manage the play queue")
	queueListCmd   = queueCmd.Command("list", "List the play queue").Default()
	queueAddCmd    = queueCmd.Command("add", "Add a video to the play queue")
	queueAddURL    = queueAddCmd.Arg("url", "YouTube URL or video id").Required().String()
	queueRemoveCmd = queueCmd.Command("remove", "Remove a video from the play queue")
	queueRemoveID  = queueRemoveCmd.Arg("id", "Video id").Required().String()
	queueClearCmd  = queueCmd.Command("clear", "Clear the play queue")

	// watch command (default)
	watchCmd = app.Command("watch", "Start an interactive watch session (default)").Default()
	watchURL = watchCmd.Arg("url", "YouTube URL or video id to play immediately").String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	loggerConfig := logger.Config{Level: "info"}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.File = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	mgr, err := session.NewManager(cfg)
	if err != nil {
		zlog.Fatal().Msgf("Failed to create session: %v", err)
	}
	defer mgr.Close()

	switch command {
	case historyListCmd.FullCommand():
		printList(mgr.Translator().T("recently_watched"), mgr.History().Items())
	case historyClearCmd.FullCommand():
		mgr.History().Clear()
		fmt.Println(mgr.Translator().T("clear_history"))
	case queueListCmd.FullCommand():
		printList(mgr.Translator().T("play_queue"), mgr.Queue().Items())
	case queueAddCmd.FullCommand():
		enqueue(mgr, *queueAddURL)
	case queueRemoveCmd.FullCommand():
		mgr.Queue().Remove(*queueRemoveID)
		fmt.Println(mgr.Translator().T("remove"))
	case queueClearCmd.FullCommand():
		mgr.Queue().Clear()
		fmt.Println(mgr.Translator().T("clear_queue"))
	default:
		watch(mgr, *watchURL)
	}
}

// watch runs the interactive session loop until EOF, "quit" or a signal.
func watch(mgr *session.Manager, startURL string) {
	tr := mgr.Translator()
	fmt.Printf("%s - %s\n", tr.T("app_name"), tr.T("tagline"))
	fmt.Println(tr.T("paste_url"))

	go printUpdates(mgr)

	if startURL != "" {
		if err := mgr.Reconciler().DirectPlay(startURL); err != nil {
			fmt.Printf("%s: %s\n", tr.T("invalid_url"), tr.T("invalid_url_desc"))
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	lines := make(chan string)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-sigCh:
			fmt.Println()
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if !dispatch(mgr, strings.TrimSpace(line)) {
				return
			}
		}
	}
}

// dispatch handles one input line. Returns false to end the session.
func dispatch(mgr *session.Manager, line string) bool {
	tr := mgr.Translator()

	switch {
	case line == "":
		return true
	case line == "quit" || line == "exit":
		return false
	case line == "help":
		printHelp()
	case line == "history":
		printList(tr.T("recently_watched"), mgr.History().Items())
	case line == "queue":
		printList(tr.T("play_queue"), mgr.Queue().Items())
	case line == "lang":
		fmt.Println(tr.Toggle())
	case strings.HasPrefix(line, "play "):
		id := strings.TrimSpace(strings.TrimPrefix(line, "play "))
		if err := mgr.Reconciler().SelectFromHistory(id); err != nil {
			if err := mgr.Reconciler().SelectFromQueue(id); err != nil {
				fmt.Println(tr.T("invalid_url"))
			}
		}
	case strings.HasPrefix(line, "add "):
		enqueue(mgr, strings.TrimPrefix(line, "add "))
	default:
		if err := mgr.Reconciler().DirectPlay(line); err != nil {
			fmt.Printf("%s: %s\n", tr.T("invalid_url"), tr.T("invalid_url_desc"))
		}
	}
	return true
}

func enqueue(mgr *session.Manager, raw string) {
	tr := mgr.Translator()
	ref, err := mgr.Reconciler().Enqueue(raw)
	if err != nil {
		fmt.Printf("%s: %s\n", tr.T("invalid_url"), tr.T("invalid_url_desc"))
		return
	}
	fmt.Printf("%s: %s\n", tr.T("added_to_queue"), displayTitle(ref))
}

// printUpdates renders reconciler updates until the session closes.
func printUpdates(mgr *session.Manager) {
	tr := mgr.Translator()
	for u := range mgr.Reconciler().Updates() {
		switch u.Type {
		case playback.UpdateLocationChanged:
			title := fetchTitle(u.Location.VideoID)
			if u.Location.PlaylistID != "" {
				fmt.Printf("%s: %s [%s %s]\n", tr.T("now_playing"), title, tr.T("playlist"), u.Location.PlaylistID)
			} else {
				fmt.Printf("%s: %s\n", tr.T("now_playing"), title)
			}
		case playback.UpdateQueueChanged:
			fmt.Printf("%s: %d\n", tr.T("queue"), u.QueueLen)
		case playback.UpdateSessionClosed:
			return
		}
	}
}

// fetchTitle resolves a video title best-effort, falling back to a
// placeholder derived from the id.
func fetchTitle(videoID string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client := &ytembed.MetadataClient{}
	meta, err := client.Metadata(ctx, videoID)
	if err != nil || meta.Title == "" {
		zlog.Debug().Err(err).Str("video_id", videoID).Msg("metadata lookup failed")
		return video.PlaceholderTitle(videoID)
	}
	return meta.Title
}

func displayTitle(ref video.Ref) string {
	if ref.Title != "" {
		return ref.Title
	}
	return video.PlaceholderTitle(ref.ID)
}

func printList(header string, items []video.Ref) {
	fmt.Printf("%s (%d):\n", header, len(items))
	for i, ref := range items {
		fmt.Printf("  %2d. %s  %s\n", i+1, ref.ID, displayTitle(ref))
	}
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  <url>        play a video or playlist URL")
	fmt.Println("  add <url>    add a video to the play queue")
	fmt.Println("  play <id>    play an entry from history or queue")
	fmt.Println("  history      list the watch history")
	fmt.Println("  queue        list the play queue")
	fmt.Println("  lang         toggle the interface language")
	fmt.Println("  quit         end the session")
}
