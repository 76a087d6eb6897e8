package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/fatih/color"
	"github.com/gordonklaus/portaudio"

	"github.com/4321ba/galaxyjukebox"
	"github.com/4321ba/galaxyjukebox/internal/scoreplayer"
)

const (
	escape     = "\x1b["
	hideCursor = escape + "?25l"
	showCursor = escape + "?25h"

	audioBufferSize = 756 / 2
)

var (
	white  = color.New(color.FgWhite).SprintfFunc()
	cyan   = color.New(color.FgCyan).SprintfFunc()
	yellow = color.New(color.FgYellow).SprintfFunc()
)

// AudioPlayer drives live PortAudio playback of a scoreplayer.Player and
// renders a one-line status display, the preview counterpart to
// modplay's interactive tracker UI.
type AudioPlayer struct {
	player *scoreplayer.Player
	song   *galaxyjukebox.Song
	stream *portaudio.Stream

	ctx            context.Context
	cancelFn       context.CancelFunc
	wg             sync.WaitGroup
	stopOnce       sync.Once
	terminated     bool
	keyboardDoneCh chan struct{}
}

// NewAudioPlayer builds a player for the already-loaded song, ready for Run.
func NewAudioPlayer(player *scoreplayer.Player, song *galaxyjukebox.Song) *AudioPlayer {
	ctx, cancel := context.WithCancel(context.Background())
	return &AudioPlayer{
		player:         player,
		song:           song,
		ctx:            ctx,
		cancelFn:       cancel,
		keyboardDoneCh: make(chan struct{}),
	}
}

// Run starts playback and blocks until the song finishes or the user quits.
func (ap *AudioPlayer) Run() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, float64(*flagHz), audioBufferSize, ap.streamCallback)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	ap.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}

	ap.setupSignalHandlers()
	ap.setupKeyboardHandlers()

	fmt.Print(hideCursor)
	if len(ap.song.Name) > 0 {
		fmt.Println(ap.song.Name)
	}
	fmt.Println("space to pause is not supported in preview mode, q or esc to quit")

	start := time.Now()
	for !ap.player.Done() {
		select {
		case <-ap.ctx.Done():
			goto exit
		default:
		}
		fmt.Printf("\r%s %s   ", cyan("elapsed"), white("%.1fs", time.Since(start).Seconds()))
		time.Sleep(100 * time.Millisecond)
	}
	fmt.Println()
	fmt.Println(yellow("done"))

exit:
	ap.Stop()
	fmt.Print(showCursor)

	select {
	case <-ap.keyboardDoneCh:
	case <-time.After(500 * time.Millisecond):
	}
	ap.wg.Wait()
	return nil
}

func (ap *AudioPlayer) streamCallback(out []int16) {
	if ap.player.Done() {
		clear(out)
		return
	}
	ap.player.GenerateAudio(out)
}

func (ap *AudioPlayer) setupSignalHandlers() {
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT)

	ap.wg.Add(1)
	go func() {
		defer ap.wg.Done()
		select {
		case <-ap.ctx.Done():
		case <-sigch:
			ap.Stop()
		}
	}()
}

func (ap *AudioPlayer) setupKeyboardHandlers() {
	ap.wg.Add(1)
	go func() {
		defer ap.wg.Done()
		keyboard.Listen(func(key keys.Key) (stop bool, err error) {
			if key.Code == keys.CtrlC || key.Code == keys.Escape {
				ap.Stop()
				return true, nil
			}
			if key.Code == keys.RuneKey && len(key.Runes) > 0 && key.Runes[0] == 'q' {
				ap.Stop()
				return true, nil
			}
			return false, nil
		})
		close(ap.keyboardDoneCh)
	}()
}

// Stop performs clean shutdown, safe to call more than once.
func (ap *AudioPlayer) Stop() {
	ap.stopOnce.Do(func() {
		ap.cancelFn()
		if ap.stream != nil {
			ap.stream.Stop()
			ap.stream.Close()
		}
		if !ap.terminated {
			portaudio.Terminate()
			ap.terminated = true
		}
		fmt.Print(showCursor)
	})
}
