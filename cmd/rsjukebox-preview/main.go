// rsjukebox-preview auditions a song before spending the time to build (or
// paste) the redstone contraption it would compile to, either by playing it
// live through PortAudio or by rendering it to a WAV file.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/4321ba/galaxyjukebox"
	"github.com/4321ba/galaxyjukebox/cmd/internal/config"
	"github.com/4321ba/galaxyjukebox/internal/scoreplayer"
	"github.com/4321ba/galaxyjukebox/internal/wav"
)

var (
	flagHz       = flag.Int("hz", 44100, "output sample rate in hz")
	flagTempo    = flag.Float64("tempo", 0, "override the song tempo in ticks/sec (0 keeps the song's own tempo)")
	flagEnvelope = flag.String("envelope", "default", "note decay envelope: default, long, sharp or bell")
	flagWav      = flag.String("wav", "", "render to this WAV file instead of playing live")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("rsjukebox-preview: ")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("usage: rsjukebox-preview [flags] in.nbs")
	}

	envelope, err := config.EnvelopeFromFlag(*flagEnvelope)
	if err != nil {
		log.Fatal(err)
	}

	nbsData, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	song, err := galaxyjukebox.ReadNBS(nbsData)
	if err != nil {
		log.Fatal(err)
	}

	events := toNoteEvents(galaxyjukebox.PreviewNotes(song, *flagTempo))
	if len(events) == 0 {
		log.Fatal("song has no playable notes")
	}

	player := scoreplayer.NewPlayer(events, *flagHz, envelope)

	if *flagWav != "" {
		if err := renderToWAV(player, *flagWav, *flagHz); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", *flagWav)
		return
	}

	ap := NewAudioPlayer(player, song)
	if err := ap.Run(); err != nil {
		log.Fatal(err)
	}
}

func toNoteEvents(notes []galaxyjukebox.PreviewNote) []scoreplayer.NoteEvent {
	events := make([]scoreplayer.NoteEvent, len(notes))
	for i, n := range notes {
		events[i] = scoreplayer.NoteEvent{Gametick: n.Gametick, Note: n.Note, Instrument: n.Instrument}
	}
	return events
}

func renderToWAV(player *scoreplayer.Player, path string, hz int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := wav.NewWriter(f, hz)
	if err != nil {
		return err
	}

	buf := make([]int16, 2048)
	for !player.Done() {
		player.GenerateAudio(buf)
		if err := w.WriteFrame(buf); err != nil {
			return err
		}
	}

	_, err = w.Finish()
	return err
}
