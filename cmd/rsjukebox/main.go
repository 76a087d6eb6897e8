// rsjukebox converts a Note Block Studio song into a Sponge Schematic v2
// redstone music box, ready to paste with a schematic mod.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/4321ba/galaxyjukebox"
	"github.com/4321ba/galaxyjukebox/cmd/internal/config"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("rsjukebox: ")

	redstoneLamp := flag.Bool("lamp", true, "use a redstone lamp to light each noteblock's repeater line")
	sides := flag.String("sides", "auto", "how many walls carry noteblocks: auto, 1, 2 or 3")
	tempo := flag.Float64("tempo", 0, "override the song tempo in ticks/sec (0 keeps the song's own tempo)")
	flag.Parse()

	if len(flag.Args()) < 2 {
		log.Fatal("usage: rsjukebox [flags] in.nbs out.schem")
	}

	sidesMode, err := config.SidesFromFlag(*sides)
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

	schem, err := galaxyjukebox.Compile(song, galaxyjukebox.Options{
		UseRedstoneLamp: *redstoneLamp,
		Sides:           sidesMode,
		OverrideTempo:   *tempo,
	})
	if err != nil {
		log.Fatal(err)
	}

	data, err := schem.Save()
	if err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile(flag.Arg(1), data, 0o644); err != nil {
		log.Fatal(err)
	}

	bounds := schem.Bounds()
	log.Printf("wrote %s (%d x %d x %d blocks)", flag.Arg(1),
		bounds.MaxX-bounds.MinX+1, bounds.MaxY-bounds.MinY+1, bounds.MaxZ-bounds.MinZ+1)
}
