// rsjukebox-batch converts every .nbs file in a directory into a .schem
// file next to it, the directory-walking counterpart to rsjukebox.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/4321ba/galaxyjukebox"
	"github.com/4321ba/galaxyjukebox/cmd/internal/config"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("rsjukebox-batch: ")

	redstoneLamp := flag.Bool("lamp", true, "use a redstone lamp to light each noteblock's repeater line")
	sides := flag.String("sides", "auto", "how many walls carry noteblocks: auto, 1, 2 or 3")
	flag.Parse()

	dir := "."
	if flag.NArg() > 0 {
		dir = flag.Arg(0)
	}

	sidesMode, err := config.SidesFromFlag(*sides)
	if err != nil {
		log.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatal(err)
	}

	converted, failed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".nbs") {
			continue
		}

		in := filepath.Join(dir, entry.Name())
		out := strings.TrimSuffix(in, filepath.Ext(in)) + ".schem"
		if err := convertOne(in, out, *redstoneLamp, sidesMode); err != nil {
			log.Printf("%s: %v", in, err)
			failed++
			continue
		}
		log.Printf("%s -> %s", in, out)
		converted++
	}

	log.Printf("converted %d, failed %d", converted, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func convertOne(in, out string, redstoneLamp bool, sides galaxyjukebox.Sides) error {
	nbsData, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	song, err := galaxyjukebox.ReadNBS(nbsData)
	if err != nil {
		return err
	}

	schem, err := galaxyjukebox.Compile(song, galaxyjukebox.Options{
		UseRedstoneLamp: redstoneLamp,
		Sides:           sides,
	})
	if err != nil {
		return err
	}

	data, err := schem.Save()
	if err != nil {
		return err
	}

	return os.WriteFile(out, data, 0o644)
}
