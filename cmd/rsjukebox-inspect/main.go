// rsjukebox-inspect prints diagnostic views of a schematic or of the
// redstone delay cell library, standing in for the two standalone debug
// scripts that shipped alongside the original converter: one that dumped a
// schematic's NBT tree, one that tabulated delay cell lengths.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/Tnze/go-mc/nbt"
	"github.com/fatih/color"
	"github.com/klauspost/compress/gzip"

	"github.com/4321ba/galaxyjukebox"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("rsjukebox-inspect: ")

	dump := flag.Bool("dump", false, "print the NBT contents of the given .schem file")
	delays := flag.Bool("delays", false, "print the delay cell length table used by the compiler")
	flag.Parse()

	switch {
	case *delays:
		printDelayTable()
	case *dump:
		if flag.NArg() < 1 {
			log.Fatal("usage: rsjukebox-inspect -dump file.schem")
		}
		if err := dumpSchematic(flag.Arg(0)); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatal("specify -dump file.schem or -delays")
	}
}

type schematicNBT struct {
	Version     int32            `nbt:"Version"`
	DataVersion int32            `nbt:"DataVersion"`
	Width       int16            `nbt:"Width"`
	Height      int16            `nbt:"Height"`
	Length      int16            `nbt:"Length"`
	Palette     map[string]int32 `nbt:"Palette"`
	BlockData   []byte           `nbt:"BlockData"`
}

func dumpSchematic(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gz.Close()

	var doc struct {
		Schematic schematicNBT `nbt:"Schematic"`
	}
	if _, _, err := nbt.NewDecoder(gz).Decode(&doc); err != nil {
		return err
	}

	s := doc.Schematic
	header := color.New(color.FgCyan).SprintfFunc()
	fmt.Printf("%s %d\n", header("Version"), s.Version)
	fmt.Printf("%s %d\n", header("DataVersion"), s.DataVersion)
	fmt.Printf("%s %dx%dx%d\n", header("Size"), s.Width, s.Height, s.Length)
	fmt.Printf("%s %d bytes\n", header("BlockData"), len(s.BlockData))

	entries := make([]string, 0, len(s.Palette))
	for block := range s.Palette {
		entries = append(entries, block)
	}
	sort.Slice(entries, func(i, j int) bool { return s.Palette[entries[i]] < s.Palette[entries[j]] })

	fmt.Printf("%s (%d entries)\n", header("Palette"), len(s.Palette))
	for _, block := range entries {
		fmt.Printf("  %4d  %s\n", s.Palette[block], block)
	}

	return nil
}

func printDelayTable() {
	for md := 2; md < 10; md++ {
		for delay := md; delay < 100; delay++ {
			fmt.Printf("%d md, %d delay: %d length\n", md, delay, galaxyjukebox.DelayLength(delay, md))
		}
	}
}
