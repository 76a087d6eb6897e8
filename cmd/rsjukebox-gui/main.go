// rsjukebox-gui is a small desktop front end for the converter: pick a .nbs
// file, pick an output file, choose the redstone lamp and sides options, and
// convert. Each conversion reads one input file and writes one output file;
// choosing several inputs or an output folder is not supported.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/4321ba/galaxyjukebox"
)

func main() {
	myApp := app.New()
	window := myApp.NewWindow("Galaxy Jukebox")
	window.Resize(fyne.NewSize(480, 360))

	var inputFiles []string
	var outputPath string

	status := widget.NewLabel("No input files chosen.")
	status.Wrapping = fyne.TextWrapWord

	lampCheckbox := widget.NewCheck("Place redstone lamp", nil)
	lampCheckbox.SetChecked(true)

	sidesSelect := widget.NewSelect([]string{"Automatic", "1", "2", "3"}, nil)
	sidesSelect.SetSelected("Automatic")

	refreshStatus := func(extra string) {
		var b strings.Builder
		fmt.Fprintf(&b, "%d input file(s) chosen.\n", len(inputFiles))
		for i, f := range inputFiles {
			if i >= 10 {
				fmt.Fprintf(&b, "and %d more...\n", len(inputFiles)-10)
				break
			}
			b.WriteString(f + "\n")
		}
		if outputPath != "" {
			b.WriteString("\nOutput: " + outputPath + "\n")
		}
		if extra != "" {
			b.WriteString("\n" + extra)
		}
		status.SetText(strings.TrimRight(b.String(), "\n"))
	}

	chooseInput := widget.NewButton("Choose input file(s)", func() {
		d := dialog.NewFileOpen(func(uc fyne.URIReadCloser, err error) {
			if err != nil || uc == nil {
				return
			}
			defer uc.Close()
			inputFiles = []string{uc.URI().Path()}
			outputPath = ""
			refreshStatus("")
		}, window)
		d.SetFilter(extensionFilter(".nbs"))
		d.Show()
	})

	chooseOutput := widget.NewButton("Choose output file", func() {
		if len(inputFiles) == 0 {
			refreshStatus("No input provided!")
			return
		}
		d := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil || uc == nil {
				return
			}
			defer uc.Close()
			outputPath = uc.URI().Path()
			refreshStatus("")
		}, window)
		d.SetFilter(extensionFilter(".schem"))
		d.Show()
	})

	convertButton := widget.NewButton("Convert", nil)
	convertButton.OnTapped = func() {
		if len(inputFiles) == 0 {
			refreshStatus("No input provided!")
			return
		}
		if outputPath == "" {
			refreshStatus("No output provided!")
			return
		}

		sides, err := sidesFromSelection(sidesSelect.Selected)
		if err != nil {
			refreshStatus(err.Error())
			return
		}

		out := outputPath
		if !strings.HasSuffix(out, ".schem") {
			out += ".schem"
		}

		refreshStatus(fmt.Sprintf("Converting\n%s\ninto\n%s", inputFiles[0], out))
		if err := convertOne(inputFiles[0], out, lampCheckbox.Checked, sides); err != nil {
			refreshStatus("Error: " + err.Error())
			return
		}
		refreshStatus("Conversion done!")
	}

	left := container.NewVBox(chooseInput, chooseOutput, lampCheckbox, sidesSelect, convertButton)
	content := container.NewHSplit(left, container.NewVScroll(status))
	content.Offset = 0.4

	window.SetContent(content)
	window.ShowAndRun()
}

func extensionFilter(ext string) storage.FileFilter {
	return storageExtensionFilter{ext: ext}
}

type storageExtensionFilter struct{ ext string }

func (f storageExtensionFilter) Matches(u fyne.URI) bool {
	return strings.EqualFold(filepath.Ext(u.Path()), f.ext)
}

func sidesFromSelection(s string) (galaxyjukebox.Sides, error) {
	switch s {
	case "Automatic", "":
		return galaxyjukebox.SidesAuto, nil
	case "1":
		return galaxyjukebox.SidesOne, nil
	case "2":
		return galaxyjukebox.SidesTwo, nil
	case "3":
		return galaxyjukebox.SidesThree, nil
	default:
		return 0, fmt.Errorf("unrecognized sides selection %q", s)
	}
}

func convertOne(in, out string, lamp bool, sides galaxyjukebox.Sides) error {
	nbsData, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	song, err := galaxyjukebox.ReadNBS(nbsData)
	if err != nil {
		return err
	}
	schem, err := galaxyjukebox.Compile(song, galaxyjukebox.Options{UseRedstoneLamp: lamp, Sides: sides})
	if err != nil {
		return err
	}
	data, err := schem.Save()
	if err != nil {
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
