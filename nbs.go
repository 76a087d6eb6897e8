package galaxyjukebox

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Song is the subset of a parsed .nbs (Open Note Block Studio) file that the
// compiler needs: its tempo, its metadata, and the flat list of note events.
type Song struct {
	Name            string
	Author          string
	OriginalAuthor  string
	Description     string
	TempoTicksPerSec float64 // header tempo/100, e.g. 10.0 for "10 ticks/sec"
	Notes           []NBSNote
}

// NBSNote is a single noteblock hit: the NBS tick it occurs on, the NBS key
// (0-87, 33 being F#3), and the instrument index (0-15 for vanilla
// instruments; anything else is a custom instrument and is dropped by the
// reader, per the custom-instrument-sampling Non-goal).
type NBSNote struct {
	Tick       int
	Key        int
	Instrument int
}

// ReadNBS parses the bytes of a .nbs file. It supports the Open Note Block
// Studio header, which starts with a zero short followed by a version byte;
// a file whose first short is non-zero (the original Note Block Studio
// layout, song length first) is rejected with ErrUnsupportedNBS. Only the
// handful of header fields
// the compiler actually consumes are decoded, everything else (layers,
// custom instruments, click/edit counters) is skipped.
func ReadNBS(data []byte) (*Song, error) {
	r := bytes.NewReader(data)

	firstShort, err := readInt16(r)
	if err != nil {
		return nil, ErrNotANBSFile
	}

	var version byte
	if firstShort == 0 {
		version, err = r.ReadByte()
		if err != nil {
			return nil, ErrNotANBSFile
		}
		if version >= 1 {
			if _, err := r.ReadByte(); err != nil { // vanilla instrument count
				return nil, ErrNotANBSFile
			}
		}
		if version >= 3 {
			if _, err := readInt16(r); err != nil { // song length in ticks, unused
				return nil, ErrNotANBSFile
			}
		}
	} else {
		return nil, ErrUnsupportedNBS
	}

	if _, err := readInt16(r); err != nil { // layer count, unused (recomputed from notes)
		return nil, ErrNotANBSFile
	}

	song := &Song{}
	if song.Name, err = readNBSString(r); err != nil {
		return nil, err
	}
	if song.Author, err = readNBSString(r); err != nil {
		return nil, err
	}
	if song.OriginalAuthor, err = readNBSString(r); err != nil {
		return nil, err
	}
	if song.Description, err = readNBSString(r); err != nil {
		return nil, err
	}

	tempoHundredths, err := readInt16(r)
	if err != nil {
		return nil, err
	}
	song.TempoTicksPerSec = float64(tempoHundredths) / 100.0

	// auto-save, auto-save duration, time signature, minutes spent, left
	// clicks, right clicks, blocks added, blocks removed, import file name:
	// none of these affect the compiled output.
	if _, err := r.ReadByte(); err != nil { // auto-save
		return nil, err
	}
	if _, err := r.ReadByte(); err != nil { // auto-save duration
		return nil, err
	}
	if _, err := r.ReadByte(); err != nil { // time signature
		return nil, err
	}
	// minutes spent, left clicks, right clicks, blocks added, blocks removed
	for i := 0; i < 5; i++ {
		if _, err := readInt32(r); err != nil {
			return nil, err
		}
	}
	if _, err := readNBSString(r); err != nil { // imported file name
		return nil, err
	}

	if version >= 4 {
		if _, err := r.ReadByte(); err != nil { // loop enabled
			return nil, err
		}
		if _, err := r.ReadByte(); err != nil { // max loop count
			return nil, err
		}
		if _, err := readInt16(r); err != nil { // loop start
			return nil, err
		}
	}

	notes, err := readNBSNotes(r, version)
	if err != nil {
		return nil, err
	}
	song.Notes = notes

	return song, nil
}

func readNBSNotes(r *bytes.Reader, version byte) ([]NBSNote, error) {
	var notes []NBSNote
	tick := -1
	for {
		tickJump, err := readInt16(r)
		if err != nil {
			return nil, fmt.Errorf("galaxyjukebox: reading note tick jump: %w", err)
		}
		if tickJump == 0 {
			break
		}
		tick += int(tickJump)

		layer := -1
		for {
			layerJump, err := readInt16(r)
			if err != nil {
				return nil, fmt.Errorf("galaxyjukebox: reading note layer jump: %w", err)
			}
			if layerJump == 0 {
				break
			}
			layer += int(layerJump)

			inst, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			key, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			if version >= 4 {
				// velocity, panning, fine pitch: not used, the compiler does
				// not simulate noteblock volume/panning/fine-tuning.
				if _, err := r.ReadByte(); err != nil {
					return nil, err
				}
				if _, err := r.ReadByte(); err != nil {
					return nil, err
				}
				if _, err := readInt16(r); err != nil {
					return nil, err
				}
			}

			if int(inst) >= len(instrumentNames) {
				continue // custom instrument, dropped per Non-goals
			}
			notes = append(notes, NBSNote{Tick: tick, Key: int(key), Instrument: int(inst)})
		}
	}
	return notes, nil
}

func readInt16(r *bytes.Reader) (int16, error) {
	var v int16
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readInt32(r *bytes.Reader) (int32, error) {
	var v int32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func readNBSString(r *bytes.Reader) (string, error) {
	length, err := readInt32(r)
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", fmt.Errorf("galaxyjukebox: negative NBS string length %d", length)
	}
	buf := make([]byte, length)
	if _, err := r.Read(buf); err != nil && length > 0 {
		return "", err
	}
	return string(buf), nil
}
