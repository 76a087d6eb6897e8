// Package scoreplayer renders a short decaying tone for every note in a
// score, so an operator can preview what a song will sound like before
// spending the time to build (or paste) the redstone contraption compiled
// from it. It does not simulate noteblocks, redstone timing, or the
// contraption itself: it mixes simple oscillators straight from the note
// events, the way a tracker player mixes sample channels, but trading
// resampled PCM data for a synthesized waveform since there is no sample
// data to play back.
package scoreplayer

import "math"

// GameticksPerSecond is the fixed game tick rate every NBS tempo is
// converted to before compiling; the preview player runs on the same
// clock so it stays in sync with what the compiled contraption would play.
const GameticksPerSecond = 20

// NoteEvent is one noteblock strike to preview.
type NoteEvent struct {
	Gametick   int
	Note       int // 0..24
	Instrument int
}

// Envelope shapes a triggered voice's amplitude over time, t in seconds
// since the note triggered, returning a multiplier in [0,1]. It should
// reach 0 eventually so voices can be retired.
type Envelope func(t float64) float64

// DefaultEnvelope is a short exponential pluck-style decay, roughly what a
// noteblock sounds like: a sharp attack and a half-second tail.
func DefaultEnvelope(t float64) float64 {
	if t < 0 {
		return 0
	}
	return math.Exp(-6 * t)
}

type voice struct {
	freq        float64
	triggeredAt float64 // seconds
}

// Player mixes a score's note events into PCM audio, advancing one
// gametick at a time the way Player.GenerateAudio in the MOD player
// advances one tracker tick at a time.
type Player struct {
	sampleRate         int
	envelope           Envelope
	events             []NoteEvent
	nextEvent          int
	samplesPerGametick int
	tickSamplePos      int
	gametick           int
	samplesElapsed     int
	voices             []voice
}

// NewPlayer builds a preview player for events (must be sorted by
// Gametick) at the given sample rate.
func NewPlayer(events []NoteEvent, sampleRate int, envelope Envelope) *Player {
	if envelope == nil {
		envelope = DefaultEnvelope
	}
	p := &Player{
		sampleRate:         sampleRate,
		envelope:           envelope,
		events:             events,
		samplesPerGametick: sampleRate / GameticksPerSecond,
	}
	p.sequenceTick() // fire any notes on gametick 0 before the first sample is mixed
	return p
}

// Done reports whether every event has fired and every triggered voice has
// decayed below audibility.
func (p *Player) Done() bool {
	if p.nextEvent < len(p.events) {
		return false
	}
	for _, v := range p.voices {
		if p.envelope(float64(p.samplesElapsed)/float64(p.sampleRate)-v.triggeredAt) > 1.0/256 {
			return false
		}
	}
	return true
}

func (p *Player) sequenceTick() {
	now := float64(p.samplesElapsed) / float64(p.sampleRate)
	for p.nextEvent < len(p.events) && p.events[p.nextEvent].Gametick == p.gametick {
		e := p.events[p.nextEvent]
		p.voices = append(p.voices, voice{freq: noteFrequency(e.Note), triggeredAt: now})
		p.nextEvent++
	}
	p.gametick++

	// Retire voices that have fully decayed, so a long preview doesn't
	// accumulate an ever-growing voice list.
	live := p.voices[:0]
	for _, v := range p.voices {
		if p.envelope(now-v.triggeredAt) > 1.0/256 {
			live = append(live, v)
		}
	}
	p.voices = live
}

func (p *Player) mix(out []int16, nSamples, offset int) {
	for s := offset * 2; s < (offset+nSamples)*2; s += 2 {
		out[s+0] = 0
		out[s+1] = 0
	}

	for _, v := range p.voices {
		for i := 0; i < nSamples; i++ {
			sampleIdx := offset + i
			t := float64(p.samplesElapsed+i)/float64(p.sampleRate) - v.triggeredAt
			amp := p.envelope(t)
			if amp <= 0 {
				continue
			}
			sample := int16(amp * 8000 * math.Sin(2*math.Pi*v.freq*t))
			out[sampleIdx*2+0] += sample
			out[sampleIdx*2+1] += sample
		}
	}
}

// GenerateAudio fills out (interleaved stereo int16 frames) with preview
// audio, advancing the internal gametick clock as needed.
func (p *Player) GenerateAudio(out []int16) {
	count := len(out) / 2
	offset := 0
	for count > 0 {
		remain := p.samplesPerGametick - p.tickSamplePos
		if remain > count {
			remain = count
		}

		p.mix(out, remain, offset)
		offset += remain

		p.tickSamplePos += remain
		p.samplesElapsed += remain
		if p.tickSamplePos == p.samplesPerGametick {
			p.sequenceTick()
			p.tickSamplePos = 0
		}
		count -= remain
	}
}

// noteFrequency converts a 0..24 noteblock pitch into Hz: equal temperament,
// twelve steps per octave, with note 12 at 440 Hz, so the two-octave range
// runs from 220 Hz (note 0) to 880 Hz (note 24).
func noteFrequency(note int) float64 {
	return 440.0 * math.Pow(2, float64(note-12)/12.0)
}
