package sound

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const sampleRate = beep.SampleRate(44100)

var mixFormat = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// Speaker mixes scenario samples and synthesized cues onto the audio device.
// Sounds without a sample fall back to a tone derived from their id.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	samples     map[int]*beep.Buffer
	initialized bool
}

// NewSpeaker returns a speaker that stays silent until Initialize.
func NewSpeaker() *Speaker {
	mixer := &beep.Mixer{}
	return &Speaker{
		mixer:   mixer,
		volume:  &effects.Volume{Streamer: mixer, Base: 2},
		samples: make(map[int]*beep.Buffer),
	}
}

// MaxVolume is the loudest preference setting.
const MaxVolume = 8

// SetVolume sets the master level from 0 (mute) to MaxVolume. Each step
// below the maximum halves the amplitude.
func (s *Speaker) SetVolume(level int) {
	level = min(max(level, 0), MaxVolume)
	speaker.Lock()
	s.volume.Silent = level == 0
	s.volume.Volume = float64(level - MaxVolume)
	speaker.Unlock()
}

// Initialize opens the audio device.
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	speaker.Play(s.volume)
	s.initialized = true
	return nil
}

// Close stops everything that is playing.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// LoadWAV decodes a sample for sound id, resampling it to the mix rate.
func (s *Speaker) LoadWAV(id int, r io.Reader) error {
	stream, format, err := wav.Decode(r)
	if err != nil {
		return fmt.Errorf("sound %d: %w", id, err)
	}
	defer stream.Close()

	buf := beep.NewBuffer(mixFormat)
	if format.SampleRate != sampleRate {
		buf.Append(beep.Resample(4, format.SampleRate, sampleRate, stream))
	} else {
		buf.Append(stream)
	}
	if err := stream.Err(); err != nil {
		return fmt.Errorf("sound %d: %w", id, err)
	}

	s.mu.Lock()
	s.samples[id] = buf
	s.mu.Unlock()
	return nil
}

// Loaded reports whether a sample is held for id.
func (s *Speaker) Loaded(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.samples[id] != nil
}

// Forget drops every loaded sample.
func (s *Speaker) Forget() {
	s.mu.Lock()
	s.samples = make(map[int]*beep.Buffer)
	s.mu.Unlock()
}

func (s *Speaker) add(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *Speaker) Select() { s.add(beepTone(880, 60*time.Millisecond)) }
func (s *Speaker) Click()  { s.add(beepTone(1320, 20*time.Millisecond)) }

// beepTone is a plain sine of length d, quieted to the cue level.
func beepTone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return newTone(freq, d, waveSine)
	}
	return &effects.Volume{Streamer: beep.Take(sampleRate.N(d), sine), Base: 2, Volume: -2}
}

func (s *Speaker) Order() {
	s.add(beep.Seq(
		newTone(660, 50*time.Millisecond, waveSine),
		newTone(990, 70*time.Millisecond, waveSine),
	))
}

func (s *Speaker) Klaxon() { s.add(newTone(440, 250*time.Millisecond, waveSquare)) }

func (s *Speaker) LoudKlaxon() {
	s.add(&effects.Volume{
		Streamer: newTone(440, 400*time.Millisecond, waveSquare),
		Base:     2,
		Volume:   1,
	})
}

// Play starts sound id from its sample, or a stand-in tone.
func (s *Speaker) Play(id int) {
	s.mu.Lock()
	buf := s.samples[id]
	s.mu.Unlock()
	if buf != nil {
		s.add(buf.Streamer(0, buf.Len()))
		return
	}
	s.add(newTone(toneFrequency(id), 120*time.Millisecond, waveSaw))
}

// toneFrequency spreads ids over two octaves above 220 Hz.
func toneFrequency(id int) float64 {
	step := ((id % 24) + 24) % 24
	return 220 * math.Pow(2, float64(step)/12)
}

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveSaw
)

// tone is a single decaying oscillator.
type tone struct {
	freq     float64
	phase    float64
	position int
	length   int
	wave     wave
}

func newTone(freq float64, d time.Duration, w wave) *tone {
	return &tone{freq: freq, length: sampleRate.N(d), wave: w}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.position >= t.length {
		return 0, false
	}
	for i := range samples {
		if t.position >= t.length {
			return i, true
		}
		var v float64
		switch t.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case waveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case waveSaw:
			v = 2 * (t.phase - 0.5)
		}
		v *= 0.25 * (1 - float64(t.position)/float64(t.length))
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
