// Package sound plays the interface cues and the scenario sounds.
package sound

import "strconv"

// Cues is the set of sounds the player ship and level code trigger.
type Cues interface {
	Select()
	Click()
	Order()
	Klaxon()
	LoudKlaxon()
	Play(id int)
}

// Silent discards every cue.
type Silent struct{}

func (Silent) Select()     {}
func (Silent) Click()      {}
func (Silent) Order()      {}
func (Silent) Klaxon()     {}
func (Silent) LoudKlaxon() {}
func (Silent) Play(int)    {}

// Recorder remembers cues by name, scenario sounds as "play:<id>".
type Recorder struct {
	Cues []string
}

func (r *Recorder) Select()     { r.Cues = append(r.Cues, "select") }
func (r *Recorder) Click()      { r.Cues = append(r.Cues, "click") }
func (r *Recorder) Order()      { r.Cues = append(r.Cues, "order") }
func (r *Recorder) Klaxon()     { r.Cues = append(r.Cues, "klaxon") }
func (r *Recorder) LoudKlaxon() { r.Cues = append(r.Cues, "loud-klaxon") }
func (r *Recorder) Play(id int) { r.Cues = append(r.Cues, "play:"+strconv.Itoa(id)) }

// Reset forgets recorded cues.
func (r *Recorder) Reset() { r.Cues = r.Cues[:0] }
