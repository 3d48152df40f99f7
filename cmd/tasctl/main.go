// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Command tasctl is a terminal harness that exercises a tasengine.Engine
// end-to-end without a real emulator attached: it drives a synthetic host
// (a fake clock, a fake foreground title, an in-memory savestate slot) and
// lets a user pause/step/record/play a short movie against it from the
// keyboard, printing the overlay state after every frame.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retrotas/tas-engine/logger"
	"github.com/retrotas/tas-engine/movie"
	"github.com/retrotas/tas-engine/tasengine"
)

// fakeHost stands in for the emulator: a monotonic GPU frame counter and a
// fixed foreground title id.
type fakeHost struct {
	gpuFrame uint64
	titleID  uint64
}

func (h *fakeHost) GpuFrameCounter() uint64   { return h.gpuFrame }
func (h *fakeHost) ForegroundTitleID() uint64 { return h.titleID }

// fakeVpad always reports a neutral controller: tasctl has no real
// hardware to read from, and its keystrokes drive pause, step, mode and
// savestate commands rather than manual input.
type fakeVpad struct{}

func (fakeVpad) CaptureLive(player int) movie.FrameInput {
	return movie.FrameInput{}
}

// savestateSlot is a single in-memory slot standing in for the host's
// savestate timeline, used to demonstrate OnTimelineLoaded/NewMovieSyncData.
type savestateSlot struct {
	frame uint64
	sync  tasengine.MovieSyncData
	saved bool
}

func main() {
	moviePath := flag.String("movie", "", "path to a .ctm movie file to load")
	titleID := flag.Uint64("title", 1, "synthetic foreground title id")
	flag.Parse()

	host := &fakeHost{titleID: *titleID}
	engine := tasengine.NewEngine(host, host, fakeVpad{})

	if *moviePath != "" {
		if err := engine.LoadMovieFile(*moviePath); err != nil {
			fmt.Fprintf(os.Stderr, "tasctl: %v\n", err)
		}
	} else {
		engine.NewMovie("movie.ctm", *titleID)
	}

	term, err := newRawTerm(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tasctl: stdin is not a terminal: %v\n", err)
		os.Exit(1)
	}
	if err := term.enter(); err != nil {
		fmt.Fprintf(os.Stderr, "tasctl: %v\n", err)
		os.Exit(1)
	}
	defer term.restore()

	fmt.Print("tasctl ready. p=pause n=step r=record y=playback w=write ")
	fmt.Print("x=savestate l=loadstate q=quit\r\n")

	var slot savestateSlot
	var frame uint64
	player := 0

	for {
		key, err := term.readKey()
		if err != nil {
			break
		}

		stepped := false
		switch key {
		case 'q':
			term.restore()
			return
		case 'p':
			engine.TogglePaused()
		case 'n':
			engine.RequestStep(1)
			if engine.IsPaused() {
				engine.WaitForCpuPermit()
				stepped = true
			}
		case 'r':
			if engine.Mode() == tasengine.Record {
				engine.SetMode(tasengine.Disabled, tasengine.ReadOnly)
			} else {
				engine.SetMode(tasengine.Record, tasengine.ReadWrite)
			}
		case 'y':
			if engine.Mode() == tasengine.Playback {
				engine.SetMode(tasengine.Disabled, tasengine.ReadOnly)
			} else {
				engine.SetMode(tasengine.Playback, tasengine.ReadOnly)
			}
		case 'w':
			if err := engine.SaveMovieFile("movie.ctm"); err != nil {
				logger.Logf("tasctl", "save failed: %v", err)
			}
		case 'x':
			slot.frame = frame
			slot.sync = engine.NewMovieSyncData(frame)
			slot.saved = true
		case 'l':
			if slot.saved {
				engine.OnTimelineLoaded(slot.frame, &slot.sync)
				frame = slot.frame
			}
		default:
			// any other key advances one frame without pausing, so the
			// harness is usable without entering pause mode at all
		}

		if !engine.IsPaused() || stepped {
			host.gpuFrame++

			engine.BeginVpadPoll(player, frame)
			if sample, ok := engine.TryGetPlaybackSample(player, frame); ok {
				_ = sample
			} else if engine.Mode() == tasengine.Record {
				engine.RecordVpadSample(player, frame, movie.FrameInput{})
			}
			engine.OnFramePresented(frame)

			overlay := engine.GetOverlayState(frame, player)
			fmt.Printf("frame=%-6d mode=%-8v paused=%-5v desynced=%-5v overlay.active=%v\r\n",
				frame, modeName(engine.Mode()), engine.IsPaused(), engine.IsMovieDesynced(), overlay.Active)

			frame++
		}
	}
}

func modeName(m tasengine.Mode) string {
	switch m {
	case tasengine.Playback:
		return "playback"
	case tasengine.Record:
		return "record"
	default:
		return "disabled"
	}
}
