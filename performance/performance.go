// This file is part of Gopher68K.
//
// Gopher68K is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher68K is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher68K.  If not, see <https://www.gnu.org/licenses/>.

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/redcrab/gopher68k/curated"
	"github.com/redcrab/gopher68k/hardware/bus"
	"github.com/redcrab/gopher68k/hardware/cpu"
)

// number of instructions to execute between checks of the duration timer.
// checking the timer channel is relatively expensive so we don't want to do
// it on every instruction boundary.
const performanceBrake = 100

// Check the performance of the emulation using the supplied memory image.
//
// Emulation will run for the specified duration and will create a cpu
// profile, a memory profile, or both, as defined by the Profile argument.
func Check(output io.Writer, profile Profile, mem bus.Bus, variant cpu.Variant, duration string) error {
	mc := cpu.NewCPU(mem, variant)

	err := mc.Reset()
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	// parse supplied duration
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	// counts of instructions and cycles at the start of the measurement
	// period. instructions are counted in the host hook below.
	var instructions uint64
	startInstructions := uint64(0)
	startCycles := uint64(0)

	// setup trigger that expires when duration has elapsed. signals true
	// when duration has expired. signals false to indicate that performance
	// measurement should start.
	timerChan := make(chan bool)

	// force a one second leadtime to allow the host to settle down and then
	// restart the timer for the specified duration.
	go func() {
		time.AfterFunc(time.Second, func() {
			timerChan <- false

			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})
	}()

	brake := 0
	mc.SetCheck(func(_ uint32) bool {
		instructions++

		brake++
		if brake >= performanceBrake {
			brake = 0

			select {
			case v := <-timerChan:
				if v {
					// measurement period has finished. returning true stops
					// the run.
					return true
				}

				// leadtime has concluded. record the starting counts.
				startInstructions = instructions
				startCycles = mc.Cycles()
			default:
			}
		}

		return false
	})

	// run until the timer stops the host hook, through the profiler if
	// required
	err = RunProfiler(profile, "performance", func() error {
		state, err := mc.Run()
		if err != nil {
			return err
		}
		if state != cpu.Stopped {
			return curated.Errorf("performance: run ended unexpectedly (%s)", state)
		}
		return nil
	})
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	numInstructions := instructions - startInstructions
	numCycles := mc.Cycles() - startCycles
	mhz, mips := CalcRate(numCycles, numInstructions, dur.Seconds())
	output.Write([]byte(fmt.Sprintf("%.2f MHz (%d cycles in %.2f seconds) %.2f mips\n",
		mhz, numCycles, dur.Seconds(), mips)))

	return nil
}

// CalcRate takes the number of cycles and instructions executed over a
// duration (in seconds) and returns the effective clock speed in MHz and the
// instruction rate in millions of instructions per second.
func CalcRate(cycles uint64, instructions uint64, duration float64) (mhz float64, mips float64) {
	mhz = float64(cycles) / (duration * 1000000)
	mips = float64(instructions) / (duration * 1000000)
	return mhz, mips
}
