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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/redcrab/gopher68k/disassembly"
	"github.com/redcrab/gopher68k/hardware/bus"
	"github.com/redcrab/gopher68k/hardware/cpu"
	"github.com/redcrab/gopher68k/hardware/cpu/execution"
	"github.com/redcrab/gopher68k/logger"
	"github.com/redcrab/gopher68k/modalflag"
	"github.com/redcrab/gopher68k/performance"
	"github.com/redcrab/gopher68k/statsview"
	"github.com/redcrab/gopher68k/version"
)

// default amount of memory given to the machine. the 68000 can address far
// more but one megabyte is plenty for a memory image supplied on the command
// line.
const defaultRAM = 1048576

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "DISASM", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "DISASM":
		err = disasm(md)

	case "PERFORMANCE":
		err = perform(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md, err)
		os.Exit(20)
	}
}

// loadImage copies a binary memory image into a newly created RAM instance,
// returning the RAM and the length of the image in bytes. The image is
// placed at the bottom of memory and must include the vector table, meaning
// addresses 0 and 4 hold the initial supervisor stack pointer and program
// counter.
func loadImage(filename string, size int) (*bus.RAM, int, error) {
	d, err := os.ReadFile(filename)
	if err != nil {
		return nil, 0, err
	}

	if len(d) > size {
		return nil, 0, fmt.Errorf("memory image is larger than the requested RAM (%d bytes)", len(d))
	}

	mem := bus.NewRAM(uint32(size))
	mem.Put(0, d...)

	return mem, len(d), nil
}

// executionTracer echoes every completed instruction, and every exception, to
// the output writer. Memory accesses are too noisy to be useful here and are
// ignored.
type executionTracer struct {
	cpu.NilTracer

	mem     bus.Bus
	variant cpu.Variant
	output  io.Writer
}

func (tr *executionTracer) Instruction(res execution.Result) {
	e, err := disassembly.Disassemble(tr.mem, res.Address, tr.variant)
	if err != nil {
		return
	}
	fmt.Fprintln(tr.output, e.String())
}

func (tr *executionTracer) Exception(vector uint8, handler uint32) {
	fmt.Fprintf(tr.output, "! exception (vector %d) -> %#08x\n", vector, handler)
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	model := md.AddString("cpu", "68000", "CPU model: 68000, 68010, 68020")
	ramSize := md.AddInt("ram", defaultRAM, "amount of RAM given to the machine")
	trace := md.AddBool("trace", false, "echo every instruction to stdout")
	stats := md.AddBool("stats", false, "run the statistics server")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	variant, err := cpu.ParseVariant(*model)
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("memory image required for %s mode", md)
	case 1:
		mem, _, err := loadImage(md.GetArg(0), *ramSize)
		if err != nil {
			return err
		}

		mc := cpu.NewCPU(mem, variant)
		err = mc.Reset()
		if err != nil {
			return err
		}

		if *trace {
			mc.SetTracer(&executionTracer{mem: mem, variant: variant, output: os.Stdout})
		}

		// a ctrl-c stops the machine at the next instruction boundary
		intChan := make(chan os.Signal, 1)
		signal.Notify(intChan, os.Interrupt)
		mc.SetCheck(func(_ uint32) bool {
			select {
			case <-intChan:
				return true
			default:
				return false
			}
		})

		state, err := mc.Run()
		if err != nil {
			fmt.Println(mc.String())
			return err
		}

		if state == cpu.Stopped {
			fmt.Println("\r! interrupted")
		}
		fmt.Println(mc.String())

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	model := md.AddString("cpu", "68000", "CPU model: 68000, 68010, 68020")
	ramSize := md.AddInt("ram", defaultRAM, "amount of RAM given to the machine")
	address := md.AddUint64("address", 0, "address of the first instruction")
	count := md.AddInt("count", 0, "number of instructions to decode (0 for the whole image)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	variant, err := cpu.ParseVariant(*model)
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("memory image required for %s mode", md)
	case 1:
		mem, imageLen, err := loadImage(md.GetArg(0), *ramSize)
		if err != nil {
			return err
		}

		if *count > 0 {
			block, err := disassembly.Block(mem, uint32(*address), *count, variant)
			if err != nil {
				return err
			}
			for _, e := range block {
				fmt.Println(e.String())
			}
		} else {
			// with no explicit count, decode up to the end of the image
			addr := uint32(*address)
			for addr < uint32(imageLen) {
				e, err := disassembly.Disassemble(mem, addr, variant)
				if err != nil {
					return err
				}
				fmt.Println(e.String())
				addr += uint32(e.ByteCount)
			}
		}

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	model := md.AddString("cpu", "68000", "CPU model: 68000, 68010, 68020")
	ramSize := md.AddInt("ram", defaultRAM, "amount of RAM given to the machine")
	duration := md.AddString("duration", "5s", "duration of the measurement period")
	profile := md.AddString("profile", "none", "profiles to generate: cpu, mem, all, none")
	stats := md.AddBool("stats", false, "run the statistics server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	variant, err := cpu.ParseVariant(*model)
	if err != nil {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("memory image required for %s mode", md)
	case 1:
		mem, _, err := loadImage(md.GetArg(0), *ramSize)
		if err != nil {
			return err
		}

		return performance.Check(os.Stdout, prf, mem, variant, *duration)

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("v", false, "show revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Println(ver)
	if *revision {
		fmt.Println(rev)
	}

	return nil
}
