// Command chanem-driver reconciles live position, mode and gamepad
// input into the 41-tap complex FIR the channel emulator applies to
// the RF link between a ground station and an airborne node.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/kd2nrd/chanem/internal/chanlog"
	"github.com/kd2nrd/chanem/internal/chanversion"
	"github.com/kd2nrd/chanem/internal/discovery"
	"github.com/kd2nrd/chanem/internal/inputadapt"
	"github.com/kd2nrd/chanem/internal/modewatch"
	"github.com/kd2nrd/chanem/internal/outputadapt"
	"github.com/kd2nrd/chanem/internal/propagation"
	"github.com/kd2nrd/chanem/internal/reactor"
	"github.com/spf13/pflag"
)

// eventQueueDepth approximates the spec's unbounded MPSC event queue.
// Go channels are fixed-capacity; a depth this generous means the
// queue only ever backs up under a sustained producer storm well
// beyond what three UDP/gamepad sources can sustain, at which point
// the spec's own backpressure rule (drop at the socket layer) takes
// over anyway.
const eventQueueDepth = 4096

func main() {
	var (
		localUDPPort        = pflag.IntP("local-udp-port", "l", 1337, "UDP port to receive position/attitude samples on.")
		modelSelectionPort  = pflag.IntP("model-selection-udp-port", "m", 1341, "UDP port to receive mode/scale commands on.")
		chanemPort          = pflag.IntP("chanem-port", "c", 1338, "UDP port the channel emulator listens for tap vectors on.")
		chanemHost          = pflag.String("chanem-host", "127.0.0.1", "Host the channel emulator listens on.")
		guiAddr             = pflag.String("gui-addr", "172.18.0.1:1342", "host:port of the operator GUI mirror.")
		sampleRate          = pflag.Float64P("sample-rate", "s", 200e6, "Emulator sample rate in Hz.")
		gamepadDevice       = pflag.String("gamepad-device", "/dev/input/by-id/usb-gamepad-event-joystick", "evdev device node for the gamepad poller.")
		announceGUIName     = pflag.String("announce-name", "chanem-driver", "Service name to announce over mDNS/DNS-SD.")
		disableAnnounce     = pflag.Bool("no-announce", false, "Disable mDNS/DNS-SD announcement of the GUI port.")
		verbose             = pflag.BoolP("verbose", "v", false, "Enable debug-level logging.")
		showVersion         = pflag.Bool("version", false, "Print version information and exit.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "chanem-driver: radio-channel-emulator position/mode reactor\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n  chanem-driver [flags]\n\nFlags:\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *verbose {
		chanlog.SetLevel(chanlog.DebugLevel)
	}

	if *showVersion {
		chanversion.Print(*verbose)
		return
	}

	var log = chanlog.For("main")

	var ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var emulator, err = outputadapt.DialEmulator(*chanemHost, *chanemPort)
	if err != nil {
		log.Fatal("cannot connect to emulator", "err", err)
	}
	defer emulator.Close()

	var gui, guiErr = outputadapt.DialGUI(*guiAddr)
	if guiErr != nil {
		log.Fatal("cannot connect to gui", "err", guiErr)
	}
	defer gui.Close()

	if !*disableAnnounce {
		discovery.Announce(ctx, *announceGUIName, *chanemPort)
	}

	var events = make(chan reactor.Event, eventQueueDepth)
	var modeWatch = modewatch.NewBroadcast(reactor.ModeFreeSpace)

	var engine = propagation.NewEngine(time.Now().UnixNano())
	var r = reactor.New(engine, *sampleRate, emulator, gui, modeWatch, chanlog.For("reactor"))

	var posRecv, posErr = inputadapt.ListenPosition(*localUDPPort, events, gui)
	if posErr != nil {
		log.Fatal("cannot bind position port", "err", posErr)
	}

	var modeRecv, modeErr = inputadapt.ListenModeScale(*modelSelectionPort, events)
	if modeErr != nil {
		log.Fatal("cannot bind mode/scale port", "err", modeErr)
	}

	var done = make(chan struct{})

	go posRecv.Run(done)
	go modeRecv.Run(done)

	go runGamepad(*gamepadDevice, events, gui, modeWatch, done)

	go func() {
		<-ctx.Done()
		close(done)
	}()

	log.Info("chanem-driver ready",
		"position-port", *localUDPPort,
		"mode-port", *modelSelectionPort,
		"emulator", fmt.Sprintf("%s:%d", *chanemHost, *chanemPort),
		"gui", *guiAddr,
	)

	r.Run(ctx, events)
}

// runGamepad pins itself to its OS thread before polling: most
// gamepad/evdev backends require their reads to happen consistently
// on one thread.
func runGamepad(device string, events chan<- reactor.Event, gui inputadapt.GUIForwarder, modeWatch *modewatch.Broadcast[reactor.ModeIndex], done <-chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var log = chanlog.For("gamepad")

	pad, err := inputadapt.NewGamepadEvdev(device)
	if err != nil {
		log.Warn("gamepad unavailable, mode cycling disabled", "err", err)
		return
	}

	var poller = inputadapt.NewGamepadPoller(pad, events, gui, modeWatch)
	poller.Run(done)
}
