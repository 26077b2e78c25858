// Package discovery announces this driver's GUI mirror port over
// mDNS/DNS-SD so an operator console on the same network can find it
// without being told an address.
package discovery

import (
	"context"

	"github.com/brutella/dnssd"
	"github.com/kd2nrd/chanem/internal/chanlog"
)

// ServiceType is the DNS-SD service type this driver registers.
const ServiceType = "_chanem-gui._udp"

// Announce registers name on port and starts a responder goroutine
// that runs until ctx is cancelled. A failure here is logged and
// swallowed: discovery is a convenience, never a startup-fatal
// dependency, since the GUI address can always be configured by hand.
func Announce(ctx context.Context, name string, port int) {
	var log = chanlog.For("discovery")

	var cfg = dnssd.Config{
		Name: name,
		Type: ServiceType,
		Port: port,
	}

	sv, err := dnssd.NewService(cfg)
	if err != nil {
		log.Warn("failed to create dns-sd service", "err", err)
		return
	}

	rp, err := dnssd.NewResponder()
	if err != nil {
		log.Warn("failed to create dns-sd responder", "err", err)
		return
	}

	if _, err := rp.Add(sv); err != nil {
		log.Warn("failed to register dns-sd service", "err", err)
		return
	}

	log.Info("announcing chanem-driver GUI port", "port", port, "name", name)

	go func() {
		if err := rp.Respond(ctx); err != nil {
			log.Warn("dns-sd responder stopped", "err", err)
		}
	}()
}
