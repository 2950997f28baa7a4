package net

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// serviceType is the mDNS service viewers browse for.
const serviceType = "_localsketch._tcp"

// discoverTimeout bounds a single browse pass.
const discoverTimeout = 2 * time.Second

// Advertise announces a shared sketch session on the local network so
// viewers can find it without typing an address. The returned function
// stops the announcement.
func Advertise(port int, session string) (func(), error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("get hostname: %w", err)
	}

	info := []string{"localsketch", fmt.Sprintf("session=%s", session)}
	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("start mDNS server: %w", err)
	}

	log.Printf("[share] announcing %s on port %d", serviceType, port)
	return func() { server.Shutdown() }, nil
}

// Discover browses the local network for shared sketch sessions and
// returns their host:port addresses. It blocks for the browse timeout.
func Discover() []string {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := make(chan struct{})

	var addrs []string
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			addrs = append(addrs, fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port))
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = discoverTimeout
	params.DisableIPv6 = true
	if err := mdns.Query(params); err != nil {
		log.Printf("[view] mDNS browse: %v", err)
	}
	close(entries)
	<-done

	return addrs
}
