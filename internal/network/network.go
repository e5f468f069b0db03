// Package network reports the appliance IP address and how it is connected.
package network

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-ping/ping"
	psnet "github.com/shirou/gopsutil/v4/net"
	"go.uber.org/zap"

	"github.com/audiophonics/raspdac-oled/internal/config"
)

// Kind is the connectivity type.
type Kind int

const (
	None Kind = iota
	Wired
	Wireless
)

// NoAddress is shown when no interface holds an IPv4 address.
const NoAddress = "127.0.0.1"

func (k Kind) String() string {
	switch k {
	case Wired:
		return "wired"
	case Wireless:
		return "wireless"
	default:
		return "none"
	}
}

// Icon returns the icon table entry for k.
func (k Kind) Icon() string {
	switch k {
	case Wired:
		return "link"
	case Wireless:
		return "wifi"
	default:
		return "broken"
	}
}

type Snapshot struct {
	IP   string
	Kind Kind
}

// InterfacesFunc lists network interfaces.
type InterfacesFunc func(ctx context.Context) (psnet.InterfaceStatList, error)

// ProbeFunc reports whether host answered within timeout.
type ProbeFunc func(host string, timeout time.Duration) bool

// Monitor caches the last interface reading and the reachability probe.
type Monitor struct {
	cfg   config.NetworkConfig
	log   *zap.Logger
	ifs   InterfacesFunc
	probe ProbeFunc

	last time.Time
	snap Snapshot

	mu        sync.Mutex
	reachable bool
}

func New(cfg config.NetworkConfig, log *zap.Logger) *Monitor {
	return &Monitor{
		cfg:       cfg,
		log:       log.Named("network"),
		ifs:       psnet.InterfacesWithContext,
		probe:     Ping,
		snap:      Snapshot{IP: NoAddress, Kind: None},
		reachable: true,
	}
}

// Poll re-reads interface addresses once the poll period has elapsed. The
// first call always reads.
func (m *Monitor) Poll(ctx context.Context, now time.Time) Snapshot {
	if m.last.IsZero() || now.Sub(m.last) >= m.cfg.Poll.Duration {
		m.last = now
		next := m.read(ctx)
		if next != m.snap {
			m.log.Info("network changed", zap.String("ip", next.IP), zap.Stringer("kind", next.Kind))
		}
		m.snap = next
	}
	return m.Snapshot()
}

func (m *Monitor) read(ctx context.Context) Snapshot {
	list, err := m.ifs(ctx)
	if err != nil {
		m.log.Warn("list interfaces", zap.Error(err))
		return Snapshot{IP: NoAddress, Kind: None}
	}
	if ip := firstIPv4(list, m.cfg.Wired); ip != "" {
		return Snapshot{IP: ip, Kind: Wired}
	}
	if ip := firstIPv4(list, m.cfg.Wireless); ip != "" {
		return Snapshot{IP: ip, Kind: Wireless}
	}
	return Snapshot{IP: NoAddress, Kind: None}
}

func firstIPv4(list psnet.InterfaceStatList, name string) string {
	for _, itf := range list {
		if itf.Name != name {
			continue
		}
		for _, a := range itf.Addrs {
			ip, _, _ := strings.Cut(a.Addr, "/")
			if strings.Count(ip, ".") == 3 {
				return ip
			}
		}
	}
	return ""
}

// Snapshot returns the cached reading without blocking. A failing probe
// downgrades the connectivity to None but keeps the address.
func (m *Monitor) Snapshot() Snapshot {
	s := m.snap
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.reachable {
		s.Kind = None
	}
	return s
}

// RunProbe pings probe_host every probe_interval until ctx is done. It
// returns at once when no host is configured.
func (m *Monitor) RunProbe(ctx context.Context) {
	if m.cfg.ProbeHost == "" {
		return
	}
	t := time.NewTicker(m.cfg.ProbeInterval.Duration)
	defer t.Stop()
	for {
		ok := m.probe(m.cfg.ProbeHost, m.cfg.ProbeTimeout.Duration)
		m.mu.Lock()
		changed := ok != m.reachable
		m.reachable = ok
		m.mu.Unlock()
		if changed {
			m.log.Info("probe state changed", zap.String("host", m.cfg.ProbeHost), zap.Bool("reachable", ok))
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// Ping sends one ICMP echo with go-ping.
func Ping(host string, timeout time.Duration) bool {
	pinger, err := ping.NewPinger(host)
	if err != nil {
		return false
	}
	pinger.SetPrivileged(true)
	pinger.Count = 1
	pinger.Timeout = timeout
	if err := pinger.Run(); err != nil {
		return false
	}
	return pinger.Statistics().PacketsRecv > 0
}
