package main

import (
	"fmt"
	"sync"

	"github.com/netolsr/olsrd/wire"
)

// loopbackIO is a minimal face.IO that just counts and records what it
// was asked to send; nothing is delivered to a peer. A real host backs
// face.IO with raw sockets.
type loopbackIO struct {
	mu   sync.Mutex
	sent [][]byte
	mtu  int
}

func newLoopbackIO() *loopbackIO {
	return &loopbackIO{mtu: 1500}
}

func (l *loopbackIO) EnableAddress(ifName, vifName string, localAddr wire.Addr, localPort uint16, allNodesAddr wire.Addr) error {
	fmt.Printf("enable %s/%s %v:%d -> %v\n", ifName, vifName, localAddr, localPort, allNodesAddr)
	return nil
}

func (l *loopbackIO) DisableAddress(ifName, vifName string, localAddr wire.Addr, localPort uint16) error {
	fmt.Printf("disable %s/%s\n", ifName, vifName)
	return nil
}

func (l *loopbackIO) Send(ifName, vifName string, src wire.Addr, sport uint16, dst wire.Addr, dport uint16, payload []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	l.sent = append(l.sent, cp)
	return nil
}

func (l *loopbackIO) GetMTU(ifName string) int { return l.mtu }

func (l *loopbackIO) GetAddresses(ifName, vifName string) []wire.Addr { return nil }

func (l *loopbackIO) IsVifBroadcastCapable(ifName, vifName string) bool { return true }

func (l *loopbackIO) IsVifMulticastCapable(ifName, vifName string) bool { return false }

func (l *loopbackIO) GetBroadcastAddress(ifName, vifName string) wire.Addr {
	return wire.Addr{255, 255, 255, 255}
}

func (l *loopbackIO) sentCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sent)
}
