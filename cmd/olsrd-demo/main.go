// Command olsrd-demo wires olsrcore.Core against an in-memory I/O
// collaborator and RIB, and runs spec.md §8 scenario 1 (single face, no
// peers): it brings up one Face, lets it originate HELLOs for four
// seconds, then prints the enabled Faces and the number of packets sent.
// There is no real socket or kernel route table here; a production host
// supplies its own face.IO and olsrcore.RIB implementations.
package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/netolsr/olsrd/config"
	olsrlog "github.com/netolsr/olsrd/log"
	"github.com/netolsr/olsrd/metrics"
	"github.com/netolsr/olsrd/olsrcore"
	"github.com/netolsr/olsrd/route"
	"github.com/netolsr/olsrd/wire"
)

func main() {
	cfg := config.Default()
	cfg.MainAddr = wire.Addr{192, 0, 2, 1}
	cfg.HelloInterval = time.Second
	cfg.Faces = []config.FaceConfig{{
		IfName: "eth0", VifName: "vif0",
		LocalAddr: cfg.MainAddr, LocalPort: wire.DefaultPort,
		AllNodesAddr: wire.Addr{255, 255, 255, 255}, AllNodesPort: wire.DefaultPort,
	}}
	if err := cfg.Validate(); err != nil {
		fmt.Println("invalid config:", err)
		return
	}

	zl, _ := zap.NewDevelopment()
	lg := olsrlog.NewZap(zl.Sugar())
	rec := metrics.New(prometheus.DefaultRegisterer)

	io := newLoopbackIO()
	rib := &printingRIB{}
	acceptAll := func(route.RouteEntry) bool { return true }

	core := olsrcore.New(cfg, io, rib, acceptAll, lg, rec)
	core.Start()

	time.Sleep(4 * time.Second)

	fmt.Println("faces:")
	for _, f := range core.Faces.Enabled() {
		js, _ := json.MarshalIndent(f, "  ", "  ")
		fmt.Println(string(js))
	}
	fmt.Println("packets sent:", io.sentCount())

	core.Stop()
}

// printingRIB is an olsrcore.RIB that just prints what it was asked to
// do and completes immediately, standing in for a real RIB RPC client.
type printingRIB struct{}

func (*printingRIB) Apply(op route.PendingOp, done func()) {
	fmt.Printf("rib: op=%d dest=%s nexthop=%v metric=%d\n", op.Op, op.Entry.Dest, op.Entry.NextHop, op.Entry.Metric)
	done()
}
