// Package monitoring turns a running loop into a small web server for live
// observation.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/framelab/cadence/loop"
	"github.com/framelab/cadence/monitoring/web"
	"github.com/framelab/cadence/stats"
)

// A LoopStatus provides point-in-time snapshots of a running scheduler. Any
// loop.Scheduler satisfies it.
type LoopStatus interface {
	Status() loop.Status
}

// Monitor exposes the state of registered loops over HTTP. It only observes:
// the loop is pull-based and single-threaded, so the monitor never steers it.
type Monitor struct {
	loops      []LoopStatus
	collectors []*stats.Collector
	portNumber int
	actualPort int
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterLoop registers a loop to be monitored.
func (m *Monitor) RegisterLoop(l LoopStatus) {
	m.loops = append(m.loops, l)
}

// RegisterCollector registers a statistics collector whose snapshots the
// monitor serves.
func (m *Monitor) RegisterCollector(c *stats.Collector) {
	m.collectors = append(m.collectors, c)
}

// StartServer starts the monitor as a web server, on the configured port if
// one was set.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	fs := web.GetAssets()
	fServer := http.FileServer(fs)
	r.HandleFunc("/api/status", m.listStatus)
	r.HandleFunc("/api/stats", m.listStats)
	r.HandleFunc("/api/loop/{id}", m.dumpLoop)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(fServer)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.actualPort = listener.Addr().(*net.TCPAddr).Port

	fmt.Fprintf(
		os.Stderr,
		"Monitoring loop with http://localhost:%d\n",
		m.actualPort)

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

// OpenDashboard opens the monitoring page in the default browser. It must be
// called after StartServer.
func (m *Monitor) OpenDashboard() {
	err := browser.OpenURL(
		fmt.Sprintf("http://localhost:%d", m.actualPort))
	dieOnErr(err)
}

func (m *Monitor) listStatus(w http.ResponseWriter, _ *http.Request) {
	statuses := make([]loop.Status, 0, len(m.loops))
	for _, l := range m.loops {
		statuses = append(statuses, l.Status())
	}

	bytes, err := json.Marshal(statuses)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listStats(w http.ResponseWriter, _ *http.Request) {
	snapshots := make([]stats.Snapshot, 0, len(m.collectors))
	for _, c := range m.collectors {
		snapshots = append(snapshots, c.Snapshot())
	}

	bytes, err := json.Marshal(snapshots)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) dumpLoop(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	l := m.findLoopOr404(w, id)
	if l == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(l.Status())
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) findLoopOr404(
	w http.ResponseWriter,
	id string,
) LoopStatus {
	var found LoopStatus
	for _, l := range m.loops {
		if l.Status().ID == id {
			found = l
		}
	}

	if found == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Loop not found"))
		dieOnErr(err)
	}

	return found
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
