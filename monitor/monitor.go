// Package monitor turns a running script into a small web server, so the
// attached game and the scheduler can be watched and stopped from outside.
package monitor

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

	"github.com/lawnlab/lawnscript/board"
	"github.com/lawnlab/lawnscript/clock"
	"github.com/lawnlab/lawnscript/proc"
	"github.com/lawnlab/lawnscript/script"
)

// Monitor exposes the state of one attached session and its scheduler over
// HTTP.
type Monitor struct {
	session     *proc.Session
	scheduler   *script.Scheduler
	clock       clock.TimeTeller
	board       *board.Reader
	portNumber  int
	openBrowser bool
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowser makes StartServer open the dashboard in the default browser.
func (m *Monitor) WithBrowser() *Monitor {
	m.openBrowser = true
	return m
}

// RegisterSession registers the attached session to be monitored.
func (m *Monitor) RegisterSession(s *proc.Session) {
	m.session = s
}

// RegisterScheduler registers the scheduler to be monitored.
func (m *Monitor) RegisterScheduler(s *script.Scheduler) {
	m.scheduler = s
}

// RegisterClock registers the clock source used by the /api/now endpoint.
func (m *Monitor) RegisterClock(c clock.TimeTeller) {
	m.clock = c
}

// RegisterBoard registers a board reader used by the /api/board endpoint.
func (m *Monitor) RegisterBoard(b *board.Reader) {
	m.board = b
}

// StartServer starts the monitor as a web server, on a custom port if one
// was set.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/api/status", m.status)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/board", m.boardState)
	r.HandleFunc("/api/stop", m.stop)
	r.HandleFunc("/api/scheduler", m.schedulerState)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring script with %s\n", url)

	if m.openBrowser {
		_ = browser.OpenURL(url + "/api/status")
	}

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

type statusRsp struct {
	Script   string `json:"script"`
	Status   string `json:"status"`
	Pending  int    `json:"pending"`
	Attached bool   `json:"attached"`
	Pid      int32  `json:"pid"`
}

func (m *Monitor) status(w http.ResponseWriter, _ *http.Request) {
	rsp := statusRsp{}

	if m.scheduler != nil {
		rsp.Script = m.scheduler.Name()
		rsp.Status = m.scheduler.Status().String()
		rsp.Pending = m.scheduler.Pending()
	}

	if m.session != nil {
		rsp.Attached = m.session.IsLive()
		rsp.Pid = m.session.Pid()
	}

	writeJSON(w, rsp)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	if m.clock == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	t := m.clock.CurrentTime()
	fmt.Fprintf(w, "{\"wave\":%d,\"tick\":%d}", t.Wave, t.Tick)
}

type boardRsp struct {
	InGame     bool   `json:"in_game"`
	Sun        int32  `json:"sun"`
	Wave       int32  `json:"wave"`
	TotalWaves int32  `json:"total_waves"`
	Scene      string `json:"scene"`
	Paused     bool   `json:"paused"`
}

func (m *Monitor) boardState(w http.ResponseWriter, _ *http.Request) {
	if m.board == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	inGame, err := m.board.InGame()
	if err != nil || !inGame {
		writeJSON(w, boardRsp{})
		return
	}

	rsp := boardRsp{InGame: true}
	rsp.Sun, _ = m.board.Sun()
	rsp.Wave, _ = m.board.Wave()
	rsp.TotalWaves, _ = m.board.TotalWaves()
	rsp.Paused, _ = m.board.Paused()

	scene, _ := m.board.CurrentScene()
	rsp.Scene = scene.String()

	writeJSON(w, rsp)
}

func (m *Monitor) stop(w http.ResponseWriter, _ *http.Request) {
	if m.scheduler == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	m.scheduler.Stop()
	w.WriteHeader(http.StatusOK)
}

func (m *Monitor) schedulerState(w http.ResponseWriter, _ *http.Request) {
	if m.scheduler == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.scheduler)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

// listResources reports the resource usage of the game process, not of the
// script itself.
func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	if m.session == nil || m.session.Pid() == 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	p, err := process.NewProcess(m.session.Pid())
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	cpuPercent, err := p.CPUPercent()
	dieOnErr(err)

	memorySize, err := p.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
