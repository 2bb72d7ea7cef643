// Package monitoring exposes the state of synchronized memories over HTTP.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"

	"github.com/swamp-sc/swamp/syncmem"
)

// Monitor can turn a set of synchronized memories into a server and allows
// external inspection of their cache, committed, and outstanding state.
type Monitor struct {
	engines    []*syncmem.Comp
	portNumber int
	noBrowser  bool
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
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithoutBrowser keeps the monitor from opening the dashboard in a browser.
func (m *Monitor) WithoutBrowser() *Monitor {
	m.noBrowser = true
	return m
}

// RegisterEngine registers a synchronized memory to be monitored.
func (m *Monitor) RegisterEngine(e *syncmem.Comp) {
	m.engines = append(m.engines, e)
}

// StartServer starts the monitor as a web server with a custom port if
// wanted.
func (m *Monitor) StartServer() {
	r := m.routes()

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring synchronized memories with %s\n", url)

	if !m.noBrowser {
		_ = browser.OpenURL(url)
	}

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()
}

func (m *Monitor) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/engines", m.listEngines)
	r.HandleFunc("/api/engines/{name}/memory", m.dumpMemory)
	r.HandleFunc("/api/engines/{name}/outstanding", m.listOutstanding)

	return r
}

type engineEntry struct {
	Name        string `json:"name"`
	Origin      string `json:"origin"`
	Size        uint64 `json:"size"`
	Outstanding int    `json:"outstanding"`
}

func (m *Monitor) listEngines(w http.ResponseWriter, _ *http.Request) {
	entries := make([]engineEntry, 0, len(m.engines))
	for _, e := range m.engines {
		entries = append(entries, engineEntry{
			Name:        e.Name(),
			Origin:      e.Origin(),
			Size:        e.Size(),
			Outstanding: len(e.OutstandingCommits()),
		})
	}

	writeJSON(w, entries)
}

type memoryDump struct {
	Name string `json:"name"`
	View string `json:"view"`
	Data []byte `json:"data"`
}

func (m *Monitor) dumpMemory(w http.ResponseWriter, r *http.Request) {
	e, ok := m.engineByName(mux.Vars(r)["name"])
	if !ok {
		http.Error(w, "engine not found", http.StatusNotFound)
		return
	}

	view := r.URL.Query().Get("view")
	dump := memoryDump{Name: e.Name(), View: view}
	switch view {
	case "committed":
		dump.Data = e.CommittedSnapshot()
	case "", "cache":
		dump.View = "cache"
		dump.Data = e.CacheSnapshot()
	default:
		http.Error(w, "unknown view "+view, http.StatusBadRequest)
		return
	}

	writeJSON(w, dump)
}

type outstandingEntry struct {
	ID      string `json:"id"`
	Origin  string `json:"origin"`
	Address uint64 `json:"address"`
	Value   byte   `json:"value"`
	Bitmask byte   `json:"bitmask"`
	Seq     uint64 `json:"seq"`
}

func (m *Monitor) listOutstanding(w http.ResponseWriter, r *http.Request) {
	e, ok := m.engineByName(mux.Vars(r)["name"])
	if !ok {
		http.Error(w, "engine not found", http.StatusNotFound)
		return
	}

	txns := e.OutstandingCommits()
	entries := make([]outstandingEntry, 0, len(txns))
	for _, txn := range txns {
		entries = append(entries, outstandingEntry{
			ID:      txn.ID,
			Origin:  txn.Origin,
			Address: txn.Address,
			Value:   txn.Value,
			Bitmask: txn.Bitmask,
			Seq:     txn.Seq,
		})
	}

	writeJSON(w, entries)
}

func (m *Monitor) engineByName(name string) (*syncmem.Comp, bool) {
	for _, e := range m.engines {
		if e.Name() == name {
			return e, true
		}
	}

	return nil, false
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(value)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
