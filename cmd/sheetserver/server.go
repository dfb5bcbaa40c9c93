// Package sheetserver exposes a sheet.Sheet over a WebSocket so a browser
// client can set and read cells and receive change notifications.
package sheetserver

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/wcauchois/go-spreadsheet/sheet"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server wires one sheet.Sheet to any number of WebSocket clients. Every
// client receives every cell's change notifications; there is no per-client
// subscription filtering in this demo.
type Server struct {
	sheet   *sheet.Sheet
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	watched map[sheet.Address]bool
}

// NewServer returns a Server wrapping a fresh, empty sheet.
func NewServer() *Server {
	return &Server{
		sheet:   sheet.New(),
		clients: make(map[*websocket.Conn]bool),
		watched: make(map[sheet.Address]bool),
	}
}

// watch subscribes to address the first time it is seen so that this
// server's change notifications cover it, including every time it is
// recomputed as a dependent of some other cell's propagation walk.
func (s *Server) watch(a sheet.Address) {
	s.mu.Lock()
	already := s.watched[a]
	s.watched[a] = true
	s.mu.Unlock()
	if already {
		return
	}
	s.sheet.Subscribe(a, func(val sheet.CellValue) {
		_, src := s.sheet.GetCell(a)
		s.broadcast(response{Type: "cell_changed", Address: a.String(), Value: val.String(), Source: src})
	})
}

// request is the client->server message envelope.
type request struct {
	Type    string `json:"type"`
	Address string `json:"address"`
	Source  string `json:"source"`
}

// response is the server->client message envelope.
type response struct {
	Type    string `json:"type"`
	Address string `json:"address"`
	Value   string `json:"value"`
	Source  string `json:"source,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("sheetserver: upgrade error:", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var req request
		if err := json.Unmarshal(msg, &req); err != nil {
			log.Println("sheetserver: bad request:", err)
			continue
		}
		s.handleRequest(conn, req)
	}
}

func (s *Server) handleRequest(conn *websocket.Conn, req request) {
	a, rest, err := sheet.ParseAddress(req.Address)
	if err != nil || rest != "" {
		s.writeTo(conn, response{Type: "error", Address: req.Address, Error: "invalid address"})
		return
	}

	switch req.Type {
	case "set_cell":
		// watch subscribes before the write so SetCell's own change
		// notification for a (plus any dependent recomputed during
		// propagation, already watched from its own creation) reaches
		// every connected client via broadcast.
		s.watch(a)
		if err := s.sheet.SetCell(a, req.Source); err != nil {
			s.writeTo(conn, response{Type: "error", Address: req.Address, Error: err.Error()})
			return
		}

	case "get_cell":
		val, src := s.sheet.GetCell(a)
		s.writeTo(conn, response{Type: "cell", Address: a.String(), Value: val.String(), Source: src})

	default:
		s.writeTo(conn, response{Type: "error", Address: req.Address, Error: "unknown request type: " + req.Type})
	}
}

func (s *Server) broadcast(resp response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for client := range s.clients {
		if err := client.WriteJSON(resp); err != nil {
			log.Printf("sheetserver: broadcast write failed: %v", err)
			_ = client.Close()
			delete(s.clients, client)
		}
	}
}

func (s *Server) writeTo(conn *websocket.Conn, resp response) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("sheetserver: write failed: %v", err)
	}
}

// Start serves the WebSocket endpoint at /ws on addr, blocking until the
// HTTP server exits with an error.
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	log.Printf("sheetserver: listening on %s (ws endpoint: /ws)", addr)
	return http.ListenAndServe(addr, mux)
}
