package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/minaorangina/makao/game"
	"github.com/minaorangina/makao/ranking"
	"github.com/minaorangina/makao/store"
)

type NewTableRes struct {
	TableID string `json:"tableID"`
}

type TablesRes struct {
	Tables []string `json:"tables"`
}

type LeaderboardRes struct {
	Entries []ranking.Entry `json:"entries"`
}

type tableHub struct {
	hub    *hub
	cancel context.CancelFunc
}

// GameServer serves Makao tables over HTTP and websockets
type GameServer struct {
	store     store.TableStore
	log       logrus.FieldLogger
	upgrader  websocket.Upgrader
	accessLog *io.PipeWriter

	mu     sync.Mutex
	hubs   map[string]tableHub
	ctx    context.Context
	cancel context.CancelFunc

	http.Handler
}

type Opts struct {
	Store  store.TableStore
	Logger *logrus.Logger
	// AllowedOrigins for CORS and websocket upgrades. Empty or "*" allows all.
	AllowedOrigins []string
}

// NewServer creates a new GameServer
func NewServer(opts Opts) *GameServer {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	tables := opts.Store
	if tables == nil {
		tables = store.NewInMemoryTableStore(store.Opts{Logger: logger})
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &GameServer{
		store:  tables,
		log:    logger.WithField("component", "server"),
		hubs:   map[string]tableHub{},
		ctx:    ctx,
		cancel: cancel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(origins),
		},
	}

	router := http.NewServeMux()
	router.HandleFunc("GET /{$}", s.HandlePing)
	router.HandleFunc("POST /tables", s.HandleNewTable)
	router.HandleFunc("GET /tables", s.HandleListTables)
	router.HandleFunc("GET /tables/{id}", s.HandleFindTable)
	router.HandleFunc("DELETE /tables/{id}", s.HandleDeleteTable)
	router.HandleFunc("GET /leaderboard", s.HandleLeaderboard)
	router.HandleFunc("GET /ws", s.HandleWS)

	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	s.accessLog = logger.WriterLevel(logrus.InfoLevel)
	s.Handler = handlers.CombinedLoggingHandler(s.accessLog, cors(router))

	return s
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// Close stops every table hub and the access log
func (g *GameServer) Close() error {
	g.cancel()

	g.mu.Lock()
	g.hubs = map[string]tableHub{}
	g.mu.Unlock()

	return g.accessLog.Close()
}

// hubFor returns the running hub of a table, starting one if needed
func (g *GameServer) hubFor(tableID string, session *game.Session) *hub {
	g.mu.Lock()
	defer g.mu.Unlock()

	if th, ok := g.hubs[tableID]; ok {
		return th.hub
	}

	ctx, cancel := context.WithCancel(g.ctx)
	h := newHub(tableID, session, g.log)
	g.hubs[tableID] = tableHub{hub: h, cancel: cancel}

	go h.Listen(ctx)

	return h
}

func (g *GameServer) stopHub(tableID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if th, ok := g.hubs[tableID]; ok {
		th.cancel()
		delete(g.hubs, tableID)
	}
}

func (g *GameServer) HandlePing(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "Makao is up")
}

// HandleNewTable opens a table and starts its hub
func (g *GameServer) HandleNewTable(w http.ResponseWriter, r *http.Request) {
	tableID, session, err := g.store.CreateTable()
	if err != nil {
		g.log.WithError(err).Error("cannot create table")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	g.hubFor(tableID, session)

	writeJSON(w, g.log, http.StatusCreated, NewTableRes{TableID: tableID})
}

func (g *GameServer) HandleListTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, g.log, http.StatusOK, TablesRes{Tables: g.store.Tables()})
}

func (g *GameServer) HandleFindTable(w http.ResponseWriter, r *http.Request) {
	tableID := r.PathValue("id")

	session, ok := g.store.FindTable(tableID)
	if !ok {
		writeText(w, http.StatusNotFound, unknownTableIDMsg(tableID))
		return
	}

	writeJSON(w, g.log, http.StatusOK, session.Snapshot())
}

// HandleDeleteTable closes a table nobody is playing at
func (g *GameServer) HandleDeleteTable(w http.ResponseWriter, r *http.Request) {
	tableID := r.PathValue("id")

	session, ok := g.store.FindTable(tableID)
	if !ok {
		writeText(w, http.StatusNotFound, unknownTableIDMsg(tableID))
		return
	}
	if session.Active() {
		writeText(w, http.StatusConflict, "a game is in progress at this table")
		return
	}

	if err := g.store.DeleteTable(tableID); err != nil {
		if errors.Is(err, store.ErrUnknownTableID) {
			writeText(w, http.StatusNotFound, unknownTableIDMsg(tableID))
			return
		}
		g.log.WithError(err).Error("cannot delete table")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	g.stopHub(tableID)
	w.WriteHeader(http.StatusNoContent)
}

// HandleLeaderboard shows the podium, or one player's score with ?player=
func (g *GameServer) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")

	entries, err := g.store.Ranking().Leaderboard(r.Context(), player)
	if err != nil {
		if errors.Is(err, ranking.ErrUnavailable) || errors.Is(err, ranking.ErrUnknownPlayer) {
			writeText(w, http.StatusNotFound, err.Error())
			return
		}
		g.log.WithError(err).Error("cannot read leaderboard")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, g.log, http.StatusOK, LeaderboardRes{Entries: entries})
}

// HandleWS connects a player to a table: /ws?table=ABCDEF&player=ada
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	tableID := query.Get("table")
	if tableID == "" {
		writeText(w, http.StatusBadRequest, "missing table ID")
		return
	}
	playerID := query.Get("player")
	if playerID == "" {
		writeText(w, http.StatusBadRequest, "missing player ID")
		return
	}
	if !game.ValidHandle(playerID) {
		writeText(w, http.StatusBadRequest, "player IDs cannot contain spaces")
		return
	}

	session, ok := g.store.FindTable(tableID)
	if !ok {
		writeText(w, http.StatusNotFound, unknownTableIDMsg(tableID))
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		g.log.WithError(err).Warn("could not upgrade to websocket")
		return
	}

	h := g.hubFor(tableID, session)
	c := newClient(h, playerID, conn)
	if !h.register(c) {
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}
