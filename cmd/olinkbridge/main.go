// Command olinkbridge is a non-core demo: it bridges a websocket
// connection's text-frame stream to a remote.Node, one frame per
// ReadMessage/WriteMessage call. It exists to exercise a concrete
// transport against the core, not as part of the protocol itself.
package main

import (
	"flag"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-olink/olink"
	"github.com/go-olink/olink/internal/config"
	"github.com/go-olink/olink/internal/logging"
	"github.com/go-olink/olink/internal/metrics"
	"github.com/go-olink/olink/remote"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func main() {
	configPath := flag.String("config", "cmd/olinkbridge/config.toml", "path to the bridge's TOML config")
	addr := flag.String("addr", ":8765", "address to listen on")
	flag.Parse()

	zl := logging.ConfigureRuntime()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("using default config")
		cfg = config.Default()
	}
	format, err := cfg.ResolveFormat()
	if err != nil {
		log.Fatal().Err(err).Msg("unsupported wire format in config")
	}

	metrics.Register()
	registry := remote.NewRegistry()
	registry.AddSource(newEchoSource("echo"))

	http.HandleFunc("/olink", func(w http.ResponseWriter, r *http.Request) {
		serveConnection(w, r, registry, format, zl)
	})
	http.Handle("/metrics", promhttp.Handler())

	log.Info().Str("addr", *addr).Str("format", format.String()).Msg("olinkbridge listening")
	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal().Err(err).Msg("olinkbridge stopped")
	}
}

func serveConnection(w http.ResponseWriter, r *http.Request, registry *remote.Registry, format olink.Format, zl zerolog.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	node := remote.NewNode(registry, format)
	node.SetLogger(logging.NodeLogger(zl))
	recorder := metrics.NewRecorder("remote")
	node.SetMetrics(recorder)
	node.BaseNode.SetMetrics(recorder)
	node.SetWriter(func(raw string) {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(raw)); err != nil {
			node.Logf(olink.LevelError, "write failed: %v", err)
		}
	})
	defer node.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			node.Logf(olink.LevelInfo, "connection closed: %v", err)
			return
		}
		node.HandleMessage(string(data))
	}
}
