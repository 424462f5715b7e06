package main

import (
	"fmt"
	"sync"

	"github.com/go-olink/olink"
	"github.com/go-olink/olink/remote"
)

// echoSource is a minimal demo Source: it holds a small property bag
// and an "echo" method that returns its arguments unchanged. It
// exists only to give cmd/olinkbridge something real to link against.
type echoSource struct {
	objectId string

	mu    sync.Mutex
	props map[string]any
}

func newEchoSource(objectId string) *echoSource {
	return &echoSource{
		objectId: objectId,
		props:    map[string]any{"hits": 0.0},
	}
}

func (s *echoSource) OlinkObjectName() string { return s.objectId }

func (s *echoSource) OlinkInvoke(methodId string, args []any) any {
	switch olink.GetMemberName(methodId) {
	case "echo":
		return args
	case "bump":
		s.mu.Lock()
		hits, _ := s.props["hits"].(float64)
		hits++
		s.props["hits"] = hits
		s.mu.Unlock()
		return hits
	default:
		panic(fmt.Sprintf("unknown method %s", methodId))
	}
}

func (s *echoSource) OlinkSetProperty(propertyId string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.props[olink.GetMemberName(propertyId)] = value
}

func (s *echoSource) OlinkLinked(objectId string, node *remote.Node) {}

func (s *echoSource) OlinkUnlinked(objectId string) {}

func (s *echoSource) OlinkCollectProperties() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make(map[string]any, len(s.props))
	for k, v := range s.props {
		snapshot[k] = v
	}
	return snapshot
}
