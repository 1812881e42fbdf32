package realtime

import (
	"context"
	"time"

	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/middleware"
	"github.com/UmCavaloSemNome/inventario-depto-instalacoes/internal/repository"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Listener bridges postgres NOTIFY into the hub. Repositories announce every
// mutation on one channel with the table name as payload; this goroutine is
// the only consumer of the underlying connection.
type Listener struct {
	pqListener *pq.Listener
	hub        *Hub
	log        *zap.Logger
}

func NewListener(dbURL string, hub *Hub, log *zap.Logger) (*Listener, error) {
	pqListener := pq.NewListener(dbURL, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Warn("change feed listener event", zap.Int("event", int(ev)), zap.Error(err))
		}
	})

	if err := pqListener.Listen(repository.ChangeChannel); err != nil {
		pqListener.Close()
		return nil, err
	}

	return &Listener{
		pqListener: pqListener,
		hub:        hub,
		log:        log,
	}, nil
}

// Run pumps notifications into the hub until the context is cancelled. The
// periodic Ping keeps a silent connection from going stale unnoticed.
func (l *Listener) Run(ctx context.Context) {
	defer l.pqListener.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case notification := <-l.pqListener.Notify:
			if notification == nil {
				// nil arrives after a reconnect; remote writes may have
				// been missed, subscribers will catch up on their next
				// fetch.
				continue
			}
			l.hub.Publish(notification.Extra)
		case <-time.After(90 * time.Second):
			if err := l.pqListener.Ping(); err != nil {
				l.log.Warn("change feed ping failed", zap.Error(err))
				middleware.UpdateHealthStatus("degraded")
			} else {
				middleware.UpdateHealthStatus("ok")
			}
		}
	}
}
