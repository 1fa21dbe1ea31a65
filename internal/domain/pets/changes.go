package pets

import (
	"fmt"
	"net/http"
	"time"

	"pet-tracker/internal/notify"
)

const changesBuffer = 64

// changesHandler godoc
// @Summary Stream de cambios
// @Description Server-sent events: un evento "change" por cada notificación bajo el path pedido (incluye descendientes).
// @Tags pets
// @Produce text/event-stream
// @Param path query string false "Path observado (default /pets)"
// @Success 200 {string} string "event stream"
// @Router /changes [get]
func changesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			path = "/" + PathPets
		}
		path = notify.Clean(path)

		rc := http.NewResponseController(w)
		// el stream no respeta el WriteTimeout del server
		_ = rc.SetWriteDeadline(time.Time{})

		// la entrega es síncrona: si el cliente no consume, se descartan eventos
		changes := make(chan string, changesBuffer)
		cancel := svc.Observe(path, func(changed string) {
			select {
			case changes <- changed:
			default:
			}
		})
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, ": watching %s\n\n", path)
		if err := rc.Flush(); err != nil {
			return
		}

		for {
			select {
			case <-r.Context().Done():
				return
			case changed := <-changes:
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", changed)
				if err := rc.Flush(); err != nil {
					return
				}
			}
		}
	}
}
