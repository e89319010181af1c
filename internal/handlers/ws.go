package handlers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/internhub-dev/internhub/db"
	"github.com/internhub-dev/internhub/internal/apperrors"
	"github.com/internhub-dev/internhub/internal/authz"
	"github.com/internhub-dev/internhub/internal/types"
	"github.com/internhub-dev/internhub/internal/utils"
	"github.com/sirupsen/logrus"
)

var (
	workspaceClients   = make(map[uint]map[*websocket.Conn]bool)
	workspaceClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastWorkspaceRefresh tells every client watching an internship
// workspace to re-fetch. Called after application, submission and
// evaluation mutations.
func BroadcastWorkspaceRefresh(internshipID uint, event string) {
	workspaceClientsMu.RLock()
	clients, exists := workspaceClients[internshipID]
	if !exists || len(clients) == 0 {
		workspaceClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	workspaceClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			logrus.WithError(err).Warn("Failed to set write deadline for broadcast")
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":          "refresh",
			"event":         event,
			"internship_id": strconv.FormatUint(uint64(internshipID), 10),
		})

		if err != nil {
			logrus.WithError(err).Warn("Failed to broadcast refresh to client")
			workspaceClientsMu.Lock()
			if clients, exists := workspaceClients[internshipID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(workspaceClients, internshipID)
				}
			}
			workspaceClientsMu.Unlock()
			conn.Close()
		}
	}
}

// WorkspaceSocket upgrades to a websocket scoped to one internship
// workspace. The workspace access rule applies before the upgrade: owning
// organization, accepted intern, or admin.
func WorkspaceSocket(c *gin.Context) {
	currentUser, err := utils.GetCurrentUser(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	internshipID, err := utils.GetInternshipID(c)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workspaceUser := authz.CurrentUserInfo{Role: currentUser.Role, ProfileID: currentUser.ProfileID}

	if err := authz.CanAccessWorkspace(db.DB, workspaceUser, internshipID); err != nil {
		apperrors.Respond(c, err)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logrus.WithError(err).Warn("Failed to set initial read deadline")
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logrus.WithError(err).Warn("Failed to set read deadline in pong handler")
		}
		return nil
	})

	workspaceClientsMu.Lock()
	if workspaceClients[internshipID] == nil {
		workspaceClients[internshipID] = make(map[*websocket.Conn]bool)
	}
	workspaceClients[internshipID][conn] = true
	workspaceClientsMu.Unlock()

	defer func() {
		workspaceClientsMu.Lock()

		if clients, exists := workspaceClients[internshipID]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(workspaceClients, internshipID)
			}
		}

		workspaceClientsMu.Unlock()
		conn.Close()

		logrus.Debugf("WebSocket connection closed for internship %d", internshipID)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		logrus.WithError(err).Warn("Failed to set write deadline for welcome message")
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":          "connected",
		"internship_id": strconv.FormatUint(uint64(internshipID), 10),
	})

	if err != nil {
		logrus.WithError(err).Warn("Failed to send welcome message")
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			break
		}

		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Debugf("WebSocket error for internship %d", internshipID)
			}
			break
		}
	}
}
