package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"

	"github.com/huddlekit/huddle/internal/config"
)

// webrtcConfigHandler hands clients the ICE server list to feed their
// RTCPeerConnection. The server itself never touches media; this is the
// only place it knows about WebRTC at all.
func webrtcConfigHandler(cfg *config.Config) gin.HandlerFunc {
	iceServers := []webrtc.ICEServer{
		{URLs: cfg.STUNServers},
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"iceServers": iceServers,
		})
	}
}
