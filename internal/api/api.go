package api

import (
	"net/http"

	speechHandler "voice-server/internal/speech/handler"
	telephonyHandler "voice-server/internal/telephony/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router           *gin.RouterGroup
	telephonyHandler telephonyHandler.Handler
	speechHandler    *speechHandler.Handler
}

func New(router *gin.RouterGroup, telephony telephonyHandler.Handler, speech *speechHandler.Handler) API {
	return API{
		router:           router,
		telephonyHandler: telephony,
		speechHandler:    speech,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")
	{
		telephonyGroup := apiGroup.Group("/telephony")
		telephonyGroup.POST("/:agent_id/call-start", a.telephonyHandler.HandleCallStart)
		telephonyGroup.POST("/:agent_id/speech", a.telephonyHandler.HandleSpeech)
		telephonyGroup.POST("/:agent_id/speech-partial", a.telephonyHandler.HandlePartialSpeech)
		telephonyGroup.POST("/call-status", a.telephonyHandler.HandleCallStatus)
		telephonyGroup.GET("/media-stream", a.telephonyHandler.HandleMediaStream)

		audioGroup := apiGroup.Group("/audio")
		audioGroup.GET("/:audio_id", a.speechHandler.GetAudio)
		audioGroup.GET("/:audio_id/stream", a.speechHandler.StreamAudio)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
