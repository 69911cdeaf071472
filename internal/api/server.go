package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hookbot/internal/logger"
	"hookbot/internal/trade"
)

type Server struct {
	listen    string
	submitter *trade.Submitter
	engine    *gin.Engine
	log       *logger.Logger
}

func NewServer(listen string, submitter *trade.Submitter, log *logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	server := &Server{
		listen:    listen,
		submitter: submitter,
		engine:    engine,
		log:       log,
	}

	server.registerRoutes()

	return server
}

func (s *Server) registerRoutes() {
	s.engine.POST("/webhook", s.handleWebhook)
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	s.log.WithComponent("api").WithFields(map[string]interface{}{
		"listen": s.listen,
	}).Info("HTTP сервер запущен.")
	return s.engine.Run(s.listen)
}
