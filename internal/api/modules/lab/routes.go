package lab

import "github.com/gin-gonic/gin"

// Register routes for the lab module
func RegisterRoutes(g *gin.RouterGroup) {
	group := g.Group("/lab")

	// Session lifecycle
	group.POST("/sessions", CreateSession)           // Set up a new lab session (metadata + PDF upload)
	group.GET("/sessions/:uuid", GetSession)         // Get an active session by UUID
	group.DELETE("/sessions/:uuid", DeleteSession)   // End a session

	// Turn handling and research artifacts
	group.POST("/sessions/:uuid/turns", PostTurn)          // Submit an explanation turn
	group.GET("/sessions/:uuid/transcript", GetTranscript) // Get the display transcript
	group.GET("/sessions/:uuid/export", ExportCSV)         // Download the research dataset
}
