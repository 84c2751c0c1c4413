package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pipetrack/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	leadHandler *handlers.LeadHandler,
	orderHandler *handlers.OrderHandler,
	receiptHandler *handlers.ReceiptHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Mail relay (kept at the top level, same path as the old server)
	r.POST("/send-receipt", receiptHandler.SendReceipt)

	// LEADS
	leads := r.Group("/leads")
	{
		leads.POST("/", leadHandler.Create)
		leads.GET("/", leadHandler.List)
		leads.GET("/:id", leadHandler.GetByID)
		leads.PUT("/:id", leadHandler.Update)
		leads.POST("/:id/stage", leadHandler.DraftStage)
		leads.POST("/:id/stage/confirm", leadHandler.ConfirmStage)
		leads.DELETE("/:id/stage", leadHandler.DiscardStage)
	}

	// ORDERS
	orders := r.Group("/orders")
	{
		orders.GET("/eligible-leads", orderHandler.EligibleLeads)
		orders.POST("/", orderHandler.Create)
		orders.GET("/", orderHandler.List)
		orders.GET("/:id", orderHandler.GetByID)
		orders.POST("/:id/status", orderHandler.DraftStatus)
		orders.POST("/:id/status/confirm", orderHandler.ConfirmStatus)
		orders.DELETE("/:id/status", orderHandler.DiscardStatus)
		orders.GET("/:id/receipt", orderHandler.Receipt)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/summary", reportHandler.GetSummary)
	}

	return r
}
